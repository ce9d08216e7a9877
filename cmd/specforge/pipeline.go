package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/specforge-ai/specforge/pkg/cache"
	"github.com/specforge-ai/specforge/pkg/config"
	"github.com/specforge-ai/specforge/pkg/llm"
	"github.com/specforge-ai/specforge/pkg/tracker"
)

// pipelineFlags are the flags shared by the analyze and design
// commands.
type pipelineFlags struct {
	configPath string
	provider   string
	model      string
	inputFile  string
	outputFile string
	noCache    bool
	cacheKind  string
	cacheTTL   int
	clearCache bool
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "specforge.yaml", "path to config file")
	cmd.Flags().StringVar(&f.provider, "provider", "", "override the LLM provider")
	cmd.Flags().StringVar(&f.model, "model", "", "override the LLM model")
	cmd.Flags().StringVarP(&f.inputFile, "input", "i", "", "read the input text from a file")
	cmd.Flags().StringVarP(&f.outputFile, "output", "o", "", "write the result to a file")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the response cache")
	cmd.Flags().StringVar(&f.cacheKind, "cache-backend", "", "cache backend (memory or disk)")
	cmd.Flags().IntVar(&f.cacheTTL, "cache-ttl", 0, "cache TTL in seconds (0 keeps the configured value)")
	cmd.Flags().BoolVar(&f.clearCache, "clear-cache", false, "clear the cache before running")
}

// loadConfig loads the config file and applies flag overrides.
func (f *pipelineFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.provider != "" {
		cfg.Provider = f.provider
	}
	if f.model != "" {
		cfg.Model = f.model
	}
	if f.noCache {
		cfg.Cache.Enabled = false
	}
	if f.cacheKind != "" {
		cfg.Cache.Backend = f.cacheKind
	}
	if f.cacheTTL != 0 {
		cfg.Cache.TTLSeconds = f.cacheTTL
	}
	return cfg, nil
}

// buildClient wires the cache, tracker, and completion client for
// one pipeline run. The returned cleanup closes what was opened.
func buildClient(cfg *config.Config, command string, clearCache bool) (*llm.Client, func(), error) {
	var backend cache.Backend
	if cfg.Cache.Enabled {
		var err error
		backend, err = cache.New(cfg.CacheSettings())
		if err != nil {
			return nil, nil, err
		}
		if clearCache {
			if !backend.Clear() {
				log.Printf("cache clear failed, continuing")
			}
		}
	}

	var tr tracker.Tracker
	if cfg.Tracking {
		var err error
		tr, err = tracker.New(cfg.DBPath)
		if err != nil {
			closeBackend(backend)
			return nil, nil, err
		}
	}

	client := llm.New(llm.Options{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Cache:    backend,
		Tracker:  tr,
		Command:  command,
	})

	cleanup := func() {
		closeBackend(backend)
		if tr != nil {
			_ = tr.Close()
		}
	}
	return client, cleanup, nil
}

// closeBackend closes the disk backend; the memory backend holds no
// resources.
func closeBackend(b cache.Backend) {
	if s, ok := b.(*cache.SQLite); ok {
		_ = s.Close()
	}
}

// readInput returns the task or document text from the positional
// argument or the input file.
func readInput(args []string, inputFile string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if inputFile == "" {
		return "", fmt.Errorf("provide the text as an argument or via --input")
	}
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// writeOutput writes the result to the output file, or stdout when
// no file is given.
func writeOutput(outputFile, content string) error {
	if outputFile == "" {
		fmt.Println(content)
		return nil
	}
	if err := os.WriteFile(outputFile, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("Written to %s\n", outputFile)
	return nil
}
