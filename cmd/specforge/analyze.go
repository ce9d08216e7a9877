package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/specforge-ai/specforge/pkg/analyzer"
	"github.com/specforge-ai/specforge/pkg/search"
	"github.com/specforge-ai/specforge/pkg/template"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		flags         pipelineFlags
		templateFile  string
		noValidate    bool
		searchEnabled bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [task]",
		Short: "Analyze a task and generate a specification document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if noValidate {
				cfg.Analysis.ValidationEnabled = false
			}

			task, err := readInput(args, flags.inputFile)
			if err != nil {
				return err
			}

			tpl := ""
			tplPath := templateFile
			if tplPath == "" {
				tplPath = cfg.TemplateFile
			}
			if tplPath != "" {
				tpl, err = template.Load(tplPath)
				if err != nil {
					return err
				}
			}

			client, cleanup, err := buildClient(cfg, "analyze", flags.clearCache)
			if err != nil {
				return err
			}
			defer cleanup()

			a := analyzer.New(client, cfg.Analysis)
			if searchEnabled {
				if key := os.Getenv("BRAVE_API_KEY"); key != "" {
					a.WithSearch(search.New(key))
				} else {
					log.Printf("BRAVE_API_KEY is not set, web search disabled")
				}
			}

			doc, err := a.Analyze(cmd.Context(), task, tpl)
			if err != nil {
				return err
			}
			return writeOutput(flags.outputFile, doc)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&templateFile, "template", "", "custom specification template file")
	cmd.Flags().BoolVar(&noValidate, "no-validate", false, "skip the validation pass")
	cmd.Flags().BoolVar(&searchEnabled, "search", false, "fetch web context for the task (needs BRAVE_API_KEY)")
	return cmd
}
