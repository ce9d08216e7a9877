package main

import (
	"fmt"

	"github.com/spf13/cobra"

	cachepkg "github.com/specforge-ai/specforge/pkg/cache"
	"github.com/specforge-ai/specforge/pkg/config"
)

func newCacheCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
	}

	open := func() (cachepkg.Backend, func(), error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, nil, err
		}
		backend, err := cachepkg.New(cfg.CacheSettings())
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if s, ok := backend.(*cachepkg.SQLite); ok {
				_ = s.Close()
			}
		}
		return backend, cleanup, nil
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, cleanup, err := open()
			if err != nil {
				return err
			}
			defer cleanup()

			st := backend.Stats()
			fmt.Printf("Entries: %d\nHits:    %d\nMisses:  %d\n", st.Entries, st.Hits, st.Misses)
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, cleanup, err := open()
			if err != nil {
				return err
			}
			defer cleanup()

			if !backend.Clear() {
				return fmt.Errorf("cache clear failed")
			}
			fmt.Println("All cache entries cleared.")
			return nil
		},
	}

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove expired cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, cleanup, err := open()
			if err != nil {
				return err
			}
			defer cleanup()

			s, ok := backend.(*cachepkg.SQLite)
			if !ok {
				return fmt.Errorf("prune applies to the disk backend only")
			}
			fmt.Printf("Pruned %d expired entries.\n", s.PruneExpired())
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "specforge.yaml", "path to config file")
	cmd.AddCommand(statsCmd, clearCmd, pruneCmd)
	return cmd
}
