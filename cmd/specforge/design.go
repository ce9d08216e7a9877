package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/specforge-ai/specforge/pkg/design"
	"github.com/specforge-ai/specforge/pkg/models"
)

func newDesignCmd() *cobra.Command {
	var (
		flags           pipelineFlags
		subtasks        bool
		analyzeSubtasks bool
		format          string
	)

	cmd := &cobra.Command{
		Use:   "design [document]",
		Short: "Break a design document into implementation phases",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			doc, err := readInput(args, flags.inputFile)
			if err != nil {
				return err
			}

			client, cleanup, err := buildClient(cfg, "design", flags.clearCache)
			if err != nil {
				return err
			}
			defer cleanup()

			designer := design.New(client, cfg.Analysis)
			phases, err := designer.Breakdown(cmd.Context(), doc, subtasks || analyzeSubtasks)
			if err != nil {
				return err
			}
			if analyzeSubtasks {
				if err := designer.AnalyzeSubtasks(cmd.Context(), phases); err != nil {
					return err
				}
			}

			out, err := renderPhases(phases, format)
			if err != nil {
				return err
			}
			return writeOutput(flags.outputFile, out)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&subtasks, "subtasks", false, "break each phase into subtasks")
	cmd.Flags().BoolVar(&analyzeSubtasks, "analyze-subtasks", false, "generate a specification for each subtask")
	cmd.Flags().StringVar(&format, "format", "markdown", "output format (markdown, yaml, json)")
	return cmd
}

func renderPhases(phases []models.Phase, format string) (string, error) {
	switch format {
	case "markdown":
		var b strings.Builder
		for i, p := range phases {
			fmt.Fprintf(&b, "## Phase %d: %s\n\n%s\n", i+1, p.Name, p.Description)
			if p.Components != "" {
				fmt.Fprintf(&b, "\nComponents: %s\n", p.Components)
			}
			if p.Dependencies != "" {
				fmt.Fprintf(&b, "\nDependencies: %s\n", p.Dependencies)
			}
			for j, st := range p.Subtasks {
				fmt.Fprintf(&b, "\n### Subtask %d.%d: %s\n\n%s\n", i+1, j+1, st.Title, st.Description)
				if st.Specification != "" {
					fmt.Fprintf(&b, "\n#### Specification\n\n%s\n", st.Specification)
				}
			}
			b.WriteString("\n")
		}
		return b.String(), nil
	case "yaml":
		data, err := yaml.Marshal(phases)
		if err != nil {
			return "", fmt.Errorf("render yaml: %w", err)
		}
		return string(data), nil
	case "json":
		data, err := json.MarshalIndent(phases, "", "  ")
		if err != nil {
			return "", fmt.Errorf("render json: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}
