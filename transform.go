package main

import (
	"fmt"
	"os"

	"github.com/Septimmius/ml-templates/pipeline"
	"github.com/Septimmius/ml-templates/tableio"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newTransformCmd() *cobra.Command {
	var input, planPath, output string

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Fit a YAML pipeline on a table and write the transformed table",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zerolog.Ctx(cmd.Context())

			f, err := os.Open(planPath)
			if err != nil {
				return fmt.Errorf("error in os.Open: %w", err)
			}
			defer f.Close()
			plan, err := pipeline.ParsePlan(f)
			if err != nil {
				return fmt.Errorf("error parsing plan %s: %w", planPath, err)
			}
			p, err := pipeline.Build(plan)
			if err != nil {
				return fmt.Errorf("error in pipeline.Build: %w", err)
			}

			df, err := tableio.Load(input)
			if err != nil {
				return fmt.Errorf("error in tableio.Load: %w", err)
			}
			out, err := p.FitTransform(df)
			if err != nil {
				return fmt.Errorf("error running pipeline %s: %w", p.ID, err)
			}
			if err := tableio.Save(output, out); err != nil {
				return fmt.Errorf("error in tableio.Save: %w", err)
			}

			rows, cols := out.Dims()
			logger.Info().Str("pipelineID", p.ID).Int("rows", rows).Int("cols", cols).Str("output", output).Msg("wrote transformed table")
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "table to transform")
	cmd.Flags().StringVar(&planPath, "pipeline", "", "YAML pipeline plan")
	cmd.Flags().StringVar(&output, "output", "", "where to write the result, format picked by extension")
	for _, name := range []string{"input", "pipeline", "output"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
