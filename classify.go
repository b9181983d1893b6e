package main

import (
	"encoding/json"
	"fmt"

	"github.com/Septimmius/ml-templates/datastore"
	"github.com/Septimmius/ml-templates/numcat"
	"github.com/Septimmius/ml-templates/tableio"
	"github.com/Septimmius/ml-templates/utils"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type classifyOutput struct {
	Numeric     []string `json:"numeric"`
	Categorical []string `json:"categorical"`
}

func newClassifyCmd() *cobra.Command {
	var (
		input    string
		numToCat []string
		remove   []string
		saveNum  string
		saveCat  string
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Split the columns of a table into numeric and categorical lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			if quiet {
				zerolog.SetGlobalLevel(zerolog.WarnLevel)
			}
			ctx := cmd.Context()

			df, err := tableio.Load(input)
			if err != nil {
				return fmt.Errorf("error in tableio.Load: %w", err)
			}

			opts := numcat.PrepareOptions{
				CSVPathNum:  saveNum,
				CSVPathCat:  saveCat,
				SaveAndLoad: saveNum != "" || saveCat != "",
			}
			if opts.SaveAndLoad {
				store, err := datastore.FromEnv()
				if err != nil {
					return fmt.Errorf("error in datastore.FromEnv: %w", err)
				}
				defer store.Shutdown(ctx)
				opts.Store = store
			}

			num, cat, err := numcat.PrepareNumCatForPipeline(ctx, df, numToCat, opts)
			if err != nil {
				return fmt.Errorf("error in PrepareNumCatForPipeline: %w", err)
			}
			if len(remove) > 0 {
				num, cat, err = numcat.RemoveFeaturesFromNumCat(num, cat, remove)
				if err != nil {
					return fmt.Errorf("error in RemoveFeaturesFromNumCat: %w", err)
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			return enc.Encode(classifyOutput{
				Numeric:     utils.ArrayOrEmpty(num),
				Categorical: utils.ArrayOrEmpty(cat),
			})
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "table to classify (.csv, .ndjson, .jsonl, .parquet)")
	cmd.Flags().StringSliceVar(&numToCat, "num-to-cat", nil, "numeric columns to treat as categorical")
	cmd.Flags().StringSliceVar(&remove, "remove", nil, "columns to drop from both lists")
	cmd.Flags().StringVar(&saveNum, "save-num", "", "path to persist the numeric list to")
	cmd.Flags().StringVar(&saveCat, "save-cat", "", "path to persist the categorical list to")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "only log warnings and errors")
	_ = cmd.MarkFlagRequired("input")
	cmd.MarkFlagsRequiredTogether("save-num", "save-cat")
	return cmd
}
