package main

import (
	"context"

	"github.com/spf13/cobra"

	"privacypal/internal/config"
	"privacypal/internal/perception"
	"privacypal/internal/ux"
)

type modelLister interface {
	ListTextModels(ctx context.Context) ([]perception.ModelInfo, error)
}

// newModelLister builds the model listing client. Tests replace it.
var newModelLister = func(ctx context.Context, cfg *config.Config) (modelLister, error) {
	return perception.NewClient(ctx, cfg)
}

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List oracle models that support text generation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.GetLLMTimeout())
			defer cancel()

			lister, err := newModelLister(ctx, cfg)
			if err != nil {
				return err
			}
			models, err := lister.ListTextModels(ctx)
			if err != nil {
				return err
			}
			ux.NewRenderer(cmd.OutOrStdout(), ux.DetectTheme()).Models(models)
			return nil
		},
	}
}
