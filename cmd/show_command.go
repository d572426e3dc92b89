package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tejashwikalptaru/coverflow/internal/app"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var library string
	var reducedMotion bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Open the carousel window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("library") {
				cfg.Library.Path = library
			}
			if cmd.Flags().Changed("reduced-motion") {
				cfg.Carousel.ReducedMotion = reducedMotion
			}

			application, err := app.NewApplication(cfg)
			if err != nil {
				return fmt.Errorf("failed to create application: %w", err)
			}
			defer func() {
				if err := application.Shutdown(); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Shutdown error: %v\n", err)
				}
			}()

			// Blocks until the window is closed
			application.Run()
			return nil
		},
	}

	cmd.Flags().StringVar(&library, "library", "", "Directory of images and audio files to show")
	cmd.Flags().BoolVar(&reducedMotion, "reduced-motion", false, "Snap cards into place without animating")
	return cmd
}
