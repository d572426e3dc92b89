package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tejashwikalptaru/coverflow/internal/domain"
	"github.com/tejashwikalptaru/coverflow/internal/logger"
	"github.com/tejashwikalptaru/coverflow/internal/simulate"
)

func newSimulateCommand(ctx *commandContext) *cobra.Command {
	var (
		slides        int
		script        string
		attrs         []string
		transition    string
		fallback      string
		reducedMotion bool
	)

	cmd := &cobra.Command{
		Use:   "simulate [step...]",
		Short: "Run a scripted carousel session headlessly",
		Long: `Runs the carousel against an in-memory view on a virtual clock and prints
the state after every step.

Steps: next, prev, goto N, finish, advance D, flush, resize N,
attr k=v, attr k, scratch N [P], destroy, refresh.`,
		Example: `  coverflow simulate --slides 5 --transition 450ms next next "advance 510ms" next
  coverflow simulate --script session.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.loadConfig()
			if err != nil {
				return err
			}

			steps, err := loadSteps(script, args)
			if err != nil {
				return err
			}

			initial := make(map[domain.Attribute]string, len(attrs))
			for _, kv := range attrs {
				name, value, _ := strings.Cut(kv, "=")
				if name == "" {
					return domain.NewValidationError("attr", kv, "expects k=v")
				}
				initial[domain.Attribute(name)] = value
			}

			log := logger.NewLogger(logger.Config{
				Level:  cfg.LogLevel(),
				Format: cfg.Log.Format,
				Output: cmd.ErrOrStderr(),
			})

			runner := simulate.NewRunner(log.With(slog.String("component", "simulate")), simulate.Options{
				Slides:             slides,
				Attributes:         initial,
				ReducedMotion:      reducedMotion,
				Transition:         transition,
				FallbackTransition: fallback,
			})
			defer runner.Close()

			report := runner.Run(steps)
			fmt.Fprintln(cmd.OutOrStdout(), report.Render())
			return nil
		},
	}

	cmd.Flags().IntVarP(&slides, "slides", "n", 5, "Number of slides")
	cmd.Flags().StringVarP(&script, "script", "f", "", "Read steps from a file ('-' for stdin)")
	cmd.Flags().StringArrayVar(&attrs, "attr", nil, "Initial attribute k=v (repeatable)")
	cmd.Flags().StringVar(&transition, "transition", "450ms", "Card transform duration, empty for none")
	cmd.Flags().StringVar(&fallback, "fallback", "", "Card fallback duration variable")
	cmd.Flags().BoolVar(&reducedMotion, "reduced-motion", false, "Report a reduced-motion preference")
	return cmd
}

func loadSteps(script string, args []string) ([]simulate.Step, error) {
	switch {
	case script == "":
		return simulate.ParseSteps(args)
	case len(args) > 0:
		return nil, fmt.Errorf("steps given both as arguments and in %s", script)
	case script == "-":
		return simulate.ParseScript(os.Stdin)
	default:
		f, err := os.Open(script)
		if err != nil {
			return nil, fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		return simulate.ParseScript(f)
	}
}
