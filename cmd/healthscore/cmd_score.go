package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chronos-health-scores/internal/domain"
	"github.com/chronos-health-scores/internal/service"
)

// scoreOutput is what the single-calculator commands print.
type scoreOutput struct {
	Calculator domain.CalculatorKind  `json:"calculator" yaml:"calculator"`
	Input      any                    `json:"input" yaml:"input"`
	Result     any                    `json:"result" yaml:"result"`
	Warnings   []service.RangeWarning `json:"warnings" yaml:"warnings"`
}

type scoreCommand[I domain.Input] struct {
	use      string
	aliases  []string
	short    string
	long     string
	kind     domain.CalculatorKind
	defaults func() I
	score    func(ctx context.Context, svc *service.ScoringService, in I) (any, error)
}

func (sc scoreCommand[I]) build(a *app) *cobra.Command {
	var input, format string

	cmd := &cobra.Command{
		Use:     sc.use,
		Aliases: sc.aliases,
		Short:   sc.short,
		Long:    sc.long,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := sc.defaults()
			if input != "" {
				if err := readInput(cmd.InOrStdin(), input, &in); err != nil {
					return err
				}
			}

			result, err := sc.score(cmd.Context(), a.service, in)
			if err != nil {
				return fmt.Errorf("%s evaluation failed: %w", sc.kind, err)
			}

			return writeOutput(cmd.OutOrStdout(), format, scoreOutput{
				Calculator: sc.kind,
				Input:      in,
				Result:     result,
				Warnings:   service.CheckRanges(sc.kind, in),
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input JSON or YAML file, or - for stdin (defaults are used when omitted)")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format: json or yaml")

	return cmd
}

func newBioAgeCommand(a *app) *cobra.Command {
	return scoreCommand[domain.BioAgeInput]{
		use:     "bio-age",
		aliases: []string{"bioage"},
		short:   "Estimate biological age from a blood panel",
		long: `Estimate biological age from chronological age and a blood panel.

Glucose, CRP, albumin, HDL, LDL and HbA1c adjust the estimate; creatinine,
BUN, ALT and WBC are reported for reference.`,
		kind:     domain.KindBioAge,
		defaults: domain.DefaultBioAgeInput,
		score: func(ctx context.Context, svc *service.ScoringService, in domain.BioAgeInput) (any, error) {
			return svc.BiologicalAge(ctx, in)
		},
	}.build(a)
}

func newCardioCommand(a *app) *cobra.Command {
	return scoreCommand[domain.CardioInput]{
		use:      "cardio",
		aliases:  []string{"cardiovascular-risk"},
		short:    "Estimate 10-year cardiovascular risk and heart age",
		kind:     domain.KindCardiovascular,
		defaults: domain.DefaultCardioInput,
		score: func(ctx context.Context, svc *service.ScoringService, in domain.CardioInput) (any, error) {
			return svc.CardiovascularRisk(ctx, in)
		},
	}.build(a)
}

func newMetabolicCommand(a *app) *cobra.Command {
	return scoreCommand[domain.MetabolicInput]{
		use:      "metabolic",
		aliases:  []string{"metabolic-health"},
		short:    "Score metabolic health on a 0-10 scale",
		kind:     domain.KindMetabolic,
		defaults: domain.DefaultMetabolicInput,
		score: func(ctx context.Context, svc *service.ScoringService, in domain.MetabolicInput) (any, error) {
			return svc.MetabolicHealth(ctx, in)
		},
	}.build(a)
}

func newBodyCompCommand(a *app) *cobra.Command {
	return scoreCommand[domain.BodyCompInput]{
		use:     "body-comp",
		aliases: []string{"body-composition"},
		short:   "Analyse body composition from body measurements",
		long: `Analyse body composition from body measurements.

Body fat is estimated with the US Navy circumference method unless
bodyFatMethod is "measured" and a bodyFatPercentage is supplied.`,
		kind:     domain.KindBodyComposition,
		defaults: domain.DefaultBodyCompInput,
		score: func(ctx context.Context, svc *service.ScoringService, in domain.BodyCompInput) (any, error) {
			return svc.BodyComposition(ctx, in)
		},
	}.build(a)
}
