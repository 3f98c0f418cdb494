package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chronos-health-scores/internal/domain"
	"github.com/chronos-health-scores/internal/service"
)

type rangesOutput struct {
	Calculator  domain.CalculatorKind    `json:"calculator" yaml:"calculator"`
	Ranges      []domain.BiomarkerRange  `json:"ranges" yaml:"ranges"`
	Assessments []domain.RangeAssessment `json:"assessments,omitempty" yaml:"assessments,omitempty"`
}

func newRangesCommand() *cobra.Command {
	var input, format string

	cmd := &cobra.Command{
		Use:   "ranges [calculator]",
		Short: "Show the reference ranges of calculator inputs",
		Long: `Show the accepted and normal ranges of each calculator input.

Without an argument the ranges of every calculator are listed. With --input
the values of the given input document are assessed against the ranges.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := domain.AllCalculatorKinds()
			if len(args) == 1 {
				kind, err := domain.ParseCalculatorKind(args[0])
				if err != nil {
					return fmt.Errorf("%w: %s", err, args[0])
				}
				kinds = []domain.CalculatorKind{kind}
			}
			if input != "" && len(kinds) != 1 {
				return fmt.Errorf("--input requires a calculator argument")
			}

			outputs := make([]rangesOutput, 0, len(kinds))
			for _, kind := range kinds {
				out := rangesOutput{Calculator: kind, Ranges: domain.RangesFor(kind)}
				if input != "" {
					in, err := decodeKindInput(cmd.InOrStdin(), input, kind)
					if err != nil {
						return err
					}
					out.Assessments = service.AssessRanges(kind, in)
				}
				outputs = append(outputs, out)
			}

			if format == formatText {
				return writeRangesText(cmd.OutOrStdout(), outputs)
			}
			if len(outputs) == 1 {
				return writeOutput(cmd.OutOrStdout(), format, outputs[0])
			}
			return writeOutput(cmd.OutOrStdout(), format, outputs)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input JSON or YAML file to assess, or - for stdin")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, json or yaml")

	return cmd
}

// decodeKindInput reads an input document for the given calculator over its
// defaults.
func decodeKindInput(stdin io.Reader, path string, kind domain.CalculatorKind) (domain.Input, error) {
	var in domain.Input
	var err error
	switch kind {
	case domain.KindBioAge:
		v := domain.DefaultBioAgeInput()
		err = readInput(stdin, path, &v)
		in = v
	case domain.KindCardiovascular:
		v := domain.DefaultCardioInput()
		err = readInput(stdin, path, &v)
		in = v
	case domain.KindMetabolic:
		v := domain.DefaultMetabolicInput()
		err = readInput(stdin, path, &v)
		in = v
	case domain.KindBodyComposition:
		v := domain.DefaultBodyCompInput()
		err = readInput(stdin, path, &v)
		in = v
	default:
		return nil, domain.ErrUnknownCalculator
	}
	if err != nil {
		return nil, err
	}
	return in, nil
}

func writeRangesText(w io.Writer, outputs []rangesOutput) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for i, out := range outputs {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s\n", out.Calculator)

		if len(out.Assessments) > 0 {
			fmt.Fprintln(tw, "FIELD\tVALUE\tLEVEL\tPOSITION\tIN FORM RANGE")
			for _, a := range out.Assessments {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.0f%%\t%t\n", a.Field, num(a.Value), a.Level, a.Position, a.WithinForm)
			}
			continue
		}

		fmt.Fprintln(tw, "FIELD\tLABEL\tUNIT\tACCEPTED\tNORMAL")
		for _, r := range out.Ranges {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s-%s\t%s-%s\n",
				r.Field, r.Label, r.Unit,
				num(r.InputMin), num(r.InputMax),
				num(r.NormalMin), num(r.NormalMax))
		}
	}

	return tw.Flush()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
