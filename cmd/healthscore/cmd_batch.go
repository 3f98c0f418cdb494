package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chronos-health-scores/internal/service"
)

// batchOutput is what the batch command prints.
type batchOutput struct {
	Summary   service.BatchSummary `json:"summary" yaml:"summary"`
	Responses []service.Response   `json:"responses" yaml:"responses"`
}

func newBatchCommand(a *app) *cobra.Command {
	var input, format string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Evaluate many requests concurrently",
		Long: `Evaluate a file of requests concurrently.

The input is either JSON Lines, one request per line, or a JSON array of
requests. Each request names a calculator and carries its input:

  {"id": "p1", "calculator": "bio-age", "input": {"age": 40, "gender": "female", ...}}

Responses keep the request order. The command exits with status 1 when any
request failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readSource(cmd.InOrStdin(), input)
			if err != nil {
				return err
			}
			reqs, err := parseRequests(data)
			if err != nil {
				return err
			}

			responses, err := a.service.EvaluateBatch(cmd.Context(), reqs)
			summary := service.Summarize(responses)
			if werr := writeOutput(cmd.OutOrStdout(), format, batchOutput{Summary: summary, Responses: responses}); werr != nil {
				return werr
			}
			if err != nil {
				return fmt.Errorf("batch interrupted: %w", err)
			}

			stats := a.service.Stats()
			a.logger.WithFields(logrus.Fields{
				"evaluations":    stats.Evaluations,
				"cache_hits":     stats.CacheHits,
				"range_warnings": stats.RangeWarnings,
			}).Info("Batch statistics")

			if summary.Failed > 0 {
				return &BatchFailureError{Failed: summary.Failed, Total: summary.Total}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "Requests file (JSON Lines or a JSON array), or - for stdin")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format: json or yaml")

	return cmd
}

// parseRequests accepts a JSON array of requests or JSON Lines. Blank lines
// are skipped.
func parseRequests(data []byte) ([]service.Request, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("no requests in input")
	}

	if trimmed[0] == '[' {
		var reqs []service.Request
		if err := json.Unmarshal(trimmed, &reqs); err != nil {
			return nil, fmt.Errorf("failed to decode requests: %w", err)
		}
		return reqs, nil
	}

	var reqs []service.Request
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var req service.Request
		if err := json.Unmarshal(text, &req); err != nil {
			return nil, fmt.Errorf("failed to decode request on line %d: %w", line, err)
		}
		reqs = append(reqs, req)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read requests: %w", err)
	}
	return reqs, nil
}
