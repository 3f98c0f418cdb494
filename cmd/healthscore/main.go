// Package main provides the healthscore command line tool, which computes
// biological age, cardiovascular risk, metabolic health and body composition
// scores from biomarker panels.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // All evaluations succeeded
	ExitEvalFailed = 1 // One or more batch evaluations failed
	ExitError      = 2 // Configuration, input or runtime error
)

// BatchFailureError indicates that the batch ran to completion but one or
// more requests failed.
type BatchFailureError struct {
	Failed int
	Total  int
}

func (e *BatchFailureError) Error() string {
	return fmt.Sprintf("batch completed with %d of %d evaluation(s) failed", e.Failed, e.Total)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := execute(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		var batchErr *BatchFailureError
		if errors.As(err, &batchErr) {
			os.Exit(ExitEvalFailed)
		}
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
