package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	appenhance "scrollforge/internal/app/enhance"
)

var batchFlags struct {
	concurrency int
}

var batchCmd = &cobra.Command{
	Use:   "batch <request-file>...",
	Short: "Evaluate many request files concurrently and print one JSON line per result",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchFlags.concurrency, "concurrency", 8, "Maximum number of requests evaluated in parallel")
}

type batchResult struct {
	File     string               `json:"file"`
	Response *appenhance.Response `json:"response,omitempty"`
	Error    string               `json:"error,omitempty"`
}

// runBatch evaluates each file with its own Evaluator and memo (the
// request-level parallelism the engine supports), fanning out across an errgroup-bounded
// worker pool and writing results in a mutex-guarded, deterministic order
// once every request has settled.
func runBatch(cmd *cobra.Command, args []string) error {
	results := make([]batchResult, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(batchFlags.concurrency)

	var mu sync.Mutex
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			result := evaluateOne(ctx, path)
			mu.Lock()
			results[i] = result
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func evaluateOne(ctx context.Context, path string) batchResult {
	req, err := loadRequest(path)
	if err != nil {
		return batchResult{File: path, Error: err.Error()}
	}
	uc := appenhance.UseCase{}
	resp, err := uc.Execute(ctx, "", req)
	if err != nil {
		return batchResult{File: path, Error: fmt.Sprintf("evaluate: %v", err)}
	}
	return batchResult{File: path, Response: &resp}
}
