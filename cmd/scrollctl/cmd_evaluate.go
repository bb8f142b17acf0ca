package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	appenhance "scrollforge/internal/app/enhance"
)

var evaluateFlags struct {
	requestPath string
	includeTree bool
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one request file and print the decision as JSON",
	RunE:  runEvaluate,
}

func init() {
	f := evaluateCmd.Flags()
	f.StringVarP(&evaluateFlags.requestPath, "file", "f", "", "Path to a JSON or YAML request file (required)")
	f.BoolVar(&evaluateFlags.includeTree, "tree", false, "Include the full annotated policy tree in the response")
	_ = evaluateCmd.MarkFlagRequired("file")
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	req, err := loadRequest(evaluateFlags.requestPath)
	if err != nil {
		return err
	}
	req.IncludeTree = req.IncludeTree || evaluateFlags.includeTree

	uc := appenhance.UseCase{}
	resp, err := uc.Execute(context.Background(), "", req)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
