package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	fv "github.com/fieldsafe/validator"
	"github.com/fieldsafe/validator/engine"
	"github.com/fieldsafe/validator/schema"
	"github.com/fieldsafe/validator/worker"
)

// recordOutput is one record's outcome in JSON output mode.
type recordOutput struct {
	Record   int      `json:"record"`
	Valid    bool     `json:"valid"`
	Messages []string `json:"messages,omitempty"`
}

func newValidateCmd() *cobra.Command {
	var (
		schemaPath string
		outputJSON bool
		timeout    time.Duration
		maxConc    int
		noFallback bool
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "validate -s schema.yaml records.json",
		Short: "Validate records from a JSON file against a schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sch, err := schema.LoadFile(schemaPath)
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read records: %w", err)
			}
			var records []map[string]string
			if err := json.Unmarshal(raw, &records); err != nil {
				return fmt.Errorf("parse records: %w", err)
			}

			opts := []fv.Option{
				fv.WithMatchTimeout(timeout),
				fv.WithMaxConcurrent(maxConc),
				fv.WithFallback(!noFallback),
			}
			v := engine.New(opts...)

			validate := func(ctx context.Context, record any) *fv.Result {
				return v.ValidateAll(ctx, sch, record)
			}

			anyRecords := make([]any, len(records))
			for i, r := range records {
				anyRecords[i] = r
			}

			bv := worker.NewBatchValidator(validate, workers)
			batch := bv.ValidateBatch(cmd.Context(), anyRecords)

			if outputJSON {
				return printJSON(cmd, batch)
			}
			return printText(cmd, batch, v)
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "schema.yaml", "schema file")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "JSON output")
	cmd.Flags().DurationVar(&timeout, "timeout", 200*time.Millisecond, "primary matcher budget")
	cmd.Flags().IntVar(&maxConc, "max-concurrent", 4, "admission pool size")
	cmd.Flags().BoolVar(&noFallback, "no-fallback", false, "treat degraded matches as hard errors")
	cmd.Flags().IntVar(&workers, "workers", 0, "batch workers (0 = NumCPU)")

	return cmd
}

func printJSON(cmd *cobra.Command, batch *worker.BatchResult) error {
	out := make([]recordOutput, 0, len(batch.Results))
	for _, r := range batch.Results {
		idx, _ := strconv.Atoi(r.ID)
		ro := recordOutput{Record: idx, Valid: true}
		if r.Result != nil {
			ro.Valid = r.Result.Valid
			ro.Messages = r.Result.Messages()
		}
		out = append(out, ro)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printText(cmd *cobra.Command, batch *worker.BatchResult, v *engine.Validator) error {
	w := cmd.OutOrStdout()
	for _, r := range batch.Results {
		if r.Result == nil {
			continue
		}
		if r.Result.Valid {
			fmt.Fprintf(w, "record %s: ok\n", r.ID)
			continue
		}
		fmt.Fprintf(w, "record %s: invalid\n", r.ID)
		for _, msg := range r.Result.Messages() {
			fmt.Fprintf(w, "  %s\n", msg)
		}
	}

	snap := v.Metrics().Snapshot()
	fmt.Fprintf(w, "\n%d records, %d invalid, %d field errors\n",
		batch.TotalJobs, batch.InvalidJobs, batch.ErrorCount())
	fmt.Fprintf(w, "fallbacks: %d (guardrail %d, no-permit %d, timeout %d, bad-pattern %d)\n",
		snap.FallbackRuns, snap.GuardrailSkips, snap.PermitRejects, snap.MatchTimeouts, snap.BadPatterns)

	if batch.HasErrors() {
		os.Exit(1)
	}
	return nil
}
