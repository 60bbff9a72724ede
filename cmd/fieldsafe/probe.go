package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	fv "github.com/fieldsafe/validator"
	"github.com/fieldsafe/validator/engine"
)

// newProbeCmd builds the probe command: it feeds the engine classic
// catastrophic-backtracking input at growing lengths and reports how
// each evaluation resolved. Useful for verifying a deployment's
// timeout and guardrail settings before an attacker does.
func newProbeCmd() *cobra.Command {
	var (
		pattern string
		kind    string
		lengths []int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Measure engine latency on adversarial input",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := fv.ParseKind(kind)
			if err != nil {
				return err
			}

			v := engine.New(fv.WithMatchTimeout(timeout))
			sch := fv.NewSchema(fv.MapField(fv.Descriptor{
				FieldName:  "Probe",
				RawPattern: pattern,
				Kind:       k,
			}))

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "pattern %q kind %s timeout %v\n", pattern, k, timeout)

			for _, n := range lengths {
				record := map[string]string{"Probe": strings.Repeat("a", n)}

				start := time.Now()
				result := v.ValidateAll(cmd.Context(), sch, record)
				elapsed := time.Since(start)

				fmt.Fprintf(w, "len=%-8d elapsed=%-14v valid=%v fallbacks=%d\n",
					n, elapsed, result.Valid, result.FallbackCount)
				result.Release()
			}

			snap := v.Metrics().Snapshot()
			fmt.Fprintf(w, "fallback rate %.2f (guardrail %d, timeout %d)\n",
				v.Metrics().FallbackRate(), snap.GuardrailSkips, snap.MatchTimeouts)
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "(a+)+b", "pattern to probe")
	cmd.Flags().StringVarP(&kind, "kind", "k", "email", "field kind (generic, email, phone)")
	cmd.Flags().IntSliceVar(&lengths, "lengths", []int{1000, 10000, 100000}, "input lengths")
	cmd.Flags().DurationVar(&timeout, "timeout", 200*time.Millisecond, "primary matcher budget")

	return cmd
}
