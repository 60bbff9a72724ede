// Command fieldsafe validates records against a YAML field schema and
// probes the engine with adversarial input.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	fv "github.com/fieldsafe/validator"
)

func main() {
	root := &cobra.Command{
		Use:           "fieldsafe",
		Short:         "Hybrid ReDoS-safe field validation",
		Version:       fv.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newValidateCmd())
	root.AddCommand(newProbeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fieldsafe:", err)
		os.Exit(1)
	}
}
