package cli

import (
	"errors"
	"fmt"

	"circuit-copilot/internal/circuit/validation"

	"github.com/spf13/cobra"
)

var errInvalidSpec = errors.New("specification is invalid")

func newValidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a circuit specification",
		Long: `Validate checks the schema of a specification file and audits its
references. Dangling references are reported as warnings unless --strict is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, warnings, err := loadSpec(cmd, pipelineFrom(cmd), args[0])

			var verr *validation.Error
			if errors.As(err, &verr) {
				if opts.output == outputJSON {
					_ = renderJSON(cmd.OutOrStdout(), map[string]any{"valid": false, "issues": verr.Issues})
				} else {
					renderIssues(cmd.OutOrStdout(), "Validation failed", verr.Issues)
				}
				return errInvalidSpec
			}
			if err != nil {
				return err
			}

			if opts.output == outputJSON {
				return renderJSON(cmd.OutOrStdout(), map[string]any{
					"valid":    true,
					"spec":     spec,
					"warnings": warnings,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: valid (%d components, %d connections, %d steps)\n",
				spec.CircuitName, len(spec.Components), len(spec.Connections), len(spec.AssemblySteps))
			if len(warnings) > 0 {
				renderIssues(out, "Warnings", warnings)
			}
			return nil
		},
	}
}
