package cli

import (
	"fmt"
	"path/filepath"

	"circuit-copilot/internal/circuit/validation"

	"github.com/spf13/cobra"
)

func newExportCommand() *cobra.Command {
	var (
		format     string
		dir        string
		schematic  bool
		breadboard bool
		pcb        bool
		model3D    bool
		assembly   bool
	)

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Package diagrams into an export file",
		Long: `Export writes an SVG bundle of the selected diagrams. PDF, PNG, STL and
OBJ produce placeholder files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pipelineFrom(cmd)
			spec, _, err := loadSpec(cmd, p, args[0])
			if err != nil {
				return err
			}

			opts, err := validation.ValidateExportOptions(map[string]any{
				"format":             format,
				"include_schematic":  schematic,
				"include_breadboard": breadboard,
				"include_pcb":        pcb,
				"include_3d":         model3D,
				"include_assembly":   assembly,
			})
			if err != nil {
				return err
			}

			artifact, err := p.Export(spec, *opts)
			if err != nil {
				return err
			}
			if artifact.Placeholder {
				fmt.Fprintf(cmd.ErrOrStderr(), "note: %s export is a placeholder\n", opts.Format)
			}
			return writeOutput(cmd, filepath.Join(dir, artifact.Filename), artifact.Data)
		},
	}

	cmd.Flags().StringVar(&format, "format", "svg", "pdf, png, svg, stl or obj")
	cmd.Flags().StringVar(&dir, "dir", ".", "output directory")
	cmd.Flags().BoolVar(&schematic, "schematic", true, "include the schematic")
	cmd.Flags().BoolVar(&breadboard, "breadboard", true, "include the breadboard view")
	cmd.Flags().BoolVar(&pcb, "pcb", true, "include the PCB view")
	cmd.Flags().BoolVar(&model3D, "3d", false, "include the 3D model")
	cmd.Flags().BoolVar(&assembly, "assembly", false, "include assembly steps")
	return cmd
}
