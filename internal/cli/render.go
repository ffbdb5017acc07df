package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"circuit-copilot/internal/circuit/export"
	"circuit-copilot/internal/circuit/layout"
	"circuit-copilot/internal/circuit/service"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ============================================================
// render / layout
// ============================================================

func newRenderCommand() *cobra.Command {
	var (
		view string
		out  string
		dir  string
		all  bool
	)

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a specification to SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pipelineFrom(cmd)
			spec, _, err := loadSpec(cmd, p, args[0])
			if err != nil {
				return err
			}

			if all {
				rendered, err := p.RenderAll(cmd.Context(), spec)
				if err != nil {
					return err
				}
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create %s: %w", dir, err)
				}
				for _, v := range layout.Views() {
					r := rendered[v]
					path := filepath.Join(dir, export.Filename(spec.CircuitName, "_"+string(v)+".svg"))
					if err := writeOutput(cmd, path, []byte(r.SVG)); err != nil {
						return err
					}
					reportSkipped(cmd, r)
				}
				return nil
			}

			v, err := service.ParseRenderView(view)
			if err != nil {
				return err
			}
			r, err := p.Render(cmd.Context(), spec, v)
			if err != nil {
				return err
			}
			reportSkipped(cmd, r)
			return writeOutput(cmd, out, []byte(r.SVG))
		},
	}

	cmd.Flags().StringVar(&view, "view", string(layout.ViewSchematic), "breadboard, schematic, pcb or netlist")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (stdout when empty)")
	cmd.Flags().BoolVar(&all, "all", false, "render schematic, breadboard and pcb into --dir")
	cmd.Flags().StringVar(&dir, "dir", ".", "output directory for --all")
	return cmd
}

func reportSkipped(cmd *cobra.Command, r *service.Rendered) {
	if r.Skipped > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d connection(s) could not be drawn\n", r.View, r.Skipped)
	}
}

func newLayoutCommand() *cobra.Command {
	var view string

	cmd := &cobra.Command{
		Use:   "layout FILE",
		Short: "Print the computed layout as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pipelineFrom(cmd)
			spec, _, err := loadSpec(cmd, p, args[0])
			if err != nil {
				return err
			}
			v, err := service.ParseRenderView(view)
			if err != nil {
				return err
			}
			result, err := p.Layout(spec, v)
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&view, "view", string(layout.ViewBreadboard), "breadboard, schematic or pcb")
	return cmd
}

// ============================================================
// netlist / optimize
// ============================================================

func newNetlistCommand(opts *options) *cobra.Command {
	var power bool

	cmd := &cobra.Command{
		Use:   "netlist FILE",
		Short: "Print the netlist of a specification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pipelineFrom(cmd)
			spec, _, err := loadSpec(cmd, p, args[0])
			if err != nil {
				return err
			}
			netlist := p.Netlist(spec, power)
			if opts.output == outputJSON {
				return renderJSON(cmd.OutOrStdout(), netlist)
			}

			t := newTable(cmd.OutOrStdout(), "net", "nodes")
			t.SetTitle(netlist.Metadata.Title)
			for _, net := range netlist.Nets {
				t.AppendRow(table.Row{net.Name, fmt.Sprint(net.Nodes)})
			}
			t.AppendFooter(table.Row{"nets", len(netlist.Nets)})
			t.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&power, "power", false, "add VCC and GND nets")
	return cmd
}

func newOptimizeCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "optimize FILE",
		Short: "Re-place components on the breadboard",
		Long: `Optimize assigns fresh breadboard placements and writes the resulting
specification. The output is YAML when --out ends in .yaml or .yml, JSON otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pipelineFrom(cmd)
			spec, _, err := loadSpec(cmd, p, args[0])
			if err != nil {
				return err
			}
			optimized := p.Optimize(spec)

			var data []byte
			if isYAML(out) {
				data, err = yaml.Marshal(optimized)
			} else {
				data, err = json.MarshalIndent(optimized, "", "  ")
				data = append(data, '\n')
			}
			if err != nil {
				return fmt.Errorf("encode spec: %w", err)
			}
			return writeOutput(cmd, out, data)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (stdout when empty)")
	return cmd
}
