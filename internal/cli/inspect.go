package cli

import (
	"fmt"
	"os"

	"circuit-copilot/internal/circuit/library"
	"circuit-copilot/internal/circuit/svgparse"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// ============================================================
// inspect
// ============================================================

func newInspectCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect SVG",
		Short: "Summarise a rendered SVG diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := svgparse.Parse(f)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			if opts.output == outputJSON {
				return renderJSON(cmd.OutOrStdout(), doc)
			}

			t := newTable(cmd.OutOrStdout(), "property", "value")
			t.SetTitle(doc.Title)
			t.AppendRows([]table.Row{
				{"size", fmt.Sprintf("%gx%g", doc.Width, doc.Height)},
				{"components", len(doc.Components)},
				{"wires", len(doc.Wires)},
				{"pads", doc.Pads},
				{"rails", len(doc.Rails)},
				{"nodes", len(doc.Nodes)},
				{"net links", doc.NetLinks},
			})
			t.Render()
			return nil
		},
	}
}

// ============================================================
// library
// ============================================================

func newLibraryCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "library [TYPE]",
		Short: "List footprints and breadboard parts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				footprint, hasFootprint := library.ResolveFootprint(args[0], "")
				part, hasPart := library.ResolvePhysicalPart(args[0], "")
				if !hasFootprint && !hasPart {
					return fmt.Errorf("unknown component type: %s", args[0])
				}
				if opts.output == outputJSON {
					return renderJSON(out, map[string]any{
						"type":       args[0],
						"dimensions": library.ComponentDimensions(args[0]),
						"footprint":  footprint,
						"part":       part,
					})
				}

				t := newTable(out, "pin", "name", "role", "x (mm)", "y (mm)")
				t.SetTitle(fmt.Sprintf("%s: %s (%s)", args[0], footprint.Name, footprint.Description))
				for _, pin := range footprint.Pins {
					t.AppendRow(table.Row{pin.Number, pin.Name, pin.Role, pin.Position.X, pin.Position.Y})
				}
				t.Render()
				return nil
			}

			if opts.output == outputJSON {
				return renderJSON(out, map[string]any{
					"component_types": library.ComponentTypes(),
					"footprints":      library.Footprints(),
					"parts":           library.PhysicalParts(),
				})
			}

			t := newTable(out, "footprint", "library", "pins", "size (mm)")
			for _, f := range library.Footprints() {
				t.AppendRow(table.Row{f.Name, f.Library, len(f.Pins), fmt.Sprintf("%gx%g", f.Dimensions.Width, f.Dimensions.Height)})
			}
			t.Render()

			t = newTable(out, "part", "name", "category", "pins")
			for _, p := range library.PhysicalParts() {
				t.AppendRow(table.Row{p.ID, p.Name, p.Category, len(p.Pins)})
			}
			t.Render()
			return nil
		},
	}
}
