package cli

import (
	"encoding/json"
	"io"

	"circuit-copilot/internal/circuit/validation"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, header ...any) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row(header))
	return t
}

func renderIssues(w io.Writer, title string, issues []validation.Issue) {
	t := newTable(w, "#", "path", "message")
	t.SetTitle(title)
	for i, issue := range issues {
		t.AppendRow(table.Row{i + 1, issue.Path, issue.Message})
	}
	t.Render()
}
