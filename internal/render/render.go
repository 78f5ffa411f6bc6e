// Package render draws a table snapshot as markdown for the terminal.
package render

import (
	"fmt"
	"strings"
	columns "trade_desk/internal/modules/columns/service"
	tablesvc "trade_desk/internal/modules/table/service"

	"github.com/charmbracelet/glamour"
)

const EmptyMessage = "No instances to display"

// Markdown renders snap as a markdown table. Expanded rows are followed by their trade detail table.
func Markdown(snap tablesvc.Snapshot) string {
	if snap.Empty() {
		return EmptyMessage + "\n"
	}

	var b strings.Builder
	writeHeader(&b, withID(snap.Headers))
	for _, row := range snap.Rows {
		marker := "▸"
		if row.Expanded {
			marker = "▾"
		}
		writeRow(&b, append([]string{marker + " " + row.InstanceID}, row.Cells...))
	}

	for _, row := range snap.Rows {
		if row.Details == nil {
			continue
		}
		fmt.Fprintf(&b, "\n### %s · %s\n\n", row.InstanceID, row.Details.Title)
		if len(row.Details.Rows) == 0 {
			b.WriteString("_no trade details_\n")
			continue
		}
		writeHeader(&b, row.Details.Headers)
		for _, d := range row.Details.Rows {
			cells := make([]string, len(d.Cells))
			copy(cells, d.Cells)
			if d.Tone == tablesvc.ToneLoss {
				for i, h := range row.Details.Headers {
					if h.ID == columns.ColMTM {
						cells[i] = "*" + cells[i] + "*"
					}
				}
			}
			writeRow(&b, cells)
		}
	}
	return b.String()
}

func withID(h []tablesvc.Header) []tablesvc.Header {
	return append([]tablesvc.Header{{ID: "id", Label: "Instance"}}, h...)
}

func writeHeader(b *strings.Builder, headers []tablesvc.Header) {
	labels := make([]string, len(headers))
	seps := make([]string, len(headers))
	for i, h := range headers {
		labels[i] = escape(h.Label)
		seps[i] = "---"
	}
	b.WriteString("| " + strings.Join(labels, " | ") + " |\n")
	b.WriteString("| " + strings.Join(seps, " | ") + " |\n")
}

func writeRow(b *strings.Builder, cells []string) {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = escape(c)
	}
	b.WriteString("| " + strings.Join(out, " | ") + " |\n")
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Terminal renders markdown for a terminal of the given width. style is a glamour style name
// ("dark", "light", "notty", ...); empty picks one from the terminal background.
func Terminal(md string, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
