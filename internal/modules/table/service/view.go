package service

import (
	"fmt"
	"trade_desk/internal/models"
	columns "trade_desk/internal/modules/columns/service"
)

// FeedSource hands out point-in-time copies of the live feeds.
type FeedSource interface {
	IndexTicks() []models.IndexPriceTick
	OptionValues() []models.OptionValueRecord
}

type Header struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Width int    `json:"width"`
}

type DetailRow struct {
	DetailID string   `json:"detailId"`
	Cells    []string `json:"cells"`
	Tone     Tone     `json:"tone"`
}

type DetailTable struct {
	Title   string      `json:"title"`
	Headers []Header    `json:"headers"`
	Rows    []DetailRow `json:"rows"`
}

type Row struct {
	InstanceID string   `json:"instanceId"`
	Cells      []string `json:"cells"`
	Values     Values   `json:"values"`
	Expanded   bool     `json:"expanded"`
	// nil unless the row is expanded and the instance carries trade details
	Details *DetailTable `json:"details,omitempty"`
}

// Snapshot is everything a renderer needs to draw the table once.
type Snapshot struct {
	Headers []Header `json:"headers"`
	Rows    []Row    `json:"rows"`
}

func (s Snapshot) Empty() bool { return len(s.Rows) == 0 }

// View composes the stores into renderable snapshots.
type View struct {
	Instances *InstanceStore
	Feeds     FeedSource
	Columns   *columns.Columns
	Expand    *ExpandTracker
	Cells     *Cells
}

func NewView(instances *InstanceStore, feeds FeedSource, cols *columns.Columns, expand *ExpandTracker, cells *Cells) *View {
	return &View{
		Instances: instances,
		Feeds:     feeds,
		Columns:   cols,
		Expand:    expand,
		Cells:     cells,
	}
}

func (v *View) ToggleExpanded(id string) bool { return v.Expand.Toggle(id) }

func (v *View) Snapshot() Snapshot {
	instCols := v.Columns.Instance.Visible()
	detailCols := v.Columns.TradeDetail.Visible()
	index := v.Feeds.IndexTicks()
	options := v.Feeds.OptionValues()

	items := v.Instances.Snapshot()
	snap := Snapshot{Headers: headers(instCols), Rows: make([]Row, 0, len(items))}
	for _, inst := range items {
		values := Join(inst, index, options)
		row := Row{
			InstanceID: inst.ID,
			Cells:      make([]string, len(instCols)),
			Values:     values,
			Expanded:   v.Expand.IsExpanded(inst.ID),
		}
		for i, col := range instCols {
			row.Cells[i] = v.Cells.ResolveCell(col.ID, inst, values)
		}
		if row.Expanded && inst.TradeDetails != nil {
			row.Details = v.details(inst.TradeDetails, detailCols)
		}
		snap.Rows = append(snap.Rows, row)
	}
	return snap
}

func (v *View) details(legs []models.TradeDetail, cols []models.ColumnDescriptor) *DetailTable {
	t := &DetailTable{
		Title:   fmt.Sprintf("Trade Details (%d)", len(legs)),
		Headers: headers(cols),
		Rows:    make([]DetailRow, 0, len(legs)),
	}
	for _, d := range legs {
		r := DetailRow{
			DetailID: d.ID,
			Cells:    make([]string, len(cols)),
			Tone:     MTMTone(d),
		}
		for i, col := range cols {
			r.Cells[i] = v.Cells.ResolveDetailCell(col.ID, d)
		}
		t.Rows = append(t.Rows, r)
	}
	return t
}

func headers(cols []models.ColumnDescriptor) []Header {
	out := make([]Header, len(cols))
	for i, c := range cols {
		out[i] = Header{ID: c.ID, Label: c.Label, Width: c.Width}
	}
	return out
}
