package models

// ColumnDescriptor is one configurable table column. Slice order is display order.
type ColumnDescriptor struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Width   int    `json:"width"`
	Visible bool   `json:"visible"`
}

// CloneColumns copies in; nil stays nil and empty stays empty.
func CloneColumns(in []ColumnDescriptor) []ColumnDescriptor {
	if in == nil {
		return nil
	}
	out := make([]ColumnDescriptor, len(in))
	copy(out, in)
	return out
}
