package service

import "trade_desk/internal/models"

// MinColumnWidth is the narrowest width Resize accepts.
const MinColumnWidth = 40

// ToggleVisibility returns a copy of list with the visible flag of id inverted.
// The input is never mutated; an unknown id yields an unchanged copy.
func ToggleVisibility(list []models.ColumnDescriptor, id string) []models.ColumnDescriptor {
	out := models.CloneColumns(list)
	for i := range out {
		if out[i].ID == id {
			out[i].Visible = !out[i].Visible
			return out
		}
	}
	return out
}

// Move returns a copy of list with id relocated to index to (clamped to the list bounds).
func Move(list []models.ColumnDescriptor, id string, to int) []models.ColumnDescriptor {
	from := indexOf(list, id)
	if from < 0 {
		return models.CloneColumns(list)
	}
	if to < 0 {
		to = 0
	}
	if to > len(list)-1 {
		to = len(list) - 1
	}

	moved := list[from]
	rest := make([]models.ColumnDescriptor, 0, len(list))
	rest = append(rest, list[:from]...)
	rest = append(rest, list[from+1:]...)

	out := make([]models.ColumnDescriptor, 0, len(list))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	return out
}

// Resize returns a copy of list with the width of id set, never below MinColumnWidth.
func Resize(list []models.ColumnDescriptor, id string, width int) []models.ColumnDescriptor {
	out := models.CloneColumns(list)
	if width < MinColumnWidth {
		width = MinColumnWidth
	}
	if i := indexOf(out, id); i >= 0 {
		out[i].Width = width
	}
	return out
}

// Visible filters list down to the columns that should be rendered, keeping order.
func Visible(list []models.ColumnDescriptor) []models.ColumnDescriptor {
	out := make([]models.ColumnDescriptor, 0, len(list))
	for _, c := range list {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

// Reset drops every customization and returns a fresh copy of defaults.
func Reset(defaults []models.ColumnDescriptor) []models.ColumnDescriptor {
	return models.CloneColumns(defaults)
}

func indexOf(list []models.ColumnDescriptor, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

// valid rejects decoded lists that can't be rendered: empty, blank ids or duplicate ids.
func valid(list []models.ColumnDescriptor) bool {
	if len(list) == 0 {
		return false
	}
	seen := make(map[string]struct{}, len(list))
	for _, c := range list {
		if c.ID == "" {
			return false
		}
		if _, dup := seen[c.ID]; dup {
			return false
		}
		seen[c.ID] = struct{}{}
	}
	return true
}
