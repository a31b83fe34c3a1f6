// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package recipe

// ValidSummary reports whether all three summary fields are non-empty.
func ValidSummary(s Summary) bool {
	return s.ID != "" && s.Name != "" && s.ThumbnailURL != ""
}

// ValidDetail reports whether the detail has an id, name, instructions and at
// least one ingredient. The thumbnail is not required.
func ValidDetail(d Detail) bool {
	return d.ID != "" && d.Name != "" && d.Instructions != "" && len(d.Ingredients) > 0
}

// FilterValid returns the summaries that pass ValidSummary, in input order.
func FilterValid(list []Summary) []Summary {
	out := make([]Summary, 0, len(list))
	for _, s := range list {
		if ValidSummary(s) {
			out = append(out, s)
		}
	}
	return out
}
