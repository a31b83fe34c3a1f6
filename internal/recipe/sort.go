// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package recipe

import (
	"slices"
	"strings"
)

// SortByName returns a copy of list sorted by Name in byte order. Equal names
// keep their input order.
func SortByName(list []Summary) []Summary {
	out := slices.Clone(list)
	slices.SortStableFunc(out, func(a, b Summary) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
