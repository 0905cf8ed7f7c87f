// Package query searches, tallies and exports an in-memory snapshot of
// registrations. Nothing here touches the network or storage.
package query

import (
	"slices"
	"strings"

	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/models"
)

// Filter keeps registrations whose full name, college, project title,
// email or category contains q, ignoring case. A blank q returns regs
// itself. Input order is preserved.
func Filter(regs []models.Registration, q string) []models.Registration {
	q = strings.TrimSpace(q)
	if q == "" {
		return regs
	}
	needle := strings.ToLower(q)

	out := make([]models.Registration, 0, len(regs))
	for _, r := range regs {
		if matches(r, needle) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.Registration, needle string) bool {
	for _, field := range []string{r.FullName, r.CollegeName, r.ProjectTitle, r.Email, r.Category} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// CountByCategory tallies registrations per category, largest first.
// Equal counts keep the order in which the category first appeared.
func CountByCategory(regs []models.Registration) []models.CategoryCount {
	index := make(map[string]int)
	var counts []models.CategoryCount
	for _, r := range regs {
		i, ok := index[r.Category]
		if !ok {
			i = len(counts)
			index[r.Category] = i
			counts = append(counts, models.CategoryCount{Category: r.Category})
		}
		counts[i].Count++
	}

	slices.SortStableFunc(counts, func(a, b models.CategoryCount) int {
		return b.Count - a.Count
	})
	return counts
}
