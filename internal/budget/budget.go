// Package budget splits a project total into the fixed percentage buckets of
// its category.
package budget

import (
	"math"

	"github.com/jonathan/briefly/internal/catalog"
	"github.com/jonathan/briefly/internal/types"
)

type bucket struct {
	item        string
	percentage  int
	description string
}

var splits = map[catalog.ProjectType][]bucket{
	catalog.LogoDesign: {
		{"Design Development", 50, "Concept creation and logo design"},
		{"Revisions & Refinements", 25, "Client feedback and adjustments"},
		{"File Preparation", 15, "Multiple formats and variations"},
		{"Style Guide Creation", 10, "Usage guidelines and documentation"},
	},
	catalog.WebsiteDesign: {
		{"Design & Development", 60, "Visual design and page layouts"},
		{"Responsive Optimization", 20, "Mobile and tablet adaptations"},
		{"Testing & Refinements", 15, "User testing and improvements"},
		{"Documentation & Handoff", 5, "Developer assets and guidelines"},
	},
	catalog.BrandIdentity: {
		{"Strategy & Research", 20, "Brand positioning and market analysis"},
		{"Visual Identity Design", 40, "Logo, colors, typography system"},
		{"Brand Applications", 25, "Stationery, templates, and materials"},
		{"Guidelines & Training", 15, "Brand manual and team training"},
	},
}

// Allocate returns one line per bucket of the project type's split, in table
// order. Each amount is rounded half up on its own, so the amounts may not
// add up to total exactly. Zero and negative totals are passed through.
func Allocate(total float64, projectType string) []types.BudgetLine {
	table := splits[catalog.Resolve(projectType)]

	lines := make([]types.BudgetLine, 0, len(table))
	for _, b := range table {
		lines = append(lines, types.BudgetLine{
			Item:        b.item,
			Percentage:  b.percentage,
			Amount:      roundHalfUp(total * float64(b.percentage) / 100),
			Description: b.description,
		})
	}
	return lines
}

func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}
