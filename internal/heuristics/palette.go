package heuristics

import (
	"fmt"

	"github.com/jonathan/briefly/internal/catalog"
	"github.com/jonathan/briefly/internal/types"
)

type swatch [4]string

var paletteTable = map[catalog.ProjectType]map[Personality]swatch{
	catalog.LogoDesign: {
		Professional: {"#2C3E50", "#34495E", "#7F8C8D", "#95A5A6"},
		Modern:       {"#3498DB", "#9B59B6", "#E74C3C", "#F39C12"},
		Trustworthy:  {"#2980B9", "#27AE60", "#16A085", "#8E44AD"},
		Creative:     {"#E67E22", "#E91E63", "#9C27B0", "#FF5722"},
		Default:      {"#2C3E50", "#3498DB", "#E74C3C", "#F39C12"},
	},
	catalog.WebsiteDesign: {
		Professional: {"#1A202C", "#2D3748", "#4A5568", "#718096"},
		Modern:       {"#667EEA", "#764BA2", "#F093FB", "#F5576C"},
		Trustworthy:  {"#4299E1", "#38B2AC", "#68D391", "#9F7AEA"},
		Creative:     {"#ED8936", "#F56565", "#EC4899", "#8B5CF6"},
		Default:      {"#1A202C", "#4299E1", "#ED8936", "#38B2AC"},
	},
	catalog.BrandIdentity: {
		Professional: {"#1E293B", "#475569", "#64748B", "#94A3B8"},
		Modern:       {"#6366F1", "#8B5CF6", "#EC4899", "#F59E0B"},
		Trustworthy:  {"#0369A1", "#059669", "#7C3AED", "#DC2626"},
		Creative:     {"#EA580C", "#DB2777", "#7C2D12", "#BE123C"},
		Default:      {"#1E293B", "#6366F1", "#EA580C", "#059669"},
	},
}

// SelectPalette picks a four-color palette for the project type and the
// personality text. Unknown project types use the default category table and
// the description echoes the raw personality, or "professional" when blank.
func SelectPalette(projectType, personality string) types.PalettePick {
	table := paletteTable[catalog.Resolve(projectType)]
	colors, ok := table[Classify(personality)]
	if !ok {
		colors = table[Default]
	}

	label := personality
	if label == "" {
		label = "professional"
	}

	return types.PalettePick{
		Primary:   colors[0],
		Secondary: colors[1],
		Accent:    colors[2],
		Neutral:   colors[3],
		Description: fmt.Sprintf("Carefully selected color palette that embodies %s characteristics "+
			"while ensuring accessibility and brand recognition.", label),
		Usage: []string{
			fmt.Sprintf("Primary (%s): Main brand color for logos and key elements", colors[0]),
			fmt.Sprintf("Secondary (%s): Supporting color for backgrounds and secondary elements", colors[1]),
			fmt.Sprintf("Accent (%s): Call-to-action buttons and highlights", colors[2]),
			fmt.Sprintf("Neutral (%s): Text and subtle background elements", colors[3]),
		},
	}
}
