package heuristics

import (
	"fmt"

	"github.com/jonathan/briefly/internal/catalog"
	"github.com/jonathan/briefly/internal/types"
)

type pairing struct {
	primary     string
	secondary   string
	description string
}

// Trustworthy has no row.
var typographyTable = map[catalog.ProjectType]map[Personality]pairing{
	catalog.LogoDesign: {
		Professional: {"Montserrat", "Source Sans Pro", "Clean, professional typefaces that convey reliability and sophistication"},
		Modern:       {"Poppins", "Inter", "Contemporary fonts with geometric precision and excellent readability"},
		Creative:     {"Playfair Display", "Lato", "Expressive typefaces that balance creativity with professional appeal"},
		Default:      {"Open Sans", "Roboto", "Versatile, highly readable fonts suitable for all applications"},
	},
	catalog.WebsiteDesign: {
		Professional: {"Source Sans Pro", "Georgia", "Web-optimized fonts that ensure excellent readability across all devices"},
		Modern:       {"Inter", "Space Grotesk", "Modern system fonts designed for digital interfaces and user experiences"},
		Creative:     {"Nunito", "Merriweather", "Friendly, approachable fonts that add personality while maintaining usability"},
		Default:      {"Roboto", "Open Sans", "Google Fonts that provide reliable cross-platform consistency"},
	},
	catalog.BrandIdentity: {
		Professional: {"Helvetica Neue", "Times New Roman", "Classic typefaces that convey established authority and timeless appeal"},
		Modern:       {"Avenir Next", "Proxima Nova", "Contemporary fonts that project innovation and forward-thinking"},
		Creative:     {"Futura", "Caslon", "Distinctive typefaces that create memorable brand experiences"},
		Default:      {"Arial", "Verdana", "Reliable system fonts with universal compatibility"},
	},
}

const licensingNote = "Ensure proper licensing for commercial use across all applications"

// SelectTypography picks a primary/secondary typeface pairing. Keyword
// fallback skips the trust rule; an exact "trustworthy" has no row and gets
// the category's Default row.
func SelectTypography(projectType, personality string) types.TypographyPick {
	table := typographyTable[catalog.Resolve(projectType)]
	pick, ok := table[classify(personality, typographyOrder)]
	if !ok {
		pick = table[Default]
	}

	return types.TypographyPick{
		Primary:     pick.primary,
		Secondary:   pick.secondary,
		Description: pick.description,
		Usage: []string{
			fmt.Sprintf("Primary Font (%s): Headlines, logos, and main brand typography", pick.primary),
			fmt.Sprintf("Secondary Font (%s): Body text, captions, and supporting content", pick.secondary),
			"Font pairing selected for optimal hierarchy and brand consistency",
			"All fonts verified for web and print compatibility",
		},
		Licensing: licensingNote,
	}
}
