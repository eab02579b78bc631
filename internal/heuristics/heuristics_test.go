package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  Personality
	}{
		{"", Default},
		{"professional", Professional},
		{"Modern", Modern},
		{"TRUSTWORTHY", Trustworthy},
		{"default", Default},
		{"Corporate and serious", Professional},
		{"contemporary vibe", Modern},
		{"reliable partner", Trustworthy},
		{"we trust people", Trustworthy},
		{"artistic", Creative},
		{"playful", Default},
		{"modern but professional", Professional},
		{"creative and modern", Modern},
		{"reliable creative", Trustworthy},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.input))
		})
	}
}

func TestSelectPalette(t *testing.T) {
	t.Run("logo design modern", func(t *testing.T) {
		p := SelectPalette("Logo Design", "modern")
		assert.Equal(t, "#3498DB", p.Primary)
		assert.Equal(t, "#9B59B6", p.Secondary)
		assert.Equal(t, "#E74C3C", p.Accent)
		assert.Equal(t, "#F39C12", p.Neutral)
		assert.Equal(t, "Carefully selected color palette that embodies modern characteristics "+
			"while ensuring accessibility and brand recognition.", p.Description)
		require.Len(t, p.Usage, 4)
		assert.Equal(t, "Primary (#3498DB): Main brand color for logos and key elements", p.Usage[0])
		assert.Equal(t, "Neutral (#F39C12): Text and subtle background elements", p.Usage[3])
	})

	t.Run("blank personality uses default bucket and professional label", func(t *testing.T) {
		p := SelectPalette("Website Design", "")
		assert.Equal(t, "#1A202C", p.Primary)
		assert.Equal(t, "#38B2AC", p.Neutral)
		assert.Contains(t, p.Description, "embodies professional characteristics")
	})

	t.Run("description echoes raw text", func(t *testing.T) {
		p := SelectPalette("Brand Identity", "Reliable & Warm")
		assert.Equal(t, "#0369A1", p.Primary)
		assert.Contains(t, p.Description, "embodies Reliable & Warm characteristics")
	})

	t.Run("unknown project type uses default category", func(t *testing.T) {
		assert.Equal(t, SelectPalette("Logo Design", "creative"), SelectPalette("Mural", "creative"))
	})
}

func TestSelectTypography(t *testing.T) {
	t.Run("website creative", func(t *testing.T) {
		ty := SelectTypography("Website Design", "creative")
		assert.Equal(t, "Nunito", ty.Primary)
		assert.Equal(t, "Merriweather", ty.Secondary)
		require.Len(t, ty.Usage, 4)
		assert.Equal(t, "Primary Font (Nunito): Headlines, logos, and main brand typography", ty.Usage[0])
		assert.Equal(t, "Secondary Font (Merriweather): Body text, captions, and supporting content", ty.Usage[1])
		assert.Equal(t, licensingNote, ty.Licensing)
	})

	t.Run("trustworthy falls back to default row", func(t *testing.T) {
		ty := SelectTypography("Brand Identity", "trustworthy")
		assert.Equal(t, "Arial", ty.Primary)
		assert.Equal(t, "Verdana", ty.Secondary)
	})

	t.Run("trust keywords do not shadow creative", func(t *testing.T) {
		for _, text := range []string{"reliable and artistic", "trustworthy, creative"} {
			ty := SelectTypography("Logo Design", text)
			assert.Equal(t, "Playfair Display", ty.Primary, text)
			assert.Equal(t, "Lato", ty.Secondary, text)
		}
	})

	t.Run("trust keywords alone use default row", func(t *testing.T) {
		ty := SelectTypography("Logo Design", "Reliable")
		assert.Equal(t, "Open Sans", ty.Primary)
	})

	t.Run("unknown project type uses default category", func(t *testing.T) {
		assert.Equal(t, SelectTypography("Logo Design", "modern"), SelectTypography("", "modern"))
	})
}

func TestTablesCoverEveryCategory(t *testing.T) {
	for pt := range paletteTable {
		for _, p := range []Personality{Professional, Modern, Trustworthy, Creative, Default} {
			_, ok := paletteTable[pt][p]
			assert.True(t, ok, "palette %s/%s", pt, p)
		}
		_, ok := typographyTable[pt][Default]
		assert.True(t, ok, "typography %s default", pt)
	}
	assert.Len(t, paletteTable, 3)
	assert.Len(t, typographyTable, 3)
}
