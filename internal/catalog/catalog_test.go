package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_HasEveryProjectType(t *testing.T) {
	c := Builtin()
	for _, pt := range All() {
		t.Run(string(pt), func(t *testing.T) {
			tmpl := c.Get(pt)
			assert.NotEmpty(t, tmpl.PrimaryDeliverables)
			assert.NotEmpty(t, tmpl.SecondaryDeliverables)
			assert.NotEmpty(t, tmpl.TechnicalSpecs)
			assert.Len(t, tmpl.Phases, 4)
			assert.NotEmpty(t, tmpl.Milestones)
			assert.NotEmpty(t, tmpl.DefaultTimeline)
			assert.Greater(t, tmpl.SuggestedBudget, 0.0)
			assert.NotEmpty(t, tmpl.VisualReference)
			assert.NotEmpty(t, tmpl.DeliveryChecklist)
		})
	}
}

func TestLookup_KnownCategories(t *testing.T) {
	tests := []struct {
		projectType string
		timeline    string
		budget      float64
	}{
		{"Logo Design", "2 weeks", 75000},
		{"Website Design", "1 month", 250000},
		{"Brand Identity", "2 months", 500000},
	}

	for _, tt := range tests {
		t.Run(tt.projectType, func(t *testing.T) {
			tmpl := Lookup(tt.projectType)
			assert.Equal(t, tt.timeline, tmpl.DefaultTimeline)
			assert.Equal(t, tt.budget, tmpl.SuggestedBudget)
		})
	}
}

func TestLookup_UnknownFallsBackToDefault(t *testing.T) {
	for _, name := range []string{"Nonexistent Category", "", "logo design", "Poster"} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, Lookup(string(DefaultType)), Lookup(name))
			assert.Equal(t, DefaultType, Resolve(name))
		})
	}
}

func TestLookup_ReturnsCopies(t *testing.T) {
	first := Lookup("Website Design")
	first.PrimaryDeliverables[0] = "mutated"
	first.Phases[0].Phase = "mutated"

	second := Lookup("Website Design")
	assert.Equal(t, "Homepage design mockup", second.PrimaryDeliverables[0])
	assert.Equal(t, "Planning & Research", second.Phases[0].Phase)
}

func TestParse_Errors(t *testing.T) {
	t.Run("invalid YAML", func(t *testing.T) {
		_, err := Parse([]byte("::not yaml"))
		require.Error(t, err)
		var loadErr *LoadError
		assert.ErrorAs(t, err, &loadErr)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := Parse([]byte(`"Poster Design": {default_timeline: "1 week"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown category")
	})

	t.Run("missing category", func(t *testing.T) {
		_, err := Parse([]byte(`"Logo Design": {default_timeline: "1 week"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing category")
	})
}
