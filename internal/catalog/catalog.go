// Package catalog provides the static per-project-type templates that drive a
// brief's deliverables, timeline and budget defaults.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"github.com/jonathan/briefly/internal/types"
	"gopkg.in/yaml.v3"
)

// ProjectType is the closed set of categories the catalog knows about.
type ProjectType string

const (
	LogoDesign    ProjectType = "Logo Design"
	WebsiteDesign ProjectType = "Website Design"
	BrandIdentity ProjectType = "Brand Identity"
)

// DefaultType is the lowest-common-denominator category used for any
// project type the catalog does not recognise.
const DefaultType = LogoDesign

var allTypes = []ProjectType{LogoDesign, WebsiteDesign, BrandIdentity}

// All returns every known project type in catalog order.
func All() []ProjectType {
	return slices.Clone(allTypes)
}

// Resolve maps a free-form project type onto the closed enumeration,
// substituting DefaultType for anything unrecognised.
func Resolve(projectType string) ProjectType {
	switch pt := ProjectType(projectType); pt {
	case LogoDesign, WebsiteDesign, BrandIdentity:
		return pt
	default:
		return DefaultType
	}
}

// Template is the static data bundle for one category.
type Template struct {
	PrimaryDeliverables   []string      `json:"primary_deliverables" yaml:"primary_deliverables"`
	SecondaryDeliverables []string      `json:"secondary_deliverables" yaml:"secondary_deliverables"`
	TechnicalSpecs        []string      `json:"technical_specs" yaml:"technical_specs"`
	Phases                []types.Phase `json:"phases" yaml:"phases"`
	Milestones            []string      `json:"milestones" yaml:"milestones"`
	DefaultTimeline       string        `json:"default_timeline" yaml:"default_timeline"`
	SuggestedBudget       float64       `json:"suggested_budget" yaml:"suggested_budget"`
	VisualReference       string        `json:"visual_reference" yaml:"visual_reference"`
	DeliveryChecklist     []string      `json:"delivery_checklist" yaml:"delivery_checklist"`
}

func (t Template) clone() Template {
	t.PrimaryDeliverables = slices.Clone(t.PrimaryDeliverables)
	t.SecondaryDeliverables = slices.Clone(t.SecondaryDeliverables)
	t.TechnicalSpecs = slices.Clone(t.TechnicalSpecs)
	t.Phases = slices.Clone(t.Phases)
	t.Milestones = slices.Clone(t.Milestones)
	t.DeliveryChecklist = slices.Clone(t.DeliveryChecklist)
	return t
}

// Catalog is an immutable set of templates keyed by project type.
type Catalog struct {
	templates map[ProjectType]Template
}

// Parse builds a catalog from a YAML document. Every ProjectType must have an
// entry and no unknown categories are allowed.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]Template
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Message: "failed to parse catalog YAML", Cause: err}
	}

	templates := make(map[ProjectType]Template, len(raw))
	for name, tmpl := range raw {
		pt := ProjectType(name)
		if !slices.Contains(allTypes, pt) {
			return nil, &LoadError{Message: fmt.Sprintf("unknown category %q", name)}
		}
		templates[pt] = tmpl
	}

	for _, pt := range allTypes {
		if _, ok := templates[pt]; !ok {
			return nil, &LoadError{Message: fmt.Sprintf("missing category %q", pt)}
		}
	}

	return &Catalog{templates: templates}, nil
}

// Lookup returns the template for projectType, or the DefaultType template
// when there is no exact entry. It never fails.
func (c *Catalog) Lookup(projectType string) Template {
	return c.Get(Resolve(projectType))
}

// Get returns a copy of the template for a known project type.
func (c *Catalog) Get(pt ProjectType) Template {
	tmpl, ok := c.templates[pt]
	if !ok {
		tmpl = c.templates[DefaultType]
	}
	return tmpl.clone()
}

//go:embed categories.yaml
var categoriesYAML []byte

var (
	builtinOnce sync.Once
	builtin     *Catalog
)

// Builtin returns the catalog compiled into the binary. It panics if the
// embedded data is malformed, which the package tests rule out.
func Builtin() *Catalog {
	builtinOnce.Do(func() {
		c, err := Parse(categoriesYAML)
		if err != nil {
			panic(fmt.Sprintf("failed to load built-in catalog: %v", err))
		}
		builtin = c
	})
	return builtin
}

// Lookup resolves projectType against the built-in catalog.
func Lookup(projectType string) Template {
	return Builtin().Lookup(projectType)
}
