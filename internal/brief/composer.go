// Package brief synthesizes a complete creative brief from a project intake.
package brief

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/briefly/internal/budget"
	"github.com/jonathan/briefly/internal/catalog"
	"github.com/jonathan/briefly/internal/heuristics"
	"github.com/jonathan/briefly/internal/narrative"
	"github.com/jonathan/briefly/internal/types"
)

// Section titles in document order.
const (
	TitleExecutiveSummary = "Executive Summary"
	TitleClientInfo       = "Client Information"
	TitleProjectOverview  = "Project Overview"
	TitleDeliverables     = "Deliverables"
	TitleDesignDirection  = "Design Direction"
	TitleTimeline         = "Project Timeline"
	TitleBudget           = "Project Budget"
	TitleSuccess          = "Success Metrics"
)

const defaultTargetAudience = "To be defined"

// IDGenerator produces brief identifiers.
type IDGenerator func() (string, error)

// Clock returns the creation timestamp of a brief.
type Clock func() time.Time

// NewV7ID returns a time-ordered UUIDv7 string. Two briefs created in the same
// millisecond still get distinct ids.
func NewV7ID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Option configures a Composer.
type Option func(*Composer)

// WithIDGenerator overrides the brief id source.
func WithIDGenerator(gen IDGenerator) Option {
	return func(c *Composer) { c.newID = gen }
}

// WithClock overrides the timestamp source.
func WithClock(clock Clock) Option {
	return func(c *Composer) { c.now = clock }
}

// WithCatalog overrides the category catalog.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(c *Composer) { c.catalog = cat }
}

// Composer builds briefs. It holds no mutable state and is safe for
// concurrent use.
type Composer struct {
	catalog *catalog.Catalog
	newID   IDGenerator
	now     Clock
}

// NewComposer creates a Composer backed by the built-in catalog, UUIDv7 ids
// and the UTC wall clock unless overridden.
func NewComposer(opts ...Option) *Composer {
	c := &Composer{
		catalog: catalog.Builtin(),
		newID:   NewV7ID,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate checks the fields Compose requires. It returns an
// *InvalidIntakeError naming the first missing field.
func Validate(in types.ProjectIntake) error {
	err := in.Validate()
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &InvalidIntakeError{
			Field:   toSnake(verrs[0].Field()),
			Message: "is required",
			Cause:   err,
		}
	}
	return &InvalidIntakeError{Message: "validation failed", Cause: err}
}

// Compose validates the intake and synthesizes a brief. A panic inside
// synthesis is returned as a *CompositionError.
func (c *Composer) Compose(in types.ProjectIntake) (b *types.Brief, err error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			b = nil
			err = &CompositionError{Message: fmt.Sprintf("panic during synthesis: %v", r)}
		}
	}()

	id, err := c.newID()
	if err != nil {
		return nil, &CompositionError{Message: "failed to generate brief id", Cause: err}
	}

	return c.build(id, in.Clone()), nil
}

func (c *Composer) build(id string, in types.ProjectIntake) *types.Brief {
	category := catalog.Resolve(in.ProjectType)
	tmpl := c.catalog.Get(category)
	content := narrative.Assemble(in)

	// A zero budget is treated as unset for allocation.
	total := tmpl.SuggestedBudget
	if in.Budget != nil && *in.Budget != 0 {
		total = *in.Budget
	}

	duration := in.Timeline
	if duration == "" {
		duration = tmpl.DefaultTimeline
	}

	audience := in.TargetAudience
	if audience == "" {
		audience = defaultTargetAudience
	}

	return &types.Brief{
		ID:        id,
		Title:     fmt.Sprintf("%s Brief for %s", in.ProjectType, in.ClientName),
		Summary:   content.Summary,
		Category:  string(category),
		Intake:    in,
		CreatedAt: c.now(),
		Sections: types.BriefSections{
			ExecutiveSummary: types.ExecutiveSummarySection{
				Title:     TitleExecutiveSummary,
				Content:   content.ExecutiveSummary,
				KeyPoints: narrative.KeyPoints(in),
			},
			ClientInfo: types.ClientInfoSection{
				Title:           TitleClientInfo,
				ClientName:      in.ClientName,
				ContactInfo:     types.ContactInfo{Email: in.ClientEmail},
				BusinessProfile: types.BusinessProfile{TargetAudience: audience},
			},
			ProjectOverview: types.ProjectOverviewSection{
				Title:      TitleProjectOverview,
				Content:    content.ProjectOverview,
				Objectives: content.Objectives,
			},
			Deliverables: types.DeliverablesSection{
				Title:                 TitleDeliverables,
				PrimaryDeliverables:   tmpl.PrimaryDeliverables,
				SecondaryDeliverables: tmpl.SecondaryDeliverables,
				TechnicalSpecs:        tmpl.TechnicalSpecs,
			},
			DesignDirection: types.DesignDirectionSection{
				Title:           TitleDesignDirection,
				ColorPalette:    heuristics.SelectPalette(in.ProjectType, in.BrandPersonality),
				Typography:      heuristics.SelectTypography(in.ProjectType, in.BrandPersonality),
				StyleGuide:      content.StyleGuide,
				VisualReference: tmpl.VisualReference,
			},
			Timeline: types.TimelineSection{
				Title:         TitleTimeline,
				TotalDuration: duration,
				Phases:        tmpl.Phases,
				Milestones:    tmpl.Milestones,
			},
			Budget: types.BudgetSection{
				Title:       TitleBudget,
				TotalBudget: total,
				Breakdown:   budget.Allocate(total, in.ProjectType),
			},
			Success: types.SuccessSection{
				Title:             TitleSuccess,
				KPIs:              content.SuccessMetrics,
				DeliveryChecklist: tmpl.DeliveryChecklist,
			},
		},
	}
}

// toSnake converts a Go field name like ClientName into client_name.
func toSnake(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
