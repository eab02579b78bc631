//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Brief is the synthesized creative brief. It is created once by the composer
// and never mutated afterwards, apart from the owning user being attached
// before it is persisted.
type Brief struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Summary   string        `json:"summary"`
	Category  string        `json:"category"`
	Sections  BriefSections `json:"sections"`
	Intake    ProjectIntake `json:"intake"`
	UserID    string        `json:"user_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// BriefSections holds every named section of a brief.
type BriefSections struct {
	ExecutiveSummary ExecutiveSummarySection `json:"executive_summary"`
	ClientInfo       ClientInfoSection       `json:"client_info"`
	ProjectOverview  ProjectOverviewSection  `json:"project_overview"`
	Deliverables     DeliverablesSection     `json:"deliverables"`
	DesignDirection  DesignDirectionSection  `json:"design_direction"`
	Timeline         TimelineSection         `json:"timeline"`
	Budget           BudgetSection           `json:"budget"`
	Success          SuccessSection          `json:"success"`
}

// ExecutiveSummarySection is the opening narrative plus at-a-glance facts.
type ExecutiveSummarySection struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	KeyPoints []string `json:"key_points"`
}

// ClientInfoSection describes who the brief is for.
type ClientInfoSection struct {
	Title           string          `json:"title"`
	ClientName      string          `json:"client_name"`
	ContactInfo     ContactInfo     `json:"contact_info"`
	BusinessProfile BusinessProfile `json:"business_profile"`
}

// ContactInfo holds client contact details.
type ContactInfo struct {
	Email string `json:"email"`
}

// BusinessProfile holds what is known about the client's market.
type BusinessProfile struct {
	TargetAudience string `json:"target_audience"`
}

// ProjectOverviewSection describes scope and objectives.
type ProjectOverviewSection struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Objectives []string `json:"objectives"`
}

// DeliverablesSection lists what will be handed over.
type DeliverablesSection struct {
	Title                 string   `json:"title"`
	PrimaryDeliverables   []string `json:"primary_deliverables"`
	SecondaryDeliverables []string `json:"secondary_deliverables"`
	TechnicalSpecs        []string `json:"technical_specs"`
}

// DesignDirectionSection captures the visual recommendations.
type DesignDirectionSection struct {
	Title           string         `json:"title"`
	ColorPalette    PalettePick    `json:"color_palette"`
	Typography      TypographyPick `json:"typography"`
	StyleGuide      string         `json:"style_guide"`
	VisualReference string         `json:"visual_reference"`
}

// PalettePick is a four-color palette with a usage line per slot.
type PalettePick struct {
	Primary     string   `json:"primary"`
	Secondary   string   `json:"secondary"`
	Accent      string   `json:"accent"`
	Neutral     string   `json:"neutral"`
	Description string   `json:"description"`
	Usage       []string `json:"usage"`
}

// TypographyPick is a primary/secondary typeface pairing.
type TypographyPick struct {
	Primary     string   `json:"primary"`
	Secondary   string   `json:"secondary"`
	Description string   `json:"description"`
	Usage       []string `json:"usage"`
	Licensing   string   `json:"licensing"`
}

// TimelineSection lays out the schedule.
type TimelineSection struct {
	Title         string   `json:"title"`
	TotalDuration string   `json:"total_duration"`
	Phases        []Phase  `json:"phases"`
	Milestones    []string `json:"milestones"`
}

// Phase is one stage of a project timeline.
type Phase struct {
	Phase       string `json:"phase" yaml:"phase"`
	Duration    string `json:"duration" yaml:"duration"`
	Description string `json:"description" yaml:"description"`
}

// BudgetSection holds the total and its proportional breakdown.
type BudgetSection struct {
	Title       string       `json:"title"`
	TotalBudget float64      `json:"total_budget"`
	Breakdown   []BudgetLine `json:"breakdown"`
}

// BudgetLine is one cost bucket. Amount is Total*Percentage/100 rounded half up;
// amounts across a breakdown are not adjusted to sum exactly to the total.
type BudgetLine struct {
	Item        string `json:"item"`
	Percentage  int    `json:"percentage"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

// SuccessSection lists KPIs and the delivery checklist.
type SuccessSection struct {
	Title             string   `json:"title"`
	KPIs              []string `json:"kpis"`
	DeliveryChecklist []string `json:"delivery_checklist"`
}

// GenerateBriefResponse is returned after a committed generation.
type GenerateBriefResponse struct {
	Brief            *Brief `json:"brief"`
	CreditsRemaining int64  `json:"credits_remaining"`
}

// BriefListResponse lists a user's briefs, newest first.
type BriefListResponse struct {
	Briefs []*Brief `json:"briefs"`
	Count  int      `json:"count"`
}
