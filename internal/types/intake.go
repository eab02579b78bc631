//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// ProjectIntake is the structured form a client submits to describe a project.
// Only ClientName and ProjectType are required; every other field has a
// canned fallback during synthesis.
type ProjectIntake struct {
	ClientName       string   `json:"client_name" yaml:"client_name" validate:"required"`
	ClientEmail      string   `json:"client_email,omitempty" yaml:"client_email"`
	ProjectType      string   `json:"project_type" yaml:"project_type" validate:"required"`
	Budget           *float64 `json:"budget,omitempty" yaml:"budget"`
	Timeline         string   `json:"timeline,omitempty" yaml:"timeline"`
	Goals            string   `json:"goals,omitempty" yaml:"goals"`
	Requirements     string   `json:"requirements,omitempty" yaml:"requirements"`
	TargetAudience   string   `json:"target_audience,omitempty" yaml:"target_audience"`
	BrandPersonality string   `json:"brand_personality,omitempty" yaml:"brand_personality"`
}

// GenerateBriefRequest is the body of a brief generation request.
type GenerateBriefRequest struct {
	Intake ProjectIntake `json:"intake"`
}

// Validate validates the ProjectIntake using the validator.
func (p *ProjectIntake) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// Clone returns a deep copy so that stored briefs never alias caller memory.
func (p ProjectIntake) Clone() ProjectIntake {
	if p.Budget != nil {
		b := *p.Budget
		p.Budget = &b
	}
	return p
}
