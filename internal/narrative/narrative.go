// Package narrative turns a project intake into the prose of a brief by
// interpolating intake fields into fixed skeletons. Every function here is
// pure: identical input always yields identical output.
package narrative

import (
	"strings"

	"github.com/jonathan/briefly/internal/types"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const skeletonFile = "brief.json"

// Truncation lengths in code points for the two summary fragments.
const (
	SummaryGoalsLimit          = 100
	ExecutiveRequirementsLimit = 200
)

// Content is the narrative output for one brief.
type Content struct {
	Summary          string
	ExecutiveSummary string
	ProjectOverview  string
	Objectives       []string
	StyleGuide       string
	SuccessMetrics   []string
}

// Assemble builds every prose field of a brief from the intake.
func Assemble(in types.ProjectIntake) Content {
	return Content{
		Summary:          Summary(in),
		ExecutiveSummary: ExecutiveSummary(in),
		ProjectOverview:  ProjectOverview(in),
		Objectives:       Objectives(in),
		StyleGuide:       StyleGuide(in),
		SuccessMetrics:   MustLines(skeletonFile, "success-metrics"),
	}
}

// Summary is the one-paragraph brief summary. Goals are cut to their first
// SummaryGoalsLimit code points.
func Summary(in types.ProjectIntake) string {
	focus := MustGet(skeletonFile, "summary-default-focus")
	if in.Goals != "" {
		focus = Format(MustGet(skeletonFile, "summary-focus"), map[string]string{
			"Goals": truncate(in.Goals, SummaryGoalsLimit),
		})
	}

	return Format(MustGet(skeletonFile, "summary"), map[string]string{
		"ProjectType": in.ProjectType,
		"ClientName":  in.ClientName,
		"Focus":       focus,
	})
}

// ExecutiveSummary is the three-paragraph opening section. Requirements are
// cut to their first ExecutiveRequirementsLimit code points.
func ExecutiveSummary(in types.ProjectIntake) string {
	note := MustGet(skeletonFile, "executive-default-requirements")
	if in.Requirements != "" {
		note = Format(MustGet(skeletonFile, "executive-requirements"), map[string]string{
			"Requirements": truncate(in.Requirements, ExecutiveRequirementsLimit),
		})
	}

	return Format(MustGet(skeletonFile, "executive-summary"), map[string]string{
		"ProjectType":      in.ProjectType,
		"ProjectTypeLower": strings.ToLower(in.ProjectType),
		"ClientName":       in.ClientName,
		"Goals":            or(in.Goals, "executive-default-goals"),
		"TargetAudience":   or(in.TargetAudience, "executive-default-audience"),
		"BrandPersonality": or(in.BrandPersonality, "executive-default-personality"),
		"RequirementsNote": note,
	})
}

// ProjectOverview leads with the full requirements text, or a generic scope
// statement when there is none.
func ProjectOverview(in types.ProjectIntake) string {
	scope := in.Requirements
	if scope == "" {
		scope = Format(MustGet(skeletonFile, "project-overview-default-scope"), map[string]string{
			"ProjectType": in.ProjectType,
			"ClientName":  in.ClientName,
		})
	}

	return Format(MustGet(skeletonFile, "project-overview"), map[string]string{
		"Scope":          scope,
		"TargetAudience": or(in.TargetAudience, "project-overview-default-audience"),
		"ClientName":     in.ClientName,
	})
}

// Objectives returns the five project objectives in order.
func Objectives(in types.ProjectIntake) []string {
	return formatLines("objectives", map[string]string{
		"ProjectTypeLower": strings.ToLower(in.ProjectType),
		"TargetAudience":   or(in.TargetAudience, "objectives-default-audience"),
	})
}

// StyleGuide describes the overall design approach.
func StyleGuide(in types.ProjectIntake) string {
	return Format(MustGet(skeletonFile, "style-guide"), map[string]string{
		"BrandPersonality": or(in.BrandPersonality, "style-guide-default-personality"),
		"ClientName":       in.ClientName,
	})
}

// KeyPoints lists the at-a-glance facts of the executive summary. The budget
// is printed with thousands grouping, or as TBD when the intake has none.
func KeyPoints(in types.ProjectIntake) []string {
	budget := MustGet(skeletonFile, "key-points-default-budget")
	if in.Budget != nil {
		budget = FormatAmount(*in.Budget)
	}

	return formatLines("key-points", map[string]string{
		"ProjectType":    in.ProjectType,
		"ClientName":     in.ClientName,
		"Timeline":       or(in.Timeline, "key-points-default-timeline"),
		"Budget":         budget,
		"TargetAudience": or(in.TargetAudience, "key-points-default-audience"),
	})
}

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders v with thousands separators and at most three
// fractional digits, e.g. 75000 as "75,000".
func FormatAmount(v float64) string {
	return amountPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// truncate keeps the first limit code points of s.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func or(value, fallbackKey string) string {
	if value != "" {
		return value
	}
	return MustGet(skeletonFile, fallbackKey)
}

// formatLines formats a list skeleton line by line so that substituted values
// containing newlines stay inside their own entry.
func formatLines(key string, data map[string]string) []string {
	lines := MustLines(skeletonFile, key)
	for i, line := range lines {
		lines[i] = Format(line, data)
	}
	return lines
}
