// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/briefly/internal/narrative"
	"github.com/jonathan/briefly/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted CLI output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// clip shortens s to at most width code points, marking the cut with "...".
func clip(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintBrief outputs a boxed summary of a brief followed by its budget and
// timeline.
func (p *Printer) PrintBrief(b *types.Brief) {
	if b == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:        %s\n", b.ID))
	sb.WriteString(fmt.Sprintf("Client:    %s\n", b.Sections.ClientInfo.ClientName))
	sb.WriteString(fmt.Sprintf("Category:  %s\n", b.Category))
	sb.WriteString(fmt.Sprintf("Duration:  %s\n", b.Sections.Timeline.TotalDuration))
	sb.WriteString(fmt.Sprintf("Budget:    ₦%s\n", narrative.FormatAmount(b.Sections.Budget.TotalBudget)))
	sb.WriteString("\n")

	palette := b.Sections.DesignDirection.ColorPalette
	sb.WriteString(fmt.Sprintf("Palette:   %s %s %s %s\n", palette.Primary, palette.Secondary, palette.Accent, palette.Neutral))
	typography := b.Sections.DesignDirection.Typography
	sb.WriteString(fmt.Sprintf("Fonts:     %s / %s\n", typography.Primary, typography.Secondary))
	sb.WriteString("\n")

	writeList(&sb, "Key points", b.Sections.ExecutiveSummary.KeyPoints, maxItemsToShow)
	writeList(&sb, "Deliverables", b.Sections.Deliverables.PrimaryDeliverables, maxItemsToShow)

	p.printBox(strings.ToUpper(b.Title), strings.TrimSuffix(sb.String(), "\n"))
	p.PrintBudget(&b.Sections.Budget)
	p.PrintTimeline(&b.Sections.Timeline)
}

// PrintBudget outputs the budget breakdown table.
func (p *Printer) PrintBudget(budget *types.BudgetSection) {
	if budget == nil || len(budget.Breakdown) == 0 {
		return
	}

	var sb strings.Builder
	for _, line := range budget.Breakdown {
		sb.WriteString(fmt.Sprintf("%-28s %3d%%  ₦%s\n", clip(line.Item, 28), line.Percentage, narrative.FormatAmount(float64(line.Amount))))
	}
	sb.WriteString(fmt.Sprintf("%-28s %4s  ₦%s", "Total", "", narrative.FormatAmount(budget.TotalBudget)))

	p.printBox("BUDGET BREAKDOWN", sb.String())
}

// PrintTimeline outputs the project phases.
func (p *Printer) PrintTimeline(timeline *types.TimelineSection) {
	if timeline == nil || len(timeline.Phases) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total: %s\n\n", timeline.TotalDuration))
	for i, phase := range timeline.Phases {
		sb.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, phase.Phase, phase.Duration))
	}

	p.printBox("TIMELINE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLedger outputs recent credit history with the current balance.
func (p *Printer) PrintLedger(userID string, balance int64, entries []types.LedgerEntry) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("User:     %s\n", userID))
	sb.WriteString(fmt.Sprintf("Balance:  %d\n", balance))

	if len(entries) > 0 {
		sb.WriteString("\n")
		count := min(len(entries), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := entries[i]
			sign := "+"
			if e.Kind == types.EntryDebit {
				sign = "-"
			}
			sb.WriteString(fmt.Sprintf("%s  %s%d  %-10s → %d\n",
				e.CreatedAt.Format("2006-01-02 15:04"), sign, e.Amount, e.Reason, e.BalanceAfter))
		}
		if len(entries) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(entries)-maxItemsToShow))
		}
	}

	p.printBox("CREDITS", strings.TrimSuffix(sb.String(), "\n"))
}
