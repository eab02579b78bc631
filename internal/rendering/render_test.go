package rendering

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/briefly/internal/brief"
	"github.com/jonathan/briefly/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func composeBrief(t *testing.T, in types.ProjectIntake) *types.Brief {
	t.Helper()
	c := brief.NewComposer(
		brief.WithIDGenerator(func() (string, error) { return "brief-1", nil }),
		brief.WithClock(func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }),
	)
	b, err := c.Compose(in)
	require.NoError(t, err)
	return b
}

func logoBrief(t *testing.T) *types.Brief {
	budget := 75000.0
	return composeBrief(t, types.ProjectIntake{
		ClientName:       "Acme & Sons",
		ClientEmail:      "hello@acme.test",
		ProjectType:      "Logo Design",
		Budget:           &budget,
		BrandPersonality: "modern",
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{"Markdown", FormatMarkdown, false},
		{"latex", FormatLaTeX, false},
		{" TEX ", FormatLaTeX, false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				var unsupported *UnsupportedFormatError
				require.True(t, errors.As(err, &unsupported))
				assert.Equal(t, tt.in, unsupported.Format)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMetadata(t *testing.T) {
	assert.Equal(t, ".md", FormatMarkdown.Extension())
	assert.Equal(t, ".tex", FormatLaTeX.Extension())
	assert.True(t, strings.HasPrefix(FormatMarkdown.ContentType(), "text/markdown"))
	assert.True(t, strings.HasPrefix(FormatLaTeX.ContentType(), "application/x-latex"))
}

func TestRender_Markdown(t *testing.T) {
	b := logoBrief(t)

	out, err := Render(b, FormatMarkdown)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# Logo Design Brief for Acme & Sons\n"))
	assert.Contains(t, out, "## Executive Summary")
	assert.Contains(t, out, "## Client Information")
	assert.Contains(t, out, "- Email: hello@acme.test")
	assert.Contains(t, out, "## Design Direction")
	assert.Contains(t, out, "`"+b.Sections.DesignDirection.ColorPalette.Primary+"`")
	assert.Contains(t, out, "## Project Timeline")
	assert.Contains(t, out, "Total budget: **₦75,000**")
	assert.Contains(t, out, "## Success Metrics")
	assert.Contains(t, out, "- [ ] ")
	assert.Contains(t, out, "1 May 2024")

	for _, line := range b.Sections.Budget.Breakdown {
		assert.Contains(t, out, EscapeMarkdown(line.Item))
	}
	assert.NotContains(t, out, "<no value>")
}

func TestRender_MarkdownOmitsMissingEmail(t *testing.T) {
	b := composeBrief(t, types.ProjectIntake{ClientName: "Acme", ProjectType: "Website"})

	out, err := Render(b, FormatMarkdown)
	require.NoError(t, err)
	assert.NotContains(t, out, "- Email:")
}

func TestRender_LaTeX(t *testing.T) {
	b := logoBrief(t)

	out, err := Render(b, FormatLaTeX)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `\documentclass[11pt]{article}`))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), `\end{document}`))
	assert.Contains(t, out, `\title{Logo Design Brief for Acme \& Sons}`)
	assert.Contains(t, out, `\definecolor{brandprimary}{HTML}{`+strings.TrimPrefix(b.Sections.DesignDirection.ColorPalette.Primary, "#")+`}`)
	assert.Contains(t, out, `\section*{Project Budget}`)
	assert.Contains(t, out, `Total budget: \textbf{NGN~75,000}`)
	assert.Contains(t, out, `\item[Email] hello@acme.test`)
	assert.NotContains(t, out, "₦")
	assert.NotContains(t, out, "<no value>")
	assert.Equal(t, strings.Count(out, `\begin{itemize}`), strings.Count(out, `\end{itemize}`))
}

func TestRender_Errors(t *testing.T) {
	_, err := Render(nil, FormatMarkdown)
	var tmplErr *TemplateError
	assert.True(t, errors.As(err, &tmplErr))

	_, err = Render(logoBrief(t), Format("pdf"))
	var unsupported *UnsupportedFormatError
	assert.True(t, errors.As(err, &unsupported))
}

func TestParagraphs(t *testing.T) {
	assert.Equal(t, []string{"one", "two"}, paragraphs("one\n\n\n\ntwo\n"))
	assert.Nil(t, paragraphs("  "))
}
