package rendering

import (
	"embed"
	"strings"
	"text/template"

	"github.com/jonathan/briefly/internal/narrative"
	"github.com/jonathan/briefly/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Format is a document export format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatLaTeX    Format = "latex"
)

// ParseFormat accepts markdown (or md) and latex (or tex), case-insensitively.
// An empty string selects markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "tex", "latex":
		return FormatLaTeX, nil
	default:
		return "", &UnsupportedFormatError{Format: s}
	}
}

// ContentType is the HTTP media type of the rendered document.
func (f Format) ContentType() string {
	if f == FormatLaTeX {
		return "application/x-latex; charset=utf-8"
	}
	return "text/markdown; charset=utf-8"
}

// Extension is the file extension, including the dot.
func (f Format) Extension() string {
	if f == FormatLaTeX {
		return ".tex"
	}
	return ".md"
}

// Render renders the brief as a complete document in the given format.
func Render(b *types.Brief, f Format) (string, error) {
	if b == nil {
		return "", &TemplateError{Message: "brief is nil"}
	}

	tmpl, err := parseTemplate(f)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, b); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return out.String(), nil
}

// parseTemplate loads the embedded template for f. LaTeX uses << >> as
// action delimiters so braces stay literal.
func parseTemplate(f Format) (*template.Template, error) {
	var (
		file  string
		funcs template.FuncMap
		tmpl  = template.New(string(f))
	)

	switch f {
	case FormatMarkdown:
		file = "templates/brief.md.tmpl"
		funcs = commonFuncs(EscapeMarkdown, "₦")
	case FormatLaTeX:
		file = "templates/brief.tex.tmpl"
		funcs = commonFuncs(EscapeLaTeX, "NGN~")
		tmpl = tmpl.Delims("<<", ">>")
	default:
		return nil, &UnsupportedFormatError{Format: string(f)}
	}

	content, err := templateFS.ReadFile(file)
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to read template file: " + file,
			Cause:   err,
		}
	}

	tmpl, err = tmpl.Funcs(funcs).Parse(string(content))
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

func commonFuncs(escape func(string) string, currency string) template.FuncMap {
	return template.FuncMap{
		"esc":        escape,
		"paragraphs": paragraphs,
		"hex":        func(color string) string { return strings.TrimPrefix(color, "#") },
		"money": func(v any) string {
			switch n := v.(type) {
			case float64:
				return currency + narrative.FormatAmount(n)
			case int64:
				return currency + narrative.FormatAmount(float64(n))
			default:
				return ""
			}
		},
	}
}

// paragraphs splits prose on blank lines and drops empty paragraphs.
func paragraphs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
