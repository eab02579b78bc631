package rendering

import "strings"

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
	`₦`, `NGN~`,
)

// EscapeLaTeX escapes the LaTeX special characters \ { } $ & % # ^ _ ~ and
// spells out the naira sign, which the T1 font encoding lacks.
func EscapeLaTeX(text string) string {
	return latexEscaper.Replace(text)
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`#`, `\#`,
	`|`, `\|`,
	`<`, `&lt;`,
	`>`, `&gt;`,
)

// EscapeMarkdown escapes characters that would otherwise start emphasis,
// links, headings, table cells or raw HTML.
func EscapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}
