// Package heuristics maps a free-text brand personality onto one of a small
// set of buckets and picks the matching palette and typeface pairing.
package heuristics

import "strings"

// Personality is a closed bucket used to index the style tables.
type Personality string

const (
	Professional Personality = "professional"
	Modern       Personality = "modern"
	Trustworthy  Personality = "trustworthy"
	Creative     Personality = "creative"
	Default      Personality = "default"
)

type keywordRule struct {
	bucket   Personality
	keywords []string
}

// fallbackOrder is checked top to bottom; the first bucket with a matching
// keyword wins.
var fallbackOrder = []keywordRule{
	{Professional, []string{"professional", "corporate"}},
	{Modern, []string{"modern", "contemporary"}},
	{Trustworthy, []string{"trust", "reliable"}},
	{Creative, []string{"creative", "artistic"}},
}

// typographyOrder omits the trust rule; typefaces have no Trustworthy row.
var typographyOrder = []keywordRule{
	{Professional, []string{"professional", "corporate"}},
	{Modern, []string{"modern", "contemporary"}},
	{Creative, []string{"creative", "artistic"}},
}

// Classify lowercases text and returns the bucket it names exactly, or the
// first bucket whose keywords appear as substrings. Empty text is Default.
func Classify(text string) Personality {
	return classify(text, fallbackOrder)
}

func classify(text string, order []keywordRule) Personality {
	key := strings.ToLower(text)
	if key == "" {
		return Default
	}

	switch p := Personality(key); p {
	case Professional, Modern, Trustworthy, Creative, Default:
		return p
	}

	for _, rule := range order {
		for _, kw := range rule.keywords {
			if strings.Contains(key, kw) {
				return rule.bucket
			}
		}
	}
	return Default
}
