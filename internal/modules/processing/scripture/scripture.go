// Package scripture resolves free-text themes to scripture references and
// tracks the liturgical calendar.
package scripture

// DefaultCount is the number of references returned when the caller does
// not ask for a specific count.
const DefaultCount = 3

// Reference is one resolved citation. Text is empty when the corpus has no
// body for the citation.
type Reference struct {
	Citation string `json:"citation"`
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Resolve maps theme and season to at most max references in language.
//
// Matching buckets contribute their citations in bucket order, followed by
// the season's citations. Duplicates keep their first position. When no
// bucket matches, a default set takes the place of the bucket citations, so
// the result is never empty. max <= 0 means DefaultCount.
func Resolve(theme string, season Season, language string, max int) []Reference {
	lang := NormalizeLanguage(language)
	if max <= 0 {
		max = DefaultCount
	}

	words := splitWords(theme)
	var citations []string
	for _, b := range buckets {
		if b.matches(words) {
			citations = append(citations, b.citations[lang]...)
		}
	}
	if len(citations) == 0 {
		citations = append(citations, defaultCitations[lang]...)
	}
	citations = append(citations, seasonCitations[season][lang]...)

	texts := corpus[lang]
	seen := make(map[string]struct{}, len(citations))
	out := make([]Reference, 0, max)
	for _, citation := range citations {
		if len(out) == max {
			break
		}
		if _, dup := seen[citation]; dup {
			continue
		}
		seen[citation] = struct{}{}
		out = append(out, Reference{Citation: citation, Text: texts[citation], Language: lang})
	}
	return out
}

// Citations returns only the citation strings of refs.
func Citations(refs []Reference) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.Citation
	}
	return out
}
