package scripture

import "strings"

// Supported languages.
const (
	LangEnglish = "en"
	LangSpanish = "es"
)

// NormalizeLanguage maps a language tag such as "es-MX" to a supported
// language. Anything unsupported resolves to English.
func NormalizeLanguage(raw string) string {
	tag := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	switch tag {
	case LangSpanish, "spanish", "español", "espanol":
		return LangSpanish
	}
	return LangEnglish
}
