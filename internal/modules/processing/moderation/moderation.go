// Package moderation screens user input and generated text against static
// keyword lists.
package moderation

import "strings"

// Verdict codes.
const (
	CodeForbiddenTopic = "forbidden_topic"
	CodeWarningPhrase  = "warning_phrase"
)

// defaultForbiddenTopics are blocked outright in both supported languages.
var defaultForbiddenTopics = []string{
	"suicide", "self-harm", "self harm", "kill myself", "end my life",
	"overdose", "witchcraft", "black magic", "curse someone", "hex on",
	"satanic ritual", "violence against", "revenge on", "pornography",
	"suicidio", "quitarme la vida", "autolesión", "brujería", "magia negra",
	"maldecir a", "venganza contra",
}

// defaultWarningPhrases usually signal an attempt to misuse prayer content.
var defaultWarningPhrases = []string{
	"guaranteed miracle", "instead of seeing a doctor", "stop taking my medication",
	"make them suffer", "punish my enemies", "win the lottery", "prosperity guarantee",
	"ignore previous instructions", "ignore your instructions",
	"milagro garantizado", "dejar mi medicación", "castiga a mis enemigos",
	"ganar la lotería", "ignora las instrucciones",
}

// Verdict is the outcome of one check. The zero value is not appropriate;
// use the result of Moderate.
type Verdict struct {
	Appropriate bool   `json:"isAppropriate"`
	Reason      string `json:"reason,omitempty"`
	Code        string `json:"code,omitempty"`
}

// Moderator holds the keyword lists. It has no mutable state and is safe for
// concurrent use.
type Moderator struct {
	forbiddenTopics []string
	warningPhrases  []string
}

// New creates a Moderator with the built-in lists extended by the given
// keywords.
func New(extraTopics, extraPhrases []string) *Moderator {
	return &Moderator{
		forbiddenTopics: mergeKeywords(defaultForbiddenTopics, extraTopics),
		warningPhrases:  mergeKeywords(defaultWarningPhrases, extraPhrases),
	}
}

// Moderate scans text case-insensitively. Forbidden topics are checked
// before warning phrases; the first match decides the verdict.
func (m *Moderator) Moderate(text string) Verdict {
	lower := strings.ToLower(text)
	for _, topic := range m.forbiddenTopics {
		if strings.Contains(lower, topic) {
			return Verdict{Reason: "forbidden topic: " + topic, Code: CodeForbiddenTopic}
		}
	}
	for _, phrase := range m.warningPhrases {
		if strings.Contains(lower, phrase) {
			return Verdict{Reason: "warning phrase: " + phrase, Code: CodeWarningPhrase}
		}
	}
	return Verdict{Appropriate: true}
}

// ModerateAll checks each text in order and returns the first failing
// verdict.
func (m *Moderator) ModerateAll(texts ...string) Verdict {
	for _, text := range texts {
		if v := m.Moderate(text); !v.Appropriate {
			return v
		}
	}
	return Verdict{Appropriate: true}
}

func mergeKeywords(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, kw := range list {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			out = append(out, kw)
		}
	}
	return out
}
