package scripture

import (
	"strings"
	"unicode"
)

// bucket maps a concept to its citations. Order in the buckets table is the
// order in which matches are concatenated.
type bucket struct {
	name      string
	matches   func(words []string) bool
	citations map[string][]string
}

var buckets = []bucket{
	{
		name: "peace",
		matches: keywords("peace", "calm", "anxi", "worr", "stress", "troubl", "restless",
			"paz", "calma", "ansi", "preocup", "estrés", "estres", "angusti"),
		citations: map[string][]string{
			LangEnglish: {"John 14:27", "Philippians 4:6-7", "Isaiah 26:3", "Psalm 4:8"},
			LangSpanish: {"Juan 14:27", "Filipenses 4:6-7", "Isaías 26:3", "Salmos 4:8"},
		},
	},
	{
		name: "strength",
		matches: keywords("strength", "strong", "courage", "endur", "weak", "persever",
			"fuerza", "fortaleza", "fuerte", "valor", "valent", "ánimo", "débil", "debil"),
		citations: map[string][]string{
			LangEnglish: {"Isaiah 40:31", "Philippians 4:13", "Psalm 46:1", "Joshua 1:9"},
			LangSpanish: {"Isaías 40:31", "Filipenses 4:13", "Salmos 46:1", "Josué 1:9"},
		},
	},
	{
		name: "forgiveness",
		matches: keywords("forgiv", "guilt", "sorry", "mercy", "repent", "shame",
			"perdon", "perdón", "culpa", "misericordia", "arrepent", "vergüenza"),
		citations: map[string][]string{
			LangEnglish: {"1 John 1:9", "Ephesians 4:32", "Colossians 3:13", "Psalm 103:12"},
			LangSpanish: {"1 Juan 1:9", "Efesios 4:32", "Colosenses 3:13", "Salmos 103:12"},
		},
	},
	{
		name: "love",
		matches: keywords("love", "loving", "marriage", "spouse", "family", "friend", "relationship",
			"amor", "amar", "matrimonio", "esposo", "esposa", "familia", "amig", "relación"),
		citations: map[string][]string{
			LangEnglish: {"1 Corinthians 13:4-7", "1 John 4:19", "Romans 8:38-39", "John 15:12"},
			LangSpanish: {"1 Corintios 13:4-7", "1 Juan 4:19", "Romanos 8:38-39", "Juan 15:12"},
		},
	},
	{
		name: "fear",
		matches: keywords("fear", "afraid", "scared", "terror", "panic", "danger",
			"miedo", "temor", "asustad", "pánico", "peligro"),
		citations: map[string][]string{
			LangEnglish: {"Isaiah 41:10", "Psalm 23:4", "2 Timothy 1:7", "Psalm 56:3"},
			LangSpanish: {"Isaías 41:10", "Salmos 23:4", "2 Timoteo 1:7", "Salmos 56:3"},
		},
	},
	{
		name: "hope",
		matches: keywords("hope", "despair", "future", "discourag", "depress",
			"esperanza", "desesper", "futuro", "desanim", "depresi"),
		citations: map[string][]string{
			LangEnglish: {"Jeremiah 29:11", "Romans 15:13", "Lamentations 3:22-23", "Hebrews 11:1"},
			LangSpanish: {"Jeremías 29:11", "Romanos 15:13", "Lamentaciones 3:22-23", "Hebreos 11:1"},
		},
	},
	{
		name: "wisdom",
		matches: keywords("wisdom", "wise", "decision", "decide", "guidance", "discern", "direction", "confus",
			"sabiduría", "sabiduria", "sabio", "decisión", "decidir", "discern", "guía", "dirección", "confusi"),
		citations: map[string][]string{
			LangEnglish: {"James 1:5", "Proverbs 3:5-6", "Psalm 119:105"},
			LangSpanish: {"Santiago 1:5", "Proverbios 3:5-6", "Salmos 119:105"},
		},
	},
	{
		name: "healing",
		matches: keywords("heal", "sick", "ill", "surgery", "health", "pain", "cancer", "recover", "hospital",
			"sana", "enferm", "cirugía", "cirugia", "salud", "dolor", "cura", "recupera"),
		citations: map[string][]string{
			LangEnglish: {"Jeremiah 17:14", "Psalm 147:3", "James 5:15", "Exodus 15:26"},
			LangSpanish: {"Jeremías 17:14", "Salmos 147:3", "Santiago 5:15", "Éxodo 15:26"},
		},
	},
	{
		name: "rest",
		matches: keywords("rest", "tired", "weary", "sleep", "exhaust", "burnout", "overwhelm",
			"descans", "cansad", "dormir", "sueño", "agotad", "abrumad"),
		citations: map[string][]string{
			LangEnglish: {"Matthew 11:28", "Psalm 23:1-2", "Psalm 62:1"},
			LangSpanish: {"Mateo 11:28", "Salmos 23:1-2", "Salmos 62:1"},
		},
	},
	{
		name: "purpose",
		matches: keywords("purpose", "calling", "vocation", "meaning", "career", "job", "work", "mission",
			"propósito", "proposito", "llamado", "vocación", "sentido", "carrera", "trabajo", "misión"),
		citations: map[string][]string{
			LangEnglish: {"Jeremiah 29:11", "Romans 8:28", "Ephesians 2:10", "Proverbs 16:3"},
			LangSpanish: {"Jeremías 29:11", "Romanos 8:28", "Efesios 2:10", "Proverbios 16:3"},
		},
	},
	{
		name: "gratitude",
		matches: keywords("gratitude", "grateful", "thank", "bless", "prais", "joy",
			"gratitud", "agradec", "gracias", "bendic", "alaba", "gozo", "alegría"),
		citations: map[string][]string{
			LangEnglish: {"1 Thessalonians 5:18", "Psalm 100:4", "Psalm 107:1", "Colossians 3:17"},
			LangSpanish: {"1 Tesalonicenses 5:18", "Salmos 100:4", "Salmos 107:1", "Colosenses 3:17"},
		},
	},
}

var defaultCitations = map[string][]string{
	LangEnglish: {"Psalm 23:1", "Jeremiah 29:11", "Romans 8:28"},
	LangSpanish: {"Salmos 23:1", "Jeremías 29:11", "Romanos 8:28"},
}

var seasonCitations = map[Season]map[string][]string{
	SeasonAdvent: {
		LangEnglish: {"Isaiah 9:6", "Luke 1:38"},
		LangSpanish: {"Isaías 9:6", "Lucas 1:38"},
	},
	SeasonChristmas: {
		LangEnglish: {"Luke 2:10-11", "John 1:14"},
		LangSpanish: {"Lucas 2:10-11", "Juan 1:14"},
	},
	SeasonLent: {
		LangEnglish: {"Joel 2:13", "Psalm 51:10"},
		LangSpanish: {"Joel 2:13", "Salmos 51:10"},
	},
	SeasonEaster: {
		LangEnglish: {"John 11:25", "1 Peter 1:3"},
		LangSpanish: {"Juan 11:25", "1 Pedro 1:3"},
	},
}

// Themes lists the concept buckets in matching order.
func Themes() []string {
	out := make([]string, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, b.name)
	}
	return out
}

// keywords builds a matcher that reports whether any word of the theme
// starts with one of the given stems. Matching on word starts keeps "rest"
// from firing on "interest".
func keywords(stems ...string) func(words []string) bool {
	return func(words []string) bool {
		for _, w := range words {
			for _, stem := range stems {
				if strings.HasPrefix(w, stem) {
					return true
				}
			}
		}
		return false
	}
}

func splitWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
