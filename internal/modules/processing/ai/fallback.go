package ai

import (
	"hash/fnv"
	"strings"
)

// FallbackPool holds pre-written messages per kind and language.
type FallbackPool struct {
	messages map[Kind]map[string][]string
}

// NewFallbackPool creates a pool. Every kind must have at least one English
// message; Pick falls back to English and then to the prayer pool.
func NewFallbackPool(messages map[Kind]map[string][]string) *FallbackPool {
	return &FallbackPool{messages: messages}
}

// DefaultFallbackPool returns the built-in messages.
func DefaultFallbackPool() *FallbackPool {
	return NewFallbackPool(defaultFallbackMessages)
}

// Pick returns a message for prompt. The choice is a hash of the prompt, so
// retrying the same request yields the same message.
func (p *FallbackPool) Pick(prompt Prompt) string {
	lang := fallbackLanguage(prompt.Language)
	candidates := p.candidates(prompt.Kind, lang)
	if len(candidates) == 0 {
		return ""
	}
	h := fnv.New32a()
	h.Write([]byte(prompt.Kind))
	h.Write([]byte{0})
	h.Write([]byte(lang))
	h.Write([]byte{0})
	h.Write([]byte(prompt.System))
	h.Write([]byte{0})
	h.Write([]byte(prompt.User))
	return candidates[h.Sum32()%uint32(len(candidates))]
}

func (p *FallbackPool) candidates(kind Kind, lang string) []string {
	for _, k := range []Kind{kind, KindPrayer} {
		byLang := p.messages[k]
		if msgs := byLang[lang]; len(msgs) > 0 {
			return msgs
		}
		if msgs := byLang["en"]; len(msgs) > 0 {
			return msgs
		}
	}
	return nil
}

func fallbackLanguage(raw string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(raw)), "es") {
		return "es"
	}
	return "en"
}

var defaultFallbackMessages = map[Kind]map[string][]string{
	KindPrayer: {
		"en": {
			"Loving God, you know the intentions of my heart before I speak them. I place this need in your hands and trust in your care. Grant me peace while I wait, strength for what lies ahead, and the grace to recognize your presence in each moment. Amen.",
			"Lord, I come to you as I am, with my hopes and my worries. Hold close the people I carry in my heart. Where there is fear, give courage; where there is hurt, bring healing; where there is doubt, let your light shine. Amen.",
			"Gracious Father, thank you for never leaving me alone. Quiet my mind, steady my steps, and fill me with your Spirit, so that whatever comes I may meet it with faith, hope and love. Amen.",
		},
		"es": {
			"Dios de amor, tú conoces las intenciones de mi corazón antes de que las diga. Pongo esta necesidad en tus manos y confío en tu cuidado. Dame paz mientras espero, fuerza para lo que viene y la gracia de reconocer tu presencia en cada momento. Amén.",
			"Señor, vengo a ti tal como soy, con mis esperanzas y mis preocupaciones. Sostén a las personas que llevo en el corazón. Donde hay miedo, da valor; donde hay herida, trae sanación; donde hay duda, haz brillar tu luz. Amén.",
			"Padre bueno, gracias por no dejarme nunca solo. Calma mi mente, afirma mis pasos y lléname de tu Espíritu, para que reciba lo que venga con fe, esperanza y amor. Amén.",
		},
	},
	KindGuidance: {
		"en": {
			"Thank you for sharing this with me. Whatever you are carrying right now, you do not carry it alone. Take a slow breath and remember the words of Jesus: \"Come to me, all you who are weary, and I will give you rest.\" Would you like to pray about this together?",
			"I hear you, and what you feel matters. God meets us in the middle of our questions, not only after we have answers. Perhaps today you could offer this to Him in a simple prayer: \"Lord, here I am. Help me.\"",
			"It takes courage to bring this into the light. Be gentle with yourself today. Scripture reminds us that the Lord is close to the brokenhearted. If it helps, consider speaking with someone you trust, and know that you are held in prayer.",
		},
		"es": {
			"Gracias por compartir esto conmigo. Sea lo que sea que llevas ahora, no lo llevas solo. Respira despacio y recuerda las palabras de Jesús: \"Venid a mí todos los que estáis cansados, y yo os haré descansar.\" ¿Te gustaría que oremos juntos por esto?",
			"Te escucho, y lo que sientes importa. Dios nos encuentra en medio de nuestras preguntas, no solo después de tener respuestas. Tal vez hoy puedas ofrecerle esto en una oración sencilla: \"Señor, aquí estoy. Ayúdame.\"",
			"Hace falta valor para poner esto a la luz. Sé amable contigo hoy. La Escritura nos recuerda que el Señor está cerca de los quebrantados de corazón. Si te ayuda, habla con alguien de confianza, y sabe que estás sostenido en oración.",
		},
	},
	KindDaily: {
		"en": {
			"Today is a gift. Whatever the hours bring, begin them by remembering that you are loved. Pause once this afternoon, breathe, and offer God a simple word of thanks for one thing you might otherwise overlook.",
			"God's mercies are new every morning. Let go of yesterday's weight and receive today as a fresh beginning. Look for one small way to show kindness, and you will find Christ there with you.",
			"Be still and know that He is God. In the rush of the day, choose one quiet moment to listen. Peace is not the absence of trouble but the presence of the One who walks with you.",
		},
		"es": {
			"Hoy es un regalo. Traiga lo que traiga el día, comiénzalo recordando que eres amado. Haz una pausa esta tarde, respira y ofrece a Dios una sencilla palabra de gratitud por algo que podrías pasar por alto.",
			"Las misericordias de Dios son nuevas cada mañana. Suelta el peso de ayer y recibe hoy como un nuevo comienzo. Busca una pequeña manera de mostrar bondad, y allí encontrarás a Cristo contigo.",
			"Estad quietos y conoced que Él es Dios. En la prisa del día, elige un momento de silencio para escuchar. La paz no es la ausencia de problemas, sino la presencia de Aquel que camina contigo.",
		},
	},
}
