// internal/chat/locale.go
package chat

// localeStrings are the canned bot-side strings per language. Languages
// without a bundle fall back to English; the translation service covers the
// rest at the edge.
type localeStrings struct {
	Welcome       string
	LowConfidence string
	Error         string
	EmailSuccess  string
}

var locales = map[string]localeStrings{
	"en": {
		Welcome:       "Hi! This is Gutsy. How can I help you today?",
		LowConfidence: "I apologize; I am not able to answer this question. Would you like to be connected to someone in our Help Center?",
		Error:         "I'm sorry, I encountered an error. Please try again.",
		EmailSuccess:  "Your request has been submitted. Someone from the Help Center will reach out to you within 48-72 hours. Thank you for using the Crohns-Colitis Project AI assistant. Take care and have a great day.",
	},
	"es": {
		Welcome:       "¡Hola! Soy Gutsy. ¿Cómo puedo ayudarte hoy?",
		LowConfidence: "Me disculpo; no puedo responder esta pregunta. ¿Te gustaría conectarte con alguien de nuestro Centro de Ayuda?",
		Error:         "Lo siento, encontré un error. Por favor, inténtalo de nuevo.",
		EmailSuccess:  "Tu solicitud ha sido enviada. Alguien del Centro de Ayuda se comunicará contigo dentro de 48-72 horas. Gracias por usar el asistente de IA de Crohns-Colitis Project. Cuídate y que tengas un gran día.",
	},
}

func stringsFor(language string) localeStrings {
	if bundle, ok := locales[language]; ok {
		return bundle
	}
	return locales["en"]
}
