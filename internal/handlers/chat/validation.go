// internal/handlers/chat/validation.go
package chat

const requestSchema = `{
	"type": "object",
	"required": ["message"],
	"properties": {
		"message":         {"type": "string", "minLength": 1, "maxLength": 4000},
		"language":        {"type": "string", "maxLength": 8},
		"sessionId":       {"type": "string", "maxLength": 128},
		"conversationId":  {"type": "string", "maxLength": 128},
		"parentMessageId": {"type": "string", "maxLength": 128}
	},
	"additionalProperties": false
}`
