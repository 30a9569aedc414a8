package telegram

import (
	"strings"

	"civic-brain/api/internal/lang"
)

const (
	greetingText = "Hello! I am your city helpdesk assistant. Tell me about a civic issue in text or send a voice note.\n" +
		"Commands: /language <name>, /reset"
	resetText       = "Conversation cleared."
	unknownCmdText  = "Unknown command. Try /start, /language or /reset."
	voiceFailedText = "Sorry, I could not understand that voice note. Please try again or type your message."
	emptyVoiceText  = "I could not hear anything in that voice note."
	maxMessageRunes = 3900
)

func languageUsage(current string) string {
	var b strings.Builder
	b.WriteString("Current language: ")
	b.WriteString(current)
	b.WriteString("\nUsage: /language <name>\nAvailable: ")
	b.WriteString(strings.Join(lang.Names(), ", "))
	return b.String()
}
