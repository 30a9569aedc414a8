package brain

import (
	"context"

	"github.com/samber/lo"

	"civic-brain/api/internal/lang"
	"civic-brain/api/internal/llm"
	"civic-brain/api/internal/types"
)

// Chat answers one turn of the civic persona conversation. The caller owns the
// history; nothing is kept between calls.
func (b *Brain) Chat(ctx context.Context, text string, history []types.ChatTurn, language string) string {
	language = lang.OrDefault(language)

	system, err := b.prompts.ChatSystem(language)
	if err != nil {
		b.log.Error("chat prompt", "error", err)
		return b.prompts.ChatFallback(language)
	}

	reply, err := b.engine.Complete(ctx, llm.Request{Messages: chatMessages(system, history, text)})
	if err != nil {
		b.log.Warn("chat fallback", "language", language, "error", err)
		return b.prompts.ChatFallback(language)
	}
	return reply
}

func chatMessages(system string, history []types.ChatTurn, text string) []llm.Message {
	msgs := make([]llm.Message, 0, len(history)+2)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: system})
	msgs = append(msgs, FilterHistory(history)...)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: text})
	return msgs
}

// FilterHistory keeps user and assistant turns with content, in order.
func FilterHistory(history []types.ChatTurn) []llm.Message {
	return lo.FilterMap(history, func(t types.ChatTurn, _ int) (llm.Message, bool) {
		ok := (t.Role == llm.RoleUser || t.Role == llm.RoleAssistant) && t.Content != ""
		return llm.Message{Role: t.Role, Content: t.Content}, ok
	})
}
