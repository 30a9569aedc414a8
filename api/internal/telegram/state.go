package telegram

import (
	"sync"

	"civic-brain/api/internal/types"
)

const maxHistoryTurns = 20

type chatState struct {
	language sync.Map // chatID -> string
	history  sync.Map // chatID -> []types.ChatTurn
}

func (s *chatState) setLanguage(chatID int64, name string) { s.language.Store(chatID, name) }

func (s *chatState) getLanguage(chatID int64) string {
	if v, ok := s.language.Load(chatID); ok {
		if name, _ := v.(string); name != "" {
			return name
		}
	}
	return ""
}

func (s *chatState) getHistory(chatID int64) []types.ChatTurn {
	if v, ok := s.history.Load(chatID); ok {
		h, _ := v.([]types.ChatTurn)
		return h
	}
	return nil
}

// appendTurn stores the exchange and keeps only the newest maxHistoryTurns entries.
func (s *chatState) appendTurn(chatID int64, user, assistant string) {
	h := append(s.getHistory(chatID),
		types.ChatTurn{Role: "user", Content: user},
		types.ChatTurn{Role: "assistant", Content: assistant},
	)
	s.history.Store(chatID, trimHistory(h, maxHistoryTurns))
}

func (s *chatState) reset(chatID int64) { s.history.Delete(chatID) }

func trimHistory(h []types.ChatTurn, limit int) []types.ChatTurn {
	if limit <= 0 || len(h) <= limit {
		return h
	}
	out := make([]types.ChatTurn, limit)
	copy(out, h[len(h)-limit:])
	return out
}
