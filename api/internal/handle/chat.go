package handle

import (
	"net/http"

	"civic-brain/api/internal/lang"
	"civic-brain/api/internal/types"
)

// Chat answers one persona turn and attaches synthesised audio when available.
func (h *Handle) Chat(w http.ResponseWriter, r *http.Request) {
	if !postOnly(w, r) {
		return
	}
	var req types.ChatRequest
	if err := h.decodeBody(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	language := lang.OrDefault(req.Language)

	ctx, cancel := requestContext(r)
	defer cancel()

	reply := h.brain.Chat(ctx, req.Text, req.History, language)

	var audio *string
	if h.speaker != nil {
		audio = h.speaker.Speak(ctx, reply, language)
	}

	writeJSON(w, http.StatusOK, types.ChatResponse{
		Response:    reply,
		AudioBase64: audio,
		ModelName:   h.brain.ModelName(),
	})
}
