package handle

import (
	"net/http"

	"civic-brain/api/internal/types"
)

func (h *Handle) Classify(w http.ResponseWriter, r *http.Request) {
	if !postOnly(w, r) {
		return
	}
	var req types.ClassificationRequest
	if err := h.decodeBody(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	writeJSON(w, http.StatusOK, h.brain.Classify(ctx, req))
}

func (h *Handle) Extract(w http.ResponseWriter, r *http.Request) {
	if !postOnly(w, r) {
		return
	}
	var req types.ExtractionRequest
	if err := h.decodeBody(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	writeJSON(w, http.StatusOK, h.brain.Extract(ctx, req))
}
