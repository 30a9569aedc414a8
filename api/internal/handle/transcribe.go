package handle

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"civic-brain/api/internal/lang"
	"civic-brain/api/internal/types"
)

const missingAudioDetail = "Missing audio_url or file upload"

type transcribeInput struct {
	types.TranscribeRequest
	file     multipart.File
	filename string
}

// Transcribe accepts either a multipart form (file, audio_url, language) or a
// JSON body (audio_url, language). audio_url wins when both are present.
func (h *Handle) Transcribe(w http.ResponseWriter, r *http.Request) {
	if !postOnly(w, r) {
		return
	}
	in, err := h.transcribeInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.file != nil {
		defer in.file.Close()
	}
	if in.AudioURL == "" && in.file == nil {
		writeError(w, http.StatusBadRequest, missingAudioDetail)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var tempPath string
	defer func() { h.stager.Delete(tempPath) }()

	if in.AudioURL != "" {
		tempPath, err = h.stager.Download(ctx, in.AudioURL)
	} else {
		var content []byte
		content, err = io.ReadAll(in.file)
		if err == nil {
			h.log.Debug("upload received", "filename", in.filename, "bytes", len(content))
			tempPath, err = h.stager.SaveUpload(content, in.filename)
		}
	}
	if err != nil {
		h.log.Error("transcription staging", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	hint, _ := lang.TranscriptionCode(in.Language)
	t, err := h.listener.Transcribe(ctx, tempPath, hint)
	if err != nil {
		h.log.Error("transcription", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := types.TranscriptionResponse{
		Text:       t.Text,
		Confidence: t.Confidence,
		ModelName:  t.ModelName,
	}
	if t.Language != "" {
		language := t.Language
		resp.Language = &language
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handle) transcribeInput(r *http.Request) (transcribeInput, error) {
	var in transcribeInput
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch {
	case mediaType == "multipart/form-data":
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			return in, fmt.Errorf("bad multipart form: %w", err)
		}
		in.AudioURL = strings.TrimSpace(r.FormValue("audio_url"))
		in.Language = strings.TrimSpace(r.FormValue("language"))

		f, hdr, err := r.FormFile("file")
		switch {
		case err == nil:
			in.file, in.filename = f, hdr.Filename
		case !errors.Is(err, http.ErrMissingFile):
			return in, fmt.Errorf("bad file upload: %w", err)
		}
		if err := h.validate.Struct(in.TranscribeRequest); err != nil {
			if in.file != nil {
				in.file.Close()
			}
			return transcribeInput{}, fmt.Errorf("invalid request: %w", err)
		}
	case mediaType == "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return in, fmt.Errorf("bad form: %w", err)
		}
		in.AudioURL = strings.TrimSpace(r.PostFormValue("audio_url"))
		in.Language = strings.TrimSpace(r.PostFormValue("language"))
		if err := h.validate.Struct(in.TranscribeRequest); err != nil {
			return in, fmt.Errorf("invalid request: %w", err)
		}
	default:
		if err := h.decodeBody(r, &in.TranscribeRequest, true); err != nil {
			return in, err
		}
		in.AudioURL = strings.TrimSpace(in.AudioURL)
	}
	return in, nil
}
