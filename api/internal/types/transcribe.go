package types

// TranscribeRequest is the JSON form of /transcribe; the multipart form carries
// the same fields plus the uploaded file.
type TranscribeRequest struct {
	AudioURL string `json:"audio_url" validate:"omitempty,url"`
	Language string `json:"language" validate:"max=64"`
}

type TranscriptionResponse struct {
	Text       string  `json:"text"`
	Language   *string `json:"language"`
	Confidence float64 `json:"confidence"`
	ModelName  string  `json:"model_name"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
