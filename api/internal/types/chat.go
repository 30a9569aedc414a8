package types

// ChatTurn is one entry of the caller-held conversation. Only "user" and
// "assistant" turns with content are forwarded to the model.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Text     string     `json:"text" validate:"max=20000"`
	History  []ChatTurn `json:"history" validate:"max=200"`
	Language string     `json:"language" validate:"max=64"`
}

type ChatResponse struct {
	Response    string  `json:"response"`
	AudioBase64 *string `json:"audio_base64"`
	ModelName   string  `json:"model_name"`
}
