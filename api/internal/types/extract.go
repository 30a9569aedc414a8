package types

const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// SummaryMaxChars bounds ExtractionResponse.Summary, counted in characters.
const SummaryMaxChars = 300

type ExtractionRequest struct {
	Text   string   `json:"text" validate:"max=20000"`
	Labels []string `json:"labels" validate:"max=100,dive,max=200"`
}

type ExtractionResponse struct {
	Category     string  `json:"category"`
	Confidence   float64 `json:"confidence"`
	Urgency      string  `json:"urgency"`
	LocationHint *string `json:"location_hint"`
	Summary      string  `json:"summary"`
	Language     *string `json:"language"`
	ModelName    string  `json:"model_name"`
}

func ValidUrgency(u string) bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}
