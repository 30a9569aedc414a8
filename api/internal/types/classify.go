package types

// ClassificationRequest is the /classify body. Labels are the label universe of the reply.
type ClassificationRequest struct {
	Text       string   `json:"text" validate:"max=20000"`
	Labels     []string `json:"labels" validate:"max=100,dive,max=200"`
	MultiLabel bool     `json:"multi_label"`
}

// ClassificationResponse: Scores carries exactly the request labels.
type ClassificationResponse struct {
	TopLabel  string             `json:"top_label"`
	Scores    map[string]float64 `json:"scores"`
	ModelName string             `json:"model_name"`
}
