package request_models

type FeedbackRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email" binding:"omitempty,email"`
	Difficulty     string `json:"difficulty"`
	Improvement    string `json:"improvement"`
	Rating         string `json:"rating" binding:"omitempty,oneof=1 2 3 4 5"`
	Message        string `json:"message"`
	RecipientEmail string `json:"recipientEmail" binding:"omitempty,email"`
}
