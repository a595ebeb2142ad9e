package response_models

import "time"

type AccountSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResponse struct {
	Token string         `json:"token"`
	User  AccountSummary `json:"user"`
}

type ProfileResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	AccountStatus string    `json:"accountStatus"`
	MemberSince   time.Time `json:"memberSince"`
	LastLogin     time.Time `json:"lastLogin"`
}
