package user

type UserResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	OAuthProvider string `json:"oauth_provider,omitempty"`
	CreatedAt     string `json:"created_at"`
}
