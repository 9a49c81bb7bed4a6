package domain

import "time"

// User models an account known to the external auth provider. Projects
// reference it by ID and are removed with it.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Session is a login issued by the auth provider and stored alongside users.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer usable at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// CredentialSource names where a request identity came from.
type CredentialSource string

const (
	SourceCookie CredentialSource = "cookie"
	SourceBearer CredentialSource = "bearer"
)

// Identity is the resolved caller of a request.
type Identity struct {
	UserID string
	Source CredentialSource
}
