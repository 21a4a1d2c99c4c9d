package supabase

import "time"

// Identity is the authenticated principal behind a request, as issued by the
// platform auth service.
type Identity struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	SessionID string    `json:"session_id,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Session is the part of the identity the SPA treats as its session.
type Session struct {
	ID        string    `json:"id,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (i *Identity) Session() *Session {
	if i == nil {
		return nil
	}
	return &Session{ID: i.SessionID, ExpiresAt: i.ExpiresAt}
}
