// internal/handlers/session.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/bazurtas/bazas/internal/auth"
)

// EnsureSession resolves the caller's identity from the auth_token cookie,
// minting a fresh ephemeral identity when there is none or the token fails
// verification. The display name is taken from the ?name= query parameter
// on first contact and travels inside the token afterwards, which is what
// lets a dropped client reclaim its seat.
func EnsureSession(w http.ResponseWriter, r *http.Request) (uuid.UUID, string, error) {
	if cookie, err := r.Cookie("auth_token"); err == nil {
		idStr, name, authErr := auth.AuthenticateSessionToken(cookie.Value)
		if authErr == nil {
			if id, parseErr := uuid.Parse(idStr); parseErr == nil {
				return id, name, nil
			}
		}
		// Fall through and mint a new identity.
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "Guest"
	}
	id := uuid.New()
	if name == "Guest" {
		name = fmt.Sprintf("Guest_%s", id.String()[:4])
	}

	token, err := auth.CreateSessionToken(id.String(), name)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("failed to create session token: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		HttpOnly: true,
		Path:     "/",
	})
	return id, name, nil
}
