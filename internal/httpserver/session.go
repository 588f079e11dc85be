// internal/httpserver/session.go
//
// Session handling for the game endpoints.
// Responsibilities:
//   - Sign the session id into an HS256 JWT and set it as an HttpOnly cookie.
//   - Read the token from "Authorization: Bearer" or the cookie.
//   - Resolve a request to its session's *game.Engine.

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/robalobadob/wordle-clone/internal/game"
)

// issueSession signs an HS256 token carrying the session id, sets it as the
// session cookie, and returns it for clients that prefer the Authorization
// header.
func (s *Server) issueSession(w http.ResponseWriter, sessionID string) (string, error) {
	now := time.Now()
	exp := now.Add(s.cfg.SessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sessionID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	tok, err := t.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", err
	}

	secure := s.cfg.Production()
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for cross-site front ends when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
	return tok, nil
}

// sessionID extracts and verifies the session token of r.
func (s *Server) sessionID(r *http.Request) (string, error) {
	raw := bearerOrCookie(r, s.cfg.CookieName)
	if raw == "" {
		return "", errors.New("no session token")
	}
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return "", errors.New("invalid session token")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("invalid session token")
	}
	return sid, nil
}

// engineFor resolves the engine of the session carried by r.
func (s *Server) engineFor(r *http.Request) (*game.Engine, error) {
	sid, err := s.sessionID(r)
	if err != nil {
		return nil, err
	}
	return s.store.Get(r.Context(), sid)
}

// bearerOrCookie extracts a bearer token from the Authorization header or the
// session cookie.
func bearerOrCookie(r *http.Request, cookieName string) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}
