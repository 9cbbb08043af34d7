package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog/log"
	"github.com/smartclin/clinic-api/internal/models"
)

// Resolver turns an inbound request into an authenticated user or absence.
// Absence is a normal outcome: a missing, malformed, or expired token yields
// (nil, nil), never an error. Errors are reserved for store failures.
type Resolver struct {
	store     *SessionStore
	jwtSecret string
}

// NewResolver creates a resolver over the given session store
func NewResolver(store *SessionStore, jwtSecret string) *Resolver {
	return &Resolver{store: store, jwtSecret: jwtSecret}
}

// Resolve extracts the bearer token, verifies it, and looks up the session
func (r *Resolver) Resolve(req *http.Request) (*models.User, error) {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" || token == authHeader {
		return nil, nil
	}

	sessionID, err := parseSessionToken(token, r.jwtSecret)
	if err != nil {
		log.Debug().Err(err).Msg("Rejected session token")
		return nil, nil
	}

	session, err := r.store.Get(req.Context(), sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &models.User{
		ID:    session.UserID,
		Role:  session.Role,
		Email: session.Email,
		Name:  session.Name,
	}, nil
}

func parseSessionToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if sessionID, ok := claims["session_id"].(string); ok && sessionID != "" {
			return sessionID, nil
		}
	}

	return "", errors.New("token missing session_id claim")
}
