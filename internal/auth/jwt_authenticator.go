package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JwtAuthenticator validates HMAC-signed tokens issued by the account
// service. The subject claim carries the user id, the role claim which side
// of the marketplace the user acts on.
type JwtAuthenticator struct {
	signingKey []byte
}

func NewJwtAuthenticator(signingKey string) (*JwtAuthenticator, error) {
	if signingKey == "" {
		return nil, errors.New("jwt authentication needs a signing key")
	}
	return &JwtAuthenticator{signingKey: []byte(signingKey)}, nil
}

func (j *JwtAuthenticator) Authenticate(token string) (User, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}), jwt.WithIssuedAt(), jwt.WithExpirationRequired())
	t, err := parser.Parse(token, func(t *jwt.Token) (any, error) {
		return j.signingKey, nil
	})
	if err != nil {
		return User{}, fmt.Errorf("failed to authenticate token: %w", err)
	}

	if !t.Valid {
		return User{}, errors.New("failed to parse or validate token")
	}

	return j.parseToken(t)
}

func (j *JwtAuthenticator) parseToken(userToken *jwt.Token) (User, error) {
	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		return User{}, errors.New("failed to parse jwt token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return User{}, errors.New("token has no subject")
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return User{}, fmt.Errorf("token subject is not a user id: %w", err)
	}

	role, ok := claims["role"].(string)
	if !ok || (role != RoleWorker && role != RoleEmployer) {
		return User{}, errors.New("token has no marketplace role")
	}

	return User{
		ID:    id,
		Role:  role,
		Token: userToken,
	}, nil
}

func (j *JwtAuthenticator) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// liveness probes don't carry credentials
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		accessToken := r.Header.Get("Authorization")
		if !strings.HasPrefix(accessToken, "Bearer ") {
			http.Error(w, "No token provided", http.StatusUnauthorized)
			return
		}

		accessToken = strings.TrimPrefix(accessToken, "Bearer ")
		user, err := j.Authenticate(accessToken)
		if err != nil {
			zap.S().Named("auth").Debugw("authentication failed", "error", err)
			http.Error(w, "authentication failed", http.StatusUnauthorized)
			return
		}

		ctx := NewUserContext(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
