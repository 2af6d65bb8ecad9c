package service

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/ornidex/ornidex/internal/domain"
)

var tracer = otel.Tracer("auth")

// AuthService verifies the bearer tokens issued by the external session
// layer and extracts the logged user they carry. It never creates sessions.
type AuthService struct {
	secret   []byte
	audience string
}

func NewAuthService(secret string, audience string) *AuthService {
	return &AuthService{
		secret:   []byte(secret),
		audience: audience,
	}
}

type userClaims struct {
	jwt.RegisteredClaims

	Role        string                                  `json:"role"`
	Permissions map[domain.EntityKind]domain.Permission `json:"permissions,omitempty"`
}

// AuthToken validates the token and returns the user it identifies.
func (s *AuthService) AuthToken(ctx context.Context, token string) (*domain.LoggedUser, error) {
	_, span := tracer.Start(ctx, "Auth.Service.AuthToken")
	defer span.End()

	var claims userClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithAudience(s.audience))
	if err != nil {
		span.RecordError(errors.Wrap(err, "token validation failed"))
		return nil, err
	}
	if !parsed.Valid {
		err := fmt.Errorf("invalid token")
		span.RecordError(err)
		return nil, err
	}
	if claims.Subject == "" {
		err := fmt.Errorf("token carries no subject")
		span.RecordError(err)
		return nil, err
	}

	return &domain.LoggedUser{
		ID:          claims.Subject,
		Role:        claims.Role,
		Permissions: claims.Permissions,
	}, nil
}
