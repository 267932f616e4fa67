package usecase

import (
	"cylinder-sync/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Principal is the verified caller: a device user syncing for one organization.
type Principal struct {
	UserID         uuid.UUID
	OrganizationID uuid.UUID
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (Principal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (Principal, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return Principal{}, err
	}

	return Principal{
		UserID:         claims.UserID,
		OrganizationID: claims.OrganizationID,
	}, nil
}
