package services

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/sitehub-ops/checklist-api/internal/models"
	"github.com/sitehub-ops/checklist-api/internal/roster"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid identifier or pin")
	ErrIdentityNotFound   = errors.New("identity not found")
)

// AuthService matches entered credentials against the static roster.
type AuthService struct {
	roster *roster.Roster
}

// NewAuthService creates a new AuthService.
func NewAuthService(r *roster.Roster) *AuthService {
	return &AuthService{roster: r}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Identifier string
	PIN        string
}

// Login verifies credentials and returns the matched identity.
//
// The identifier matches a roster id or name case-insensitively; the pin
// is compared after trimming, against either a bcrypt hash or a plain
// stored pin. Failures never reveal which half was wrong.
func (s *AuthService) Login(input LoginInput) (*models.Identity, error) {
	identity, ok := s.roster.FindByIdentifier(input.Identifier)
	if !ok {
		return nil, ErrInvalidCredentials
	}

	pin := strings.TrimSpace(input.PIN)
	if strings.HasPrefix(identity.Credential, "$2") {
		if err := bcrypt.CompareHashAndPassword([]byte(identity.Credential), []byte(pin)); err != nil {
			return nil, ErrInvalidCredentials
		}
	} else if subtle.ConstantTimeCompare([]byte(identity.Credential), []byte(pin)) != 1 {
		return nil, ErrInvalidCredentials
	}

	return &identity, nil
}

// GetIdentity resolves a roster id, used to rebuild the session identity.
func (s *AuthService) GetIdentity(id string) (*models.Identity, error) {
	identity, ok := s.roster.FindByID(id)
	if !ok {
		return nil, ErrIdentityNotFound
	}
	return &identity, nil
}
