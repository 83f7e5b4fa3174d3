package usecase

import (
	"context"
	"crypto/subtle"
	"strings"

	domrepo "StockPulse/internal/domain/repository"
	"StockPulse/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// Authenticator checks username/password pairs against a credential store.
type Authenticator struct {
	store domrepo.CredentialStore
	log   *logger.Logger
}

func NewAuthenticator(store domrepo.CredentialStore, log *logger.Logger) *Authenticator {
	if log == nil {
		log = logger.Nop()
	}
	return &Authenticator{store: store, log: log}
}

// Authenticate reports whether password matches the stored one for username
// and returns the stored display name on success. The error is non-nil only
// when the store cannot be read.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (bool, string, error) {
	if username == "" || password == "" {
		return false, "", nil
	}

	cred, ok, err := a.store.Lookup(ctx, username)
	if err != nil {
		a.log.Error("credential lookup failed", logger.Error(err))
		return false, "", err
	}
	if !ok {
		return false, "", nil
	}
	if !PasswordMatches(cred.Password, password) {
		return false, "", nil
	}
	return true, cred.Name, nil
}

// PasswordMatches compares a supplied password with a stored one. Stored
// bcrypt hashes are verified with bcrypt; anything else must match exactly.
func PasswordMatches(stored, supplied string) bool {
	if isBcryptHash(stored) {
		err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied))
		return err == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

func isBcryptHash(s string) bool {
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
