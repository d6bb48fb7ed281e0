package sessionstore

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// generateToken creates a cryptographically secure session id
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
