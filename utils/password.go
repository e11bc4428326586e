package utils

import (
	"github.com/matthewhartstonge/argon2"
)

// HashPassword encodes a shop account password with argon2id defaults. The
// encoded form embeds salt and parameters, so nothing else needs storing.
func HashPassword(password string) (string, error) {
	argon := argon2.DefaultConfig()
	encoded, err := argon.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// VerifyPassword checks a login attempt against the stored encoded hash.
func VerifyPassword(encodedHash, password string) (bool, error) {
	ok, err := argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
	if err != nil {
		return false, err
	}
	return ok, nil
}
