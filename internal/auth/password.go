package auth

import (
	"crypto/rand"
	"math/big"
)

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GeneratePassword returns a random password of the given length, used when
// a user resets their password by email.
func GeneratePassword(length int) (string, error) {
	pw := make([]byte, length)
	for i := range pw {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
		if err != nil {
			return "", err
		}
		pw[i] = passwordAlphabet[n.Int64()]
	}
	return string(pw), nil
}
