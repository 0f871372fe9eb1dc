package verification

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
)

// GenerateCode returns a uniformly random 6-digit code in
// [100000, 999999]. The code must never be logged or stored in
// plaintext; callers persist only Hash(code).
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Hash returns the hex sha256 digest of a code.
func Hash(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// Verify checks a submitted code against a stored digest.
func Verify(code, hash string) bool {
	digest := Hash(code)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(hash)) == 1
}
