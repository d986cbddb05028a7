package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"strings"

	"github.com/google/uuid"
)

//
// ===========================================================
//  ENV UTILITIES
// ===========================================================
//

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

//
// ===========================================================
//  CODE GENERATORS
// ===========================================================
//

// GenerateConfirmationCode returns the short human-shown reservation code,
// e.g. "9F3A21BC" (first UUID segment, uppercased).
func GenerateConfirmationCode() string {
	return strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
}

// GenerateEventCode returns a salon event code like "EVT-A1B2C3".
func GenerateEventCode() string {
	seg := strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
	return "EVT-" + seg[:6]
}

// GenerateTableCode returns a restaurant reservation code like "TBL-A1B2C3".
func GenerateTableCode() string {
	seg := strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
	return "TBL-" + seg[:6]
}

// GenerateOTP returns n random digits. Uses crypto/rand + math/big to avoid
// modulo bias.
func GenerateOTP(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	ten := big.NewInt(10)
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + d.Int64()))
	}
	return sb.String(), nil
}
