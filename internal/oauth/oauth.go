package oauth

import (
	"crypto/rand"
	"encoding/base64"
)

// Provider builds consent URLs for one social login provider, routed
// through the identity provider's authorize endpoint.
type Provider interface {
	ConsentURL(state, redirectTo string) string
	Name() string
}

func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
