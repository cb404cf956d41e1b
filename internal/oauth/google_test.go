package oauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoogleProvider_Name(t *testing.T) {
	provider := NewGoogleProvider("https://project.example.co")
	assert.Equal(t, "google", provider.Name())
}

func TestGoogleProvider_ConsentURL(t *testing.T) {
	provider := NewGoogleProvider("https://project.example.co/")

	url := provider.ConsentURL("test-state", "http://localhost:4778/auth/callback")

	assert.Contains(t, url, "https://project.example.co/auth/v1/authorize")
	assert.Contains(t, url, "provider=google")
	assert.Contains(t, url, "state=test-state")
	assert.Contains(t, url, "redirect_to=http%3A%2F%2Flocalhost%3A4778%2Fauth%2Fcallback")
	assert.Contains(t, url, "access_type=offline")
	assert.Contains(t, url, "scope=email+profile")
}
