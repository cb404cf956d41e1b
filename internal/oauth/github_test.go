package oauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGitHubProvider_Name(t *testing.T) {
	provider := NewGitHubProvider("https://project.example.co")
	assert.Equal(t, "github", provider.Name())
}

func TestGitHubProvider_ConsentURL(t *testing.T) {
	provider := NewGitHubProvider("https://project.example.co")

	url := provider.ConsentURL("test-state", "http://localhost:4778/auth/callback")

	assert.Contains(t, url, "https://project.example.co/auth/v1/authorize")
	assert.Contains(t, url, "provider=github")
	assert.Contains(t, url, "state=test-state")
	assert.Contains(t, url, "scope=user%3Aemail")
}
