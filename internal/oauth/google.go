package oauth

import (
	"strings"

	"golang.org/x/oauth2"
)

type GoogleProvider struct {
	config *oauth2.Config
}

func NewGoogleProvider(providerURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			Endpoint: oauth2.Endpoint{
				AuthURL: strings.TrimRight(providerURL, "/") + "/auth/v1/authorize",
			},
			Scopes: []string{"email", "profile"},
		},
	}
}

func (p *GoogleProvider) Name() string {
	return "google"
}

func (p *GoogleProvider) ConsentURL(state, redirectTo string) string {
	return p.config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("provider", "google"),
		oauth2.SetAuthURLParam("redirect_to", redirectTo),
	)
}
