package oauth

import (
	"strings"

	"golang.org/x/oauth2"
)

type GitHubProvider struct {
	config *oauth2.Config
}

func NewGitHubProvider(providerURL string) *GitHubProvider {
	return &GitHubProvider{
		config: &oauth2.Config{
			Endpoint: oauth2.Endpoint{
				AuthURL: strings.TrimRight(providerURL, "/") + "/auth/v1/authorize",
			},
			Scopes: []string{"user:email"},
		},
	}
}

func (p *GitHubProvider) Name() string {
	return "github"
}

func (p *GitHubProvider) ConsentURL(state, redirectTo string) string {
	return p.config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("provider", "github"),
		oauth2.SetAuthURLParam("redirect_to", redirectTo),
	)
}
