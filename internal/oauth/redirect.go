package oauth

import (
	"fmt"
	"net/url"
)

// MissingTokensMessage is shown verbatim when a redirect carries neither
// token.
const MissingTokensMessage = "Missing authentication tokens"

// Tokens is the pair the identity provider appends to the redirect URL
// after a successful consent flow.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// RedirectError is a provider-reported or structural failure in the
// redirect URL. Terminal for the attempt; callers fall back to the auth
// entry screen instead of retrying.
type RedirectError struct {
	Message string
}

func (e *RedirectError) Error() string {
	return e.Message
}

// ParseRedirect extracts the token pair from an OAuth redirect URL.
// Providers deliver tokens in the query or, for implicit flows, the URL
// fragment; fragment values win when both are present.
func ParseRedirect(raw string) (*Tokens, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redirect url: %w", err)
	}

	params := u.Query()
	if u.Fragment != "" {
		if fragment, err := url.ParseQuery(u.Fragment); err == nil {
			for key, values := range fragment {
				params[key] = values
			}
		}
	}

	return ParseRedirectParams(params)
}

// ParseRedirectParams applies the redirect contract to an already
// extracted parameter set. An explicit provider error wins over missing
// tokens; an absent token pair is terminal for the attempt.
func ParseRedirectParams(params url.Values) (*Tokens, error) {
	if msg := params.Get("error_description"); msg != "" {
		return nil, &RedirectError{Message: msg}
	}
	if msg := params.Get("error"); msg != "" {
		return nil, &RedirectError{Message: msg}
	}

	tokens := &Tokens{
		AccessToken:  params.Get("access_token"),
		RefreshToken: params.Get("refresh_token"),
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		return nil, &RedirectError{Message: MissingTokensMessage}
	}
	return tokens, nil
}
