package oauth

import (
	"errors"
	"strings"

	"golang.org/x/oauth2"
)

// ErrMissingToken is returned when no page access token is configured
var ErrMissingToken = errors.New("page access token is required")

// NewPageTokenSource returns a token source for a long-lived Page Access
// Token. The platform issues these tokens out of band, so the source never
// refreshes.
func NewPageTokenSource(accessToken string) (oauth2.TokenSource, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, ErrMissingToken
	}

	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}), nil
}
