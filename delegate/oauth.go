package delegate

import (
	"context"
	"fmt"

	"github.com/viant/scy/auth/authorizer"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// OAuth2TokenSource loads an OAuth2 client config (optionally encrypted, see
// scy) from configURL and issues client credentials tokens.
func OAuth2TokenSource(ctx context.Context, configURL string, scopes ...string) (oauth2.TokenSource, error) {
	anAuthorizer := authorizer.New()
	oAuthConfig := &authorizer.OAuthConfig{ConfigURL: configURL}
	if err := anAuthorizer.EnsureConfig(ctx, oAuthConfig); err != nil {
		return nil, fmt.Errorf("failed to load oauth2 config %q: %w", configURL, err)
	}
	if oAuthConfig.Config == nil {
		return nil, fmt.Errorf("oauth2 config %q was empty", configURL)
	}
	return ClientCredentialsTokenSource(ctx, oAuthConfig.Config, scopes...), nil
}

// ClientCredentialsTokenSource issues tokens for config's client using the
// client credentials grant. Scopes default to config.Scopes.
func ClientCredentialsTokenSource(ctx context.Context, config *oauth2.Config, scopes ...string) oauth2.TokenSource {
	if len(scopes) == 0 {
		scopes = config.Scopes
	}
	credentials := &clientcredentials.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     config.Endpoint.TokenURL,
		Scopes:       scopes,
		AuthStyle:    config.Endpoint.AuthStyle,
	}
	return credentials.TokenSource(ctx)
}
