package delegate

import "golang.org/x/oauth2"

// StaticTokenSource always returns token. It serves deployments where the
// host hands over a long lived token up front instead of answering requests.
func StaticTokenSource(token string) oauth2.TokenSource {
	ret := &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
	if expiry, ok := jwtExpiry(token); ok {
		ret.Expiry = expiry
	}
	return oauth2.StaticTokenSource(ret)
}
