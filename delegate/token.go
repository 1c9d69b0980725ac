package delegate

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

type tokenSource struct {
	ctx      context.Context
	delegate *Delegate
}

func (s *tokenSource) Token() (*oauth2.Token, error) {
	return s.TokenContext(s.ctx)
}

// TokenContext asks the host for a token, giving up when either ctx or the
// source's own context is done.
func (s *tokenSource) TokenContext(ctx context.Context) (*oauth2.Token, error) {
	if ctx == nil {
		ctx = s.ctx
	} else if s.ctx != ctx {
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		stop := context.AfterFunc(s.ctx, cancel)
		defer stop()
	}
	value, err := s.delegate.Token(ctx)
	if err != nil {
		return nil, err
	}
	return NewToken(value), nil
}

// TokenSource adapts the delegate to oauth2. Every call asks the host; wrap
// it with oauth2.ReuseTokenSource to reuse JWT tokens until their exp claim.
// The returned source also implements TokenContext(ctx) for per call
// deadlines.
func (d *Delegate) TokenSource(ctx context.Context) oauth2.TokenSource {
	if ctx == nil {
		ctx = context.Background()
	}
	return &tokenSource{ctx: ctx, delegate: d}
}

// NewToken wraps a bearer token. The expiry comes from the exp claim when the
// token is a JWT; otherwise the token is marked as already expired so that
// it is never cached.
func NewToken(value string) *oauth2.Token {
	ret := &oauth2.Token{AccessToken: value, TokenType: "Bearer"}
	if expiry, ok := jwtExpiry(value); ok {
		ret.Expiry = expiry
	} else {
		ret.Expiry = time.Now()
	}
	return ret
}

func jwtExpiry(value string) (time.Time, bool) {
	var claims jwt.MapClaims
	if _, _, err := new(jwt.Parser).ParseUnverified(value, &claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
