package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/cardbridge/delegate"
	"golang.org/x/oauth2"
)

type sequenceSource struct {
	mux    sync.Mutex
	tokens []*oauth2.Token
	err    error
	calls  int
}

func (s *sequenceSource) Token() (*oauth2.Token, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	tok := s.tokens[s.calls%len(s.tokens)]
	s.calls++
	return tok, nil
}

func valid(value string) *oauth2.Token {
	return &oauth2.Token{AccessToken: value, TokenType: "Bearer", Expiry: time.Now().Add(time.Hour)}
}

func TestNew_RequiresTokenSource(t *testing.T) {
	_, err := New()
	assert.ErrorIs(t, err, ErrNoTokenSource)
}

func TestRoundTripper(t *testing.T) {
	var testCases = []struct {
		description  string
		accepted     string
		tokens       []*oauth2.Token
		retry        bool
		expectStatus int
		expectCalls  int
		expectBodies []string
	}{
		{
			description:  "token accepted",
			accepted:     "t1",
			tokens:       []*oauth2.Token{valid("t1")},
			retry:        true,
			expectStatus: http.StatusOK,
			expectCalls:  1,
			expectBodies: []string{"payload"},
		},
		{
			description:  "stale token replayed with fresh one",
			accepted:     "t2",
			tokens:       []*oauth2.Token{valid("t1"), valid("t2")},
			retry:        true,
			expectStatus: http.StatusOK,
			expectCalls:  2,
			expectBodies: []string{"payload", "payload"},
		},
		{
			description:  "no retry",
			accepted:     "t2",
			tokens:       []*oauth2.Token{valid("t1"), valid("t2")},
			retry:        false,
			expectStatus: http.StatusUnauthorized,
			expectCalls:  1,
			expectBodies: []string{"payload"},
		},
	}

	for _, testCase := range testCases {
		var bodies []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, _ := io.ReadAll(r.Body)
			bodies = append(bodies, string(data))
			if r.Header.Get("Authorization") != "Bearer "+testCase.accepted {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte("ok"))
		}))
		source := &sequenceSource{tokens: testCase.tokens}
		rt, err := New(WithTokenSource(source), WithRetryOnUnauthorized(testCase.retry))
		require.NoError(t, err, testCase.description)

		client := &http.Client{Transport: rt}
		resp, err := client.Post(server.URL, "text/plain", strings.NewReader("payload"))
		require.NoError(t, err, testCase.description)
		_ = resp.Body.Close()
		assert.Equal(t, testCase.expectStatus, resp.StatusCode, testCase.description)
		assert.Equal(t, testCase.expectCalls, source.calls, testCase.description)
		assert.Equal(t, testCase.expectBodies, bodies, testCase.description)
		server.Close()
	}
}

func TestRoundTripper_CachesValidToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()
	source := &sequenceSource{tokens: []*oauth2.Token{valid("t1")}}
	rt, err := New(WithTokenSource(source))
	require.NoError(t, err)
	client := &http.Client{Transport: rt}
	for i := 0; i < 3; i++ {
		resp, err := client.Get(server.URL)
		require.NoError(t, err)
		_ = resp.Body.Close()
	}
	assert.Equal(t, 1, source.calls)

	rt.Invalidate()
	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, 2, source.calls)
}

func TestRoundTripper_TokenError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	}))
	defer server.Close()
	denied := errors.New("denied")
	rt, err := New(WithTokenSource(&sequenceSource{err: denied}))
	require.NoError(t, err)
	_, err = (&http.Client{Transport: rt}).Get(server.URL)
	assert.ErrorIs(t, err, denied)
}

// blockingSource never returns a token until released.
type blockingSource struct {
	release chan struct{}
}

func (s *blockingSource) Token() (*oauth2.Token, error) {
	<-s.release
	return valid("late"), nil
}

func TestRoundTripper_RequestDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	}))
	defer server.Close()

	d := delegate.New(nil)
	defer d.Close()
	d.Start(func(ctx context.Context, identifier string) error { return nil })
	rt, err := New(WithTokenSource(d.TokenSource(context.Background())))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	started := time.Now()
	_, err = rt.RoundTrip(req)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(started), 2*time.Second)
	assert.Eventually(t, func() bool { return d.Pending() == 0 }, time.Second, 5*time.Millisecond)
}

func TestRoundTripper_PlainSourceHonorsDeadline(t *testing.T) {
	source := &blockingSource{release: make(chan struct{})}
	defer close(source.release)
	rt, err := New(WithTokenSource(source))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = rt.Token(ctx, false)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRoundTripper_SlowLookupDoesNotStallCache(t *testing.T) {
	source := &blockingSource{release: make(chan struct{})}
	rt, err := New(WithTokenSource(source))
	require.NoError(t, err)
	rt.cached = valid("t1")

	forced := make(chan error, 1)
	go func() {
		_, err := rt.Token(context.Background(), true)
		forced <- err
	}()

	cachedDone := make(chan *oauth2.Token, 1)
	go func() {
		tok, _ := rt.Token(context.Background(), false)
		cachedDone <- tok
	}()
	select {
	case tok := <-cachedDone:
		require.NotNil(t, tok)
		assert.Equal(t, "t1", tok.AccessToken)
	case <-time.After(2 * time.Second):
		t.Fatal("cached lookup stalled behind a pending refresh")
	}

	close(source.release)
	require.NoError(t, <-forced)
	tok, err := rt.Token(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "late", tok.AccessToken)
}
