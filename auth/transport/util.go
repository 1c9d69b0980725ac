package transport

import (
	"bytes"
	"io"
	"net/http"
)

// replayable returns a copy of r that can be sent while r keeps a body for a
// later replay.
func replayable(r *http.Request, tok authorization) (*http.Request, error) {
	cloned := r.Clone(r.Context())
	cloned.Header.Set("Authorization", tok.header())
	if r.Body == nil || r.Body == http.NoBody {
		return cloned, nil
	}
	if r.GetBody != nil {
		body, err := r.GetBody()
		if err != nil {
			return nil, err
		}
		cloned.Body = body
		return cloned, nil
	}
	data, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	if err != nil {
		return nil, err
	}
	r.Body = io.NopCloser(bytes.NewReader(data))
	r.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	cloned.Body = io.NopCloser(bytes.NewReader(data))
	return cloned, nil
}
