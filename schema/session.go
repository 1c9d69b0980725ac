package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

type (
	// AuthTokenRequestedParams is sent to the host when the SDK needs a token.
	AuthTokenRequestedParams struct {
		Identifier string `json:"identifier"`
	}

	// AuthTokenReceivedParams carries the host's answer. A nil Token denies
	// the request.
	AuthTokenReceivedParams struct {
		Identifier string  `json:"identifier"`
		Token      *string `json:"token"`
	}

	// EnableDebugModeParams sets the SDK and plugin log level (0 - 3).
	EnableDebugModeParams struct {
		Level int `json:"level"`
	}

	// BoolResult is the result of methods acknowledging with true.
	BoolResult bool
)

const MaxDebugLevel = 3

var errEmptyIdentifier = errors.New("identifier was empty")

// UnmarshalJSON accepts {"identifier": ..., "token": ...} or the positional
// form [token, identifier]. The identifier must be a JSON string.
func (p *AuthTokenReceivedParams) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var args []json.RawMessage
		if err := json.Unmarshal(data, &args); err != nil {
			return err
		}
		if len(args) != 2 {
			return fmt.Errorf("expected [token, identifier], got %d arguments", len(args))
		}
		var token *string
		if err := json.Unmarshal(args[0], &token); err != nil {
			return fmt.Errorf("invalid token: %w", err)
		}
		var identifier string
		if err := json.Unmarshal(args[1], &identifier); err != nil {
			return fmt.Errorf("invalid identifier: %w", err)
		}
		p.Token = token
		p.Identifier = identifier
		return p.Validate()
	}
	type params AuthTokenReceivedParams
	var decoded params
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = AuthTokenReceivedParams(decoded)
	return p.Validate()
}

func (p *AuthTokenReceivedParams) Validate() error {
	if p.Identifier == "" {
		return errEmptyIdentifier
	}
	return nil
}

// UnmarshalJSON accepts {"level": n} or [n].
func (p *EnableDebugModeParams) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var args []int
		if err := json.Unmarshal(data, &args); err != nil {
			return err
		}
		if len(args) != 1 {
			return fmt.Errorf("expected [level], got %d arguments", len(args))
		}
		p.Level = args[0]
		return p.Validate()
	}
	type params EnableDebugModeParams
	var decoded params
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = EnableDebugModeParams(decoded)
	return p.Validate()
}

func (p *EnableDebugModeParams) Validate() error {
	if p.Level < 0 || p.Level > MaxDebugLevel {
		return fmt.Errorf("debug level %d out of range [0, %d]", p.Level, MaxDebugLevel)
	}
	return nil
}
