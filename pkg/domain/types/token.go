package types

import "strings"

// Token is a GitHub bearer token. Values of this type are redacted from logs.
type Token string

// NewToken trims surrounding whitespace from raw token file content
func NewToken(raw string) Token {
	return Token(strings.TrimSpace(raw))
}

// String returns the raw token value for use in request headers
func (t Token) String() string {
	return string(t)
}

// IsEmpty reports whether the token has no content
func (t Token) IsEmpty() bool {
	return t == ""
}
