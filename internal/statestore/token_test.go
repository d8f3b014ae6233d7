package statestore

import (
	"encoding/base64"
	"testing"
)

func TestUnwrapStoredValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare string", "abc", "abc"},
		{"json string", `"abc"`, "abc"},
		{"json object", `{"accessToken":"abc"}`, "abc"},
		{"json object with extras", `{"accessToken":"abc","refreshToken":"xyz"}`, "abc"},
		{"malformed json returns raw", `{"accessToken":`, `{"accessToken":`},
		{"whitespace trimmed", "  abc\n", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unwrapStoredValue(tt.input); got != tt.want {
				t.Errorf("unwrapStoredValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func makeJWT(t *testing.T, claims string) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(claims))
	return header + "." + payload + ".sig"
}

func TestResolveToken_SeparatorSplit(t *testing.T) {
	cred := ResolveToken("user_123::tok_456")
	if cred.UserID != "user_123" || cred.Subject != "user_123" {
		t.Errorf("Expected id 'user_123', got userID=%q subject=%q", cred.UserID, cred.Subject)
	}
	if cred.Token != "tok_456" {
		t.Errorf("Expected token 'tok_456', got %q", cred.Token)
	}
}

func TestResolveToken_EncodedSeparatorSplit(t *testing.T) {
	cred := ResolveToken("user_123%3A%3Atok_456")
	if cred.UserID != "user_123" {
		t.Errorf("Expected id 'user_123', got %q", cred.UserID)
	}
	if cred.Token != "tok_456" {
		t.Errorf("Expected token 'tok_456', got %q", cred.Token)
	}
}

func TestResolveToken_JWTSubject(t *testing.T) {
	token := makeJWT(t, `{"sub":"auth0|user_789"}`)
	cred := ResolveToken(token)
	if cred.Token != token {
		t.Errorf("Expected token kept verbatim, got %q", cred.Token)
	}
	if cred.Subject != "auth0|user_789" {
		t.Errorf("Expected full sub claim as subject, got %q", cred.Subject)
	}
	if cred.UserID != "user_789" {
		t.Errorf("Expected user id after '|', got %q", cred.UserID)
	}
}

func TestResolveToken_JWTSubjectWithoutPipe(t *testing.T) {
	token := makeJWT(t, `{"sub":"user_789"}`)
	cred := ResolveToken(token)
	if cred.UserID != "user_789" || cred.Subject != "user_789" {
		t.Errorf("Expected sub used for both ids, got userID=%q subject=%q", cred.UserID, cred.Subject)
	}
}

func TestResolveToken_JSONWrappedJWT(t *testing.T) {
	token := makeJWT(t, `{"sub":"auth0|user_1"}`)
	cred := ResolveToken(`{"accessToken":"` + token + `"}`)
	if cred.Token != token {
		t.Errorf("Expected unwrapped token, got %q", cred.Token)
	}
	if cred.UserID != "user_1" {
		t.Errorf("Expected user id 'user_1', got %q", cred.UserID)
	}
}

func TestResolveToken_UndecodableFallsBackToRaw(t *testing.T) {
	cred := ResolveToken("not-a-jwt")
	if cred.Token != "not-a-jwt" {
		t.Errorf("Expected raw token kept, got %q", cred.Token)
	}
	if cred.UserID != "" || cred.Subject != "" {
		t.Errorf("Expected empty identity, got userID=%q subject=%q", cred.UserID, cred.Subject)
	}
}

func TestJWTSubject_BadPayload(t *testing.T) {
	if sub := jwtSubject("a.!!!.c"); sub != "" {
		t.Errorf("Expected empty sub for undecodable payload, got %q", sub)
	}
	if sub := jwtSubject("only.two"); sub != "" {
		t.Errorf("Expected empty sub for two-segment token, got %q", sub)
	}
}
