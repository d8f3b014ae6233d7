package statestore

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Credential is the resolved session identity read from Cursor's local state.
// Held in memory for the duration of one fetch; never written back to disk.
type Credential struct {
	Token   string // bearer token sent in the session cookie
	UserID  string // identifier prefixed to the token in the cookie value
	Subject string // full auth subject, passed as the user query parameter
}

// unwrapStoredValue peels the layers Cursor has been observed to wrap the
// access token in: a JSON object with an accessToken field, a JSON-encoded
// string, or the bare token. First successful parse wins; a malformed value
// falls through to the raw string.
func unwrapStoredValue(raw string) string {
	trimmed := strings.TrimSpace(raw)

	var obj struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal([]byte(trimmed), &obj); err == nil && obj.AccessToken != "" {
		return obj.AccessToken
	}

	var s string
	if err := json.Unmarshal([]byte(trimmed), &s); err == nil && s != "" {
		return s
	}

	return trimmed
}

// ResolveToken turns a stored token value into a full credential. Session
// tokens embed the user id before a "::" separator (sometimes still
// percent-encoded); plain JWTs carry the identity in their sub claim, with
// an optional "|"-delimited user id suffix. An undecodable token is kept
// as-is with an empty identity rather than reported as an error.
func ResolveToken(value string) Credential {
	token := unwrapStoredValue(value)

	for _, sep := range []string{"%3A%3A", "::"} {
		if i := strings.Index(token, sep); i > 0 {
			id := token[:i]
			return Credential{Token: token[i+len(sep):], UserID: id, Subject: id}
		}
	}

	cred := Credential{Token: token}
	sub := jwtSubject(token)
	if sub == "" {
		return cred
	}
	cred.Subject = sub
	cred.UserID = sub
	if i := strings.LastIndex(sub, "|"); i >= 0 && i+1 < len(sub) {
		cred.UserID = sub[i+1:]
	}
	return cred
}

// jwtSubject decodes the middle segment of a three-part signed token and
// returns its sub claim. Returns "" on any decode failure; the signature is
// never verified, the token is only parsed for its identity.
func jwtSubject(token string) string {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return ""
	}

	payload := parts[1]
	switch len(payload) % 4 {
	case 2:
		payload += "=="
	case 3:
		payload += "="
	}

	data, err := base64.URLEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return ""
		}
	}

	var claims struct {
		Sub string `json:"sub"`
	}
	if err := json.Unmarshal(data, &claims); err != nil {
		return ""
	}
	return claims.Sub
}
