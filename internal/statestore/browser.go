package statestore

import (
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/all" // register cookie store finders
)

const sessionCookieName = "WorkosCursorSessionToken"

// BrowserCredential scans installed browsers for a live Cursor session
// cookie. Used only when the editor's state DB has no token, e.g. right
// after signing in on the web but before the editor caches it. Any failure
// reads as signed out.
func BrowserCredential(ctx context.Context) *Credential {
	cookies, err := kooky.ReadCookies(ctx, kooky.Valid,
		kooky.DomainHasSuffix("cursor.com"), kooky.Name(sessionCookieName))
	if err != nil {
		log.Printf("[statestore] browser cookie scan: %v", err)
		return nil
	}

	for _, c := range cookies {
		value := c.Value
		if decoded, err := url.QueryUnescape(value); err == nil {
			value = decoded
		}
		if !strings.Contains(value, "::") {
			continue
		}
		cred := ResolveToken(value)
		if cred.Token != "" && cred.UserID != "" {
			log.Printf("[statestore] using browser session cookie for %s", c.Domain)
			return &cred
		}
	}
	return nil
}
