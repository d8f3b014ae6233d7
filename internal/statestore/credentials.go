package statestore

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

const accessTokenKey = "cursorAuth/accessToken"

// Profile carries optional account metadata the editor caches alongside the
// token. Best-effort, display only.
type Profile struct {
	Email      string
	Membership string
}

// ReadCredential tries each candidate state DB in order and returns the first
// resolvable credential. A missing or unreadable database is logged and
// skipped; a database without the auth key means the user is signed out.
// Returns nil when no candidate yields a credential.
func ReadCredential(paths []string) (*Credential, Profile) {
	for _, path := range paths {
		cred, profile, err := readStateDB(path)
		if err != nil {
			log.Printf("[statestore] %s: %v", path, err)
			continue
		}
		if cred == nil {
			log.Printf("[statestore] %s: no access token stored, not signed in", path)
			continue
		}
		return cred, profile
	}
	return nil, Profile{}
}

// readStateDB opens the editor's state database read-only, extracts the
// access token row, and resolves it. The handle is scoped to this call and
// closed on every exit path.
func readStateDB(path string) (*Credential, Profile, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, Profile{}, fmt.Errorf("opening state DB: %w", err)
	}
	defer db.Close()

	var value string
	err = db.QueryRow(`SELECT value FROM ItemTable WHERE key = ?`, accessTokenKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, Profile{}, nil
	}
	if err != nil {
		return nil, Profile{}, fmt.Errorf("querying access token: %w", err)
	}

	cred := ResolveToken(value)
	if cred.Token == "" {
		return nil, Profile{}, nil
	}

	var profile Profile
	_ = db.QueryRow(`SELECT value FROM ItemTable WHERE key = 'cursorAuth/cachedEmail'`).Scan(&profile.Email)
	_ = db.QueryRow(`SELECT value FROM ItemTable WHERE key = 'cursorAuth/stripeMembershipType'`).Scan(&profile.Membership)

	return &cred, profile, nil
}
