// Package sechash issues and checks the salted HMAC that binds an edit form to a comment.
//
// The token value is "<content_type>-<object_pk>-<timestamp>". The MAC key is
// SHA1(salt + secret), so tokens minted for another feature under the same secret
// never verify here.
package sechash

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"strconv"
)

// DefaultSalt scopes tokens to the comment edit form
const DefaultSalt = "commentedit.form.EditForm"

// Size is the hex length of a token
const Size = sha1.Size * 2

// ErrNoSecret is returned by New when the secret is empty
var ErrNoSecret = errors.New("sechash: empty secret")

// Provider holds the derived key; it is safe for concurrent use
type Provider struct {
	key []byte
}

// SecurityData is the token bundle rendered into a fresh form
type SecurityData struct {
	ContentType  string `json:"content_type"`
	ObjectPK     string `json:"object_pk"`
	Timestamp    string `json:"timestamp"`
	SecurityHash string `json:"security_hash"`
}

// New derives the MAC key; a blank salt falls back to DefaultSalt
func New(secret, salt string) (*Provider, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if salt == "" {
		salt = DefaultSalt
	}
	k := sha1.Sum([]byte(salt + secret))
	return &Provider{key: k[:]}, nil
}

// Generate returns the hex HMAC-SHA1 of "ct-pk-ts"
func (p *Provider) Generate(contentType, objectPK, timestamp string) string {
	m := hmac.New(sha1.New, p.key)
	m.Write([]byte(contentType + "-" + objectPK + "-" + timestamp))
	return hex.EncodeToString(m.Sum(nil))
}

// Verify compares in constant time
func Verify(candidate, expected string) bool {
	return hmac.Equal([]byte(candidate), []byte(expected))
}

// Token builds security data for a unix timestamp
func (p *Provider) Token(contentType, objectPK string, ts int64) SecurityData {
	t := strconv.FormatInt(ts, 10)
	return SecurityData{
		ContentType:  contentType,
		ObjectPK:     objectPK,
		Timestamp:    t,
		SecurityHash: p.Generate(contentType, objectPK, t),
	}
}
