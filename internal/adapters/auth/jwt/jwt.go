// Package jwt verifies HS256 bearer tokens and maps their claims to a principal
package jwt

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"commentedit/internal/modkit/httpkit"
	perr "commentedit/internal/platform/errors"
	pnet "commentedit/internal/platform/net"
)

// Claims carries the comment editor's profile and permission codenames
type Claims struct {
	jwtlib.RegisteredClaims
	Username string   `json:"preferred_username,omitempty"`
	Name     string   `json:"name,omitempty"`
	Email    string   `json:"email,omitempty"`
	Perms    []string `json:"perms,omitempty"`
}

// Verifier checks signature, algorithm, expiry and optional issuer
type Verifier struct {
	secret []byte
	issuer string
	leeway time.Duration
}

// New returns a verifier; an empty secret is an error
func New(secret, issuer string) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt: empty secret")
	}
	return &Verifier{secret: []byte(secret), issuer: issuer, leeway: 30 * time.Second}, nil
}

// Parse validates token and returns its claims
func (v *Verifier) Parse(token string) (*Claims, error) {
	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithLeeway(v.leeway),
		jwtlib.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(v.issuer))
	}
	parsed, err := jwtlib.ParseWithClaims(token, &Claims{}, func(*jwtlib.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnauthorized, "invalid bearer token")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, perr.Unauthorizedf("invalid bearer token")
	}
	return claims, nil
}

// Principal maps a token to the request principal
func (v *Verifier) Principal(token string) (pnet.Principal, error) {
	c, err := v.Parse(token)
	if err != nil {
		return pnet.Principal{}, err
	}
	username := c.Username
	if username == "" {
		username = c.Subject
	}
	return pnet.Principal{
		UserID:   c.Subject,
		Username: username,
		FullName: c.Name,
		Email:    c.Email,
		Perms:    c.Perms,
	}, nil
}

// Port returns the auth port for httpkit middleware
func (v *Verifier) Port() *httpkit.Port { return httpkit.NewPortFunc(v.Principal) }

// Sign issues a token for p valid for ttl
func (v *Verifier) Sign(p pnet.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   p.UserID,
			Issuer:    v.issuer,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
		Username: p.Username,
		Name:     p.FullName,
		Email:    p.Email,
		Perms:    p.Perms,
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(v.secret)
}
