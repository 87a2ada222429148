// Package token issues and verifies the signed bearer tokens that carry a
// session between requests. A token is a compact HS256 JWT holding only the
// subject (username) and an expiry; it is the entire session state, there is
// no server-side session table. Rotating the secret invalidates every
// outstanding token.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenExpired means the token was well formed and correctly signed but
// its expiry has passed. ErrTokenInvalid covers everything else: bad
// signature, malformed structure, unexpected algorithm, missing subject.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the payload reconstructed from a verified token. No field is
// populated unless the signature check succeeded first.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Codec signs and verifies tokens with a process-wide secret and a fixed
// validity window. Construct it once at startup and share it.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec builds a Codec. The secret must be non-empty and the ttl positive;
// both are startup configuration errors, not request-time conditions.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token: secret must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token: ttl must be positive, got %s", ttl)
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured validity window.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for subject expiring c.ttl from now.
func (c *Codec) Issue(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("token: subject must not be empty")
	}

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(c.ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Decode verifies the signature and expiry of raw and returns its claims.
// Returns ErrTokenExpired when the only problem is a past expiry, otherwise
// ErrTokenInvalid. Claims are never returned on failure.
func (c *Codec) Decode(raw string) (*Claims, error) {
	var claims jwt.RegisteredClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tkn.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrTokenInvalid
	}

	return &Claims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
