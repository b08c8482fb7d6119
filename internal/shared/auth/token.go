package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// RoleAdmin is the only role a token can carry.
const RoleAdmin = "admin"

var (
	errMissingSecret = errors.New("jwt secret not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

// Claims represents the identity contained in an admin token.
type Claims struct {
	Subject   string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer signs and verifies HS256 admin tokens with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer builds an Issuer. A zero ttl falls back to 24h.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errMissingSecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock returns a copy of the Issuer that reads time from now.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	cp := *i
	if now != nil {
		cp.now = now
	}
	return &cp
}

// Sign issues a token for subject with the admin role.
func (i *Issuer) Sign(subject string) (string, Claims, error) {
	if strings.TrimSpace(subject) == "" {
		return "", Claims{}, errors.New("subject is required")
	}
	now := i.now().UTC().Truncate(time.Second)
	claims := Claims{
		Subject:   subject,
		Role:      RoleAdmin,
		IssuedAt:  now,
		ExpiresAt: now.Add(i.ttl),
	}

	tok, err := jwt.NewBuilder().
		Subject(claims.Subject).
		IssuedAt(claims.IssuedAt).
		Expiration(claims.ExpiresAt).
		Claim("role", claims.Role).
		Build()
	if err != nil {
		return "", Claims{}, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256(), i.secret))
	if err != nil {
		return "", Claims{}, fmt.Errorf("sign token: %w", err)
	}
	return string(signed), claims, nil
}

// Verify checks signature, expiry and role. Every failure collapses to ErrInvalidToken.
func (i *Issuer) Verify(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, ErrInvalidToken
	}

	tok, err := jwt.Parse(
		[]byte(token),
		jwt.WithKey(jwa.HS256(), i.secret),
		jwt.WithValidate(true),
		jwt.WithClock(jwt.ClockFunc(i.now)),
	)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	sub, ok := tok.Subject()
	if !ok || sub == "" {
		return Claims{}, ErrInvalidToken
	}
	var role string
	if err := tok.Get("role", &role); err != nil || role != RoleAdmin {
		return Claims{}, ErrInvalidToken
	}

	claims := Claims{Subject: sub, Role: role}
	if iat, ok := tok.IssuedAt(); ok {
		claims.IssuedAt = iat
	}
	if exp, ok := tok.Expiration(); ok {
		claims.ExpiresAt = exp
	}
	return claims, nil
}
