// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

package githubauth

import (
	"crypto/rsa"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	_ slog.LogValuer = (*AppJWT)(nil)
)

// appJWTValidity is app JWT lifetime. GitHub rejects app JWTs valid for
// more than 10 minutes.
const appJWTValidity = 10 * time.Minute

// AppJWT is a short-lived self-signed assertion identifying the app.
// It is used only to request installation access tokens and is minted
// fresh for every exchange, never cached.
type AppJWT struct {
	// Signed JWT.
	Token string

	// Issuer, the app's client ID.
	ClientID string

	// Token issue time.
	IssuedAt time.Time

	// Token expiry time.
	Exp time.Time
}

// LogValue implements [log/slog.LogValuer].
func (t AppJWT) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("client_id", t.ClientID),
		slog.Time("iat", t.IssuedAt),
		slog.Time("exp", t.Exp),
		slog.String("token", "REDACTED"),
	)
}

// Issuer mints app JWTs signed with the app's RSA private key.
// The key is read-only shared state, an Issuer is safe for concurrent use.
type Issuer struct {
	key      *rsa.PrivateKey
	clientID string
	now      func() time.Time
}

// NewIssuer returns an [Issuer] for the given signing key and app client ID.
func NewIssuer(key *rsa.PrivateKey, clientID string) (*Issuer, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: no signing key provided", ErrConfiguration)
	}

	if clientID == "" {
		return nil, fmt.Errorf("%w: app client id is not set", ErrConfiguration)
	}

	if key.N.BitLen() < 2048 {
		return nil, fmt.Errorf("%w: rsa key size(%d) < 2048 bits",
			ErrConfiguration, key.N.BitLen())
	}

	return &Issuer{
		key:      key,
		clientID: clientID,
		now:      time.Now,
	}, nil
}

// Mint returns a new RS256 signed app JWT with iat=now and exp=now+10m.
//
// Two calls at the same instant produce semantically equivalent but not
// byte-identical assertions due to signature randomness, which is fine
// as assertions are single-use. A signing failure unwraps to
// [ErrSigning] and is unrecoverable without operator intervention.
func (i *Issuer) Mint() (AppJWT, error) {
	// GitHub rejects timestamps that are not an integer.
	now := i.now().Truncate(time.Second)
	exp := now.Add(appJWTValidity)

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Issuer:    i.clientID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})

	signed, err := token.SignedString(i.key)
	if err != nil {
		return AppJWT{}, fmt.Errorf("%w: %w", ErrSigning, err)
	}

	return AppJWT{
		Token:    signed,
		ClientID: i.clientID,
		IssuedAt: now,
		Exp:      exp,
	}, nil
}
