// Package token implements the signed tracking token codec. Tokens are
// compact HS256 JWTs carrying event-identifying claims and no time
// claims: they stay valid until the shared secret rotates.
package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"fortnight-ads/internal/core/port"
)

type jwtClaims struct {
	UUID        string `json:"uuid,omitempty"`
	PlacementID string `json:"pid,omitempty"`
	CampaignID  string `json:"cid,omitempty"`
	URL         string `json:"url,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies tracking tokens with a shared secret.
type Codec struct {
	secret []byte
}

// NewCodec returns a codec bound to the shared signing secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Sign encodes the claims into a signed token. No issued-at or expiry
// claim is embedded.
func (c *Codec) Sign(claims port.TokenClaims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		UUID:        claims.UUID,
		PlacementID: claims.PlacementID,
		CampaignID:  claims.CampaignID,
		URL:         claims.URL,
	})
	return tok.SignedString(c.secret)
}

// Verify parses and validates a token, returning its claims. Any parse
// or signature failure surfaces as port.ErrInvalidToken.
func (c *Codec) Verify(token string) (port.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, port.ErrInvalidToken
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return port.TokenClaims{}, fmt.Errorf("%w: %v", port.ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid {
		return port.TokenClaims{}, port.ErrInvalidToken
	}
	return port.TokenClaims{
		UUID:        claims.UUID,
		PlacementID: claims.PlacementID,
		CampaignID:  claims.CampaignID,
		URL:         claims.URL,
	}, nil
}

var _ port.TokenCodec = (*Codec)(nil)
