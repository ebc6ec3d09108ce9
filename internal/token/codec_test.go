package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fortnight-ads/internal/core/port"
)

var testClaims = port.TokenClaims{
	UUID:        "92e998a7-e596-4747-a233-09108938c8d4",
	PlacementID: "5aa03a87be66ee000110c13b",
	CampaignID:  "5aabc20d62a17f0001bbcba4",
	URL:         "https://advertiser.example.com/landing",
}

func TestSignVerifyRoundTrip(t *testing.T) {
	codec := NewCodec("shared-secret")

	signed, err := codec.Sign(testClaims)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := codec.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, testClaims, claims)
}

func TestSignOmitsTimeClaims(t *testing.T) {
	codec := NewCodec("shared-secret")

	signed, err := codec.Sign(testClaims)
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.NotContains(t, decoded, "iat", "tokens must not be time-bound")
	assert.NotContains(t, decoded, "exp", "tokens must not expire")
	assert.NotContains(t, decoded, "nbf")
	assert.Equal(t, testClaims.UUID, decoded["uuid"])
	assert.Equal(t, testClaims.PlacementID, decoded["pid"])
	assert.Equal(t, testClaims.CampaignID, decoded["cid"])
	assert.Equal(t, testClaims.URL, decoded["url"])
}

func TestSignOmitsEmptyClaims(t *testing.T) {
	codec := NewCodec("shared-secret")

	signed, err := codec.Sign(port.TokenClaims{UUID: "u", PlacementID: "p"})
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.NotContains(t, decoded, "cid")
	assert.NotContains(t, decoded, "url")
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	codec := NewCodec("shared-secret")

	signed, err := codec.Sign(testClaims)
	require.NoError(t, err)

	tampered := signed[:len(signed)-2] + "xx"
	_, err = codec.Verify(tampered)
	assert.ErrorIs(t, err, port.ErrInvalidToken)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	signed, err := NewCodec("secret-a").Sign(testClaims)
	require.NoError(t, err)

	_, err = NewCodec("secret-b").Verify(signed)
	assert.ErrorIs(t, err, port.ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	codec := NewCodec("shared-secret")
	for _, token := range []string{"", "abc", "a.b.c"} {
		_, err := codec.Verify(token)
		assert.ErrorIs(t, err, port.ErrInvalidToken, "token %q", token)
	}
}
