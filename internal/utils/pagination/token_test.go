package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Standard values
	createdAt := time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC)
	token := EncodeToken(createdAt, "3f1c8a4e-0000-4000-8000-000000000001")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedAt, "Created at time should match after decode")
	assert.Equal(t, "3f1c8a4e-0000-4000-8000-000000000001", decodedID)

	// Non-UTC input is normalised
	local := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("IST", 5*3600+1800))
	decodedLocal, _, err := DecodeToken(EncodeToken(local, "x"))
	assert.NoError(t, err)
	assert.True(t, local.Equal(decodedLocal), "Instant should survive a zone change")
}

func TestDecodeTokenError(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantMsg string
	}{
		{name: "invalid base64", token: "this is not base64!", wantMsg: "base64 decode"},
		{name: "missing separator", token: base64.URLEncoding.EncodeToString([]byte("2024-05-15T00:00:00Z")), wantMsg: "split"},
		{name: "empty id", token: base64.URLEncoding.EncodeToString([]byte("2024-05-15T00:00:00Z|")), wantMsg: "split"},
		{name: "bad time", token: base64.URLEncoding.EncodeToString([]byte("notadate|abc")), wantMsg: "created_at parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeToken(tt.token)
			assert.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestAfter(t *testing.T) {
	base := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, After(base.Add(-time.Second), "b", base, "a"), "older rows come after the cursor")
	assert.False(t, After(base.Add(time.Second), "a", base, "b"), "newer rows come before the cursor")
	assert.True(t, After(base, "a", base, "b"), "ties break on id descending")
	assert.False(t, After(base, "b", base, "b"), "the cursor row itself is excluded")
}
