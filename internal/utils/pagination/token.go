package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeToken creates a base64 encoded keyset cursor from a creation time and row ID.
// This is used for consistent pagination across different repositories.
func EncodeToken(createdAt time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s", createdAt.UTC().Format(timeFormat), id)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into creation time and row ID.
// Malformed tokens are reported as validation errors.
func DecodeToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid pagination token format (base64 decode): %v", apperrors.ErrValidation, err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("%w: invalid pagination token format (split)", apperrors.ErrValidation)
	}

	createdAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid pagination token format (created_at parse): %v", apperrors.ErrValidation, err)
	}

	return createdAt, parts[1], nil
}

// After reports whether the row (createdAt, id) sorts strictly after the cursor
// in newest-first order.
func After(createdAt time.Time, id string, cursorAt time.Time, cursorID string) bool {
	if createdAt.Equal(cursorAt) {
		return id < cursorID
	}
	return createdAt.Before(cursorAt)
}
