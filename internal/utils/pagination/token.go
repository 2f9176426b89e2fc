package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/medinventory_app/internal/apperrors"
)

const timeFormat = time.RFC3339Nano

// MaxLimit bounds the page size accepted by list endpoints.
const MaxLimit = 500

// EncodeToken creates a base64 encoded token from the timestamp and storage
// sequence of the last item on a page.
func EncodeToken(timestamp time.Time, sequence int64) string {
	return EncodeMultiField(timestamp.UTC().Format(timeFormat), strconv.FormatInt(sequence, 10))
}

// DecodeToken parses the base64 encoded token back into timestamp and sequence.
func DecodeToken(token string) (time.Time, int64, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (split)")
	}

	timestamp, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (timestamp parse): %w", err)
	}

	sequence, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (sequence parse): %w", err)
	}

	return timestamp, sequence, nil
}

// CheckLimit rejects page sizes outside [1, MaxLimit].
func CheckLimit(limit int) error {
	if limit < 1 || limit > MaxLimit {
		return apperrors.NewValidationError("limit", fmt.Sprintf("must be between 1 and %d", MaxLimit))
	}
	return nil
}

// Page cuts one page out of items, which must already be in display order.
// key returns the timestamp and sequence of an item. The returned token is
// nil on the last page. A bad limit or token is reported as a ValidationError.
func Page[T any](items []T, limit int, nextToken *string, key func(T) (time.Time, int64)) ([]T, *string, error) {
	if err := CheckLimit(limit); err != nil {
		return nil, nil, err
	}

	start := 0
	if nextToken != nil && *nextToken != "" {
		ts, seq, err := DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("nextToken", err.Error())
		}
		start = -1
		for i, item := range items {
			itemTS, itemSeq := key(item)
			if itemSeq == seq && itemTS.Equal(ts) {
				start = i + 1
				break
			}
		}
		if start < 0 {
			return nil, nil, apperrors.NewValidationError("nextToken", "does not match any item")
		}
	}

	end := start + limit
	if end >= len(items) {
		return items[start:], nil, nil
	}

	page := items[start:end]
	ts, seq := key(page[len(page)-1])
	token := EncodeToken(ts, seq)
	return page, &token, nil
}

// EncodeMultiField creates a token with any number of string fields.
func EncodeMultiField(fields ...string) string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Join(fields, "|")))
}
