package helper

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Cursors encode (created_at micros, row id) so listings page stably even
// when rows share a timestamp.

func DecodeCursor(cursor string) (time.Time, uuid.UUID, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, uuid.Nil, fmt.Errorf("invalid cursor encoding")
	}

	parts := strings.Split(string(decodedBytes), ",")
	if len(parts) != 2 {
		return time.Time{}, uuid.Nil, fmt.Errorf("invalid cursor format")
	}

	micros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, uuid.Nil, fmt.Errorf("invalid cursor timestamp")
	}

	id, err := uuid.Parse(parts[1])
	if err != nil {
		return time.Time{}, uuid.Nil, fmt.Errorf("invalid cursor id")
	}

	return time.UnixMicro(micros), id, nil
}

func EncodeCursor(t time.Time, id uuid.UUID) string {
	cursorString := fmt.Sprintf("%d,%s", t.UnixMicro(), id)
	return base64.URLEncoding.EncodeToString([]byte(cursorString))
}
