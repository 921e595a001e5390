package helper

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)
	id := uuid.New()

	gotAt, gotID, err := DecodeCursor(EncodeCursor(at, id))
	require.NoError(t, err)

	assert.True(t, gotAt.Equal(at))
	assert.Equal(t, id, gotID)
}

func TestDecodeCursorRejectsBadInput(t *testing.T) {
	cases := []string{
		"",
		"not-base64!!",
		"aGVsbG8=",
		EncodeCursor(time.Now(), uuid.New()) + "x",
	}

	for _, c := range cases {
		if _, _, err := DecodeCursor(c); err == nil {
			t.Errorf("expected error for cursor %q", c)
		}
	}
}
