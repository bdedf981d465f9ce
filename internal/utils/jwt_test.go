package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashRoundTrip(t *testing.T) {
	msgs := []FlashMessage{
		{Category: FlashSuccess, Message: "Venue The Musical Hop was successfully listed!"},
		{Category: FlashDanger, Message: "second"},
	}
	raw, err := SignFlash("secret", msgs, time.Minute)
	require.NoError(t, err)

	got, err := ParseFlash("secret", raw)
	require.NoError(t, err)
	assert.Equal(t, msgs, got)
}

func TestParseFlash_Rejects(t *testing.T) {
	raw, err := SignFlash("secret", []FlashMessage{{Category: FlashSuccess, Message: "x"}}, time.Minute)
	require.NoError(t, err)

	_, err = ParseFlash("other-secret", raw)
	assert.ErrorIs(t, err, ErrInvalidFlash)

	_, err = ParseFlash("secret", "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidFlash)

	expired, err := SignFlash("secret", nil, -time.Minute)
	require.NoError(t, err)
	_, err = ParseFlash("secret", expired)
	assert.ErrorIs(t, err, ErrInvalidFlash)
}
