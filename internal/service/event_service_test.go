package service

import (
	"encoding/base64"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduhub/eduhub-backend/internal/model"
)

var testQRKey = []byte("0123456789abcdef0123456789abcdef")

func newTestEventService(t *testing.T) *EventService {
	t.Helper()
	s, err := NewEventService(nil, testQRKey, zerolog.Nop())
	require.NoError(t, err)
	return s
}

func TestNewEventServiceRejectsBadKey(t *testing.T) {
	_, err := NewEventService(nil, []byte("too short"), zerolog.Nop())
	assert.Error(t, err)
}

func TestCheckInCodeRoundTrip(t *testing.T) {
	s := newTestEventService(t)

	payload := model.CheckInPayload{EventID: uuid.New(), UserID: 42}
	code, err := s.seal(payload)
	require.NoError(t, err)

	got, err := s.open(code)
	require.NoError(t, err)
	assert.Equal(t, payload, *got)
}

func TestCheckInCodeNoncePerSeal(t *testing.T) {
	s := newTestEventService(t)
	payload := model.CheckInPayload{EventID: uuid.New(), UserID: 42}

	a, err := s.seal(payload)
	require.NoError(t, err)
	b, err := s.seal(payload)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestOpenRejectsTamperedCode(t *testing.T) {
	s := newTestEventService(t)

	code, err := s.seal(model.CheckInPayload{EventID: uuid.New(), UserID: 42})
	require.NoError(t, err)

	sealed, err := base64.URLEncoding.DecodeString(code)
	require.NoError(t, err)
	sealed[len(sealed)-1] ^= 0x01

	_, err = s.open(base64.URLEncoding.EncodeToString(sealed))
	assert.Error(t, err)
}

func TestOpenRejectsGarbage(t *testing.T) {
	s := newTestEventService(t)

	_, err := s.open("not base64 at all!!!")
	assert.Error(t, err)

	_, err = s.open(base64.URLEncoding.EncodeToString([]byte("short")))
	assert.Error(t, err)
}

func TestOpenRejectsCodeSealedWithOtherKey(t *testing.T) {
	s := newTestEventService(t)

	other, err := NewEventService(nil, []byte("ffffffffffffffffffffffffffffffff"), zerolog.Nop())
	require.NoError(t, err)

	code, err := other.seal(model.CheckInPayload{EventID: uuid.New(), UserID: 42})
	require.NoError(t, err)

	_, err = s.open(code)
	assert.Error(t, err)
}
