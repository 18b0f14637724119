package signer

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MissingCredentials(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		secret string
	}{
		{name: "empty key", apiKey: "", secret: "secret"},
		{name: "empty secret", apiKey: "key", secret: ""},
		{name: "both empty", apiKey: "", secret: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.apiKey, tt.secret)
			require.Error(t, err)
		})
	}
}

func TestSign_KnownVector(t *testing.T) {
	s, err := New("key", "topsecret")
	require.NoError(t, err)

	payload := []byte(`{"market":"SOLINR","side":"buy"}`)
	assert.Equal(t, "8f43fdd2a09da4b2dddd121b1f7e9fe61494b666025fb2994c25c031f4cc3142", s.Sign(payload))
}

func TestSign_Deterministic(t *testing.T) {
	s, err := New("key", "topsecret")
	require.NoError(t, err)

	payload := []byte(`{"a":1}`)
	assert.Equal(t, s.Sign(payload), s.Sign(payload))
	assert.NotEqual(t, s.Sign(payload), s.Sign([]byte(`{"a":2}`)))
}

func TestAuthHeaders(t *testing.T) {
	s, err := New("my-api-key", "topsecret")
	require.NoError(t, err)

	payload := []byte(`{"market":"SOLINR","side":"buy"}`)
	h := http.Header{}
	before := time.Now().UnixMilli()
	s.AuthHeaders(h, payload)
	after := time.Now().UnixMilli()

	assert.Equal(t, "my-api-key", h.Get(HeaderAPIKey))
	assert.Equal(t, s.Sign(payload), h.Get(HeaderSignature))
	assert.Equal(t, "application/json", h.Get("Content-Type"))

	ts, err := strconv.ParseInt(h.Get(HeaderTimestamp), 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ts, before)
	assert.LessOrEqual(t, ts, after)
}
