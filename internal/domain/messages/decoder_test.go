package messages_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andresmx/sentimsg/internal/domain/messages"
)

func TestDecode(t *testing.T) {
	raw := "Lugar y fecha: Centro, 05/03/2024 14:30" +
		"Usuario: ana Red social: Twitter el producto de Empresa_X fue malo"

	got, err := messages.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), got.Timestamp)
	require.Equal(t, "ana", got.User)
	require.Equal(t, "Twitter", got.Platform)
	require.Equal(t, "Twitter el producto de Empresa_X fue malo", got.Body)
}

func TestDecodeHeaderWithoutPlace(t *testing.T) {
	// No comma-separated place before the date.
	raw := "Lugar y fecha: 01/01/2024 00:05Usuario: bob Red social: Facebook hola"
	got, err := messages.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC), got.Timestamp)
	require.Equal(t, "bob", got.User)
}

func TestDecodeKeepsLaterPlatformMarkers(t *testing.T) {
	raw := "Lugar y fecha: GT, 10/02/2024 09:00" +
		"Usuario: eva Red social: X comentando sobre Red social: en general"
	got, err := messages.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, "X", got.Platform)
	require.Equal(t, "X comentando sobre Red social: en general", got.Body)
}

func TestDecodeFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "missing user marker", raw: "Lugar y fecha: GT, 05/03/2024 14:30 Red social: Twitter hola"},
		{name: "missing platform marker", raw: "Lugar y fecha: GT, 05/03/2024 14:30Usuario: ana hola"},
		{name: "nothing after platform marker", raw: "Lugar y fecha: GT, 05/03/2024 14:30Usuario: ana Red social:   "},
		{name: "malformed date", raw: "Lugar y fecha: GT, 2024-03-05 14:30Usuario: ana Red social: Twitter hola"},
		{name: "unpadded date", raw: "Lugar y fecha: GT, 5/3/2024 14:30Usuario: ana Red social: Twitter hola"},
		{name: "missing date", raw: "Lugar y fecha: GT,Usuario: ana Red social: Twitter hola"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := messages.Decode(tt.raw)
			require.ErrorIs(t, err, messages.ErrDecode)
		})
	}
}
