package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveKey(t *testing.T) {
	tests := []struct {
		name string
		ref  KeyRef
		want ResolvedKey
	}{
		{"doc id wins", KeyRef{DocID: "old-key", Slug: "warung", LegacyID: 42, Nama: "Warung"}, ResolvedKey{"old-key", KeyFromDocID}},
		{"slug next", KeyRef{Slug: "warung", LegacyID: 42, Nama: "Warung"}, ResolvedKey{"warung", KeyFromSlug}},
		{"legacy numeric id", KeyRef{LegacyID: 123456, Nama: "Warung"}, ResolvedKey{"123456", KeyFromLegacyID}},
		{"slug of nama last", KeyRef{Nama: "Warung  Bu   Sari!!"}, ResolvedKey{"warung-bu-sari", KeyFromNama}},
		{"blank doc id is skipped", KeyRef{DocID: "  ", Slug: "x"}, ResolvedKey{"x", KeyFromSlug}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveKey(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ResolveKey(KeyRef{Nama: "!!!"})
	assert.ErrorIs(t, err, ErrUnresolvableKey)
}

func TestCanonicalSlug(t *testing.T) {
	assert.Equal(t, "toko-a", CanonicalSlug(UMKMModel{Slug: "toko-a", Nama: "Lain"}))
	assert.Equal(t, "toko-kue", CanonicalSlug(UMKMModel{Slug: "Toko Kue", Nama: "Toko Kue"}))
	assert.Equal(t, "", CanonicalSlug(UMKMModel{Nama: "???"}))
}
