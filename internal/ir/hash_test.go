package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashWithDomainFormat(t *testing.T) {
	h := sha256.New()
	h.Write([]byte(DomainGraph))
	h.Write([]byte{0x00})
	h.Write([]byte("payload"))
	want := hex.EncodeToString(h.Sum(nil))

	assert.Equal(t, want, HashWithDomain(DomainGraph, []byte("payload")))
}

func TestHashWithDomainSeparation(t *testing.T) {
	data := []byte(`{"nodes":[]}`)
	assert.NotEqual(t,
		HashWithDomain(DomainGraph, data),
		HashWithDomain(DomainSnapshot, data))
}

func TestFingerprintStableAcrossKeyInsertionOrder(t *testing.T) {
	a := map[string]any{"name": "add:0", "op": "add"}
	b := map[string]any{"op": "add", "name": "add:0"}

	fa, err := Fingerprint(DomainGraph, a)
	require.NoError(t, err)
	fb, err := Fingerprint(DomainGraph, b)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
	assert.Len(t, fa, 64)
}

func TestFingerprintRejectsUnsupportedValues(t *testing.T) {
	_, err := Fingerprint(DomainGraph, map[string]any{"weight": 0.5})
	assert.Error(t, err)
}

func TestMustFingerprintPanicsOnBadInput(t *testing.T) {
	assert.Panics(t, func() {
		MustFingerprint(DomainGraph, map[string]any{"x": nil})
	})
	assert.NotPanics(t, func() {
		MustFingerprint(DomainGraph, map[string]any{"x": 1})
	})
}
