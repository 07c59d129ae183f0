package ir

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocKeyDeterministic(t *testing.T) {
	k1, err := DocKey("stat", "Returns file information for C<lstat>.", 72)
	require.NoError(t, err)
	k2, err := DocKey("stat", "Returns file information for C<lstat>.", 72)
	require.NoError(t, err)

	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 64)
	_, err = hex.DecodeString(k1)
	assert.NoError(t, err)
}

func TestDocKeyChangesWithEachInput(t *testing.T) {
	base := MustDocKey("stat", "text", 72)
	assert.NotEqual(t, base, MustDocKey("lstat", "text", 72))
	assert.NotEqual(t, base, MustDocKey("stat", "text.", 72))
	assert.NotEqual(t, base, MustDocKey("stat", "text", 60))
}

func TestHashWithDomainSeparation(t *testing.T) {
	data := []byte(`{"a":1}`)
	assert.NotEqual(t, hashWithDomain(DomainDoc, data), hashWithDomain(DomainAPI, data))

	// "ab" + NUL + "c" must differ from "a" + NUL + "bc".
	assert.NotEqual(t, hashWithDomain("ab", []byte("c")), hashWithDomain("a", []byte("bc")))
}

func TestFingerprint(t *testing.T) {
	api := func() *API {
		return &API{
			Prefix: "guestfs_",
			Actions: []Action{{
				Name:      "stat",
				Style:     Style{Ret: RetStructOf("stat"), Args: []Arg{Str(Pathname, "path")}},
				ProcNr:    52,
				ShortDesc: "get file information",
				Blocking:  true,
			}},
			Structs: []Struct{{Name: "stat", Fields: []Field{{Name: "dev", Kind: FieldInt64}}}},
			Events:  []Event{{Name: "close", Bit: 0}},
		}
	}

	f1, err := Fingerprint(api())
	require.NoError(t, err)
	f2, err := Fingerprint(api())
	require.NoError(t, err)
	assert.Equal(t, f1, f2)

	changed := api()
	changed.Actions[0].ProcNr = 53
	f3, err := Fingerprint(changed)
	require.NoError(t, err)
	assert.NotEqual(t, f1, f3)
}
