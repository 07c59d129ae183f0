package ir

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Domain prefixes for content hashes. The version suffix allows a future
// algorithm migration without colliding with old cache entries.
const (
	DomainDoc = "bindgen/doc/v1"
	DomainAPI = "bindgen/api/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data). The NUL separator
// prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DocKey computes the cache key for one documentation rendering. Equal
// inputs give equal keys across runs and processes.
func DocKey(name, markup string, width int) (string, error) {
	canonical, err := MarshalCanonical(map[string]any{
		"name":   name,
		"markup": markup,
		"width":  width,
	})
	if err != nil {
		return "", fmt.Errorf("DocKey: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainDoc, canonical), nil
}

// Fingerprint hashes the whole API. Two APIs with the same fingerprint
// produce identical generator output.
func Fingerprint(api *API) (string, error) {
	// encoding/json emits struct fields in declaration order and every
	// collection in the IR is a slice, so this encoding is already stable.
	// Round-tripping through map[string]any lets MarshalCanonical apply
	// key ordering and NFC normalization on top.
	raw, err := json.Marshal(api)
	if err != nil {
		return "", fmt.Errorf("Fingerprint: failed to marshal: %w", err)
	}
	var generic any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return "", fmt.Errorf("Fingerprint: failed to decode: %w", err)
	}
	normalized, err := normalizeJSON(generic)
	if err != nil {
		return "", fmt.Errorf("Fingerprint: %w", err)
	}
	canonical, err := MarshalCanonical(normalized)
	if err != nil {
		return "", fmt.Errorf("Fingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainAPI, canonical), nil
}

// MustDocKey is like DocKey but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustDocKey(name, markup string, width int) string {
	key, err := DocKey(name, markup, width)
	if err != nil {
		panic(err)
	}
	return key
}

// normalizeJSON converts decoded JSON into the value set MarshalCanonical
// accepts: numbers become int64 and null object members are dropped.
func normalizeJSON(v any) (any, error) {
	switch val := v.(type) {
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return nil, fmt.Errorf("non-integer number %s", val)
		}
		return n, nil
	case []any:
		out := make([]any, 0, len(val))
		for _, elem := range val {
			if elem == nil {
				continue
			}
			n, err := normalizeJSON(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			if elem == nil {
				continue
			}
			n, err := normalizeJSON(elem)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	default:
		return v, nil
	}
}
