package modifier

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/Excaliburns/Placebo/internal/attribute"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// IDScheme selects how a definition's identifier is derived from its content.
// Both schemes are pure functions of (attribute key, operation, min, max);
// changing either algorithm changes every identifier, so they are pinned here.
type IDScheme int8

const (
	// IDSchemeSeeded hashes the canonical encoding with XXH64, seeds a PCG
	// generator with the hash and draws two uint64 values (high, low).
	IDSchemeSeeded IDScheme = iota
	// IDSchemeContent takes the first 128 bits of the BLAKE2b-256 digest of the
	// canonical encoding and stamps UUID version 8 / RFC 4122 variant bits on it.
	IDSchemeContent
)

func (s IDScheme) String() string {
	switch s {
	case IDSchemeSeeded:
		return "seeded"
	case IDSchemeContent:
		return "content"
	default:
		return "unknown"
	}
}

// ParseIDScheme maps a config value ("seeded", "content") to an IDScheme.
// The empty string selects IDSchemeSeeded.
func ParseIDScheme(s string) (IDScheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "seeded":
		return IDSchemeSeeded, nil
	case "content":
		return IDSchemeContent, nil
	default:
		return 0, fmt.Errorf("unknown id scheme %q", s)
	}
}

// DeriveID computes the identifier for (attr, op, value) under scheme.
func DeriveID(scheme IDScheme, attr *attribute.Attribute, op attribute.Operation, value ValueRange) uuid.UUID {
	key := canonicalKey(attr, op, value)
	if scheme == IDSchemeContent {
		return contentID(key)
	}
	return seededID(key)
}

// canonicalKey encodes the identity triple as
// key 0x00 operation-token 0x00 float64bits(min) float64bits(max), big-endian.
func canonicalKey(attr *attribute.Attribute, op attribute.Operation, value ValueRange) []byte {
	token := op.String()
	buf := make([]byte, 0, len(attr.Key)+len(token)+2+16)
	buf = append(buf, attr.Key...)
	buf = append(buf, 0)
	buf = append(buf, token...)
	buf = append(buf, 0)
	buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(canonicalZero(value.min)))
	buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(canonicalZero(value.max)))
	return buf
}

// canonicalZero folds -0 into +0 so equal ranges hash equally.
func canonicalZero(f float64) float64 {
	if f == 0 {
		return 0
	}
	return f
}

func seededID(key []byte) uuid.UUID {
	r := rand.New(rand.NewPCG(xxhash.Sum64(key), 0))

	var id uuid.UUID
	binary.BigEndian.PutUint64(id[:8], r.Uint64())
	binary.BigEndian.PutUint64(id[8:], r.Uint64())
	return id
}

func contentID(key []byte) uuid.UUID {
	sum := blake2b.Sum256(key)

	var id uuid.UUID
	copy(id[:], sum[:16])
	id[6] = (id[6] & 0x0f) | 0x80 // version 8
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant
	return id
}
