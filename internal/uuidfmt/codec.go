// Package uuidfmt converts binary-stored UUIDs to canonical hyphenated text and back.
package uuidfmt

import (
	"strings"

	"github.com/google/uuid"
)

// Size is the width of a binary UUID in bytes
const Size = 16

// Codec formats binary UUIDs for display. The zero value renders uppercase hex.
type Codec struct {
	Lowercase bool
}

// NewCodec creates a codec with the given output case
func NewCodec(lowercase bool) Codec {
	return Codec{Lowercase: lowercase}
}

// Encode renders a 16-byte value as 8-4-4-4-12 hyphenated hex.
// Values of any other length are returned unchanged.
func (c Codec) Encode(binary string) string {
	if len(binary) != Size {
		return binary
	}

	id, err := uuid.FromBytes([]byte(binary))
	if err != nil {
		return binary
	}

	if c.Lowercase {
		return id.String()
	}
	return strings.ToUpper(id.String())
}

// EncodeBytes is Encode for byte slices
func (c Codec) EncodeBytes(binary []byte) string {
	return c.Encode(string(binary))
}

// Decode turns display text into the literal handed to the query layer by
// removing every hyphen. Nothing else is validated or converted.
func (c Codec) Decode(text string) string {
	return strings.ReplaceAll(text, "-", "")
}
