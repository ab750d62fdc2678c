// SPDX-License-Identifier: MPL-2.0

package pngfile

// propertyBit is bit 5 of a type code byte, the ASCII lowercase bit.
const propertyBit = 0x20

// TypeCode is the 4-byte chunk identifier. Each byte is an ASCII letter and
// the case of each letter encodes one property of the chunk. The zero value is
// not a well-formed type code; construct one with NewTypeCode or ParseTypeCode.
type TypeCode [4]byte

// NewTypeCode builds a TypeCode from raw bytes. It only checks that every byte
// is an ASCII letter; a code with the reserved bit set is accepted here and
// reported by IsValid.
func NewTypeCode(b [4]byte) (TypeCode, error) {
	for i, c := range b {
		if !isASCIILetter(c) {
			return TypeCode{}, &InvalidTypeCodeError{Bytes: b, Index: i}
		}
	}
	return TypeCode(b), nil
}

// ParseTypeCode builds a TypeCode from its 4-character text form. The length
// is counted in bytes, so multi-byte runes never form a valid code.
func ParseTypeCode(s string) (TypeCode, error) {
	if len(s) != 4 {
		return TypeCode{}, &InvalidLengthError{Text: s, Got: len(s)}
	}
	return NewTypeCode([4]byte{s[0], s[1], s[2], s[3]})
}

// MustParseTypeCode is like ParseTypeCode but panics on error. It is meant for
// package-level values built from literals.
func MustParseTypeCode(s string) TypeCode {
	tc, err := ParseTypeCode(s)
	if err != nil {
		panic(err)
	}
	return tc
}

// Bytes returns the raw type code bytes.
func (t TypeCode) Bytes() [4]byte { return t }

// IsCritical reports whether decoders must understand the chunk (uppercase first letter).
func (t TypeCode) IsCritical() bool { return t[0]&propertyBit == 0 }

// IsPublic reports whether the type is registered in the public namespace (uppercase second letter).
func (t TypeCode) IsPublic() bool { return t[1]&propertyBit == 0 }

// IsReservedBitValid reports whether the reserved third letter is uppercase.
func (t TypeCode) IsReservedBitValid() bool { return t[2]&propertyBit == 0 }

// IsSafeToCopy reports whether editors may copy the chunk unmodified (lowercase fourth letter).
func (t TypeCode) IsSafeToCopy() bool { return t[3]&propertyBit != 0 }

// IsValid reports whether the type code may be written to a new chunk.
// Alphabetic codes with the reserved bit set parse fine but are not valid.
func (t TypeCode) IsValid() bool { return t.IsReservedBitValid() }

// String returns the 4 ASCII characters of the type code.
func (t TypeCode) String() string { return string(t[:]) }

func isASCIILetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
