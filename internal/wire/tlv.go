// Package wire implements the subset of the NDN packet TLV encoding that the
// responder needs to build and sign Data packets: Name, MetaInfo, Content,
// SignatureInfo and SignatureValue blocks, plus the two-phase encode that
// exposes the signed byte range before the SignatureValue is known.
package wire

import "github.com/pkg/errors"

// TLV type numbers from the NDN packet format. Values match the reference
// encoder in the retrieval pack byte-for-byte (Data 0x06, Name 0x07, ...).
const (
	TypeName                  = 0x07
	TypeGenericNameComponent  = 0x08
	TypeData                  = 0x06
	TypeMetaInfo              = 0x14
	TypeContentType           = 0x18
	TypeFreshnessPeriod       = 0x19
	TypeContent               = 0x15
	TypeSignatureInfo         = 0x16
	TypeSignatureType         = 0x1b
	TypeKeyLocator            = 0x1c
	TypeSignatureValue        = 0x17
)

// encodeVarNumber writes an NDN TLV VAR-NUMBER: 1 byte if < 253, otherwise a
// marker byte (0xFD/0xFE/0xFF) followed by a 2/4/8 byte big-endian value.
func encodeVarNumber(n uint64) []byte {
	switch {
	case n < 253:
		return []byte{byte(n)}
	case n <= 0xFFFF:
		return []byte{0xFD, byte(n >> 8), byte(n)}
	case n <= 0xFFFFFFFF:
		return []byte{0xFE, byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
	default:
		return []byte{0xFF,
			byte(n >> 56), byte(n >> 48), byte(n >> 40), byte(n >> 32),
			byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
	}
}

// decodeVarNumber reads a VAR-NUMBER at the start of b, returning its value
// and the number of bytes consumed.
func decodeVarNumber(b []byte) (uint64, int, error) {
	if len(b) == 0 {
		return 0, 0, errors.New("wire: truncated var-number")
	}
	switch first := b[0]; {
	case first < 253:
		return uint64(first), 1, nil
	case first == 0xFD:
		if len(b) < 3 {
			return 0, 0, errors.New("wire: truncated 2-byte var-number")
		}
		return uint64(b[1])<<8 | uint64(b[2]), 3, nil
	case first == 0xFE:
		if len(b) < 5 {
			return 0, 0, errors.New("wire: truncated 4-byte var-number")
		}
		v := uint64(0)
		for _, c := range b[1:5] {
			v = v<<8 | uint64(c)
		}
		return v, 5, nil
	default:
		if len(b) < 9 {
			return 0, 0, errors.New("wire: truncated 8-byte var-number")
		}
		v := uint64(0)
		for _, c := range b[1:9] {
			v = v<<8 | uint64(c)
		}
		return v, 9, nil
	}
}

// encodeNonNegativeInteger encodes v as the minimal-width big-endian TLV
// VALUE used for integer fields such as ContentType and FreshnessPeriod.
func encodeNonNegativeInteger(v uint64) []byte {
	switch {
	case v <= 0xFF:
		return []byte{byte(v)}
	case v <= 0xFFFF:
		return []byte{byte(v >> 8), byte(v)}
	case v <= 0xFFFFFFFF:
		return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
	default:
		return []byte{
			byte(v >> 56), byte(v >> 48), byte(v >> 40), byte(v >> 32),
			byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v),
		}
	}
}

// block encodes one TLV: type, length, value.
func block(typ uint64, value []byte) []byte {
	out := make([]byte, 0, 8+len(value))
	out = append(out, encodeVarNumber(typ)...)
	out = append(out, encodeVarNumber(uint64(len(value)))...)
	out = append(out, value...)
	return out
}
