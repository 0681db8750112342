package wire

import "strings"

// Name is an NDN name as a sequence of generic name components. The
// responder never needs typed components (segment, version, ...) — every
// Interest it serves carries a plain name used verbatim as the Data name.
type Name []string

// ParseName splits a slash-separated name string into components, ignoring
// a leading or trailing slash. "/throughput/a" -> ["throughput", "a"].
func ParseName(s string) Name {
	s = strings.Trim(s, "/")
	if s == "" {
		return Name{}
	}
	return strings.Split(s, "/")
}

func (n Name) String() string {
	return "/" + strings.Join(n, "/")
}

// Encode produces the Name TLV block (type 0x07) with one generic
// NameComponent TLV (type 0x08) per component.
func (n Name) Encode() []byte {
	value := make([]byte, 0, 16*len(n))
	for _, c := range n {
		value = append(value, block(TypeGenericNameComponent, []byte(c))...)
	}
	return block(TypeName, value)
}

// Prefix returns the name with its last component stripped, used to derive
// a certificate's identity+key prefix from its full certificate name for the
// KeyLocator embedded in SignatureInfo.
func (n Name) Prefix() Name {
	if len(n) == 0 {
		return Name{}
	}
	out := make(Name, len(n)-1)
	copy(out, n[:len(n)-1])
	return out
}
