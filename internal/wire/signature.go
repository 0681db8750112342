package wire

// SignatureType mirrors the `-s` CLI flag value exactly: the flag value IS
// the wire SignatureType.
type SignatureType uint64

const (
	SignatureTypeDigestSha256 SignatureType = 0
	SignatureTypeSha256WithRsa SignatureType = 1
	SignatureTypeSha256WithEcdsa SignatureType = 3
)

// SignatureInfo is constructed once per process and shared read-only by
// every worker. KeyLocatorName is empty for DigestSha256, since digest
// signatures carry no key locator.
type SignatureInfo struct {
	Type          SignatureType
	KeyLocatorName Name
}

// Encode produces the SignatureInfo TLV (type 0x16): a SignatureType TLV
// (0x1b) followed, for keyed modes, by a KeyLocator TLV (0x1c) wrapping the
// certificate-prefix Name.
func (si *SignatureInfo) Encode() []byte {
	value := block(TypeSignatureType, encodeNonNegativeInteger(uint64(si.Type)))
	if si.Type != SignatureTypeDigestSha256 && len(si.KeyLocatorName) > 0 {
		value = append(value, block(TypeKeyLocator, si.KeyLocatorName.Encode())...)
	}
	return block(TypeSignatureInfo, value)
}
