package wire

// ContentBlock is the pre-built, immutable TLV content block shared by every
// Data packet for the lifetime of the process.
type ContentBlock struct {
	encoded []byte
}

// NewContentBlock wraps payload once; the same block is reused, unmodified,
// by every worker.
func NewContentBlock(payload []byte) *ContentBlock {
	return &ContentBlock{encoded: block(TypeContent, payload)}
}

// Len returns the payload length (content TLV value size), not the encoded
// block size.
func (c *ContentBlock) Len() int {
	if len(c.encoded) == 0 {
		return 0
	}
	_, typLen, _ := decodeVarNumber(c.encoded)
	length, lenLen, _ := decodeVarNumber(c.encoded[typLen:])
	_ = lenLen
	return int(length)
}

// Data is built fresh per Interest and discarded once the Face accepts it.
type Data struct {
	Name            Name
	FreshnessMillis uint32
	Content         *ContentBlock
	SigInfo         *SignatureInfo
	SigValue        []byte
}

func (d *Data) metaInfo() []byte {
	value := block(TypeContentType, encodeNonNegativeInteger(0)) // ContentType=BLOB
	if d.FreshnessMillis > 0 {
		value = append(value, block(TypeFreshnessPeriod, encodeNonNegativeInteger(uint64(d.FreshnessMillis)))...)
	}
	return block(TypeMetaInfo, value)
}

// EncodeSignedPortion produces Name + MetaInfo + Content + SignatureInfo,
// the exact byte range a Signer hashes/signs, without the SignatureValue
// TLV and without the outer Data TLV wrapper.
func (d *Data) EncodeSignedPortion() []byte {
	out := make([]byte, 0, 256+d.Content.Len())
	out = append(out, d.Name.Encode()...)
	out = append(out, d.metaInfo()...)
	out = append(out, d.Content.encoded...)
	out = append(out, d.SigInfo.Encode()...)
	return out
}

// Finalize appends the SignatureValue TLV to signedPortion and wraps the
// result in the outer Data TLV, completing the wire encoding. It also
// stores sigValue on d for callers that inspect the Data after signing
// (e.g. tests verifying against the embedded certificate).
func (d *Data) Finalize(signedPortion, sigValue []byte) []byte {
	d.SigValue = sigValue
	value := make([]byte, 0, len(signedPortion)+8+len(sigValue))
	value = append(value, signedPortion...)
	value = append(value, block(TypeSignatureValue, sigValue)...)
	return block(TypeData, value)
}
