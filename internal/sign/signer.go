// Package sign computes signature values over a wire-encoded Data packet
// and completes its encoding. It takes a Data whose name, content,
// freshness and signature-info are already set, and does not delegate to a
// higher-level "sign this Data" helper that would re-derive key handles on
// every call.
package sign

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/asn1"
	"math/big"

	"github.com/pkg/errors"

	"github.com/DOCTOR-ANR/ndnperf/internal/keychain"
	"github.com/DOCTOR-ANR/ndnperf/internal/wire"
)

// Signer holds key material and a pre-built SignatureInfo and produces a
// signature value over a wire-encoded Data prefix.
//
// crypto/ecdsa has no mutable per-signature state to race on, so giving
// each worker its own Signer (see worker.Worker) is enough to guarantee no
// two workers share a mutable signing context; there is no need for a
// per-call signer clone.
type Signer struct {
	material *keychain.Material
	info     *wire.SignatureInfo
}

// New builds a Signer bound to m and info. info is shared read-only across
// every Signer built from the same process.
func New(m *keychain.Material, info *wire.SignatureInfo) *Signer {
	return &Signer{material: m, info: info}
}

// SignInto completes d's wire encoding: attaches info, wire-encodes the
// signed prefix, computes the signature value for the configured mode, and
// returns the fully encoded Data packet.
func (s *Signer) SignInto(d *wire.Data) ([]byte, error) {
	d.SigInfo = s.info
	signedPortion := d.EncodeSignedPortion()

	sigValue, err := s.computeSignature(signedPortion)
	if err != nil {
		return nil, err
	}
	return d.Finalize(signedPortion, sigValue), nil
}

func (s *Signer) computeSignature(signedPortion []byte) ([]byte, error) {
	switch s.material.Type {
	case wire.SignatureTypeDigestSha256:
		sum := sha256.Sum256(signedPortion)
		return sum[:], nil

	case wire.SignatureTypeSha256WithRsa:
		hashed := sha256.Sum256(signedPortion)
		// rsa.PrivateKey has no mutable state beyond the key itself, so a
		// single shared *rsa.PrivateKey is safe across concurrent callers.
		sig, err := rsa.SignPKCS1v15(rand.Reader, s.material.RSAPriv, crypto.SHA256, hashed[:])
		if err != nil {
			return nil, errors.Wrap(err, "sign: RSA signing failed")
		}
		return sig, nil

	case wire.SignatureTypeSha256WithEcdsa:
		hashed := sha256.Sum256(signedPortion)
		der, err := ecdsa.SignASN1(rand.Reader, s.material.ECDSAPriv, hashed[:])
		if err != nil {
			return nil, errors.Wrap(err, "sign: ECDSA signing failed")
		}
		return derToP1363(der, curveByteLen(s.material.ECDSAPriv.Curve.Params().BitSize))

	default:
		return nil, errors.Errorf("sign: unknown signature type %d", s.material.Type)
	}
}

func curveByteLen(bitSize int) int {
	return (bitSize + 7) / 8
}

// asn1Signature mirrors the ASN.1 SEQUENCE { r INTEGER, s INTEGER } that
// crypto/ecdsa.SignASN1 produces.
type asn1Signature struct {
	R, S *big.Int
}

// derToP1363 converts a DER-encoded ECDSA signature to the fixed-width
// IEEE-P1363 r||s representation the wire format requires; a signature left
// in DER form must fail verification rather than silently round-trip.
func derToP1363(der []byte, byteLen int) ([]byte, error) {
	var sig asn1Signature
	if _, err := asn1.Unmarshal(der, &sig); err != nil {
		return nil, errors.Wrap(err, "sign: failed to parse DER ECDSA signature")
	}
	out := make([]byte, 2*byteLen)
	sig.R.FillBytes(out[:byteLen])
	sig.S.FillBytes(out[byteLen:])
	return out, nil
}
