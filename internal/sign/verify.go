package sign

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/sha256"
	"math/big"

	"github.com/pkg/errors"

	"github.com/DOCTOR-ANR/ndnperf/internal/keychain"
	"github.com/DOCTOR-ANR/ndnperf/internal/wire"
)

// Verify checks sigValue against signedPortion for the given material,
// interpreting sigValue according to material's signature type. Used by
// tests to exercise the round-trip and end-to-end signing properties; the
// responder itself never verifies its own output.
func Verify(m *keychain.Material, signedPortion, sigValue []byte) error {
	switch m.Type {
	case wire.SignatureTypeDigestSha256:
		sum := sha256.Sum256(signedPortion)
		if string(sum[:]) != string(sigValue) {
			return errors.New("sign: digest mismatch")
		}
		return nil

	case wire.SignatureTypeSha256WithRsa:
		hashed := sha256.Sum256(signedPortion)
		return rsa.VerifyPKCS1v15(m.RSAPub, crypto.SHA256, hashed[:], sigValue)

	case wire.SignatureTypeSha256WithEcdsa:
		byteLen := curveByteLen(m.ECDSAPriv.Curve.Params().BitSize)
		if len(sigValue) != 2*byteLen {
			return errors.Errorf("sign: P1363 signature has wrong length %d, want %d", len(sigValue), 2*byteLen)
		}
		r := new(big.Int).SetBytes(sigValue[:byteLen])
		s := new(big.Int).SetBytes(sigValue[byteLen:])
		hashed := sha256.Sum256(signedPortion)
		if !ecdsa.Verify(m.ECDSAPub, hashed[:], r, s) {
			return errors.New("sign: ECDSA P1363 signature does not verify")
		}
		return nil

	default:
		return errors.Errorf("sign: unknown signature type %d", m.Type)
	}
}
