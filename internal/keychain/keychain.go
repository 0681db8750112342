// Package keychain is the in-process stand-in for an external KeyChain
// collaborator: identity/key/certificate generation and teardown. It
// exposes raw key handles directly rather than only a signing helper, so
// callers can build SignatureInfo and sign without a round trip through a
// separate signing service.
package keychain

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/DOCTOR-ANR/ndnperf/internal/wire"
)

// Material is one of Digest, RSA or ECDSA key material.
type Material struct {
	Type wire.SignatureType

	RSAPriv *rsa.PrivateKey
	RSAPub  *rsa.PublicKey

	ECDSAPriv *ecdsa.PrivateKey
	ECDSAPub  *ecdsa.PublicKey

	// CertName is the self-signed certificate's full name. KeyLocators
	// reference CertName.Prefix().
	CertName wire.Name

	identity string
}

// KeyChain tracks the identities/keys/certs it has generated so that
// Delete can remove exactly what it created and tests can assert, via Len,
// that nothing generated is left behind after ServerCore's shutdown.
type KeyChain struct {
	mu         sync.Mutex
	identities map[string]*Material
}

func New() *KeyChain {
	return &KeyChain{identities: make(map[string]*Material)}
}

// GenerateDigest returns Digest key material: no key, no certificate.
func (kc *KeyChain) GenerateDigest() *Material {
	return &Material{Type: wire.SignatureTypeDigestSha256}
}

// GenerateRSA creates an RSA identity, key pair and self-signed certificate.
// bits must be >= 1024.
func (kc *KeyChain) GenerateRSA(prefix string, bits int) (*Material, error) {
	if bits < 1024 {
		return nil, errors.Errorf("keychain: RSA key size %d below minimum 1024", bits)
	}
	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, errors.Wrap(err, "keychain: RSA key generation failed")
	}
	m := &Material{
		Type:    wire.SignatureTypeSha256WithRsa,
		RSAPriv: priv,
		RSAPub:  &priv.PublicKey,
	}
	kc.register(prefix, "rsa", m)
	return m, nil
}

// GenerateECDSA creates an ECDSA identity, key pair and self-signed
// certificate. bits selects the curve: 256 -> P-256, 384 -> P-384.
func (kc *KeyChain) GenerateECDSA(prefix string, bits int) (*Material, error) {
	var curve elliptic.Curve
	switch bits {
	case 256:
		curve = elliptic.P256()
	case 384:
		curve = elliptic.P384()
	default:
		return nil, errors.Errorf("keychain: unsupported ECDSA key size %d (want 256 or 384)", bits)
	}
	priv, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "keychain: ECDSA key generation failed")
	}
	m := &Material{
		Type:      wire.SignatureTypeSha256WithEcdsa,
		ECDSAPriv: priv,
		ECDSAPub:  &priv.PublicKey,
	}
	kc.register(prefix, "ecdsa", m)
	return m, nil
}

// register issues a synthetic self-signed certificate name and records the
// identity so Delete can find it again at shutdown. A further key generated
// under the same prefix and scheme gets a numbered identity
// ("prefix/KEY/scheme-2", ...) instead of replacing the earlier one.
func (kc *KeyChain) register(prefix, scheme string, m *Material) {
	kc.mu.Lock()
	defer kc.mu.Unlock()

	identity := fmt.Sprintf("%s/KEY/%s", prefix, scheme)
	for n := 2; kc.identities[identity] != nil; n++ {
		identity = fmt.Sprintf("%s/KEY/%s-%d", prefix, scheme, n)
	}
	m.identity = identity
	m.CertName = wire.ParseName(identity + "/self/%FD%01")
	kc.identities[identity] = m
}

// Delete removes the generated identity/key/certificate for m. Safe to call
// on Digest material (a no-op, since nothing was registered).
func (kc *KeyChain) Delete(m *Material) {
	if m == nil || m.identity == "" {
		return
	}
	kc.mu.Lock()
	defer kc.mu.Unlock()
	delete(kc.identities, m.identity)
}

// Len reports how many generated identities remain, used by tests asserting
// nothing generated is left in the KeyChain after shutdown.
func (kc *KeyChain) Len() int {
	kc.mu.Lock()
	defer kc.mu.Unlock()
	return len(kc.identities)
}
