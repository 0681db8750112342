package keychain

import (
	"crypto/sha256"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
)

// TPMFileDir is the per-user directory a file-based TPM stores private keys
// under, matching the on-disk ndn-cxx layout.
const TPMFileDir = ".ndn/ndnsec-tpm-file"

// TPMKeyPath derives the on-disk path of a private key file from its key
// URI, matching the existing file-based TPM layout: SHA-256 of the key URI,
// base64-standard-encoded, '/' replaced with '%', then ".pri" appended,
// under the per-user TPM directory.
//
// This is a compatibility shim only: KeyChain in this package exposes key
// material directly (see Material) and never reads this path itself. The
// function exists so tooling expecting the ndn-cxx TPM layout can still
// locate keys generated elsewhere with the same naming convention.
func TPMKeyPath(homeDir, keyURI string) string {
	digest := sha256.Sum256([]byte(keyURI))
	encoded := base64.StdEncoding.EncodeToString(digest[:])
	encoded = strings.ReplaceAll(encoded, "/", "%")
	return filepath.Join(homeDir, TPMFileDir, encoded+".pri")
}

// DefaultTPMKeyPath is TPMKeyPath rooted at the current user's home
// directory, falling back to "." if it cannot be determined.
func DefaultTPMKeyPath(keyURI string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return TPMKeyPath(home, keyURI)
}
