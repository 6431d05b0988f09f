// Package sig holds the kernel shared by both signature configurations:
// deriving the secret exponent x' from input key material.
package sig

import (
	"crypto/sha256"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/crypto/hkdf"
)

// okmLen is the HKDF output length used for hashing to Fr. 48 bytes of
// big-endian integer reduced mod r keeps the bias below 2^-128.
const okmLen = 48

// XPrimeFromIKM derives the secret exponent x' from input key material.
// HKDF-SHA256 with empty salt and empty info, exactly 48 bytes of output,
// then reduction into Fr. Deterministic: the same ikm always yields the
// same scalar.
func XPrimeFromIKM(ikm []byte) fr.Element {
	var okm [okmLen]byte
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, nil, nil), okm[:]); err != nil {
		// HKDF-SHA256 can produce up to 255*32 bytes; a short read at 48 is
		// backend misuse, not an input condition.
		panic(err)
	}

	var x fr.Element
	x.SetBytes(okm[:])
	return x
}
