// Package minpk implements BLS signatures over BLS12-381 with public keys
// in G1 and signatures in G2, the configuration with 48-byte public keys
// used by eth2. For the symmetric configuration see package minsig.
package minpk

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/kysee/bls-sigs/sig"
)

// Compressed encoding sizes for this configuration.
const (
	SignatureBytes = bls12381.SizeOfG2AffineCompressed
	PublicKeyBytes = bls12381.SizeOfG1AffineCompressed
)

var (
	g1Gen    bls12381.G1Affine
	g1GenNeg bls12381.G1Affine
)

func init() {
	_, _, g1Gen, _ = bls12381.Generators()
	g1GenNeg.Neg(&g1Gen)
}

// hashToCurve maps a message into G2 under the one-byte ciphersuite
// domain separator.
func hashToCurve(msg []byte, ciphersuite byte) (bls12381.G2Affine, error) {
	return bls12381.HashToG2(msg, []byte{ciphersuite})
}

// KeyGen derives the secret exponent x' from ikm and returns it together
// with the public key g1^{x'}. An all-zero scalar yields the identity
// public key; rejecting that is up to the caller.
func KeyGen(ikm []byte) (fr.Element, bls12381.G1Affine) {
	x := sig.XPrimeFromIKM(ikm)

	var xi big.Int
	var pk bls12381.G1Affine
	pk.ScalarMultiplicationBase(x.BigInt(&xi))
	return x, pk
}

// CoreSign hashes msg to G2 and multiplies by the secret exponent.
func CoreSign(x fr.Element, msg []byte, ciphersuite byte) bls12381.G2Affine {
	p, err := hashToCurve(msg, ciphersuite)
	if err != nil {
		panic(err)
	}

	var xi big.Int
	p.ScalarMultiplication(&p, x.BigInt(&xi))
	return p
}

// CoreVerify checks e(pk, H(msg)) * e(-g1, s) == 1 with a single Miller
// loop and one final exponentiation. The pairing takes (G1, G2) ordered
// arguments, so here the public key supplies the left slot and the
// negated G1 generator pairs against the signature.
func CoreVerify(pk bls12381.G1Affine, s bls12381.G2Affine, msg []byte, ciphersuite byte) bool {
	p, err := hashToCurve(msg, ciphersuite)
	if err != nil {
		return false
	}

	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{pk, g1GenNeg},
		[]bls12381.G2Affine{p, s},
	)
	if err != nil {
		return false
	}
	return ok
}

// Aggregate sums signatures in G2. The empty slice yields the identity
// element.
func Aggregate(sigs []bls12381.G2Affine) bls12381.G2Affine {
	var agg bls12381.G2Affine
	agg.SetInfinity()
	for i := range sigs {
		agg.Add(&agg, &sigs[i])
	}
	return agg
}

// CoreAggregateVerify checks prod_i e(pks[i], H(msgs[i])) * e(-g1, s) == 1
// over n+1 pairs in one Miller loop. A pks/msgs length mismatch rejects;
// it never panics.
func CoreAggregateVerify(pks []bls12381.G1Affine, msgs [][]byte, s bls12381.G2Affine, ciphersuite byte) bool {
	if len(pks) != len(msgs) {
		return false
	}

	ps := make([]bls12381.G1Affine, 0, len(pks)+1)
	qs := make([]bls12381.G2Affine, 0, len(msgs)+1)
	for i := range msgs {
		q, err := hashToCurve(msgs[i], ciphersuite)
		if err != nil {
			return false
		}
		ps = append(ps, pks[i])
		qs = append(qs, q)
	}
	ps = append(ps, g1GenNeg)
	qs = append(qs, s)

	ok, err := bls12381.PairingCheck(ps, qs)
	if err != nil {
		return false
	}
	return ok
}
