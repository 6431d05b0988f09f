// Package minsig implements BLS signatures over BLS12-381 with signatures
// in G1 and public keys in G2. Signatures compress to 48 bytes, public keys
// to 96. For the symmetric configuration see package minpk.
package minsig

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/kysee/bls-sigs/sig"
)

// Compressed encoding sizes for this configuration.
const (
	SignatureBytes = bls12381.SizeOfG1AffineCompressed
	PublicKeyBytes = bls12381.SizeOfG2AffineCompressed
)

var (
	g2Gen    bls12381.G2Affine
	g2GenNeg bls12381.G2Affine
)

func init() {
	_, _, _, g2Gen = bls12381.Generators()
	g2GenNeg.Neg(&g2Gen)
}

// hashToCurve maps a message into G1 under the one-byte ciphersuite
// domain separator.
func hashToCurve(msg []byte, ciphersuite byte) (bls12381.G1Affine, error) {
	return bls12381.HashToG1(msg, []byte{ciphersuite})
}

// KeyGen derives the secret exponent x' from ikm and returns it together
// with the public key g2^{x'}. An all-zero scalar yields the identity
// public key; rejecting that is up to the caller.
func KeyGen(ikm []byte) (fr.Element, bls12381.G2Affine) {
	x := sig.XPrimeFromIKM(ikm)

	var xi big.Int
	var pk bls12381.G2Affine
	pk.ScalarMultiplicationBase(x.BigInt(&xi))
	return x, pk
}

// CoreSign hashes msg to G1 and multiplies by the secret exponent.
func CoreSign(x fr.Element, msg []byte, ciphersuite byte) bls12381.G1Affine {
	p, err := hashToCurve(msg, ciphersuite)
	if err != nil {
		panic(err)
	}

	var xi big.Int
	p.ScalarMultiplication(&p, x.BigInt(&xi))
	return p
}

// CoreVerify checks e(H(msg), pk) * e(s, -g2) == 1 with a single Miller
// loop and one final exponentiation. Using the negated generator in the
// second pair turns the equality e(H(msg), pk) == e(s, g2) into a
// product-equals-one check, so both pairs share the loop.
func CoreVerify(pk bls12381.G2Affine, s bls12381.G1Affine, msg []byte, ciphersuite byte) bool {
	p, err := hashToCurve(msg, ciphersuite)
	if err != nil {
		return false
	}

	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{p, s},
		[]bls12381.G2Affine{pk, g2GenNeg},
	)
	if err != nil {
		return false
	}
	return ok
}

// Aggregate sums signatures in G1. The empty slice yields the identity
// element, so aggregation is associative and commutative with no special
// cases.
func Aggregate(sigs []bls12381.G1Affine) bls12381.G1Affine {
	var agg bls12381.G1Affine
	agg.SetInfinity()
	for i := range sigs {
		agg.Add(&agg, &sigs[i])
	}
	return agg
}

// CoreAggregateVerify checks prod_i e(H(msgs[i]), pks[i]) * e(s, -g2) == 1
// over n+1 pairs in one Miller loop. A pks/msgs length mismatch rejects;
// it never panics.
func CoreAggregateVerify(pks []bls12381.G2Affine, msgs [][]byte, s bls12381.G1Affine, ciphersuite byte) bool {
	if len(pks) != len(msgs) {
		return false
	}

	ps := make([]bls12381.G1Affine, 0, len(msgs)+1)
	qs := make([]bls12381.G2Affine, 0, len(pks)+1)
	for i := range msgs {
		p, err := hashToCurve(msgs[i], ciphersuite)
		if err != nil {
			return false
		}
		ps = append(ps, p)
		qs = append(qs, pks[i])
	}
	ps = append(ps, s)
	qs = append(qs, g2GenNeg)

	ok, err := bls12381.PairingCheck(ps, qs)
	if err != nil {
		return false
	}
	return ok
}
