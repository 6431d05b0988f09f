package minpk

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// The three ciphersuite variants mirror package minsig with the groups
// swapped; see the commentary there for the rogue-key rationale behind
// each one.
var (
	Basic BasicScheme
	Aug   AugScheme
	Pop   PopScheme
)

// BasicScheme rejects aggregate verification over repeated messages.
type BasicScheme struct{}

func (BasicScheme) Sign(x fr.Element, msg []byte, ciphersuite byte) bls12381.G2Affine {
	return CoreSign(x, msg, ciphersuite)
}

func (BasicScheme) Verify(pk bls12381.G1Affine, s bls12381.G2Affine, msg []byte, ciphersuite byte) bool {
	return CoreVerify(pk, s, msg, ciphersuite)
}

// AggregateVerify rejects if any two messages are byte-equal, regardless
// of whether the signature is algebraically valid.
func (BasicScheme) AggregateVerify(pks []bls12381.G1Affine, msgs [][]byte, s bls12381.G2Affine, ciphersuite byte) bool {
	seen := make(map[string]struct{}, len(msgs))
	for _, msg := range msgs {
		seen[string(msg)] = struct{}{}
	}
	if len(seen) != len(msgs) {
		return false
	}
	return CoreAggregateVerify(pks, msgs, s, ciphersuite)
}

// AugScheme prefixes every message with the signer's compressed public
// key before hashing. The prefix here is 48 bytes, the G1 compressed
// size, where minsig uses 96.
type AugScheme struct{}

func augMessage(pk *bls12381.G1Affine, msg []byte) []byte {
	enc := pk.Bytes()
	out := make([]byte, 0, len(enc)+len(msg))
	out = append(out, enc[:]...)
	return append(out, msg...)
}

// Sign recomputes the public key from x so the framing always matches
// the key the verifier will use.
func (AugScheme) Sign(x fr.Element, msg []byte, ciphersuite byte) bls12381.G2Affine {
	var xi big.Int
	var pk bls12381.G1Affine
	pk.ScalarMultiplicationBase(x.BigInt(&xi))
	return CoreSign(x, augMessage(&pk, msg), ciphersuite)
}

func (AugScheme) Verify(pk bls12381.G1Affine, s bls12381.G2Affine, msg []byte, ciphersuite byte) bool {
	return CoreVerify(pk, s, augMessage(&pk, msg), ciphersuite)
}

func (AugScheme) AggregateVerify(pks []bls12381.G1Affine, msgs [][]byte, s bls12381.G2Affine, ciphersuite byte) bool {
	if len(pks) != len(msgs) {
		return false
	}
	framed := make([][]byte, len(msgs))
	for i := range msgs {
		framed[i] = augMessage(&pks[i], msgs[i])
	}
	return CoreAggregateVerify(pks, framed, s, ciphersuite)
}

// PopScheme leaves messages unframed and unconstrained; rogue keys are
// ruled out by each public key carrying a proof of possession signed
// under a ciphersuite byte distinct from the signing one.
type PopScheme struct{}

func (PopScheme) Sign(x fr.Element, msg []byte, ciphersuite byte) bls12381.G2Affine {
	return CoreSign(x, msg, ciphersuite)
}

func (PopScheme) Verify(pk bls12381.G1Affine, s bls12381.G2Affine, msg []byte, ciphersuite byte) bool {
	return CoreVerify(pk, s, msg, ciphersuite)
}

func (PopScheme) AggregateVerify(pks []bls12381.G1Affine, msgs [][]byte, s bls12381.G2Affine, ciphersuite byte) bool {
	return CoreAggregateVerify(pks, msgs, s, ciphersuite)
}

// MultisigVerify accepts the aggregate signature of several signers on
// one shared message: sum the public keys and core-verify under the sum.
func (PopScheme) MultisigVerify(pks []bls12381.G1Affine, s bls12381.G2Affine, msg []byte, ciphersuite byte) bool {
	var apk bls12381.G1Affine
	apk.SetInfinity()
	for i := range pks {
		apk.Add(&apk, &pks[i])
	}
	return CoreVerify(apk, s, msg, ciphersuite)
}

// PopProve signs one's own compressed public key, deriving the key pair
// from ikm first.
func (PopScheme) PopProve(ikm []byte, ciphersuite byte) bls12381.G2Affine {
	x, pk := KeyGen(ikm)
	enc := pk.Bytes()
	return CoreSign(x, enc[:], ciphersuite)
}

// PopProveWithBothKeys is PopProve for callers that already hold both
// halves of the key pair.
func (PopScheme) PopProveWithBothKeys(x fr.Element, pk *bls12381.G1Affine, ciphersuite byte) bls12381.G2Affine {
	enc := pk.Bytes()
	return CoreSign(x, enc[:], ciphersuite)
}

// PopVerify checks a proof of possession against pk's own serialization.
func (PopScheme) PopVerify(pk bls12381.G1Affine, pop bls12381.G2Affine, ciphersuite byte) bool {
	enc := pk.Bytes()
	return CoreVerify(pk, pop, enc[:], ciphersuite)
}
