package minsig

import (
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/stretchr/testify/require"
)

const testCS = byte(0x01)

func testIKM(tag byte) []byte {
	ikm := make([]byte, 32)
	for i := range ikm {
		ikm[i] = byte(i)
	}
	ikm[31] = tag
	return ikm
}

func TestKeyGenDeterministic(t *testing.T) {
	x1, pk1 := KeyGen(testIKM(0))
	x2, pk2 := KeyGen(testIKM(0))
	require.True(t, x1.Equal(&x2))
	require.True(t, pk1.Equal(&pk2))

	_, pk3 := KeyGen(testIKM(1))
	require.False(t, pk1.Equal(&pk3))
}

func TestSignVerify(t *testing.T) {
	x, pk := KeyGen(testIKM(0))
	msg := []byte("hello")

	s := CoreSign(x, msg, testCS)
	require.True(t, CoreVerify(pk, s, msg, testCS))

	// Flipping byte 0 of the message must reject.
	bad := append([]byte{}, msg...)
	bad[0] ^= 0x01
	require.False(t, CoreVerify(pk, s, bad, testCS))
}

func TestVerifyTamper(t *testing.T) {
	x, pk := KeyGen(testIKM(0))
	msg := []byte("tamper target")
	s := CoreSign(x, msg, testCS)

	// Wrong ciphersuite byte.
	require.False(t, CoreVerify(pk, s, msg, testCS+1))

	// Wrong public key.
	_, otherPk := KeyGen(testIKM(7))
	require.False(t, CoreVerify(otherPk, s, msg, testCS))

	// Perturbed signature: still a valid G1 point, wrong value.
	_, _, g1Gen, _ := bls12381.Generators()
	var perturbed bls12381.G1Affine
	perturbed.Add(&s, &g1Gen)
	require.False(t, CoreVerify(pk, perturbed, msg, testCS))
}

func TestAggregateVerify(t *testing.T) {
	msgs := [][]byte{[]byte("msg-0"), []byte("msg-1"), []byte("msg-2")}
	pks := make([]bls12381.G2Affine, len(msgs))
	sigs := make([]bls12381.G1Affine, len(msgs))
	for i := range msgs {
		x, pk := KeyGen(testIKM(byte(i)))
		pks[i] = pk
		sigs[i] = CoreSign(x, msgs[i], testCS)
	}

	agg := Aggregate(sigs)
	require.True(t, CoreAggregateVerify(pks, msgs, agg, testCS))

	// Any permutation of the inputs aggregates to the same point.
	permuted := Aggregate([]bls12381.G1Affine{sigs[2], sigs[0], sigs[1]})
	require.True(t, agg.Equal(&permuted))

	// Swapping two messages between signers must reject.
	swapped := [][]byte{msgs[1], msgs[0], msgs[2]}
	require.False(t, CoreAggregateVerify(pks, swapped, agg, testCS))
}

func TestAggregateVerifyLengthMismatch(t *testing.T) {
	x, pk := KeyGen(testIKM(0))
	s := CoreSign(x, []byte("m"), testCS)

	ok := CoreAggregateVerify(
		[]bls12381.G2Affine{pk, pk},
		[][]byte{[]byte("m")},
		s, testCS,
	)
	require.False(t, ok)
}

func TestEmptyAggregate(t *testing.T) {
	agg := Aggregate(nil)
	require.True(t, agg.IsInfinity())

	// With no pairs left, the check reduces to e(sig, -g2) == 1, which
	// holds iff the signature is the identity.
	require.True(t, CoreAggregateVerify(nil, nil, agg, testCS))

	x, _ := KeyGen(testIKM(0))
	nonIdentity := CoreSign(x, []byte("m"), testCS)
	require.False(t, CoreAggregateVerify(nil, nil, nonIdentity, testCS))
}

func TestAggregateSingleton(t *testing.T) {
	x, pk := KeyGen(testIKM(3))
	msg := []byte("solo")
	s := CoreSign(x, msg, testCS)

	agg := Aggregate([]bls12381.G1Affine{s})
	require.True(t, agg.Equal(&s))
	require.True(t, CoreAggregateVerify([]bls12381.G2Affine{pk}, [][]byte{msg}, agg, testCS))
}
