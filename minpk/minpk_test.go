package minpk

import (
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/stretchr/testify/require"
)

const (
	testCS    = byte(0x01)
	testPopCS = byte(0x02)
)

func testIKM(tag byte) []byte {
	ikm := make([]byte, 32)
	for i := range ikm {
		ikm[i] = byte(i)
	}
	ikm[31] = tag
	return ikm
}

// The spec's first end-to-end scenario: ikm 0x00..1f, msg "hello".
func TestSignVerifyScenario(t *testing.T) {
	x, pk := KeyGen(testIKM(0x1f))
	msg := []byte("hello")

	s := CoreSign(x, msg, testCS)
	require.True(t, CoreVerify(pk, s, msg, testCS))

	bad := append([]byte{}, msg...)
	bad[0] ^= 0x01
	require.False(t, CoreVerify(pk, s, bad, testCS))
	require.False(t, CoreVerify(pk, s, msg, testCS^0xff))
}

func TestKeyGenDeterministic(t *testing.T) {
	x1, pk1 := KeyGen(testIKM(0))
	x2, pk2 := KeyGen(testIKM(0))
	require.True(t, x1.Equal(&x2))
	require.True(t, pk1.Equal(&pk2))
}

func TestEncodedSizes(t *testing.T) {
	x, pk := KeyGen(testIKM(0))
	s := CoreSign(x, []byte("m"), testCS)

	pkb := pk.Bytes()
	sb := s.Bytes()
	require.Len(t, pkb[:], PublicKeyBytes)
	require.Len(t, sb[:], SignatureBytes)
	require.Equal(t, 48, PublicKeyBytes)
	require.Equal(t, 96, SignatureBytes)
}

func TestVerifyTamper(t *testing.T) {
	x, pk := KeyGen(testIKM(0))
	msg := []byte("tamper target")
	s := CoreSign(x, msg, testCS)

	_, otherPk := KeyGen(testIKM(7))
	require.False(t, CoreVerify(otherPk, s, msg, testCS))

	_, _, _, g2Gen := bls12381.Generators()
	var perturbed bls12381.G2Affine
	perturbed.Add(&s, &g2Gen)
	require.False(t, CoreVerify(pk, perturbed, msg, testCS))
}

func TestAggregateVerify(t *testing.T) {
	msgs := [][]byte{[]byte("alpha"), []byte("beta"), []byte("gamma"), []byte("delta")}
	pks := make([]bls12381.G1Affine, len(msgs))
	sigs := make([]bls12381.G2Affine, len(msgs))
	for i := range msgs {
		x, pk := KeyGen(testIKM(byte(i)))
		pks[i] = pk
		sigs[i] = CoreSign(x, msgs[i], testCS)
	}

	agg := Aggregate(sigs)
	require.True(t, CoreAggregateVerify(pks, msgs, agg, testCS))

	// Aggregation is order-independent.
	reversed := Aggregate([]bls12381.G2Affine{sigs[3], sigs[2], sigs[1], sigs[0]})
	require.True(t, agg.Equal(&reversed))

	// Dropping one signer from the aggregate must reject.
	partial := Aggregate(sigs[:3])
	require.False(t, CoreAggregateVerify(pks, msgs, partial, testCS))
}

func TestAggregateVerifyLengthMismatch(t *testing.T) {
	x, pk := KeyGen(testIKM(0))
	s := CoreSign(x, []byte("m"), testCS)

	require.False(t, CoreAggregateVerify([]bls12381.G1Affine{pk}, nil, s, testCS))
	require.False(t, CoreAggregateVerify(nil, [][]byte{[]byte("m")}, s, testCS))
}

func TestEmptyAggregate(t *testing.T) {
	agg := Aggregate(nil)
	require.True(t, agg.IsInfinity())
	require.True(t, CoreAggregateVerify(nil, nil, agg, testCS))

	x, _ := KeyGen(testIKM(0))
	nonIdentity := CoreSign(x, []byte("m"), testCS)
	require.False(t, CoreAggregateVerify(nil, nil, nonIdentity, testCS))
}
