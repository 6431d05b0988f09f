package main

import (
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/kysee/bls-sigs/minpk"
	"github.com/kysee/bls-sigs/minsig"
)

// backend adapts one signature configuration to the byte-oriented CLI.
// All points cross this boundary in compressed form; SetBytes performs
// the curve and subgroup checks on the way in.
type backend struct {
	keyGen     func(ikm []byte) (sk, pk []byte)
	sign       func(sk, msg []byte, scheme string, cs byte) ([]byte, error)
	verify     func(pk, s, msg []byte, scheme string, cs byte) (bool, error)
	aggregate  func(sigs [][]byte) ([]byte, error)
	aggVerify  func(pks, msgs [][]byte, s []byte, scheme string, cs byte) (bool, error)
	msigVerify func(pks [][]byte, s, msg []byte, cs byte) (bool, error)
	popProve   func(sk, pk []byte, cs byte) ([]byte, error)
	popVerify  func(pk, s []byte, cs byte) (bool, error)
}

func scalar(b []byte) fr.Element {
	var x fr.Element
	x.SetBytes(b)
	return x
}

func g1Point(b []byte, what string) (bls12381.G1Affine, error) {
	var p bls12381.G1Affine
	if _, err := p.SetBytes(b); err != nil {
		return p, fmt.Errorf("failed to deserialize %s: %w", what, err)
	}
	return p, nil
}

func g2Point(b []byte, what string) (bls12381.G2Affine, error) {
	var p bls12381.G2Affine
	if _, err := p.SetBytes(b); err != nil {
		return p, fmt.Errorf("failed to deserialize %s: %w", what, err)
	}
	return p, nil
}

// minpkBackend wires the sig-in-G2 configuration: 48-byte public keys,
// 96-byte signatures.
func minpkBackend() backend {
	return backend{
		keyGen: func(ikm []byte) ([]byte, []byte) {
			x, pk := minpk.KeyGen(ikm)
			xb, pkb := x.Bytes(), pk.Bytes()
			return xb[:], pkb[:]
		},
		sign: func(sk, msg []byte, scheme string, cs byte) ([]byte, error) {
			var s bls12381.G2Affine
			switch scheme {
			case "basic":
				s = minpk.Basic.Sign(scalar(sk), msg, cs)
			case "aug":
				s = minpk.Aug.Sign(scalar(sk), msg, cs)
			case "pop":
				s = minpk.Pop.Sign(scalar(sk), msg, cs)
			default:
				return nil, fmt.Errorf("unknown scheme %q", scheme)
			}
			sb := s.Bytes()
			return sb[:], nil
		},
		verify: func(pkb, sb, msg []byte, scheme string, cs byte) (bool, error) {
			pk, err := g1Point(pkb, "public key")
			if err != nil {
				return false, err
			}
			s, err := g2Point(sb, "signature")
			if err != nil {
				return false, err
			}
			switch scheme {
			case "basic":
				return minpk.Basic.Verify(pk, s, msg, cs), nil
			case "aug":
				return minpk.Aug.Verify(pk, s, msg, cs), nil
			case "pop":
				return minpk.Pop.Verify(pk, s, msg, cs), nil
			}
			return false, fmt.Errorf("unknown scheme %q", scheme)
		},
		aggregate: func(sigs [][]byte) ([]byte, error) {
			points := make([]bls12381.G2Affine, len(sigs))
			for i, sb := range sigs {
				p, err := g2Point(sb, fmt.Sprintf("signature %d", i))
				if err != nil {
					return nil, err
				}
				points[i] = p
			}
			agg := minpk.Aggregate(points)
			ab := agg.Bytes()
			return ab[:], nil
		},
		aggVerify: func(pks, msgs [][]byte, sb []byte, scheme string, cs byte) (bool, error) {
			points := make([]bls12381.G1Affine, len(pks))
			for i, pkb := range pks {
				p, err := g1Point(pkb, fmt.Sprintf("public key %d", i))
				if err != nil {
					return false, err
				}
				points[i] = p
			}
			s, err := g2Point(sb, "signature")
			if err != nil {
				return false, err
			}
			switch scheme {
			case "basic":
				return minpk.Basic.AggregateVerify(points, msgs, s, cs), nil
			case "aug":
				return minpk.Aug.AggregateVerify(points, msgs, s, cs), nil
			case "pop":
				return minpk.Pop.AggregateVerify(points, msgs, s, cs), nil
			}
			return false, fmt.Errorf("unknown scheme %q", scheme)
		},
		msigVerify: func(pks [][]byte, sb, msg []byte, cs byte) (bool, error) {
			points := make([]bls12381.G1Affine, len(pks))
			for i, pkb := range pks {
				p, err := g1Point(pkb, fmt.Sprintf("public key %d", i))
				if err != nil {
					return false, err
				}
				points[i] = p
			}
			s, err := g2Point(sb, "signature")
			if err != nil {
				return false, err
			}
			return minpk.Pop.MultisigVerify(points, s, msg, cs), nil
		},
		popProve: func(sk, pkb []byte, cs byte) ([]byte, error) {
			pk, err := g1Point(pkb, "public key")
			if err != nil {
				return nil, err
			}
			pop := minpk.Pop.PopProveWithBothKeys(scalar(sk), &pk, cs)
			pb := pop.Bytes()
			return pb[:], nil
		},
		popVerify: func(pkb, sb []byte, cs byte) (bool, error) {
			pk, err := g1Point(pkb, "public key")
			if err != nil {
				return false, err
			}
			pop, err := g2Point(sb, "proof of possession")
			if err != nil {
				return false, err
			}
			return minpk.Pop.PopVerify(pk, pop, cs), nil
		},
	}
}

// minsigBackend wires the sig-in-G1 configuration: 96-byte public keys,
// 48-byte signatures.
func minsigBackend() backend {
	return backend{
		keyGen: func(ikm []byte) ([]byte, []byte) {
			x, pk := minsig.KeyGen(ikm)
			xb, pkb := x.Bytes(), pk.Bytes()
			return xb[:], pkb[:]
		},
		sign: func(sk, msg []byte, scheme string, cs byte) ([]byte, error) {
			var s bls12381.G1Affine
			switch scheme {
			case "basic":
				s = minsig.Basic.Sign(scalar(sk), msg, cs)
			case "aug":
				s = minsig.Aug.Sign(scalar(sk), msg, cs)
			case "pop":
				s = minsig.Pop.Sign(scalar(sk), msg, cs)
			default:
				return nil, fmt.Errorf("unknown scheme %q", scheme)
			}
			sb := s.Bytes()
			return sb[:], nil
		},
		verify: func(pkb, sb, msg []byte, scheme string, cs byte) (bool, error) {
			pk, err := g2Point(pkb, "public key")
			if err != nil {
				return false, err
			}
			s, err := g1Point(sb, "signature")
			if err != nil {
				return false, err
			}
			switch scheme {
			case "basic":
				return minsig.Basic.Verify(pk, s, msg, cs), nil
			case "aug":
				return minsig.Aug.Verify(pk, s, msg, cs), nil
			case "pop":
				return minsig.Pop.Verify(pk, s, msg, cs), nil
			}
			return false, fmt.Errorf("unknown scheme %q", scheme)
		},
		aggregate: func(sigs [][]byte) ([]byte, error) {
			points := make([]bls12381.G1Affine, len(sigs))
			for i, sb := range sigs {
				p, err := g1Point(sb, fmt.Sprintf("signature %d", i))
				if err != nil {
					return nil, err
				}
				points[i] = p
			}
			agg := minsig.Aggregate(points)
			ab := agg.Bytes()
			return ab[:], nil
		},
		aggVerify: func(pks, msgs [][]byte, sb []byte, scheme string, cs byte) (bool, error) {
			points := make([]bls12381.G2Affine, len(pks))
			for i, pkb := range pks {
				p, err := g2Point(pkb, fmt.Sprintf("public key %d", i))
				if err != nil {
					return false, err
				}
				points[i] = p
			}
			s, err := g1Point(sb, "signature")
			if err != nil {
				return false, err
			}
			switch scheme {
			case "basic":
				return minsig.Basic.AggregateVerify(points, msgs, s, cs), nil
			case "aug":
				return minsig.Aug.AggregateVerify(points, msgs, s, cs), nil
			case "pop":
				return minsig.Pop.AggregateVerify(points, msgs, s, cs), nil
			}
			return false, fmt.Errorf("unknown scheme %q", scheme)
		},
		msigVerify: func(pks [][]byte, sb, msg []byte, cs byte) (bool, error) {
			points := make([]bls12381.G2Affine, len(pks))
			for i, pkb := range pks {
				p, err := g2Point(pkb, fmt.Sprintf("public key %d", i))
				if err != nil {
					return false, err
				}
				points[i] = p
			}
			s, err := g1Point(sb, "signature")
			if err != nil {
				return false, err
			}
			return minsig.Pop.MultisigVerify(points, s, msg, cs), nil
		},
		popProve: func(sk, pkb []byte, cs byte) ([]byte, error) {
			pk, err := g2Point(pkb, "public key")
			if err != nil {
				return nil, err
			}
			pop := minsig.Pop.PopProveWithBothKeys(scalar(sk), &pk, cs)
			pb := pop.Bytes()
			return pb[:], nil
		},
		popVerify: func(pkb, sb []byte, cs byte) (bool, error) {
			pk, err := g2Point(pkb, "public key")
			if err != nil {
				return false, err
			}
			pop, err := g1Point(sb, "proof of possession")
			if err != nil {
				return false, err
			}
			return minsig.Pop.PopVerify(pk, pop, cs), nil
		},
	}
}
