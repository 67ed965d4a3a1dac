// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package aabb

import "math"

// discriminantEpsilon is the clamp tolerance from spec: any discriminant
// that is negative but whose absolute value is smaller than this is
// treated as exactly zero (a grazing/tangent hit) rather than "no root".
const discriminantEpsilon = 1e-13

// QuadraticSolveReal solves A*t^2 + B*t + C = 0 for real roots, returning
// the roots in ascending order and the count of real roots (0, 1, or 2).
// A near-zero negative discriminant (within discriminantEpsilon) is
// clamped to zero, producing a single repeated root, rather than being
// reported as "no roots" — this preserves grazing contacts as a single
// tangent point instead of dropping them to floating point noise.
func QuadraticSolveReal(a, b, c float64) (roots [2]float64, n int) {
	if a == 0 {
		if b == 0 {
			return roots, 0
		}
		roots[0] = -c / b
		return roots, 1
	}
	disc := b*b - 4*a*c
	switch {
	case disc < -discriminantEpsilon:
		return roots, 0
	case disc < 0:
		disc = 0
	}
	sq := math.Sqrt(disc)
	inv := 1 / (2 * a)
	r0 := (-b - sq) * inv
	r1 := (-b + sq) * inv
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	roots[0], roots[1] = r0, r1
	if disc == 0 {
		return roots, 1
	}
	return roots, 2
}

// CubicSolveReal solves t^3 + A*t^2 + B*t + C = 0 (monic form) for real
// roots using the trigonometric method, returning them in ascending
// order. Used by the quartic solver's resolvent cubic.
func CubicSolveReal(a, b, c float64) (roots [3]float64, n int) {
	q := (3*b - a*a) / 9
	r := (9*a*b - 27*c - 2*a*a*a) / 54
	disc := q*q*q + r*r
	aDiv3 := a / 3

	switch {
	case disc > discriminantEpsilon:
		sq := math.Sqrt(disc)
		s := math.Cbrt(r + sq)
		t := math.Cbrt(r - sq)
		roots[0] = s + t - aDiv3
		return roots, 1
	case disc > -discriminantEpsilon:
		// disc ~= 0: a double or triple real root.
		rc := math.Cbrt(r)
		roots[0] = 2*rc - aDiv3
		roots[1] = -rc - aDiv3
		if roots[0] > roots[1] {
			roots[0], roots[1] = roots[1], roots[0]
		}
		return roots, 2
	default:
		theta := math.Acos(r / math.Sqrt(-q*q*q))
		sq := 2 * math.Sqrt(-q)
		roots[0] = sq*math.Cos(theta/3) - aDiv3
		roots[1] = sq*math.Cos((theta+2*math.Pi)/3) - aDiv3
		roots[2] = sq*math.Cos((theta+4*math.Pi)/3) - aDiv3
		sortAsc3(&roots)
		return roots, 3
	}
}

func sortAsc3(r *[3]float64) {
	if r[0] > r[1] {
		r[0], r[1] = r[1], r[0]
	}
	if r[1] > r[2] {
		r[1], r[2] = r[2], r[1]
	}
	if r[0] > r[1] {
		r[0], r[1] = r[1], r[0]
	}
}

// QuarticSolveReal solves t^4 + A*t^3 + B*t^2 + C*t + D = 0 (monic form)
// for real roots via Ferrari's method, used by the torus intersector
// (spec §4.1). Roots are returned in ascending order; callers wanting
// the torus front/back parity should index into this ascending order as
// specified (root 0, 2, ... front; 1, 3, ... back).
func QuarticSolveReal(a, b, c, d float64) (roots [4]float64, n int) {
	// Resolvent cubic for depressed form y^4 + p*y^2 + q*y + r via the
	// substitution t = y - a/4.
	aa := a * a
	p := b - 3*aa/8
	q := c - a*b/2 + aa*a/8
	r := d - a*c/4 + aa*b/16 - 3*aa*aa/256
	shift := a / 4

	if qIsZero(q) {
		// Biquadratic: y^4 + p*y^2 + r = 0.
		sub, m := QuadraticSolveReal(1, p, r)
		idx := 0
		for i := 0; i < m; i++ {
			if sub[i] < 0 {
				continue
			}
			y := math.Sqrt(sub[i])
			roots[idx] = y - shift
			idx++
			if y != 0 {
				roots[idx] = -y - shift
				idx++
			}
		}
		sortAscN(roots[:idx])
		return roots, idx
	}

	// Resolvent cubic: z^3 + 2p*z^2 + (p^2-4r)*z - q^2 = 0.
	cubicRoots, cn := CubicSolveReal(2*p, p*p-4*r, -q*q)
	z := cubicRoots[0]
	for i := 1; i < cn; i++ {
		if cubicRoots[i] > z {
			z = cubicRoots[i]
		}
	}
	if z < 0 {
		z = 0
	}
	u := math.Sqrt(z)
	idx := 0
	if u == 0 {
		sub, m := QuadraticSolveReal(1, 0, p+math.Sqrt(math.Max(p*p-4*r, 0)))
		for i := 0; i < m; i++ {
			roots[idx] = sub[i] - shift
			idx++
		}
	} else {
		s := q / (2 * u)
		sub1, m1 := QuadraticSolveReal(1, u, p/2+u*u/2-s)
		for i := 0; i < m1; i++ {
			roots[idx] = sub1[i] - shift
			idx++
		}
		sub2, m2 := QuadraticSolveReal(1, -u, p/2+u*u/2+s)
		for i := 0; i < m2; i++ {
			roots[idx] = sub2[i] - shift
			idx++
		}
	}
	sortAscN(roots[:idx])
	return roots, idx
}

func qIsZero(q float64) bool { return math.Abs(q) < 1e-12 }

func sortAscN(r []float64) {
	for i := 1; i < len(r); i++ {
		for j := i; j > 0 && r[j-1] > r[j]; j-- {
			r[j-1], r[j] = r[j], r[j-1]
		}
	}
}
