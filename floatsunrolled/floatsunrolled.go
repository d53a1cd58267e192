// floatsunrolled provides manually unrolled float64 kernels for the hot inner
// loops of gradient descent training. Inspired by the SIMD blog post
// https://github.com/camdencheek/simd_blog/blob/main/main.go
//
// Inputs of any length are accepted. The aligned prefix is processed in
// batches of UnrollBatch and the remainder falls through to a scalar loop.
package floatsunrolled

import "errors"

const UnrollBatch = 4

var ErrSliceLengthMismatch = errors.New("slices must have equal lengths")

// Dot returns the dot product of a and b.
func Dot(a, b []float64) float64 {
	if len(a) != len(b) {
		panic(ErrSliceLengthMismatch)
	}

	var sum float64
	aligned := len(a) - len(a)%UnrollBatch
	for i := 0; i < aligned; i += UnrollBatch {
		aTmp := a[i : i+UnrollBatch : i+UnrollBatch]
		bTmp := b[i : i+UnrollBatch : i+UnrollBatch]
		s0 := aTmp[0] * bTmp[0]
		s1 := aTmp[1] * bTmp[1]
		s2 := aTmp[2] * bTmp[2]
		s3 := aTmp[3] * bTmp[3]
		sum += s0 + s1 + s2 + s3
	}
	for i := aligned; i < len(a); i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// AddScaled adds c*s elementwise into dst.
func AddScaled(dst []float64, c float64, s []float64) []float64 {
	if len(dst) != len(s) {
		panic(ErrSliceLengthMismatch)
	}

	aligned := len(s) - len(s)%UnrollBatch
	for i := 0; i < aligned; i += UnrollBatch {
		dstTmp := dst[i : i+UnrollBatch : i+UnrollBatch]
		sTmp := s[i : i+UnrollBatch : i+UnrollBatch]
		dstTmp[0] += c * sTmp[0]
		dstTmp[1] += c * sTmp[1]
		dstTmp[2] += c * sTmp[2]
		dstTmp[3] += c * sTmp[3]
	}
	for i := aligned; i < len(s); i++ {
		dst[i] += c * s[i]
	}
	return dst
}

// Scale multiplies every element of s by c in place.
func Scale(c float64, s []float64) []float64 {
	aligned := len(s) - len(s)%UnrollBatch
	for i := 0; i < aligned; i += UnrollBatch {
		sTmp := s[i : i+UnrollBatch : i+UnrollBatch]
		sTmp[0] *= c
		sTmp[1] *= c
		sTmp[2] *= c
		sTmp[3] *= c
	}
	for i := aligned; i < len(s); i++ {
		s[i] *= c
	}
	return s
}
