// SPDX-License-Identifier: EPL-2.0

package utils

import "encoding/binary"

// Float32ToInt16 clamps x to [-1,1] and scales it symmetrically by 32767.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int16(x * 32767)
}

// PutInt16LE encodes src as signed 16-bit little endian PCM into dst and
// returns the number of bytes written. It stops when dst is full.
func PutInt16LE(dst []byte, src []float32) int {
	n := min(len(src), len(dst)/2)
	for i := range n {
		binary.LittleEndian.PutUint16(dst[2*i:], uint16(Float32ToInt16(src[i])))
	}

	return n * 2
}
