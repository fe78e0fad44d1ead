// Package aesblock implements the FIPS-197 round transformations, key
// schedule, and single-block encrypt/decrypt for AES-128/192/256. It is the
// round engine behind the public krypto.Cipher facade and is not meant to be
// used directly outside this module.
package aesblock

import "github.com/Groenbech96/krypto/internal/gf256"

// SubBytes replaces every byte of the state with its S-box image.
func SubBytes(s *[16]byte) {
	for i := range s {
		s[i] = gf256.T.SBox[s[i]]
	}
}

// InvSubBytes replaces every byte of the state with its inverse S-box image.
func InvSubBytes(s *[16]byte) {
	for i := range s {
		s[i] = gf256.T.InvSBox[s[i]]
	}
}

// ShiftRows performs the forward row rotation in place: row 0 unchanged,
// row 1 left by 1, row 2 left by 2, row 3 left by 3 (column-major state,
// byte i at row i%4, column i/4).
func ShiftRows(s *[16]byte) {
	s[1], s[5], s[9], s[13] = s[5], s[9], s[13], s[1]

	s[2], s[10] = s[10], s[2]
	s[6], s[14] = s[14], s[6]

	s[3], s[7], s[11], s[15] = s[15], s[3], s[7], s[11]
}

// InvShiftRows performs the inverse row rotation in place.
func InvShiftRows(s *[16]byte) {
	s[1], s[5], s[9], s[13] = s[13], s[1], s[5], s[9]

	s[2], s[10] = s[10], s[2]
	s[6], s[14] = s[14], s[6]

	s[3], s[7], s[11], s[15] = s[7], s[11], s[15], s[3]
}

// ShiftRowsBuffered is the auxiliary-buffer reference form of ShiftRows,
// kept as a correctness cross-check for the in-place variant above.
func ShiftRowsBuffered(s *[16]byte) {
	var buf [16]byte
	buf[0], buf[4], buf[8], buf[12] = s[0], s[4], s[8], s[12]
	buf[1], buf[5], buf[9], buf[13] = s[5], s[9], s[13], s[1]
	buf[2], buf[6], buf[10], buf[14] = s[10], s[14], s[2], s[6]
	buf[3], buf[7], buf[11], buf[15] = s[15], s[3], s[7], s[11]
	*s = buf
}

// InvShiftRowsBuffered is the auxiliary-buffer reference form of InvShiftRows.
func InvShiftRowsBuffered(s *[16]byte) {
	var buf [16]byte
	buf[0], buf[4], buf[8], buf[12] = s[0], s[4], s[8], s[12]
	buf[1], buf[5], buf[9], buf[13] = s[13], s[1], s[5], s[9]
	buf[2], buf[6], buf[10], buf[14] = s[10], s[14], s[2], s[6]
	buf[3], buf[7], buf[11], buf[15] = s[7], s[11], s[15], s[3]
	*s = buf
}

// MixColumns applies the forward MixColumns transform column by column
// using the fused e/mul2 form: e = a0^a1^a2^a3, a0' = a0^e^mul2(a0^a1), ...
func MixColumns(s *[16]byte) {
	for i := 0; i < 16; i += 4 {
		a0, a1, a2, a3 := s[i], s[i+1], s[i+2], s[i+3]
		e := a0 ^ a1 ^ a2 ^ a3
		s[i] = a0 ^ e ^ gf256.T.Mul2[a0^a1]
		s[i+1] = a1 ^ e ^ gf256.T.Mul2[a1^a2]
		s[i+2] = a2 ^ e ^ gf256.T.Mul2[a2^a3]
		s[i+3] = a3 ^ e ^ gf256.T.Mul2[a3^a0]
	}
}

// MixColumnsBuffered is the direct matrix-multiply reference form of
// MixColumns, kept as a correctness cross-check for the fused form above.
func MixColumnsBuffered(s *[16]byte) {
	var buf [16]byte
	for i := 0; i < 16; i += 4 {
		a0, a1, a2, a3 := s[i], s[i+1], s[i+2], s[i+3]
		buf[i] = gf256.FastMult(2, a0) ^ gf256.FastMult(3, a1) ^ a2 ^ a3
		buf[i+1] = a0 ^ gf256.FastMult(2, a1) ^ gf256.FastMult(3, a2) ^ a3
		buf[i+2] = a0 ^ a1 ^ gf256.FastMult(2, a2) ^ gf256.FastMult(3, a3)
		buf[i+3] = gf256.FastMult(3, a0) ^ a1 ^ a2 ^ gf256.FastMult(2, a3)
	}
	*s = buf
}

// InvMixColumns applies the inverse MixColumns transform, table-driven on
// mul9/mul11/mul13/mul14.
func InvMixColumns(s *[16]byte) {
	for i := 0; i < 16; i += 4 {
		a0, a1, a2, a3 := s[i], s[i+1], s[i+2], s[i+3]
		s[i] = gf256.T.Mul14[a0] ^ gf256.T.Mul11[a1] ^ gf256.T.Mul13[a2] ^ gf256.T.Mul9[a3]
		s[i+1] = gf256.T.Mul9[a0] ^ gf256.T.Mul14[a1] ^ gf256.T.Mul11[a2] ^ gf256.T.Mul13[a3]
		s[i+2] = gf256.T.Mul13[a0] ^ gf256.T.Mul9[a1] ^ gf256.T.Mul14[a2] ^ gf256.T.Mul11[a3]
		s[i+3] = gf256.T.Mul11[a0] ^ gf256.T.Mul13[a1] ^ gf256.T.Mul9[a2] ^ gf256.T.Mul14[a3]
	}
}

// AddRoundKey XORs 16 consecutive bytes of the expanded key into the state.
func AddRoundKey(s *[16]byte, roundKey []byte) {
	for i := range s {
		s[i] ^= roundKey[i]
	}
}
