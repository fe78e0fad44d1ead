package aesblock

import "github.com/Groenbech96/krypto/internal/gf256"

// Nb is the number of 32-bit words in the AES state; always 4.
const Nb = 4

// Rounds returns Nr for a given key length in bytes (Nk words).
func Rounds(keyLen int) int {
	nk := keyLen / 4
	return nk + 6
}

// ExpandKey expands a 16/24/32-byte key into the round-key buffer per
// FIPS-197 key expansion. The returned slice has length 16*(Nr+1) and must
// never be mutated after this call returns.
func ExpandKey(key []byte) (expanded []byte, nr int) {
	nk := len(key) / 4
	nr = nk + 6
	total := Nb * (nr + 1)

	expanded = make([]byte, total*4)
	copy(expanded, key)

	var temp [4]byte
	for i := nk; i < total; i++ {
		copy(temp[:], expanded[(i-1)*4:i*4])

		switch {
		case i%nk == 0:
			rotWord(&temp)
			subWord(&temp)
			temp[0] ^= gf256.T.Rcon[i/nk-1]
		case nk > 6 && i%nk == 4:
			subWord(&temp)
		}

		prev := expanded[(i-nk)*4 : (i-nk)*4+4]
		expanded[i*4] = temp[0] ^ prev[0]
		expanded[i*4+1] = temp[1] ^ prev[1]
		expanded[i*4+2] = temp[2] ^ prev[2]
		expanded[i*4+3] = temp[3] ^ prev[3]
	}

	return expanded, nr
}

func rotWord(w *[4]byte) {
	w[0], w[1], w[2], w[3] = w[1], w[2], w[3], w[0]
}

func subWord(w *[4]byte) {
	for i := range w {
		w[i] = gf256.T.SBox[w[i]]
	}
}
