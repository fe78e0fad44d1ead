package gf256

// Tables holds every precomputed lookup table the AES round engine needs.
// They are process-wide, read-only after init, and safe to share across
// goroutines.
type Tables struct {
	Log     [256]byte
	Antilog [510]byte

	SBox    [256]byte
	InvSBox [256]byte

	Mul2, Mul3, Mul9, Mul11, Mul13, Mul14 [256]byte

	Rcon [14]byte
}

// T is the single, process-wide instance of the AES tables, built once
// before any package in this module touches a byte of key or block data.
var T Tables

func init() {
	computeLogTables(&T)
	computeSubTables(&T)
	computeMulTables(&T)
	computeRcon(&T)
}

// generator is the discrete-log base used to build the log/antilog tables;
// 3 is the conventional choice for GF(2^8)/0x11B.
const generator = 3

func computeLogTables(t *Tables) {
	x := byte(1)
	for i := 0; i < 255; i++ {
		t.Log[x] = byte(i)
		t.Antilog[i] = x
		x = Mult(x, generator)
	}
	for i := 255; i < 510; i++ {
		t.Antilog[i] = x
		x = Mult(x, generator)
	}
}

// computeSubTables derives the S-box from the multiplicative inverse plus
// an affine transform, and the inverse S-box from its own affine transform
// followed by the inverse. See https://en.wikipedia.org/wiki/Rijndael_S-box.
func computeSubTables(t *Tables) {
	t.SBox[0] = 0x63
	for i := 1; i < 256; i++ {
		inv := FastInv(byte(i))
		t.SBox[i] = inv ^ rotl8(inv, 1) ^ rotl8(inv, 2) ^ rotl8(inv, 3) ^ rotl8(inv, 4) ^ 0x63
	}

	for i := 0; i < 256; i++ {
		b := byte(i)
		t.InvSBox[i] = FastInv(rotl8(b, 1) ^ rotl8(b, 3) ^ rotl8(b, 6) ^ 0x05)
	}
}

func computeMulTables(t *Tables) {
	for y := 0; y < 256; y++ {
		b := byte(y)
		t.Mul2[y] = FastMult(2, b)
		t.Mul3[y] = FastMult(3, b)
		t.Mul9[y] = FastMult(9, b)
		t.Mul11[y] = FastMult(11, b)
		t.Mul13[y] = FastMult(13, b)
		t.Mul14[y] = FastMult(14, b)
	}
}

func computeRcon(t *Tables) {
	t.Rcon[0] = 1
	for i := 1; i < len(t.Rcon); i++ {
		t.Rcon[i] = FastMult(t.Rcon[i-1], 2)
	}
}
