// Package krypto implements FIPS-197 AES-128/192/256 encryption with ECB
// and CBC block-chaining modes and PKCS#7/ANSI X.923 padding. The round
// engine lives in internal/aesblock and is not exported; this file is the
// public facade.
package krypto

import (
	"crypto/rand"
	"fmt"

	"github.com/Groenbech96/krypto/internal/aesblock"
	"github.com/Groenbech96/krypto/internal/modes"
	"github.com/Groenbech96/krypto/internal/padding"
)

// KeySize is an accepted AES key length, in bytes.
type KeySize int

// The three key sizes defined by FIPS-197. Any other length is rejected by
// New with ErrInvalidKeySize.
const (
	KeySize128 KeySize = 16
	KeySize192 KeySize = 24
	KeySize256 KeySize = 32
)

// Mode selects the block-chaining mode.
type Mode int

const (
	// ECB encrypts each block independently. Offered for completeness and
	// testing; it leaks repeated plaintext blocks and should not be used
	// for anything that isn't a single random-looking block.
	ECB Mode = iota
	// CBC XORs each plaintext block with the previous ciphertext block
	// before encryption. The IV is appended as a 16-byte trailer to the
	// returned ciphertext rather than prefixed, which is the one place
	// this library's wire format departs from common convention.
	CBC
)

// PaddingScheme selects how the final block is padded to 16 bytes.
type PaddingScheme int

const (
	PKCS7 PaddingScheme = iota
	ANSIX923
)

func (p PaddingScheme) scheme() padding.Scheme {
	switch p {
	case ANSIX923:
		return padding.ANSIX923{}
	default:
		return padding.PKCS7{}
	}
}

// RandomSource produces n cryptographically random bytes, used to generate
// the IV for CBC encryption.
type RandomSource func(n int) ([]byte, error)

// DefaultRandomSource reads from crypto/rand.
func DefaultRandomSource(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Option configures a Cipher at construction time.
type Option func(*Cipher)

// WithRandomSource overrides the source used to generate IVs for CBC
// encryption. Mainly useful for deterministic tests; production callers
// should leave this at its DefaultRandomSource.
func WithRandomSource(src RandomSource) Option {
	return func(c *Cipher) {
		c.randomSource = src
	}
}

// WithParallel sets the number of goroutines used to process independent
// blocks (ECB encrypt/decrypt, CBC decrypt). The default, 0 or 1, processes
// blocks sequentially. CBC encryption is always sequential regardless of
// this setting, since each block depends on the ciphertext of the one
// before it.
func WithParallel(n int) Option {
	return func(c *Cipher) {
		c.workers = n
	}
}

// Cipher is a configured AES cipher: a key schedule plus a mode and padding
// scheme. A Cipher is safe for concurrent use by multiple goroutines.
type Cipher struct {
	expandedKey []byte
	nr          int

	mode    Mode
	pad     padding.Scheme
	workers int

	randomSource RandomSource
}

// New expands key (16, 24, or 32 bytes) into a Cipher configured for the
// given mode and padding scheme.
func New(key []byte, mode Mode, pad PaddingScheme, opts ...Option) (*Cipher, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize, len(key))
	}

	expanded, nr := aesblock.ExpandKey(key)

	c := &Cipher{
		expandedKey:  expanded,
		nr:           nr,
		mode:         mode,
		pad:          pad.scheme(),
		randomSource: DefaultRandomSource,
	}
	for _, opt := range opts {
		opt(c)
	}

	log.Debugw("cipher configured",
		"keyBits", len(key)*8, "mode", mode, "padding", pad, "workers", c.workers)

	return c, nil
}

func (c *Cipher) encryptBlock(block []byte) {
	var s [16]byte
	copy(s[:], block)
	aesblock.EncryptBlock(&s, c.expandedKey, c.nr)
	copy(block, s[:])
}

func (c *Cipher) decryptBlock(block []byte) {
	var s [16]byte
	copy(s[:], block)
	aesblock.DecryptBlock(&s, c.expandedKey, c.nr)
	copy(block, s[:])
}

// Encrypt pads plaintext to a multiple of 16 bytes and encrypts it under
// the Cipher's mode. For CBC, a fresh IV is drawn from the configured
// RandomSource and appended as the last 16 bytes of the returned slice.
func (c *Cipher) Encrypt(plaintext []byte) ([]byte, error) {
	padSize := byte(16 - len(plaintext)%16)
	buf := make([]byte, len(plaintext)+int(padSize))
	copy(buf, plaintext)
	c.pad.Apply(buf[len(buf)-16:], padSize)

	switch c.mode {
	case CBC:
		ivBytes, err := c.randomSource(16)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
		}
		var iv [16]byte
		copy(iv[:], ivBytes)
		return modes.CBCEncrypt(buf, iv, c.encryptBlock)
	default:
		if err := modes.ECBEncrypt(buf, c.workers, c.encryptBlock); err != nil {
			return nil, err
		}
		return buf, nil
	}
}

// Decrypt reverses Encrypt: it decrypts ciphertext under the Cipher's mode
// and strips the padding from the final block. For CBC, the IV is read
// from the last 16 bytes of ciphertext.
func (c *Cipher) Decrypt(ciphertext []byte) ([]byte, error) {
	var plain []byte

	switch c.mode {
	case CBC:
		if len(ciphertext)%16 != 0 || len(ciphertext) < 32 {
			return nil, ErrInvalidCiphertextLength
		}
		buf := append([]byte(nil), ciphertext...)
		body, err := modes.CBCDecrypt(buf, c.workers, c.decryptBlock)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCiphertextLength, err)
		}
		plain = body
	default:
		if len(ciphertext) == 0 || len(ciphertext)%16 != 0 {
			return nil, ErrInvalidCiphertextLength
		}
		buf := append([]byte(nil), ciphertext...)
		if err := modes.ECBDecrypt(buf, c.workers, c.decryptBlock); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCiphertextLength, err)
		}
		plain = buf
	}

	n := c.pad.Detect(plain[len(plain)-16:])
	if n == 0 {
		log.Warnw("recoverable padding mismatch on decrypt", "mode", c.mode)
		return nil, ErrBadPadding
	}

	return plain[:len(plain)-int(n)], nil
}
