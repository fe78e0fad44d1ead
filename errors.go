package krypto

import "errors"

// Sentinel errors returned at the entry points (construction, Encrypt,
// Decrypt). The AES round engine itself never fails.
var (
	// ErrInvalidKeySize is returned by New when the key is not 16, 24, or
	// 32 bytes (128/192/256 bits).
	ErrInvalidKeySize = errors.New("krypto: invalid key size")

	// ErrInvalidCiphertextLength is returned by Decrypt when the input is
	// not a positive multiple of 16 bytes, or shorter than the minimum the
	// selected mode requires.
	ErrInvalidCiphertextLength = errors.New("krypto: invalid ciphertext length")

	// ErrBadPadding is returned by Decrypt when the trailing bytes of the
	// final block do not form valid padding for the configured scheme.
	ErrBadPadding = errors.New("krypto: bad padding")

	// ErrRandomSource is returned by Encrypt under CBC when the configured
	// RandomSource fails to produce an IV.
	ErrRandomSource = errors.New("krypto: random source failed")
)
