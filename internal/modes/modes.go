// Package modes implements ECB and CBC block-chaining over a 16-byte block
// function supplied by the caller (the AES round engine in
// internal/aesblock). Both modes assume the data length is a positive
// multiple of 16 bytes; a single block is a valid input.
package modes

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

const blockSize = 16

// BlockFunc transforms one 16-byte block in place.
type BlockFunc func(block []byte)

// ErrShortCiphertext is returned when data does not satisfy the
// length/alignment precondition shared by ECB and CBC.
var ErrShortCiphertext = fmt.Errorf("modes: data must be a positive multiple of 16 bytes")

func checkPrecondition(data []byte) error {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return ErrShortCiphertext
	}
	return nil
}

// runBlocks applies fn to each block of data, fanning out across workers
// goroutines when workers > 1 and data holds at least 2*workers blocks;
// otherwise it runs sequentially. Blocks are independent under this contract
// (ECB, and CBC-decrypt once the previous-ciphertext XOR input is known), so
// output order does not depend on scheduling order: each goroutine only ever
// writes the blocks in its own contiguous chunk.
func runBlocks(data []byte, workers int, fn BlockFunc) error {
	numBlocks := len(data) / blockSize
	if workers < 2 || numBlocks < 2*workers {
		for i := 0; i < numBlocks; i++ {
			fn(data[i*blockSize : (i+1)*blockSize])
		}
		return nil
	}

	var eg errgroup.Group
	chunk := (numBlocks + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= numBlocks {
			break
		}
		end := start + chunk
		if end > numBlocks {
			end = numBlocks
		}

		func() {
			start, end := start, end
			eg.Go(func() error {
				for i := start; i < end; i++ {
					fn(data[i*blockSize : (i+1)*blockSize])
				}
				return nil
			})
		}()
	}
	return eg.Wait()
}

// ECBEncrypt encrypts data in place, one independent block at a time.
func ECBEncrypt(data []byte, workers int, encrypt BlockFunc) error {
	if err := checkPrecondition(data); err != nil {
		return err
	}
	return runBlocks(data, workers, encrypt)
}

// ECBDecrypt decrypts data in place, one independent block at a time.
func ECBDecrypt(data []byte, workers int, decrypt BlockFunc) error {
	if err := checkPrecondition(data); err != nil {
		return err
	}
	return runBlocks(data, workers, decrypt)
}

// CBCEncrypt encrypts data in place and appends iv as a 16-byte trailer,
// per the source's IV-as-trailer wire format (not the conventional
// IV-as-prefix convention). Strictly sequential: block i's input depends on
// block i-1's ciphertext.
func CBCEncrypt(data []byte, iv [16]byte, encrypt BlockFunc) ([]byte, error) {
	if err := checkPrecondition(data); err != nil {
		return nil, err
	}

	prev := iv
	for i := 0; i < len(data); i += blockSize {
		block := data[i : i+blockSize]
		for j := 0; j < blockSize; j++ {
			block[j] ^= prev[j]
		}
		encrypt(block)
		copy(prev[:], block)
	}

	return append(data, iv[:]...), nil
}

// CBCDecrypt takes the last 16 bytes of data as the IV trailer, decrypts
// the remaining blocks in place, and returns the buffer with the trailer
// removed. Each block's XOR input is the preceding ciphertext block, known
// before decryption begins, so this can fan out across workers.
func CBCDecrypt(data []byte, workers int, decrypt BlockFunc) ([]byte, error) {
	if err := checkPrecondition(data); err != nil {
		return nil, err
	}

	body := data[:len(data)-blockSize]
	trailer := data[len(data)-blockSize:]

	numBlocks := len(body) / blockSize
	prevCiphertext := make([]byte, len(body)+blockSize)
	copy(prevCiphertext[:blockSize], trailer)
	copy(prevCiphertext[blockSize:], body)

	fn := func(i int) BlockFunc {
		return func(block []byte) {
			decrypt(block)
			prev := prevCiphertext[i*blockSize : i*blockSize+blockSize]
			for j := 0; j < blockSize; j++ {
				block[j] ^= prev[j]
			}
		}
	}

	if workers < 2 || numBlocks < 2*workers {
		for i := 0; i < numBlocks; i++ {
			fn(i)(body[i*blockSize : (i+1)*blockSize])
		}
		return body, nil
	}

	var eg errgroup.Group
	chunk := (numBlocks + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= numBlocks {
			break
		}
		end := start + chunk
		if end > numBlocks {
			end = numBlocks
		}
		func() {
			start, end := start, end
			eg.Go(func() error {
				for i := start; i < end; i++ {
					fn(i)(body[i*blockSize : (i+1)*blockSize])
				}
				return nil
			})
		}()
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return body, nil
}
