package krypto

import (
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHexKrypto(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestFIPS197KnownAnswerAtFacade(t *testing.T) {
	key := mustHexKrypto(t, "000102030405060708090a0b0c0d0e0f")
	plaintext := mustHexKrypto(t, "00112233445566778899aabbccddeeff")

	c, err := New(key, ECB, PKCS7)
	require.NoError(t, err)

	ciphertext, err := c.Encrypt(plaintext)
	require.NoError(t, err)
	require.Len(t, ciphertext, 32)
	assert.Equal(t, mustHexKrypto(t, "69c4e0d86a7b0430d8cdb78070b4c55a"), ciphertext[:16])

	decrypted, err := c.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestRoundTripAllCombinations(t *testing.T) {
	keySizes := []int{16, 24, 32}
	modesUnderTest := []Mode{ECB, CBC}
	paddings := []PaddingScheme{PKCS7, ANSIX923}
	lengths := []int{0, 1, 15, 16, 17, 100, 1000}

	r := rand.New(rand.NewSource(42))

	for _, ks := range keySizes {
		for _, m := range modesUnderTest {
			for _, p := range paddings {
				key := make([]byte, ks)
				r.Read(key)

				c, err := New(key, m, p, WithParallel(4))
				require.NoError(t, err)

				for _, n := range lengths {
					plaintext := make([]byte, n)
					r.Read(plaintext)

					ciphertext, err := c.Encrypt(plaintext)
					require.NoError(t, err)

					decrypted, err := c.Decrypt(ciphertext)
					require.NoError(t, err)
					assert.Equal(t, plaintext, decrypted,
						"keySize=%d mode=%v padding=%v len=%d", ks, m, p, n)
				}
			}
		}
	}
}

func TestECBIsDeterministic(t *testing.T) {
	key := make([]byte, 16)
	c, err := New(key, ECB, PKCS7)
	require.NoError(t, err)

	plaintext := []byte("repeat this block repeat this block")

	c1, err := c.Encrypt(plaintext)
	require.NoError(t, err)
	c2, err := c.Encrypt(plaintext)
	require.NoError(t, err)

	assert.Equal(t, c1, c2)
}

func TestCBCUsesFreshIVEachCall(t *testing.T) {
	key := make([]byte, 16)
	c, err := New(key, CBC, PKCS7)
	require.NoError(t, err)

	plaintext := []byte("same plaintext, different IV please")

	c1, err := c.Encrypt(plaintext)
	require.NoError(t, err)
	c2, err := c.Encrypt(plaintext)
	require.NoError(t, err)

	assert.NotEqual(t, c1, c2, "CBC ciphertexts of identical plaintext should differ with independent IVs")

	iv1 := c1[len(c1)-16:]
	iv2 := c2[len(c2)-16:]
	assert.NotEqual(t, iv1, iv2)
}

func TestEncryptDoesNotMutateCaller(t *testing.T) {
	key := make([]byte, 16)
	c, err := New(key, CBC, PKCS7, WithRandomSource(func(n int) ([]byte, error) {
		return make([]byte, n), nil
	}))
	require.NoError(t, err)

	plaintext := []byte("do not touch my slice!!")
	orig := append([]byte(nil), plaintext...)

	_, err = c.Encrypt(plaintext)
	require.NoError(t, err)
	assert.Equal(t, orig, plaintext)
}

func TestDecryptDoesNotMutateCaller(t *testing.T) {
	key := make([]byte, 16)
	c, err := New(key, CBC, PKCS7)
	require.NoError(t, err)

	ciphertext, err := c.Encrypt([]byte("round trip me please, thank you"))
	require.NoError(t, err)
	orig := append([]byte(nil), ciphertext...)

	_, err = c.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, orig, ciphertext)
}

func TestNewRejectsBadKeySize(t *testing.T) {
	_, err := New(make([]byte, 20), ECB, PKCS7)
	require.ErrorIs(t, err, ErrInvalidKeySize)
}

func TestDecryptRejectsMisalignedCiphertext(t *testing.T) {
	key := make([]byte, 16)

	ecb, err := New(key, ECB, PKCS7)
	require.NoError(t, err)
	_, err = ecb.Decrypt(make([]byte, 17))
	require.ErrorIs(t, err, ErrInvalidCiphertextLength)

	cbc, err := New(key, CBC, PKCS7)
	require.NoError(t, err)
	_, err = cbc.Decrypt(make([]byte, 16))
	require.ErrorIs(t, err, ErrInvalidCiphertextLength)
}

func TestDecryptRejectsTamperedPadding(t *testing.T) {
	key := make([]byte, 16)
	c, err := New(key, ECB, PKCS7)
	require.NoError(t, err)

	ciphertext, err := c.Encrypt([]byte("tamper with the last block"))
	require.NoError(t, err)
	ciphertext[len(ciphertext)-1] ^= 0xff

	_, err = c.Decrypt(ciphertext)
	require.ErrorIs(t, err, ErrBadPadding)
}

func TestRandomSourceFailureSurfacesOnEncrypt(t *testing.T) {
	key := make([]byte, 16)
	boom := assert.AnError
	c, err := New(key, CBC, PKCS7, WithRandomSource(func(n int) ([]byte, error) {
		return nil, boom
	}))
	require.NoError(t, err)

	_, err = c.Encrypt([]byte("irrelevant"))
	require.ErrorIs(t, err, ErrRandomSource)
}
