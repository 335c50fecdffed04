// Package cryptox implements the vault's symmetric cipher and the slow hash
// used for login passwords and vault keys.
//
// Encrypt/Decrypt accept an arbitrary string as the key: the key is pushed
// through SHA-256 and the first 32 characters of the base64 digest become the
// AES-256 key material, so any key length is acceptable. Ciphertext is
// AES-CTR, confidentiality only.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/avolkov/passvault/internal/vaulterr"
)

const ivSize = 16

// encryptionKey normalizes an arbitrary key string to 32 bytes of AES-256
// key material.
func encryptionKey(key string) []byte {
	sum := sha256.Sum256([]byte(key))
	encoded := base64.StdEncoding.EncodeToString(sum[:])
	return []byte(encoded[:32])
}

// Encrypt encrypts plaintext under key and returns a package of the form
// "<base64 ciphertext>-<base64 iv>". A fresh random 16-byte IV is drawn on
// every call, so two encryptions of the same plaintext differ.
func Encrypt(plaintext string, key string) (string, error) {
	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return "", vaulterr.Internal("random source failed", err)
	}

	block, err := aes.NewCipher(encryptionKey(key))
	if err != nil {
		return "", vaulterr.Crypto("cipher init failed", err)
	}

	ciphertext := make([]byte, len(plaintext))
	cipher.NewCTR(block, iv).XORKeyStream(ciphertext, []byte(plaintext))

	return base64.StdEncoding.EncodeToString(ciphertext) + "-" + base64.StdEncoding.EncodeToString(iv), nil
}

// Decrypt reverses Encrypt. It fails with a Crypto-kind error if the package
// cannot be split into ciphertext and IV, if either half is not valid base64,
// if the IV has the wrong length, or if the result is not valid UTF-8 (the
// observable symptom of a wrong key under CTR).
func Decrypt(pkg string, key string) (string, error) {
	// Both halves are standard base64, whose alphabet has no '-'. Splitting
	// on the last separator keeps a hypothetical url-safe left half parseable.
	// An empty left half is legal: encrypting "" produces "-<b64 iv>".
	sep := strings.LastIndex(pkg, "-")
	if sep < 0 || sep == len(pkg)-1 {
		return "", vaulterr.Crypto("malformed ciphertext package", nil)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(pkg[:sep])
	if err != nil {
		return "", vaulterr.Crypto("ciphertext is not valid base64", err)
	}
	iv, err := base64.StdEncoding.DecodeString(pkg[sep+1:])
	if err != nil {
		return "", vaulterr.Crypto("iv is not valid base64", err)
	}
	if len(iv) != ivSize {
		return "", vaulterr.Crypto("iv has wrong length", nil)
	}

	block, err := aes.NewCipher(encryptionKey(key))
	if err != nil {
		return "", vaulterr.Crypto("cipher init failed", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCTR(block, iv).XORKeyStream(plaintext, ciphertext)

	if !utf8.Valid(plaintext) {
		return "", vaulterr.Crypto("decryption failed", nil)
	}

	return string(plaintext), nil
}
