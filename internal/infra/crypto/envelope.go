// Package crypto implements the authenticated envelope around the
// serialized store: Argon2id key derivation plus XChaCha20-Poly1305.
package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/runoshun/ttt/internal/domain"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// EnvelopeVersion is the on-disk envelope format version.
	EnvelopeVersion = 1

	kdfName    = "argon2id"
	cipherName = "xchacha20poly1305"

	saltSize = 16
	keySize  = chacha20poly1305.KeySize
)

// ErrUnsupportedEnvelope is returned when the envelope declares a
// version, KDF, or cipher this build does not know. Decoding fails
// closed; no partial plaintext is ever returned.
var ErrUnsupportedEnvelope = errors.New("unsupported envelope format")

// KDFParams are the Argon2id cost parameters. They are stored in the
// envelope so files written with older defaults stay decryptable after
// a parameter upgrade.
type KDFParams struct {
	Name        string `json:"name"`
	MemoryKiB   uint32 `json:"m_cost"`
	Iterations  uint32 `json:"t_cost"`
	Parallelism uint8  `json:"p_cost"`
}

// DefaultKDFParams returns the cost parameters used for new writes.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		Name:        kdfName,
		MemoryKiB:   19456,
		Iterations:  2,
		Parallelism: 1,
	}
}

// envelope is the on-disk JSON structure. Binary fields are base64.
type envelope struct {
	KDF        KDFParams `json:"kdf"`
	Cipher     string    `json:"cipher"`
	Salt       string    `json:"salt"`
	Nonce      string    `json:"nonce"`
	Ciphertext string    `json:"ciphertext"`
	Version    int       `json:"version"`
}

// DeriveKey derives the symmetric key from a passphrase. It is pure:
// identical inputs always produce the same key.
func DeriveKey(passphrase string, salt []byte, params KDFParams) []byte {
	return argon2.IDKey([]byte(passphrase), salt, params.Iterations, params.MemoryKiB, params.Parallelism, keySize)
}

// Encrypt seals plaintext under the passphrase with a fresh random
// salt and nonce and returns the serialized envelope.
func Encrypt(plaintext []byte, passphrase string, params KDFParams) ([]byte, error) {
	salt, err := randomBytes(saltSize)
	if err != nil {
		return nil, err
	}
	nonce, err := randomBytes(chacha20poly1305.NonceSizeX)
	if err != nil {
		return nil, err
	}
	return Seal(plaintext, passphrase, salt, nonce, params)
}

// Seal is Encrypt with caller-provided salt and nonce. Output is
// deterministic given identical inputs. The auth tag covers the
// envelope metadata as associated data, so metadata tampering is
// detected at decrypt time.
func Seal(plaintext []byte, passphrase string, salt, nonce []byte, params KDFParams) ([]byte, error) {
	if passphrase == "" {
		return nil, domain.ErrEmptyPassphrase
	}
	if len(nonce) != chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("nonce must be %d bytes", chacha20poly1305.NonceSizeX)
	}

	key := DeriveKey(passphrase, salt, params)
	defer zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	saltB64 := base64.StdEncoding.EncodeToString(salt)
	nonceB64 := base64.StdEncoding.EncodeToString(nonce)
	aad := authData(EnvelopeVersion, params, cipherName, saltB64, nonceB64)
	ciphertext := aead.Seal(nil, nonce, plaintext, aad)

	env := envelope{
		Version:    EnvelopeVersion,
		KDF:        params,
		Cipher:     cipherName,
		Salt:       saltB64,
		Nonce:      nonceB64,
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
	}
	return json.MarshalIndent(env, "", "  ")
}

// Decrypt opens a serialized envelope. Any malformed payload, wrong
// passphrase, or tampered metadata yields ErrAuthenticationFailed;
// the causes are deliberately indistinguishable.
func Decrypt(payload []byte, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, domain.ErrEmptyPassphrase
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, domain.ErrAuthenticationFailed
	}
	if env.Version != EnvelopeVersion {
		return nil, fmt.Errorf("data version %d: %w", env.Version, ErrUnsupportedEnvelope)
	}
	if env.Cipher != cipherName {
		return nil, fmt.Errorf("cipher %q: %w", env.Cipher, ErrUnsupportedEnvelope)
	}
	if env.KDF.Name != kdfName {
		return nil, fmt.Errorf("KDF %q: %w", env.KDF.Name, ErrUnsupportedEnvelope)
	}

	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil || len(salt) == 0 {
		return nil, domain.ErrAuthenticationFailed
	}
	nonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil || len(nonce) != chacha20poly1305.NonceSizeX {
		return nil, domain.ErrAuthenticationFailed
	}
	ciphertext, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		return nil, domain.ErrAuthenticationFailed
	}

	// Key derivation honors the stored cost parameters, not the
	// current defaults.
	key := DeriveKey(passphrase, salt, env.KDF)
	defer zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	aad := authData(env.Version, env.KDF, env.Cipher, env.Salt, env.Nonce)
	plaintext, err := aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, domain.ErrAuthenticationFailed
	}
	return plaintext, nil
}

// authData builds the canonical metadata string bound into the AEAD tag.
func authData(version int, kdf KDFParams, cipher, saltB64, nonceB64 string) []byte {
	return fmt.Appendf(nil, "v%d|%s|m=%d,t=%d,p=%d|%s|%s|%s",
		version, kdf.Name, kdf.MemoryKiB, kdf.Iterations, kdf.Parallelism, cipher, saltB64, nonceB64)
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("generate random bytes: %w", err)
	}
	return b, nil
}

// zero wipes key material once it is no longer needed.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
