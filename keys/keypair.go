package keys

import (
	"crypto"
	"crypto/ed25519"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58/base58"
)

// KeyType is the curve of a key, using NEAR's numbering.
type KeyType uint8

const (
	// ED25519 is the ed25519 curve.
	ED25519 KeyType = iota
)

func (t KeyType) String() string {
	switch t {
	case ED25519:
		return "ed25519"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// PublicKey is a curve-tagged public key.
type PublicKey struct {
	Type KeyType
	Data []byte
}

// String returns the key as <curve>:<base58 data>, the form NEAR RPC expects.
func (p PublicKey) String() string {
	return fmt.Sprintf("%s:%s", p.Type, base58.Encode(p.Data))
}

// NewPublicKeyFromString parses an optionally curve-prefixed base58 public key.
func NewPublicKeyFromString(s string) (PublicKey, error) {
	b58, err := trimCurve(s)
	if err != nil {
		return PublicKey{}, err
	}
	data, err := base58.Decode(b58)
	if err != nil {
		return PublicKey{}, fmt.Errorf("decoding public key: %v", err)
	}
	if len(data) != ed25519.PublicKeySize {
		return PublicKey{}, fmt.Errorf("expected ed25519 public key size %d, got %d", ed25519.PublicKeySize, len(data))
	}
	return PublicKey{Type: ED25519, Data: data}, nil
}

// KeyPair represents a public/private key pair.
type KeyPair interface {
	fmt.Stringer
	Sign(message []byte) ([]byte, error)
	Verify(message, signature []byte) bool
	GetPublicKey() PublicKey
}

// NewKeyPairFromRandom creates a random KeyPair using the specified curve.
func NewKeyPairFromRandom(curve string) (KeyPair, error) {
	switch strings.ToUpper(curve) {
	case "ED25519":
		_, priv, err := ed25519.GenerateKey(nil)
		if err != nil {
			return nil, fmt.Errorf("generating random ed25519 key: %v", err)
		}
		return &KeyPairEd25519{privateKey: priv}, nil
	default:
		return nil, fmt.Errorf("unknown curve %s", curve)
	}
}

// NewKeyPairFromString creates a new KeyPair from a optionally curve-prefixed base58 string.
func NewKeyPairFromString(secretKey string) (KeyPair, error) {
	b58, err := trimCurve(secretKey)
	if err != nil {
		return nil, err
	}
	kp, err := keyPairEd25519FromString(b58)
	if err != nil {
		return nil, fmt.Errorf("creating ed25519 key from string: %v", err)
	}
	return kp, nil
}

// KeyPairEd25519 is an ed25519 implementation of KeyPair.
type KeyPairEd25519 struct {
	privateKey ed25519.PrivateKey
}

// Sign signs a message with the KeyPair's private key.
func (k *KeyPairEd25519) Sign(message []byte) ([]byte, error) {
	res, err := k.privateKey.Sign(nil, message, crypto.Hash(0))
	if err != nil {
		return nil, fmt.Errorf("calling sign: %v", err)
	}
	return res, nil
}

// Verify reports whether signature is a valid signature of message by the KeyPair's public key.
func (k *KeyPairEd25519) Verify(message, signature []byte) bool {
	return ed25519.Verify(k.privateKey.Public().(ed25519.PublicKey), message, signature)
}

// GetPublicKey returns the PublicKey corresponding to the KeyPair's private key.
func (k *KeyPairEd25519) GetPublicKey() PublicKey {
	return PublicKey{
		Type: ED25519,
		Data: []byte(k.privateKey.Public().(ed25519.PublicKey)),
	}
}

// String returns the secret key in the ed25519:<base58> form.
func (k *KeyPairEd25519) String() string {
	return "ed25519:" + base58.Encode(k.privateKey)
}

func trimCurve(s string) (string, error) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 1:
		return parts[0], nil
	case 2:
		if strings.ToUpper(parts[0]) != "ED25519" {
			return "", fmt.Errorf("unknown curve %s", parts[0])
		}
		return parts[1], nil
	default:
		return "", fmt.Errorf("invalid encoded key format, must be <curve>:<encoded key>")
	}
}

func keyPairEd25519FromString(s string) (*KeyPairEd25519, error) {
	data, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("decoding secret key: %v", err)
	}
	switch len(data) {
	case ed25519.PrivateKeySize + ed25519.PublicKeySize:
		// Remove the redundant public key.
		redundantPk := data[ed25519.PrivateKeySize:]
		pk := data[ed25519.PrivateKeySize-ed25519.PublicKeySize : ed25519.PrivateKeySize]
		if subtle.ConstantTimeCompare(pk, redundantPk) == 0 {
			return nil, errors.New("expected redundant ed25519 public key to be redundant")
		}

		newKey := make([]byte, ed25519.PrivateKeySize)
		copy(newKey, data[:ed25519.PrivateKeySize])
		data = newKey
	case ed25519.PrivateKeySize:
	default:
		return nil, fmt.Errorf(
			"expected ed25519 data size to be %d or %d, got %d",
			ed25519.PrivateKeySize,
			ed25519.PrivateKeySize+ed25519.PublicKeySize,
			len(data),
		)
	}
	return &KeyPairEd25519{
		privateKey: ed25519.PrivateKey(data),
	}, nil
}
