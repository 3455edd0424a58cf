package hasher

import (
	"crypto/sha256"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

// Hasher maps an arbitrary byte sequence to a fixed-length digest.
//
// The same hasher is used for both leaf hashing (raw item -> digest) and
// node hashing (left || right -> parent digest). Trees and verifiers must
// agree on the hasher out of band; a proof generated under one hash
// function never verifies under another.
type Hasher interface {
	// Hash returns the digest of data. Hashing an empty or nil input
	// still returns a full-length digest.
	Hash(data []byte) []byte

	// Size returns the digest length in bytes.
	Size() int

	// Name returns the algorithm identifier used for selection and display.
	Name() string
}

// Supported algorithm names.
const (
	Keccak256 = "keccak256"
	SHA256    = "sha256"
	SHA3256   = "sha3-256"
)

// New returns the hasher registered under the given algorithm name.
func New(name string) (Hasher, error) {
	switch name {
	case Keccak256:
		return keccak256Hasher{}, nil
	case SHA256:
		return sha256Hasher{}, nil
	case SHA3256:
		return sha3Hasher{}, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", name)
	}
}

// Names returns the supported algorithm names.
func Names() []string {
	return []string{Keccak256, SHA256, SHA3256}
}

// keccak256Hasher hashes with Ethereum's Keccak-256 (the pre-NIST padding
// variant used by Solidity).
type keccak256Hasher struct{}

func (keccak256Hasher) Hash(data []byte) []byte { return crypto.Keccak256(data) }
func (keccak256Hasher) Size() int               { return 32 }
func (keccak256Hasher) Name() string            { return Keccak256 }

type sha256Hasher struct{}

func (sha256Hasher) Hash(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}
func (sha256Hasher) Size() int    { return sha256.Size }
func (sha256Hasher) Name() string { return SHA256 }

// sha3Hasher hashes with standardized SHA3-256. Not interchangeable with
// keccak256: the two differ in padding and produce unrelated digests.
type sha3Hasher struct{}

func (sha3Hasher) Hash(data []byte) []byte {
	sum := sha3.Sum256(data)
	return sum[:]
}
func (sha3Hasher) Size() int    { return 32 }
func (sha3Hasher) Name() string { return SHA3256 }
