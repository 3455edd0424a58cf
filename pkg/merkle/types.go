package merkle

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/Olanetsoft/merkle-proof-tutorial/pkg/hasher"
)

// Digest is a fixed-length hash output. Its length is determined by the
// hasher the tree was built with. Equality is byte-wise.
type Digest []byte

// Equal reports whether two digests are byte-wise identical.
func (d Digest) Equal(other Digest) bool {
	return bytes.Equal(d, other)
}

// Hex returns the 0x-prefixed hexadecimal encoding of the digest.
func (d Digest) Hex() string {
	return hexutil.Encode(d)
}

func (d Digest) MarshalText() ([]byte, error) {
	return []byte(hexutil.Encode(d)), nil
}

func (d *Digest) UnmarshalText(text []byte) error {
	decoded, err := hexutil.Decode(string(text))
	if err != nil {
		return err
	}
	*d = decoded
	return nil
}

// Side marks which side of the running hash a sibling digest is
// concatenated on during verification.
type Side string

const (
	// SideLeft means the sibling sits to the left: parent = hash(sibling || running).
	SideLeft Side = "left"

	// SideRight means the sibling sits to the right: parent = hash(running || sibling).
	SideRight Side = "right"
)

// ProofStep is one level of an inclusion proof: the sibling digest to
// combine with the running hash, and the side it is concatenated on.
type ProofStep struct {
	Sibling Digest `json:"hash"`
	Side    Side   `json:"side"`
}

// Proof demonstrates that a leaf is part of the tree committed to by a
// root. Steps are ordered from the leaf's level up to (but not including)
// the root; verification must replay them in exactly this order.
//
// A proof with zero steps is valid only against a single-leaf tree, whose
// root equals the leaf itself.
type Proof struct {
	// LeafIndex is the position of the proven leaf in the tree's base layer.
	LeafIndex int `json:"leafIndex"`

	// Leaf is the digest of the item being proven.
	Leaf Digest `json:"leaf"`

	// Steps contains the sibling digests from leaf level to root.
	// Steps[0] is the leaf's sibling, Steps[len-1] is just below the root.
	Steps []ProofStep `json:"steps"`
}

// Tree is an immutable binary merkle tree over an ordered item sequence.
//
// Each layer is stored as one contiguous buffer of size-aligned digests,
// so construction and proof-path lookup reduce to integer arithmetic.
// layers[0] holds the leaf digests, each following layer is half the
// size (rounded up), and the final layer reduces to the root.
//
// A Tree is safe for concurrent proof generation once built; nothing
// mutates it after construction. Rebuilding for a changed item set means
// building a new Tree value.
type Tree struct {
	hasher hasher.Hasher
	layers [][]byte
	root   Digest
	size   int
}

// Hasher returns the hash function the tree was built with. Verifiers
// must use the same one.
func (t *Tree) Hasher() hasher.Hasher {
	return t.hasher
}

// Root returns the tree's root digest, committing to the entire ordered
// item sequence.
func (t *Tree) Root() Digest {
	return append(Digest(nil), t.root...)
}

// LeafCount returns the number of leaves in the tree.
func (t *Tree) LeafCount() int {
	return t.width(0)
}

// Leaf returns a copy of the leaf digest at the given index, or nil if
// the index is out of range.
func (t *Tree) Leaf(index int) Digest {
	if index < 0 || index >= t.LeafCount() {
		return nil
	}
	return append(Digest(nil), t.node(0, index)...)
}

// Height returns the number of hashing rounds between the leaves and the
// root: ceil(log2(n)) for n leaves, 0 for empty and single-leaf trees.
// Every proof generated by the tree has exactly Height steps.
func (t *Tree) Height() int {
	return len(t.layers) - 1
}

// node returns the digest at the given position of a layer, as a
// subslice of the layer's flat buffer.
func (t *Tree) node(level, index int) []byte {
	offset := index * t.size
	return t.layers[level][offset : offset+t.size]
}

// width returns the number of digests in a layer.
func (t *Tree) width(level int) int {
	return len(t.layers[level]) / t.size
}
