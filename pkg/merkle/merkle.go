package merkle

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Olanetsoft/merkle-proof-tutorial/pkg/hasher"
)

// ErrLeafNotFound is returned when a proof is requested for an index or
// digest that is not part of the tree.
var ErrLeafNotFound = errors.New("leaf not found in tree")

// BuildTree hashes each item into a leaf digest, preserving input order,
// and builds the tree bottom-up. Order matters: the same items in a
// different order produce a different root.
//
// If a layer has an odd number of entries, the last entry is paired with
// itself: parent = hash(last || last). The same policy is applied during
// proof generation and must be assumed by verifiers.
//
// An empty item list is allowed; the resulting tree commits to the empty
// set with root = hash of the empty byte sequence. A single item yields a
// height-0 tree whose root equals its sole leaf digest.
func BuildTree(h hasher.Hasher, items [][]byte) (*Tree, error) {
	if h == nil {
		return nil, fmt.Errorf("cannot build merkle tree without a hasher")
	}
	size := h.Size()
	if size <= 0 {
		return nil, fmt.Errorf("hasher %s reports invalid digest size %d", h.Name(), size)
	}

	// Hash all leaves into the base layer's flat buffer.
	leaves := make([]byte, 0, len(items)*size)
	for i, item := range items {
		digest := h.Hash(item)
		if len(digest) != size {
			return nil, fmt.Errorf("hasher %s produced %d-byte digest for item %d, want %d",
				h.Name(), len(digest), i, size)
		}
		leaves = append(leaves, digest...)
	}

	t := &Tree{
		hasher: h,
		layers: [][]byte{leaves},
		size:   size,
	}

	if len(items) == 0 {
		// Empty-set sentinel: callers still get a usable commitment.
		t.root = h.Hash(nil)
		return t, nil
	}

	// Build each next layer from the current one, two digests at a time.
	for count := len(items); count > 1; count = (count + 1) / 2 {
		current := t.layers[len(t.layers)-1]
		next := make([]byte, 0, ((count+1)/2)*size)

		for i := 0; i < count; i += 2 {
			left := current[i*size : (i+1)*size]

			// Odd tail: the last entry pairs with itself.
			right := left
			if i+1 < count {
				right = current[(i+1)*size : (i+2)*size]
			}

			next = append(next, hashPair(h, left, right)...)
		}

		t.layers = append(t.layers, next)
	}

	top := t.layers[len(t.layers)-1]
	if len(top) != size {
		return nil, fmt.Errorf("merkle tree construction failed: final layer holds %d nodes instead of 1",
			len(top)/size)
	}
	t.root = append(Digest(nil), top...)

	return t, nil
}

// GenerateProof creates an inclusion proof for the leaf at the given
// index. The proof contains one step per tree level, ordered from the
// leaf's sibling up to the node just below the root.
func (t *Tree) GenerateProof(leafIndex int) (*Proof, error) {
	if leafIndex < 0 || leafIndex >= t.LeafCount() {
		return nil, fmt.Errorf("leaf index %d out of bounds (tree has %d leaves): %w",
			leafIndex, t.LeafCount(), ErrLeafNotFound)
	}

	steps := make([]ProofStep, 0, t.Height())
	index := leafIndex

	// Walk from the leaf layer to the layer below the root, collecting
	// the sibling at each level.
	for level := 0; level < len(t.layers)-1; level++ {
		var siblingIndex int
		var side Side
		if index%2 == 0 {
			// Node is on the left, sibling is on the right.
			siblingIndex = index + 1
			side = SideRight
		} else {
			// Node is on the right, sibling is on the left.
			siblingIndex = index - 1
			side = SideLeft
		}

		// Odd tail: the node is its own sibling.
		if siblingIndex >= t.width(level) {
			siblingIndex = index
		}

		steps = append(steps, ProofStep{
			Sibling: append(Digest(nil), t.node(level, siblingIndex)...),
			Side:    side,
		})

		index = index / 2
	}

	return &Proof{
		LeafIndex: leafIndex,
		Leaf:      t.Leaf(leafIndex),
		Steps:     steps,
	}, nil
}

// GenerateProofForLeaf creates an inclusion proof for the given leaf
// digest. If duplicate items produced identical leaf digests, the proof
// is generated for the first occurrence.
func (t *Tree) GenerateProofForLeaf(leaf Digest) (*Proof, error) {
	for i := 0; i < t.LeafCount(); i++ {
		if bytes.Equal(t.node(0, i), leaf) {
			return t.GenerateProof(i)
		}
	}
	return nil, fmt.Errorf("leaf digest %s: %w", leaf.Hex(), ErrLeafNotFound)
}

// VerifyProof recomputes a root from the leaf digest and the proof path
// and compares it to the claimed root. It needs no access to the tree,
// only the three inputs and the hash function the tree was built with;
// using a different hasher than the tree's is not detectable and simply
// fails verification.
//
// A false result is the normal outcome for tampered, mismatched, or
// unrelated inputs, never an error. Malformed inputs (nil proof, digests
// of the wrong length, an unknown side marker) also verify as false.
func VerifyProof(h hasher.Hasher, leaf Digest, proof *Proof, root Digest) bool {
	if h == nil || proof == nil {
		return false
	}
	size := h.Size()
	if len(leaf) != size || len(root) != size {
		return false
	}

	running := append(Digest(nil), leaf...)
	for _, step := range proof.Steps {
		if len(step.Sibling) != size {
			return false
		}
		switch step.Side {
		case SideRight:
			running = hashPair(h, running, step.Sibling)
		case SideLeft:
			running = hashPair(h, step.Sibling, running)
		default:
			return false
		}
	}

	return bytes.Equal(running, root)
}

// hashPair computes hash(left || right) for two digests. The
// concatenation order is load-bearing: swapping it produces an
// incompatible tree.
func hashPair(h hasher.Hasher, left, right []byte) []byte {
	data := make([]byte, 0, len(left)+len(right))
	data = append(data, left...)
	data = append(data, right...)
	return h.Hash(data)
}
