// Package allowlist layers an ordered, file-backed item list on top of
// the merkle engine. Entries are treated as opaque bytes: no case
// folding, trimming, or other normalization is applied beyond stripping
// the line terminator, since normalization changes which entries compare
// equal and belongs to whoever produces the list.
package allowlist

import (
	"bufio"
	"bytes"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Olanetsoft/merkle-proof-tutorial/pkg/hasher"
	"github.com/Olanetsoft/merkle-proof-tutorial/pkg/logger"
	"github.com/Olanetsoft/merkle-proof-tutorial/pkg/merkle"
)

// Allowlist holds an ordered item list and the merkle tree committing to
// it. The tree is built once at construction; a changed list means
// constructing a new Allowlist.
//
// Safe for concurrent use once constructed.
type Allowlist struct {
	entries [][]byte
	tree    *merkle.Tree
	logger  *zap.Logger
}

// New builds an allowlist over the given entries, preserving their order.
func New(entries [][]byte, h hasher.Hasher, log *zap.Logger) (*Allowlist, error) {
	if log == nil {
		log, _ = logger.NewLogger(&logger.LoggerConfig{Debug: false})
	}

	tree, err := merkle.BuildTree(h, entries)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build allowlist merkle tree")
	}

	log.Info("built allowlist merkle tree",
		zap.Int("entries", len(entries)),
		zap.String("hash", h.Name()),
		zap.String("root", tree.Root().Hex()),
	)

	return &Allowlist{
		entries: entries,
		tree:    tree,
		logger:  log,
	}, nil
}

// Load reads an item list from a file, one entry per line, and builds an
// allowlist over it. Blank lines are skipped; everything else on a line
// is kept verbatim.
func Load(path string, h hasher.Hasher, log *zap.Logger) (*Allowlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open allowlist file %s", path)
	}
	defer f.Close()

	var entries [][]byte
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		entries = append(entries, append([]byte(nil), line...))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read allowlist file %s", path)
	}

	return New(entries, h, log)
}

// Size returns the number of entries in the allowlist.
func (a *Allowlist) Size() int {
	return len(a.entries)
}

// Root returns the merkle root committing to the full entry list.
func (a *Allowlist) Root() merkle.Digest {
	return a.tree.Root()
}

// Tree returns the underlying merkle tree.
func (a *Allowlist) Tree() *merkle.Tree {
	return a.tree
}

// ProveIndex generates an inclusion proof for the entry at the given
// position in the list.
func (a *Allowlist) ProveIndex(index int) (*merkle.Proof, error) {
	return a.tree.GenerateProof(index)
}

// Prove generates an inclusion proof for the given entry. Duplicate
// entries resolve to the first occurrence.
func (a *Allowlist) Prove(entry []byte) (*merkle.Proof, error) {
	leaf := merkle.Digest(a.tree.Hasher().Hash(entry))
	return a.tree.GenerateProofForLeaf(leaf)
}

// Contains reports whether the entry appears in the list.
func (a *Allowlist) Contains(entry []byte) bool {
	for _, e := range a.entries {
		if bytes.Equal(e, entry) {
			return true
		}
	}
	return false
}
