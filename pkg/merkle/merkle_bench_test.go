package merkle

import (
	"fmt"
	"testing"

	"github.com/Olanetsoft/merkle-proof-tutorial/pkg/hasher"
)

// BenchmarkBuildTree benchmarks tree construction with various sizes
func BenchmarkBuildTree(b *testing.B) {
	h, _ := hasher.New(hasher.Keccak256)
	sizes := []int{10, 100, 1000, 10000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Items_%d", size), func(b *testing.B) {
			items := createTestItems(size)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_, _ = BuildTree(h, items)
			}
		})
	}
}

// BenchmarkGenerateProof benchmarks proof generation
func BenchmarkGenerateProof(b *testing.B) {
	h, _ := hasher.New(hasher.Keccak256)
	sizes := []int{10, 100, 1000, 10000}

	for _, size := range sizes {
		tree, _ := BuildTree(h, createTestItems(size))

		b.Run(fmt.Sprintf("Items_%d", size), func(b *testing.B) {
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_, _ = tree.GenerateProof(i % size)
			}
		})
	}
}

// BenchmarkVerifyProof benchmarks proof verification
func BenchmarkVerifyProof(b *testing.B) {
	h, _ := hasher.New(hasher.Keccak256)
	sizes := []int{10, 100, 1000, 10000}

	for _, size := range sizes {
		tree, _ := BuildTree(h, createTestItems(size))
		proof, _ := tree.GenerateProof(0)
		root := tree.Root()

		b.Run(fmt.Sprintf("Items_%d", size), func(b *testing.B) {
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = VerifyProof(h, proof.Leaf, proof, root)
			}
		})
	}
}
