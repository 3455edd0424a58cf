package config

import (
	"os"
	"strconv"

	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/Olanetsoft/merkle-proof-tutorial/pkg/hasher"
)

// Environment variable names for CLI configuration
const (
	EnvMerkleHashAlgo  = "MERKLE_HASH_ALGO"
	EnvMerkleItemsFile = "MERKLE_ITEMS_FILE"
	EnvMerkleVerbose   = "MERKLE_VERBOSE"
)

// DefaultHashAlgo is used when no algorithm is selected. Keccak-256 keeps
// roots comparable with Solidity-side verifiers.
const DefaultHashAlgo = hasher.Keccak256

// CLIConfig represents the configuration for the merkle CLI.
type CLIConfig struct {
	// HashAlgo selects the hash algorithm by name (see hasher.Names).
	HashAlgo string `json:"hash_algo"`

	// ItemsFile is the path to the ordered item list, one entry per line.
	ItemsFile string `json:"items_file"`

	// Verbose enables debug logging.
	Verbose bool `json:"verbose"`
}

// FromEnvironment builds a CLIConfig from MERKLE_* environment variables,
// falling back to defaults for unset values.
func FromEnvironment() *CLIConfig {
	cfg := &CLIConfig{
		HashAlgo:  DefaultHashAlgo,
		ItemsFile: os.Getenv(EnvMerkleItemsFile),
	}
	if algo := os.Getenv(EnvMerkleHashAlgo); algo != "" {
		cfg.HashAlgo = algo
	}
	if verbose, err := strconv.ParseBool(os.Getenv(EnvMerkleVerbose)); err == nil {
		cfg.Verbose = verbose
	}
	return cfg
}

// Validate validates the CLI configuration.
func (c *CLIConfig) Validate() error {
	var allErrors field.ErrorList
	if c.ItemsFile == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("itemsFile"), "items file is required"))
	}
	if _, err := hasher.New(c.HashAlgo); err != nil {
		allErrors = append(allErrors, field.NotSupported(field.NewPath("hashAlgo"), c.HashAlgo, hasher.Names()))
	}
	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// Hasher returns the configured hash algorithm.
func (c *CLIConfig) Hasher() (hasher.Hasher, error) {
	return hasher.New(c.HashAlgo)
}
