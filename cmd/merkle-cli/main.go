package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Olanetsoft/merkle-proof-tutorial/pkg/allowlist"
	"github.com/Olanetsoft/merkle-proof-tutorial/pkg/config"
	"github.com/Olanetsoft/merkle-proof-tutorial/pkg/hasher"
	"github.com/Olanetsoft/merkle-proof-tutorial/pkg/logger"
	"github.com/Olanetsoft/merkle-proof-tutorial/pkg/merkle"
)

func main() {
	app := &cli.App{
		Name:  "merkle-cli",
		Usage: "Build merkle trees over item lists and generate/verify inclusion proofs",
		Description: `Commits an ordered list of items (e.g. an email allowlist) to a single
merkle root and produces compact inclusion proofs that a specific item is
part of the committed list. A remote party holding only the root can
verify a proof without access to the rest of the list.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "hash",
				Usage:   fmt.Sprintf("Hash algorithm, one of %v", hasher.Names()),
				Value:   config.DefaultHashAlgo,
				EnvVars: []string{config.EnvMerkleHashAlgo},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable debug logging",
				EnvVars: []string{config.EnvMerkleVerbose},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "root",
				Usage: "Build a tree from an items file and print its root",
				Flags: []cli.Flag{
					itemsFlag(),
				},
				Action: rootCommand,
			},
			{
				Name:  "prove",
				Usage: "Generate an inclusion proof for one item of an items file",
				Flags: []cli.Flag{
					itemsFlag(),
					&cli.StringFlag{
						Name:  "item",
						Usage: "Item to prove (verbatim line from the items file)",
					},
					&cli.IntFlag{
						Name:  "index",
						Usage: "Leaf index to prove (alternative to --item)",
						Value: -1,
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "Output file for the proof JSON (default: stdout)",
					},
				},
				Action: proveCommand,
			},
			{
				Name:  "verify",
				Usage: "Verify a proof JSON against a claimed root",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "proof",
						Usage:    "Path to a proof JSON file produced by prove",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "root",
						Usage:    "Claimed merkle root (hex)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "item",
						Usage: "Item to verify (hashed with the selected algorithm)",
					},
					&cli.StringFlag{
						Name:  "leaf",
						Usage: "Precomputed leaf digest (hex, alternative to --item)",
					},
				},
				Action: verifyCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func itemsFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "items",
		Usage:   "Path to the items file, one entry per line",
		EnvVars: []string{config.EnvMerkleItemsFile},
	}
}

// loadAllowlist validates the CLI configuration and builds the allowlist
// from the configured items file.
func loadAllowlist(c *cli.Context) (*allowlist.Allowlist, hasher.Hasher, error) {
	cfg := &config.CLIConfig{
		HashAlgo:  c.String("hash"),
		ItemsFile: c.String("items"),
		Verbose:   c.Bool("verbose"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	zapLogger, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Verbose})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	h, err := cfg.Hasher()
	if err != nil {
		return nil, nil, err
	}

	list, err := allowlist.Load(cfg.ItemsFile, h, zapLogger)
	if err != nil {
		return nil, nil, err
	}
	zapLogger.Debug("allowlist loaded", zap.Int("entries", list.Size()))

	return list, h, nil
}

// rootCommand handles the root subcommand
func rootCommand(c *cli.Context) error {
	list, _, err := loadAllowlist(c)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", list.Root().Hex())
	return nil
}

// proveCommand handles the prove subcommand
func proveCommand(c *cli.Context) error {
	list, _, err := loadAllowlist(c)
	if err != nil {
		return err
	}

	var proof *merkle.Proof
	switch {
	case c.String("item") != "":
		proof, err = list.Prove([]byte(c.String("item")))
	case c.Int("index") >= 0:
		proof, err = list.ProveIndex(c.Int("index"))
	default:
		return fmt.Errorf("either --item or --index is required")
	}
	if err != nil {
		return fmt.Errorf("failed to generate proof: %w", err)
	}

	encoded, err := json.MarshalIndent(proof, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode proof: %w", err)
	}

	if outputFile := c.String("output"); outputFile != "" {
		if err := os.WriteFile(outputFile, encoded, 0644); err != nil {
			return fmt.Errorf("failed to write proof to file: %w", err)
		}
		fmt.Printf("✅ Proof written to: %s\n", outputFile)
	} else {
		fmt.Printf("%s\n", encoded)
	}

	return nil
}

// verifyCommand handles the verify subcommand
func verifyCommand(c *cli.Context) error {
	h, err := hasher.New(c.String("hash"))
	if err != nil {
		return err
	}

	proofData, err := os.ReadFile(c.String("proof"))
	if err != nil {
		return fmt.Errorf("failed to read proof file: %w", err)
	}
	var proof merkle.Proof
	if err := json.Unmarshal(proofData, &proof); err != nil {
		return fmt.Errorf("failed to decode proof: %w", err)
	}

	root, err := hexutil.Decode(c.String("root"))
	if err != nil {
		return fmt.Errorf("failed to decode root: %w", err)
	}

	// Pick the leaf digest: an explicit item wins over a precomputed
	// leaf, which wins over the digest embedded in the proof.
	var leaf merkle.Digest
	switch {
	case c.String("item") != "":
		leaf = h.Hash([]byte(c.String("item")))
	case c.String("leaf") != "":
		decoded, decodeErr := hexutil.Decode(c.String("leaf"))
		if decodeErr != nil {
			return fmt.Errorf("failed to decode leaf digest: %w", decodeErr)
		}
		leaf = decoded
	default:
		leaf = proof.Leaf
	}

	if merkle.VerifyProof(h, leaf, &proof, root) {
		fmt.Printf("✅ Proof is valid for root %s\n", merkle.Digest(root).Hex())
		return nil
	}

	fmt.Printf("❌ Proof is NOT valid for root %s\n", merkle.Digest(root).Hex())
	return cli.Exit("", 1)
}
