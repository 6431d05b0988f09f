package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the tool configuration, parsed from environment variables
// and command line args.
type Config struct {
	Command string

	KeyPath string
	OutPath string

	IKM    string
	Pub    string
	Msgs   []string
	Sigs   []string
	Pks    []string
	Scheme string

	// MinSig selects the sig-in-G1 configuration; default is sig-in-G2
	// (minimal public keys).
	MinSig bool

	CS    byte
	PopCS byte
}

func NewConfig(args ...string) *Config {
	config := Config{
		KeyPath: getEnv("BLSIG_KEY", "key.json"),
		Scheme:  getEnv("BLSIG_SCHEME", "basic"),
		CS:      0x01,
		PopCS:   0x02,
	}

	if len(args) > 1 {
		config.Command = args[1]
	}

	for i := 2; i < len(args); i++ {
		if args[i] == "--min-sig" {
			config.MinSig = true
			continue
		}
		if len(args) <= i+1 {
			panic(fmt.Errorf("missing argument for %s", args[i]))
		}

		switch args[i] {
		case "--key":
			config.KeyPath = args[i+1]
			i++
		case "--out":
			config.OutPath = args[i+1]
			i++
		case "--ikm":
			config.IKM = args[i+1]
			i++
		case "--pub":
			config.Pub = args[i+1]
			i++
		case "--msg":
			config.Msgs = append(config.Msgs, args[i+1])
			i++
		case "--sig":
			config.Sigs = append(config.Sigs, args[i+1])
			i++
		case "--pk":
			config.Pks = append(config.Pks, args[i+1])
			i++
		case "--scheme":
			config.Scheme = args[i+1]
			i++
		case "--cs":
			config.CS = parseCsByte(args[i+1])
			i++
		case "--pop-cs":
			config.PopCS = parseCsByte(args[i+1])
			i++
		}
	}

	return &config
}

func parseCsByte(v string) byte {
	b, err := strconv.ParseUint(strings.TrimPrefix(v, "0x"), 16, 8)
	if err != nil {
		panic(fmt.Errorf("invalid ciphersuite byte %q: %w", v, err))
	}
	return byte(b)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
