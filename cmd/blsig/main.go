package main

import (
	"crypto/rand"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kysee/bls-sigs/types"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	config := NewConfig(os.Args...)

	b := minpkBackend()
	if config.MinSig {
		b = minsigBackend()
	}

	if err := run(log, config, b); err != nil {
		log.Fatal().Err(err).Str("command", config.Command).Msg("command failed")
	}
}

func run(log zerolog.Logger, config *Config, b backend) error {
	switch config.Command {
	case "keygen":
		return runKeygen(log, config, b)
	case "sign":
		return runSign(log, config, b)
	case "verify":
		return runVerify(log, config, b)
	case "aggregate":
		return runAggregate(log, config, b)
	case "aggregate-verify":
		return runAggregateVerify(log, config, b)
	case "multisig-verify":
		return runMultisigVerify(log, config, b)
	case "pop-prove":
		return runPopProve(log, config, b)
	case "pop-verify":
		return runPopVerify(log, config, b)
	case "":
		return fmt.Errorf("usage: blsig <keygen|sign|verify|aggregate|aggregate-verify|multisig-verify|pop-prove|pop-verify> [flags]")
	}
	return fmt.Errorf("unknown command %q", config.Command)
}

func runKeygen(log zerolog.Logger, config *Config, b backend) error {
	var ikm []byte
	if config.IKM != "" {
		var err error
		if ikm, err = types.HexToBytes(config.IKM); err != nil {
			return fmt.Errorf("invalid --ikm: %w", err)
		}
	} else {
		ikm = make([]byte, 32)
		if _, err := rand.Read(ikm); err != nil {
			return fmt.Errorf("failed to draw random ikm: %w", err)
		}
	}

	sk, pk := b.keyGen(ikm)
	kf := &types.KeyFile{SecretKey: sk, PublicKey: pk}
	if err := types.SaveKeyFile(config.KeyPath, kf); err != nil {
		return err
	}

	log.Info().Str("path", config.KeyPath).Str("pubkey", kf.PublicKey.String()).Msg("key pair written")
	return nil
}

func runSign(log zerolog.Logger, config *Config, b backend) error {
	kf, err := types.LoadKeyFile(config.KeyPath)
	if err != nil {
		return err
	}
	msg, err := oneMessage(config)
	if err != nil {
		return err
	}

	s, err := b.sign(kf.SecretKey, msg, config.Scheme, config.CS)
	if err != nil {
		return err
	}

	return emit(log, config, "signature", s)
}

func runVerify(log zerolog.Logger, config *Config, b backend) error {
	pk, err := publicKey(config)
	if err != nil {
		return err
	}
	msg, err := oneMessage(config)
	if err != nil {
		return err
	}
	s, err := oneSignature(config)
	if err != nil {
		return err
	}

	ok, err := b.verify(pk, s, msg, config.Scheme, config.CS)
	if err != nil {
		return err
	}
	return outcome(log, ok)
}

func runAggregate(log zerolog.Logger, config *Config, b backend) error {
	sigs, err := decodeAll(config.Sigs, "--sig")
	if err != nil {
		return err
	}

	agg, err := b.aggregate(sigs)
	if err != nil {
		return err
	}
	return emit(log, config, "aggregate", agg)
}

func runAggregateVerify(log zerolog.Logger, config *Config, b backend) error {
	pks, err := decodeAll(config.Pks, "--pk")
	if err != nil {
		return err
	}
	msgs, err := allMessages(config)
	if err != nil {
		return err
	}
	s, err := oneSignature(config)
	if err != nil {
		return err
	}

	ok, err := b.aggVerify(pks, msgs, s, config.Scheme, config.CS)
	if err != nil {
		return err
	}
	return outcome(log, ok)
}

func runMultisigVerify(log zerolog.Logger, config *Config, b backend) error {
	pks, err := decodeAll(config.Pks, "--pk")
	if err != nil {
		return err
	}
	msg, err := oneMessage(config)
	if err != nil {
		return err
	}
	s, err := oneSignature(config)
	if err != nil {
		return err
	}

	ok, err := b.msigVerify(pks, s, msg, config.CS)
	if err != nil {
		return err
	}
	return outcome(log, ok)
}

func runPopProve(log zerolog.Logger, config *Config, b backend) error {
	kf, err := types.LoadKeyFile(config.KeyPath)
	if err != nil {
		return err
	}

	pop, err := b.popProve(kf.SecretKey, kf.PublicKey, config.PopCS)
	if err != nil {
		return err
	}
	return emit(log, config, "proof of possession", pop)
}

func runPopVerify(log zerolog.Logger, config *Config, b backend) error {
	pk, err := publicKey(config)
	if err != nil {
		return err
	}
	s, err := oneSignature(config)
	if err != nil {
		return err
	}

	ok, err := b.popVerify(pk, s, config.PopCS)
	if err != nil {
		return err
	}
	return outcome(log, ok)
}

// oneMessage resolves the single --msg argument: hex, or @path to read
// raw bytes from a file.
func oneMessage(config *Config) ([]byte, error) {
	if len(config.Msgs) != 1 {
		return nil, fmt.Errorf("expected exactly one --msg, got %d", len(config.Msgs))
	}
	return resolveMessage(config.Msgs[0])
}

func allMessages(config *Config) ([][]byte, error) {
	if len(config.Msgs) == 0 {
		return nil, fmt.Errorf("at least one --msg is required")
	}
	msgs := make([][]byte, len(config.Msgs))
	for i, m := range config.Msgs {
		msg, err := resolveMessage(m)
		if err != nil {
			return nil, err
		}
		msgs[i] = msg
	}
	return msgs, nil
}

func resolveMessage(v string) ([]byte, error) {
	if strings.HasPrefix(v, "@") {
		data, err := os.ReadFile(v[1:])
		if err != nil {
			return nil, fmt.Errorf("failed to read message file: %w", err)
		}
		return data, nil
	}
	msg, err := types.HexToBytes(v)
	if err != nil {
		return nil, fmt.Errorf("invalid --msg %q (want hex or @file): %w", v, err)
	}
	return msg, nil
}

// publicKey takes --pub if present, otherwise the public half of --key.
func publicKey(config *Config) ([]byte, error) {
	if config.Pub != "" {
		pk, err := types.HexToBytes(config.Pub)
		if err != nil {
			return nil, fmt.Errorf("invalid --pub: %w", err)
		}
		return pk, nil
	}
	kf, err := types.LoadKeyFile(config.KeyPath)
	if err != nil {
		return nil, err
	}
	return kf.PublicKey, nil
}

func oneSignature(config *Config) ([]byte, error) {
	if len(config.Sigs) != 1 {
		return nil, fmt.Errorf("expected exactly one --sig, got %d", len(config.Sigs))
	}
	s, err := types.HexToBytes(config.Sigs[0])
	if err != nil {
		return nil, fmt.Errorf("invalid --sig: %w", err)
	}
	return s, nil
}

func decodeAll(vals []string, flag string) ([][]byte, error) {
	if len(vals) == 0 {
		return nil, fmt.Errorf("at least one %s is required", flag)
	}
	out := make([][]byte, len(vals))
	for i, v := range vals {
		b, err := types.HexToBytes(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", flag, v, err)
		}
		out[i] = b
	}
	return out, nil
}

// emit writes a result to --out if given, else to stdout, and logs it.
func emit(log zerolog.Logger, config *Config, what string, data []byte) error {
	hb := types.HexBytes(data)
	if config.OutPath != "" {
		if err := os.WriteFile(config.OutPath, []byte(hb.String()+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", what, err)
		}
	} else {
		fmt.Println(hb.String())
	}
	log.Info().Str("value", hb.String()).Msgf("%s produced", what)
	return nil
}

// outcome reports a verification result and exits nonzero on reject.
func outcome(log zerolog.Logger, ok bool) error {
	if !ok {
		log.Error().Msg("verification REJECTED")
		os.Exit(1)
	}
	log.Info().Msg("verification OK")
	return nil
}
