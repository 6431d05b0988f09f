package types

import (
	"encoding/json"
	"fmt"
	"os"
)

// KeyFile is the on-disk key format: the 32-byte big-endian secret scalar
// and the compressed public key. The public key is 96 bytes when it lives
// in G2 (minsig configuration) and 48 bytes when it lives in G1 (minpk).
// Key files are plaintext; protecting them is the caller's problem.
type KeyFile struct {
	SecretKey HexBytes `json:"secret_key"`
	PublicKey HexBytes `json:"public_key"`
}

func LoadKeyFile(path string) (*KeyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file %s: %w", path, err)
	}

	var kf KeyFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("failed to parse key file %s: %w", path, err)
	}
	return &kf, nil
}

func SaveKeyFile(path string, kf *KeyFile) error {
	data, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode key file: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write key file %s: %w", path, err)
	}
	return nil
}
