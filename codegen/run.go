package codegen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	features "github.com/goliatone/go-features"
)

// ErrIO reports an unwritable output destination.
var ErrIO = errors.New("codegen: output not writable")

// Run executes one generation pass: read the manifest, parse it, render the
// source unit and write it under cfg.OutputFilePath. No partial file is ever
// left behind; the output is written to a temp file and renamed only after
// generation succeeded. Returns the written path.
func Run(cfg Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	raw, err := os.ReadFile(cfg.InputFilePath)
	if err != nil {
		return "", fmt.Errorf("codegen: read manifest %q: %w", cfg.InputFilePath, err)
	}

	manifest, err := features.ParseManifest(raw)
	if err != nil {
		return "", fmt.Errorf("codegen: manifest %q: %w", cfg.InputFilePath, err)
	}

	source, err := Generate(manifest, cfg)
	if err != nil {
		return "", err
	}

	target := cfg.OutputFile()
	if err := writeAtomic(target, source); err != nil {
		return "", err
	}
	return target, nil
}

func writeAtomic(target string, payload []byte) error {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %q: %v", ErrIO, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(target)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: temp file in %q: %v", ErrIO, dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %q: %v", ErrIO, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %q: %v", ErrIO, tmpName, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replace %q: %v", ErrIO, target, err)
	}
	return nil
}
