package codegen

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ErrConfig reports a missing, unreadable or invalid generator configuration.
var ErrConfig = errors.New("codegen: invalid generator config")

// Config drives one generation run. OutputFilename doubles as the generated
// file's base name and the facade type's name.
type Config struct {
	InputFilePath  string `koanf:"inputFilePath"`
	OutputFilePath string `koanf:"outputFilePath"`
	OutputFilename string `koanf:"outputFilename"`
	OutputPackage  string `koanf:"outputPackage"`
}

// LoadConfig reads a JSON generator configuration from path.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), kjson.Parser()); err != nil {
		return Config{}, fmt.Errorf("%w: load %q: %v", ErrConfig, path, err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: decode %q: %v", ErrConfig, path, err)
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	if c.OutputPackage == "" && c.OutputFilePath != "" {
		c.OutputPackage = packageNameFromDir(c.OutputFilePath)
	}
	return c
}

// Validate checks that every required option is present and usable.
func (c Config) Validate() error {
	if c.InputFilePath == "" {
		return fmt.Errorf("%w: inputFilePath is required", ErrConfig)
	}
	if c.OutputFilePath == "" {
		return fmt.Errorf("%w: outputFilePath is required", ErrConfig)
	}
	if c.OutputFilename == "" {
		return fmt.Errorf("%w: outputFilename is required", ErrConfig)
	}
	if !validTypeName(c.OutputFilename) {
		return fmt.Errorf("%w: outputFilename %q is not a valid exported type name", ErrConfig, c.OutputFilename)
	}
	if c.OutputPackage != "" && !validPackageName(c.OutputPackage) {
		return fmt.Errorf("%w: outputPackage %q is not a valid package name", ErrConfig, c.OutputPackage)
	}
	return nil
}

// OutputFile returns the full path of the generated source unit.
func (c Config) OutputFile() string {
	return filepath.Join(c.OutputFilePath, c.OutputFilename+".go")
}

func packageNameFromDir(dir string) string {
	base := strings.ToLower(filepath.Base(filepath.Clean(dir)))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if b.Len() > 0 {
				b.WriteRune(r)
			}
		}
	}
	if b.Len() == 0 {
		return "features"
	}
	return b.String()
}

func validTypeName(name string) bool {
	if name == "" {
		return false
	}
	first := rune(name[0])
	if first < 'A' || first > 'Z' {
		return false
	}
	return validIdentifier(name)
}

func validPackageName(name string) bool {
	if name == "" {
		return false
	}
	if first := rune(name[0]); first >= '0' && first <= '9' {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}

func validIdentifier(name string) bool {
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return name != ""
}
