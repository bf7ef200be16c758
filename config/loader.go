package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/kbukum/breedkit/errors"
)

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Resolver finds parameter and env files.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved parameter and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns explicit paths if provided, otherwise searches the
// conventional locations.
func (r *Resolver) ResolveFiles(opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.first("./breed.yml", "./breed.yaml", "./config/breed.yml", "./config/breed.yaml")
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.first("./.env", "./config/.env")
	}
	return resolved
}

func (r *Resolver) first(paths ...string) string {
	for _, path := range paths {
		if r.FileSystem.Exists(path) {
			return path
		}
	}
	return ""
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct parameter file path (optional)
	EnvFile    string // Direct env file path (optional)
	Overrides  map[string]any
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit parameter file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithOverrides sets values that take precedence over the file.
func WithOverrides(values map[string]any) LoaderOption {
	return func(lc *LoaderConfig) { lc.Overrides = values }
}

// Load builds a Parameters from the resolved file, the .env file and the
// environment. A named config file that cannot be read is an error; a
// missing, unnamed one is not.
func Load(opts ...LoaderOption) (*Parameters, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}
	explicit := lc.ConfigFile != ""

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(lc)

	p := NewParameters()

	// 1. .env first so that BREED_ variables it defines are visible to viper
	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			return nil, errors.InvalidParameter(files.EnvFile, "unreadable env file").WithCause(err)
		}
	}

	// 2. Parameter file
	if files.ConfigFile != "" {
		if !lc.FileSystem.Exists(files.ConfigFile) {
			if explicit {
				return nil, errors.MissingParameter(files.ConfigFile, "")
			}
		} else {
			p.v.SetConfigFile(files.ConfigFile)
			if err := p.v.ReadInConfig(); err != nil {
				return nil, errors.InvalidParameter(files.ConfigFile, fmt.Sprintf("unreadable parameter file: %v", err)).WithCause(err)
			}
		}
	}

	// 3. Programmatic overrides
	p.SetAll(lc.Overrides)
	return p, nil
}
