package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix scopes the environment variables LoadConfig consults.
const EnvPrefix = "CONTENTGEN"

// FileSystem abstracts the file operations the loader needs.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem on the local disk.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
	Environ    func() []string
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnviron replaces os.Environ as the source of environment variables.
func WithEnviron(fn func() []string) LoaderOption {
	return func(lc *LoaderConfig) { lc.Environ = fn }
}

// LoadConfig loads configuration for serviceName into cfg.
//
// An explicitly named config file that does not exist is an error; a
// discovered one is optional. The same holds for the .env file.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	lc := LoaderConfig{FileSystem: RealFileSystem{}, Environ: os.Environ}
	for _, opt := range opts {
		opt(&lc)
	}

	configFile, err := resolve(lc.FileSystem, lc.ConfigFile, configSearchPaths(serviceName))
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	envFile, err := resolve(lc.FileSystem, lc.EnvFile, []string{".env." + serviceName, ".env"})
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}
	if envFile != "" {
		if err := lc.FileSystem.LoadEnv(envFile); err != nil {
			return fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}
	bindEnv(v, lc.Environ())

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal %s: %w", serviceName, err)
	}
	return nil
}

func resolve(fs FileSystem, explicit string, candidates []string) (string, error) {
	if explicit != "" {
		if !fs.Exists(explicit) {
			return "", fmt.Errorf("file %s does not exist", explicit)
		}
		return explicit, nil
	}
	for _, path := range candidates {
		if fs.Exists(path) {
			return path, nil
		}
	}
	return "", nil
}

func configSearchPaths(serviceName string) []string {
	return []string{
		fmt.Sprintf("./cmd/%s/config.yml", serviceName),
		"./config.yml",
		"./config/config.yml",
	}
}

// bindEnv copies every PREFIX_* variable into v under each nested key it
// could plausibly address.
func bindEnv(v *viper.Viper, environ []string) {
	prefix := EnvPrefix + "_"
	for _, env := range environ {
		key, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(key, prefix) {
			continue
		}
		for _, variant := range envKeyVariants(strings.TrimPrefix(key, prefix)) {
			v.Set(variant, value)
		}
	}
}

// envKeyVariants maps an underscore-separated name onto the dotted keys it
// may refer to, since underscores are valid inside keys too:
//
//	PIPELINE_BATCH_SIZE -> [pipeline_batch_size, pipeline.batch.size, pipeline.batch_size, pipeline_batch.size]
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) <= 1 {
		return []string{lower}
	}

	variants := []string{lower, strings.Join(parts, ".")}
	for i := 1; i < len(parts); i++ {
		variants = append(variants,
			strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"),
			strings.Join(parts[:i], "_")+"."+strings.Join(parts[i:], "."),
		)
	}

	seen := make(map[string]bool, len(variants))
	out := variants[:0]
	for _, s := range variants {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
