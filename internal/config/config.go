package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FeatureConfig parameterizes TF-IDF feature construction.
type FeatureConfig struct {
	MaxFeatures int `yaml:"max_features" validate:"gte=0"`
	NgramMin    int `yaml:"ngram_min" validate:"gte=1"`
	NgramMax    int `yaml:"ngram_max" validate:"gtefield=NgramMin"`
	MinDF       int `yaml:"min_df" validate:"gte=1"`
}

// PreferenceConfig holds the default soft-weighting parameters. Per-request
// preferences supplied on the command line override these.
type PreferenceConfig struct {
	GenreWeight    float64 `yaml:"genre_weight" validate:"gte=0"`
	LanguageWeight float64 `yaml:"language_weight" validate:"gte=0"`
	MinRating      float64 `yaml:"min_rating" validate:"gte=0,lte=10"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	DataPath    string           `yaml:"data"`
	CachePath   string           `yaml:"cache_path"`
	TopK        int              `yaml:"top_k" validate:"gt=0"`
	Features    FeatureConfig    `yaml:"features"`
	Preferences PreferenceConfig `yaml:"preferences"`
}

// Load reads a config from the given path. A missing file yields defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDefault tries ./cinerec.yaml first, then ~/.config/cinerec/config.yaml.
// If neither exists it returns defaults without writing anything.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "cinerec.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	return defaultConfig(), "", nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cinerec", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		DataPath:  "data/movies.csv",
		CachePath: "cache/features.json",
		TopK:      10,
		Features:  FeatureConfig{MaxFeatures: 5000, NgramMin: 1, NgramMax: 2, MinDF: 1},
		Preferences: PreferenceConfig{
			GenreWeight:    0.3,
			LanguageWeight: 0.2,
			MinRating:      0,
		},
	}
}

func applyDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.DataPath == "" {
		cfg.DataPath = def.DataPath
	}
	if cfg.CachePath == "" {
		cfg.CachePath = def.CachePath
	}
	if cfg.TopK == 0 {
		cfg.TopK = def.TopK
	}
	if cfg.Features.MaxFeatures == 0 {
		cfg.Features.MaxFeatures = def.Features.MaxFeatures
	}
	if cfg.Features.NgramMin == 0 {
		cfg.Features.NgramMin = def.Features.NgramMin
	}
	if cfg.Features.NgramMax == 0 {
		cfg.Features.NgramMax = def.Features.NgramMax
	}
	if cfg.Features.MinDF == 0 {
		cfg.Features.MinDF = def.Features.MinDF
	}
	if cfg.Preferences.GenreWeight == 0 {
		cfg.Preferences.GenreWeight = def.Preferences.GenreWeight
	}
	if cfg.Preferences.LanguageWeight == 0 {
		cfg.Preferences.LanguageWeight = def.Preferences.LanguageWeight
	}
}
