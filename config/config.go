package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samuel/lyric-classifier/classifier"
	"github.com/samuel/lyric-classifier/corpus"
	"gopkg.in/yaml.v3"
)

// Store backends
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config describes one classifier run
type Config struct {
	Store           string   `yaml:"store"`
	Classes         []string `yaml:"classes"` // exactly two, the first wins ties
	Corpora         []Corpus `yaml:"corpora"`
	Samples         []string `yaml:"samples"`
	SkipUnavailable bool     `yaml:"skip_unavailable"`
}

// Corpus is a training file and the class it feeds
type Corpus struct {
	Path     string `yaml:"path"`
	Class    string `yaml:"class"`
	Encoding string `yaml:"encoding"`
}

// Default returns the built-in configuration: the Taylor Swift Country and Pop lyric files
// under ./src and one Garth Brooks and one Taylor Swift sample.
func Default() *Config {
	return &Config{
		Store:   StoreMemory,
		Classes: []string{string(classifier.Pop), string(classifier.Country)},
		Corpora: []Corpus{
			{Path: "./src/swift_country.txt", Class: string(classifier.Country)},
			{Path: "./src/swift_pop.txt", Class: string(classifier.Pop)},
		},
		Samples: []string{
			// Garth Brooks
			"Blame it all on my roots, I showed up in boots And ruined your black tie affair. The last one to know, the last one to show. I was the last one you thought you'd see there",
			// Taylor Swift
			"I wanna be your end game. I wanna be your first string. I wanna be your A-Team. I wanna be your end game, end game",
		},
	}
}

// Load reads a YAML configuration file. Unset fields keep their Default values, and
// relative corpus paths are resolved against the directory of the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i, c := range cfg.Corpora {
		if c.Path != "" && !filepath.IsAbs(c.Path) {
			cfg.Corpora[i].Path = filepath.Join(dir, c.Path)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration describes a runnable two-class classifier.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if len(c.Classes) != 2 {
		return fmt.Errorf("need exactly 2 classes, got %d", len(c.Classes))
	}
	if c.Classes[0] == "" || c.Classes[1] == "" {
		return fmt.Errorf("class labels must not be empty")
	}
	if c.Classes[0] == c.Classes[1] {
		return fmt.Errorf("classes must differ, got %q twice", c.Classes[0])
	}
	for i, corp := range c.Corpora {
		if corp.Path == "" {
			return fmt.Errorf("corpus %d: missing path", i)
		}
		if corp.Class != c.Classes[0] && corp.Class != c.Classes[1] {
			return fmt.Errorf("corpus %s: class %q is not one of %q", corp.Path, corp.Class, c.Classes)
		}
	}
	return nil
}

// ClassPair returns the configured classes in tie-break order.
func (c *Config) ClassPair() (first, second classifier.Class) {
	return classifier.Class(c.Classes[0]), classifier.Class(c.Classes[1])
}

// Sources converts the configured corpora for corpus.Train.
func (c *Config) Sources() []corpus.Source {
	sources := make([]corpus.Source, len(c.Corpora))
	for i, corp := range c.Corpora {
		sources[i] = corpus.Source{
			Path:     corp.Path,
			Class:    classifier.Class(corp.Class),
			Encoding: corp.Encoding,
		}
	}
	return sources
}
