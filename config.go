package vartable

import (
	"fmt"
	"os"
	"runtime"

	"github.com/carbocation/pfx"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const (
	DefaultChunkSize = 5000
	DefaultTag       = "caller"
	EnvPrefix        = "VARTABLE"
)

// Config holds the construction parameters of a Reader.
type Config struct {
	// Path of the VCF; local or gs://bucket/object
	Path string `yaml:"path" split_words:"true"`

	// BAMs are alignment files for the samples, in VCF sample order. They
	// are carried onto each Variant and never opened or validated.
	BAMs []string `yaml:"bams" envconfig:"BAMS"`

	// IsFalsePositive marks a call set of known false positives: every
	// sample then classifies as NO_VARIANT.
	IsFalsePositive bool `yaml:"is_fp" envconfig:"IS_FP"`

	// RequireGenotype is accepted for compatibility and not enforced.
	RequireGenotype bool `yaml:"require_genotype" split_words:"true"`

	// Tag labels the call set, e.g. with the caller's name.
	Tag string `yaml:"tag" split_words:"true"`

	InfoKeys   []string `yaml:"info_keys" split_words:"true"`
	FilterKeys []string `yaml:"filter_keys" split_words:"true"`
	FormatKeys []string `yaml:"format_keys" split_words:"true"`

	// Regions restricts parsing, as "chr:start-end[,chr:start-end...]"
	Regions string `yaml:"regions" split_words:"true"`

	Workers   int `yaml:"workers" split_words:"true"`
	ChunkSize int `yaml:"chunk_size" split_words:"true"`

	// Verbose logs per-worker progress.
	Verbose bool `yaml:"verbose" split_words:"true"`

	// Open creates each worker's record source. Defaults to OpenRecordSource.
	Open OpenFunc `yaml:"-" ignored:"true"`
}

// DefaultConfig parses every FORMAT field and no INFO or FILTER fields, with
// one worker per CPU.
func DefaultConfig() Config {
	return Config{
		Tag:        DefaultTag,
		FormatKeys: []string{Wildcard},
		Workers:    runtime.NumCPU(),
		ChunkSize:  DefaultChunkSize,
		Open:       OpenRecordSource,
	}
}

// ConfigFromEnv overlays environment variables such as VARTABLE_WORKERS or
// VARTABLE_INFO_KEYS=DP,AF onto the defaults. Only prefixed variables are
// read, except VARTABLE_BAMS and VARTABLE_IS_FP which fall back to BAMS and
// IS_FP. An empty prefix means
// EnvPrefix.
func ConfigFromEnv(prefix string) (Config, error) {
	if prefix == "" {
		prefix = EnvPrefix
	}

	cfg := DefaultConfig()
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return cfg, pfx.Err(err)
	}
	return cfg, nil
}

// LoadConfigFile overlays the YAML file at path onto cfg. Keys absent from
// the file keep their current value.
func LoadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return pfx.Err(err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	return nil
}

// Keys is the field selection to resolve against the header.
func (c Config) Keys() KeySelection {
	return KeySelection{
		Info:   c.InfoKeys,
		Filter: c.FilterKeys,
		Format: c.FormatKeys,
	}
}

func (c Config) Validate() error {
	if c.Path == "" {
		return pfx.Err(fmt.Errorf("no VCF path was provided"))
	}
	if c.Workers < 1 {
		return pfx.Err(fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.ChunkSize < 1 {
		return pfx.Err(fmt.Errorf("chunk size must be at least 1, got %d", c.ChunkSize))
	}
	if _, err := ParseRegions(c.Regions); err != nil {
		return pfx.Err(err)
	}
	return nil
}
