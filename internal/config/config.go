// Package config provides configuration management for the ct-assess CLI.
//
// It implements the disciplined Viper pattern where Viper stays contained
// in this package and the rest of the codebase receives explicit Config structs.
// Configuration sources are resolved in this order: flags > env > config file > defaults.
//
// AWS credentials and the default region are not read here. They come from the
// AWS SDK default chain (AWS_PROFILE, AWS_REGION, shared config files); this
// package only carries overrides for them.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Output formats understood by the report package.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config is the explicit configuration struct
// This is what the rest of the codebase sees
type Config struct {
	Profile      string
	Region       string
	Output       string
	Strict       bool
	Verbose      bool
	NoColor      bool
	CheckTimeout time.Duration
	Thresholds   Thresholds
	Only         []string
	Skip         []string
}

// Thresholds holds the fixed limits the checks compare against
type Thresholds struct {
	MaxAccounts int
	MaxVPCs     int
}

// Init initializes viper with defaults and config file paths
func Init() error {
	// Set config file name and type
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config file search paths
	viper.AddConfigPath("$HOME/.ct-assess")
	viper.AddConfigPath(".")

	// Set defaults
	viper.SetDefault("profile", "")
	viper.SetDefault("region", "")
	viper.SetDefault("output", OutputText)
	viper.SetDefault("strict", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("no-color", false)
	viper.SetDefault("check-timeout", 30*time.Second)
	viper.SetDefault("max-accounts", 100)
	viper.SetDefault("max-vpcs", 3)
	viper.SetDefault("only", []string{})
	viper.SetDefault("skip", []string{})

	// Bind environment variables with prefix
	viper.SetEnvPrefix("CT_ASSESS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

// Load reads from all sources and returns explicit Config
func Load() (*Config, error) {
	cfg := &Config{
		Profile:      viper.GetString("profile"),
		Region:       viper.GetString("region"),
		Output:       strings.ToLower(viper.GetString("output")),
		Strict:       viper.GetBool("strict"),
		Verbose:      viper.GetBool("verbose"),
		NoColor:      viper.GetBool("no-color"),
		CheckTimeout: viper.GetDuration("check-timeout"),
		Thresholds: Thresholds{
			MaxAccounts: viper.GetInt("max-accounts"),
			MaxVPCs:     viper.GetInt("max-vpcs"),
		},
		Only: splitList(viper.GetStringSlice("only")),
		Skip: splitList(viper.GetStringSlice("skip")),
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures config is sane
func (c *Config) Validate() error {
	if c.Output != OutputText && c.Output != OutputJSON && c.Output != OutputYAML {
		return fmt.Errorf("invalid output: %s (must be text, json, or yaml)", c.Output)
	}

	if c.CheckTimeout <= 0 {
		return fmt.Errorf("invalid check-timeout: %s (must be positive)", c.CheckTimeout)
	}

	if c.Thresholds.MaxAccounts < 0 {
		return fmt.Errorf("invalid max-accounts: %d", c.Thresholds.MaxAccounts)
	}

	if c.Thresholds.MaxVPCs < 0 {
		return fmt.Errorf("invalid max-vpcs: %d", c.Thresholds.MaxVPCs)
	}

	if len(c.Only) > 0 && len(c.Skip) > 0 {
		return fmt.Errorf("only and skip cannot be combined")
	}

	return nil
}

// Display shows current config (for ct-assess config)
func Display() (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = "(not found)"
	}

	return fmt.Sprintf(`Configuration:
  profile:            %s
  region:             %s
  output:             %s
  strict:             %t
  check-timeout:      %s

Thresholds:
  max-accounts:       %d
  max-vpcs:           %d

Selection:
  only:               %s
  skip:               %s

Sources:
  Config file:        %s
  Environment:        CT_ASSESS_*, AWS_PROFILE, AWS_REGION, AWS_DEFAULT_REGION
  Flags:              (per command)
`,
		orDefault(cfg.Profile, "(sdk default)"),
		orDefault(cfg.Region, "(sdk default)"),
		cfg.Output,
		cfg.Strict,
		cfg.CheckTimeout,
		cfg.Thresholds.MaxAccounts,
		cfg.Thresholds.MaxVPCs,
		orDefault(strings.Join(cfg.Only, ","), "(all)"),
		orDefault(strings.Join(cfg.Skip, ","), "(none)"),
		configFile,
	), nil
}

// splitList accepts both repeated values and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, v := range in {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
