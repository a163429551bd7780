package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func validConfig() Config {
	return Config{
		Output:       OutputText,
		CheckTimeout: 30 * time.Second,
		Thresholds: Thresholds{
			MaxAccounts: 100,
			MaxVPCs:     3,
		},
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid text config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "valid json output",
			mutate:  func(c *Config) { c.Output = OutputJSON },
			wantErr: false,
		},
		{
			name:    "valid yaml output",
			mutate:  func(c *Config) { c.Output = OutputYAML },
			wantErr: false,
		},
		{
			name:    "invalid output",
			mutate:  func(c *Config) { c.Output = "xml" },
			wantErr: true,
		},
		{
			name:    "invalid timeout - zero",
			mutate:  func(c *Config) { c.CheckTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "invalid max accounts",
			mutate:  func(c *Config) { c.Thresholds.MaxAccounts = -1 },
			wantErr: true,
		},
		{
			name:    "invalid max vpcs",
			mutate:  func(c *Config) { c.Thresholds.MaxVPCs = -5 },
			wantErr: true,
		},
		{
			name: "only and skip together",
			mutate: func(c *Config) {
				c.Only = []string{"region"}
				c.Skip = []string{"vpcs"}
			},
			wantErr: true,
		},
		{
			name:    "only alone",
			mutate:  func(c *Config) { c.Only = []string{"region", "vpcs"} },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output != OutputText {
		t.Errorf("Load() Output = %q, want %q", cfg.Output, OutputText)
	}
	if cfg.Thresholds.MaxAccounts != 100 {
		t.Errorf("Load() MaxAccounts = %d, want 100", cfg.Thresholds.MaxAccounts)
	}
	if cfg.Thresholds.MaxVPCs != 3 {
		t.Errorf("Load() MaxVPCs = %d, want 3", cfg.Thresholds.MaxVPCs)
	}
	if cfg.CheckTimeout != 30*time.Second {
		t.Errorf("Load() CheckTimeout = %s, want 30s", cfg.CheckTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("CT_ASSESS_OUTPUT", "JSON")
	t.Setenv("CT_ASSESS_MAX_VPCS", "10")
	t.Setenv("CT_ASSESS_SKIP", "vpcs,stacksets")

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output != OutputJSON {
		t.Errorf("Load() Output = %q, want %q", cfg.Output, OutputJSON)
	}
	if cfg.Thresholds.MaxVPCs != 10 {
		t.Errorf("Load() MaxVPCs = %d, want 10", cfg.Thresholds.MaxVPCs)
	}
	if len(cfg.Skip) != 2 || cfg.Skip[0] != "vpcs" || cfg.Skip[1] != "stacksets" {
		t.Errorf("Load() Skip = %v, want [vpcs stacksets]", cfg.Skip)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList([]string{"a, b", "", "c"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("splitList() = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("splitList()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
