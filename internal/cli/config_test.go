package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigSaveAndLoad(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	cfg := CLIConfig{
		ServerURL: "http://myhost:9090",
		APIKey:    "ck_testapikey123",
		Prefix:    "ck",
		DevMode:   true,
	}

	if err := saveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	path := filepath.Join(tmp, ".config", "ck", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not found: %v", err)
	}

	loaded, err := loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != cfg {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func TestConfigLoadMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if cfg != (CLIConfig{}) {
		t.Error("expected zero-value config for missing file")
	}
}

func TestConfigLoadInvalid(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	dir := filepath.Join(tmp, ".config", "ck")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server_url: [unclosed"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := loadConfig(); err == nil {
		t.Error("expected parse error")
	}
}

func TestGetServerURLFromEnv(t *testing.T) {
	t.Setenv("CK_SERVER_URL", "http://custom:1234")
	t.Setenv("HOME", t.TempDir())

	url := getServerURL()
	if url != "http://custom:1234" {
		t.Errorf("url = %q, want %q", url, "http://custom:1234")
	}
}

func TestGetServerURLDefault(t *testing.T) {
	t.Setenv("CK_SERVER_URL", "")
	t.Setenv("HOME", t.TempDir())

	url := getServerURL()
	if url != "http://localhost:8080" {
		t.Errorf("url = %q, want %q", url, "http://localhost:8080")
	}
}

func TestGetPrefixFromConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CK_PREFIX", "")

	if err := saveConfig(CLIConfig{Prefix: "cfg"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	if got := getPrefix(); got != "cfg" {
		t.Errorf("prefix = %q, want cfg", got)
	}
}

func TestGetDevMode(t *testing.T) {
	tests := []struct {
		name string
		env  string
		cfg  bool
		want bool
	}{
		{"env true", "true", false, true},
		{"env false overrides config", "false", true, false},
		{"env garbage", "maybe", true, false},
		{"config only", "", true, true},
		{"unset", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			t.Setenv("CK_DEV_MODE", tt.env)
			if err := saveConfig(CLIConfig{DevMode: tt.cfg}); err != nil {
				t.Fatalf("save: %v", err)
			}
			if got := getDevMode(); got != tt.want {
				t.Errorf("getDevMode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigSetCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CK_SERVER_URL", "")

	if _, err := executeCommand("config", "set", "server_url", "http://cfg:1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := getServerURL(); got != "http://cfg:1" {
		t.Errorf("server url = %q", got)
	}

	if _, err := executeCommand("config", "set", "dev_mode", "sometimes"); err == nil {
		t.Error("expected error for bad dev_mode")
	}
	_, err := executeCommand("config", "set", "colour", "blue")
	if err == nil || !strings.Contains(err.Error(), "unknown config key") {
		t.Errorf("err = %v, want unknown key", err)
	}
}

func TestGetAPIKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CK_API_KEY", "")

	if key := getAPIKey(); key != "" {
		t.Errorf("key = %q, want empty", key)
	}

	if err := saveConfig(CLIConfig{APIKey: "ck_configkey"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if key := getAPIKey(); key != "ck_configkey" {
		t.Errorf("key = %q, want ck_configkey", key)
	}

	t.Setenv("CK_API_KEY", "ck_envkey")
	if key := getAPIKey(); key != "ck_envkey" {
		t.Errorf("key = %q, want ck_envkey", key)
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "(none)"},
		{"short", "********"},
		{"ck_abcdef0123456789", "ck_abcde..."},
	}
	for _, tt := range tests {
		if got := maskKey(tt.in); got != tt.want {
			t.Errorf("maskKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
