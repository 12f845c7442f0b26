package cmd

import "testing"

func TestPositiveFloat(t *testing.T) {
	check := positiveFloat("rate")
	for _, s := range []string{"0.207", " 1609.34 ", "1"} {
		if err := check(s); err != nil {
			t.Errorf("positiveFloat(%q) = %v, want nil", s, err)
		}
	}
	for _, s := range []string{"", "0", "-1", "abc"} {
		if err := check(s); err == nil {
			t.Errorf("positiveFloat(%q) = nil, want error", s)
		}
	}
}

func TestValidURL(t *testing.T) {
	for _, s := range []string{"", "https://api.example.com", "http://localhost:8080/v1"} {
		if err := validURL(s); err != nil {
			t.Errorf("validURL(%q) = %v, want nil", s, err)
		}
	}
	for _, s := range []string{"api.example.com", "ftp://host", "https://"} {
		if err := validURL(s); err == nil {
			t.Errorf("validURL(%q) = nil, want error", s)
		}
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"abc", "****"},
		{"abcdefgh", "abcd..."},
		{"abcdefghijklmnopqrst", "abcdefgh...qrst"},
	}
	for _, tt := range tests {
		if got := maskAPIKey(tt.key); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestConfigPath_PrefersFlag(t *testing.T) {
	t.Setenv("FLEETBILL_CONFIG", "/env/fleetbill.toml")
	saved := flagConfig
	t.Cleanup(func() { flagConfig = saved })

	flagConfig = ""
	if got := configPath(); got != "/env/fleetbill.toml" {
		t.Errorf("configPath() = %q, want env path", got)
	}
	flagConfig = "/flag/fleetbill.yaml"
	if got := configPath(); got != "/flag/fleetbill.yaml" {
		t.Errorf("configPath() = %q, want --config path", got)
	}
}
