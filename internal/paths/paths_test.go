package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestForHome(t *testing.T) {
	p := ForHome("/home/alice")
	want := filepath.Join("/home/alice", ".pingpong", "config.yaml")
	if p.ConfigFile != want {
		t.Errorf("ConfigFile = %q, want %q", p.ConfigFile, want)
	}
}

func TestConfigExists(t *testing.T) {
	home := t.TempDir()
	p := ForHome(home)
	if p.ConfigExists() {
		t.Fatal("ConfigExists() should be false before the file is written")
	}

	if err := os.MkdirAll(filepath.Dir(p.ConfigFile), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p.ConfigFile, []byte("target:\n  port: 80\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if !p.ConfigExists() {
		t.Error("ConfigExists() should be true after the file is written")
	}
}

func TestResolveConfigFileExplicit(t *testing.T) {
	if got := ResolveConfigFile("/tmp/custom.yaml"); got != "/tmp/custom.yaml" {
		t.Errorf("ResolveConfigFile() = %q, want explicit path", got)
	}
}

func TestPathsString(t *testing.T) {
	tests := []struct {
		name string
		p    *Paths
		want string
	}{
		{"set", ForHome("/home/ada"), "Config: /home/ada/.pingpong/config.yaml"},
		{"none", &Paths{}, "Config: none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
