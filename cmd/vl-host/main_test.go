package main

import (
	"path/filepath"
	"testing"

	"github.com/videolighter/desktop-host/internal/config"
)

func TestRequestFromArgs(t *testing.T) {
	tests := []struct {
		args        []string
		wantCommand string
		wantPath    string
		wantErr     bool
	}{
		{[]string{"trash", "/tmp/test.txt"}, "move-to-trash", "/tmp/test.txt", false},
		{[]string{"reveal", "/home/me/clip.mp4"}, "show-in-folder", "/home/me/clip.mp4", false},
		{[]string{"machine-id"}, "get-machine-id", "", false},
		{[]string{"info"}, "get-platform-info", "", false},
		{[]string{"trash"}, "", "", true},
		{[]string{"reveal", "a", "b"}, "", "", true},
		{[]string{"format"}, "", "", true},
	}
	for _, tt := range tests {
		req, err := requestFromArgs(tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("requestFromArgs(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if req.Command != tt.wantCommand || req.Path != tt.wantPath {
			t.Errorf("requestFromArgs(%v) = %+v, want %s %q", tt.args, req, tt.wantCommand, tt.wantPath)
		}
	}
}

func TestEmbeddedConfigIsValid(t *testing.T) {
	cfg, err := config.LoadLayered(config.CLIOverrides{}, embeddedConfig, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded config invalid: %v", err)
	}
}

func TestWriteEffectiveConfig(t *testing.T) {
	t.Setenv("VL_LOG_LEVEL", "")
	t.Setenv("VL_MACHINE_ID_SALT", "from-env")
	cfg, err := config.LoadLayered(config.CLIOverrides{LogLevel: "debug"}, embeddedConfig, "")
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "conf", "host.yaml")
	if err := writeEffectiveConfig(cfg, []string{"write-config", path}); err != nil {
		t.Fatal(err)
	}

	t.Setenv("VL_MACHINE_ID_SALT", "")
	loaded, err := config.LoadLayered(config.CLIOverrides{}, nil, path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.MachineID.Salt != "from-env" {
		t.Errorf("Salt = %q, want effective value from-env", loaded.MachineID.Salt)
	}
	if loaded.Logging.Level != "debug" {
		t.Errorf("Level = %q, want effective value debug", loaded.Logging.Level)
	}
	if err := loaded.Validate(); err != nil {
		t.Errorf("written config invalid: %v", err)
	}
}

func TestWriteEffectiveConfig_RequiresPath(t *testing.T) {
	for _, args := range [][]string{{"write-config"}, {"write-config", "a", "b"}} {
		if err := writeEffectiveConfig(config.DefaultConfig(), args); err == nil {
			t.Errorf("writeEffectiveConfig(%v) expected error", args)
		}
	}
}
