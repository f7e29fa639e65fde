package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := rootCmd()

	if cmd.Use != "jskos" {
		t.Errorf("root Use = %q, want jskos", cmd.Use)
	}

	want := map[string]bool{
		"process": false,
		"fetch":   false,
		"export":  false,
		"index":   false,
		"lookup":  false,
		"serve":   false,
		"version": false,
	}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	cmd := rootCmd()

	for _, name := range []string{"config", "log-level"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag %q not registered", name)
		}
	}
}

func TestVersionCmd_RunsWithoutConfig(t *testing.T) {
	// Version must not require a loadable configuration.
	cmd := rootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--config", "/nonexistent/config.yaml", "version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(buf.String(), "jskos version") {
		t.Errorf("version output = %q", buf.String())
	}
}
