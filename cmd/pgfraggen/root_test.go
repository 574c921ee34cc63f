package main

import "testing"

func TestRootCmd_hasGenerateAndVersionSubcommands(t *testing.T) {
	root := rootCmd()

	names := map[string]bool{}
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}

	if !names[`generate`] || !names[`version`] {
		t.Fatalf("expected generate and version subcommands, got %v", names)
	}
}

func TestRootCmd_dsnFlagBindsToViper(t *testing.T) {
	root := rootCmd()
	if err := root.PersistentFlags().Set(`dsn`, `postgres://example`); err != nil {
		t.Fatal(err)
	}
	if got := cfg.GetString(`dsn`); got != `postgres://example` {
		t.Fatalf("expected viper to see the bound --dsn flag, got %q", got)
	}
}
