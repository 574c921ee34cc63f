package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfg = viper.New()

// rootCmd builds the Cobra command tree: generate, version. The --dsn and
// --schemas flags bind through viper so they can also come from
// PGFRAGGEN_-prefixed environment variables; no config file is read, and
// generate's --out/--package flags are not bound. This follows the
// CLI/config-loading pattern
// pthm-melange's cmd/melange and qbloq-graphjin-agentico's serv package
// both use.
func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   `pgfraggen`,
		Short: `Generate pgfrag table shapes from a live PostgreSQL catalog`,
	}

	root.PersistentFlags().String(`dsn`, ``, `PostgreSQL connection string (env PGFRAGGEN_DSN)`)
	root.PersistentFlags().StringSlice(`schemas`, []string{`public`}, `schemas to introspect (env PGFRAGGEN_SCHEMAS)`)
	_ = cfg.BindPFlag(`dsn`, root.PersistentFlags().Lookup(`dsn`))
	_ = cfg.BindPFlag(`schemas`, root.PersistentFlags().Lookup(`schemas`))

	cfg.SetEnvPrefix(`pgfraggen`)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(`-`, `_`))
	cfg.AutomaticEnv()

	root.AddCommand(generateCmd())
	root.AddCommand(versionCmd())
	return root
}
