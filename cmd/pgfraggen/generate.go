package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/tidalfoundry/pgfrag/internal/gen"
)

func generateCmd() *cobra.Command {
	var pkg, out string

	cmd := &cobra.Command{
		Use:   `generate`,
		Short: `Introspect the catalog and emit table shapes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := uuid.NewString()

			dsn := cfg.GetString(`dsn`)
			schemas := cfg.GetStringSlice(`schemas`)
			if dsn == "" {
				return fmt.Errorf(`--dsn (or PGFRAGGEN_DSN) is required`)
			}

			ctx := cmd.Context()
			pool, err := pgxpool.New(ctx, dsn)
			if err != nil {
				return fmt.Errorf(`connecting: %w`, err)
			}
			defer pool.Close()

			cat, err := gen.Introspect(ctx, pool, schemas)
			if err != nil {
				return fmt.Errorf(`introspecting: %w`, err)
			}

			warner := gen.LargeTableWarner{
				Warn: func(table string, rows int64) {
					fmt.Fprintf(os.Stderr, "warning: %s has an estimated %d rows\n", table, rows)
				},
			}
			warner.Check(cat)

			w, closeOutput, err := openOutput(out)
			if err != nil {
				return err
			}
			defer closeOutput()

			fmt.Fprintf(os.Stderr, "pgfraggen run %s: %d tables, %d enums\n", runID, len(cat.Tables), len(cat.Enums))
			return gen.Emit(w, cat, pkg, runID)
		},
	}

	cmd.Flags().StringVar(&pkg, `package`, `pgfragmodel`, `emitted package name`)
	cmd.Flags().StringVar(&out, `out`, `-`, `output file, or "-" for stdout`)
	return cmd
}

func openOutput(path string) (*os.File, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
