package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Crea tablas e índices (postgres: schema + GIN, mongo: índice de texto)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.migrate(cmd.Context()); err != nil {
			return err
		}
		a.log.Info("migrations applied", map[string]any{"backend": a.cfg.StorageBackend})
		return nil
	},
}
