// @title Pet Store API
// @version 1.0
// @description Catálogo de mascotas con búsqueda, avatares y compra.
// @BasePath /
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "petstore",
		Short:         "Pet store: catálogo, búsqueda, avatares y compras",
		RunE:          runServe, // sin subcomando = serve
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "archivo YAML de configuración (opcional)")

	root.AddCommand(serveCmd)
	root.AddCommand(migrateCmd)
	root.AddCommand(newSeedCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
