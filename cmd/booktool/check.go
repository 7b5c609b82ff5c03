package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Valida a configuração do ambiente atual",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context())
			if err != nil {
				return fmt.Errorf("configuração inválida: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "service:  %s\n", cfg.Service.Name)
			fmt.Fprintf(out, "runtime:  %s\n", cfg.Service.Runtime)
			fmt.Fprintf(out, "storage:  %s\n", cfg.Service.Storage)
			if cfg.Table.Name != "" {
				fmt.Fprintf(out, "table:    %s\n", cfg.Table.Name)
			}
			fmt.Fprintf(out, "datadog:  %t\n", cfg.Metrics.Datadog.Enabled)
			fmt.Fprintln(out, "Configuração válida")
			return nil
		},
	}
}
