package main

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/raywall/book-service/pkg/usecase"
	"github.com/spf13/cobra"
)

func newListCmd(verbose *bool) *cobra.Command {
	var listJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista todos os livros",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap(cmd, *verbose)
			if err != nil {
				return err
			}
			driver, err := newDriver(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			result, err := usecase.NewListBooksUseCase(driver).ListBooks(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if listJSON {
				encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}

			for _, b := range result.Books {
				fmt.Fprintf(out, "%s %s\n", b.BookID, b.BookTitle)
			}
			fmt.Fprintf(out, "total: %d\n", result.BookTotal)
			return nil
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Saída em JSON")
	return cmd
}
