package main

import (
	"fmt"

	"github.com/raywall/book-service/pkg/seed"
	"github.com/spf13/cobra"
)

func newSeedCmd(verbose *bool) *cobra.Command {
	var (
		source string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carrega livros de uma fixture YAML/JSON (arquivo ou s3://bucket/key)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap(cmd, *verbose)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var client seed.S3Client
			if isS3(source) {
				if client, err = newS3(ctx, cfg.Table.Region); err != nil {
					return fmt.Errorf("erro ao criar cliente S3: %w", err)
				}
			}

			titles, err := seed.NewLoader(client).Load(ctx, source)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				for _, t := range titles {
					fmt.Fprintln(out, t.BookTitle)
				}
				fmt.Fprintf(out, "%d livros válidos (dry-run)\n", len(titles))
				return nil
			}

			driver, err := newDriver(ctx, cfg)
			if err != nil {
				return err
			}
			created, err := seed.Apply(ctx, driver, titles)
			if err != nil {
				return err
			}
			for _, b := range created {
				fmt.Fprintf(out, "%s %s\n", b.BookID, b.BookTitle)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "Caminho da fixture ou s3://bucket/key")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Só valida a fixture")
	_ = cmd.MarkFlagRequired("source")
	return cmd
}
