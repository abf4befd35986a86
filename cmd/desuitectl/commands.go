package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desuite/desuite-web/backend/internal/config"
	"github.com/desuite/desuite-web/backend/internal/database"
	"github.com/desuite/desuite-web/backend/internal/demorequest/repository"
	"github.com/desuite/desuite-web/backend/internal/tokens"
	"github.com/spf13/cobra"
)

// rootCommand sets up desuitectl and its subcommands. Configuration comes from the
// same environment variables as the server.
func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "desuitectl",
		Short:        "Operator tooling for the demo request service",
		SilenceUsage: true,
	}
	root.AddCommand(tokenCommand(), migrateCommand(), exportCommand())
	return root
}

func tokenCommand() *cobra.Command {
	var subject string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an operator token for listing demo requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			if ttl <= 0 {
				ttl = cfg.JWT.AccessTokenTTL
			}
			tok, err := tokens.GenerateAccessToken(cfg.JWT.Secret, cfg.JWT.Issuer, subject, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "token subject, usually the operator's email")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to JWT_ACCESS_TOKEN_TTL)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply SQL migrations for the sql storage backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.Storage.Backend != config.BackendSQL {
				return fmt.Errorf("migrate needs STORAGE_BACKEND=%s, got %q", config.BackendSQL, cfg.Storage.Backend)
			}
			db, err := database.OpenSQL(cmd.Context(), cfg.SQL.Driver, cfg.SQL.DSN)
			if err != nil {
				return err
			}
			defer db.Close()
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s)\n", cfg.SQL.Driver)
			return err
		},
	}
}

func exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print every stored demo request as JSON in creation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			repo, closeRepo, err := repository.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeRepo()
			list, err := repo.List(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		},
	}
}
