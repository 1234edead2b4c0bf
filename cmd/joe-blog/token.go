package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joestump/joe-blog/internal/auth"
	"github.com/joestump/joe-blog/internal/config"
	"github.com/joestump/joe-blog/internal/db"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API bearer tokens",
	}
	cmd.AddCommand(newTokenCreateCmd(), newTokenListCmd(), newTokenRevokeCmd())
	return cmd
}

// openTokenStore loads config, opens and migrates the database. The caller
// closes the returned DB.
func openTokenStore() (*auth.SQLTokenStore, *sqlx.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(database, cfg.DB.Driver); err != nil {
		_ = database.Close()
		return nil, nil, err
	}
	return auth.NewSQLTokenStore(database), database, nil
}

func newTokenCreateCmd() *cobra.Command {
	var (
		name    string
		expires time.Duration
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a token and print it once",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}
			ts, database, err := openTokenStore()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			plaintext, hash, err := auth.GenerateToken()
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}
			var exp *time.Time
			if expires > 0 {
				t := time.Now().Add(expires)
				exp = &t
			}
			rec, err := ts.Create(cmd.Context(), name, hash, exp)
			if err != nil {
				return fmt.Errorf("store token: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "id:    %s\ntoken: %s\n", rec.ID, plaintext)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "label for the token")
	cmd.Flags().DurationVar(&expires, "expires", 0, "lifetime, e.g. 720h (0 never expires)")
	return cmd
}

func newTokenListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, database, err := openTokenStore()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			recs, err := ts.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCREATED\tLAST USED\tSTATUS")
			now := time.Now()
			for _, r := range recs {
				lastUsed := "never"
				if r.LastUsedAt.Valid {
					lastUsed = r.LastUsedAt.Time.Format(time.RFC3339)
				}
				status := "active"
				switch {
				case r.RevokedAt.Valid:
					status = "revoked"
				case !r.Active(now):
					status = "expired"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.CreatedAt.Format(time.RFC3339), lastUsed, status)
			}
			return tw.Flush()
		},
	}
}

func newTokenRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <id>",
		Short: "Revoke a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, database, err := openTokenStore()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := ts.Revoke(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("revoke %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "revoked %s\n", args[0])
			return nil
		},
	}
}
