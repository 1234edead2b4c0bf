package main

import (
	"log"

	"github.com/joestump/joe-blog/internal/config"
	"github.com/joestump/joe-blog/internal/db"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var status bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if status {
				version, err := db.Status(database, cfg.DB.Driver)
				if err != nil {
					return err
				}
				log.Printf("schema version %d", version)
				return nil
			}

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			log.Println("migrations complete")
			return nil
		},
	}
	cmd.Flags().BoolVar(&status, "status", false, "print the current schema version instead of migrating")
	return cmd
}
