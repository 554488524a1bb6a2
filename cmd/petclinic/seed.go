package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maxviazov/petclinic-service/internal/config"
	"github.com/maxviazov/petclinic-service/internal/repository"
	"github.com/maxviazov/petclinic-service/internal/repository/postgres"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the reference dataset into the Postgres store",
	Long: `Applies the schema migrations and loads the demo owners, pets, visits and vets.
Does nothing when the store already holds data.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	if cfg.Store.Driver != config.DriverPostgres {
		return errors.New("seed needs store.driver=postgres; the memory store seeds itself at startup")
	}

	ctx := cmd.Context()
	repo, err := repository.New(ctx, cfg, &log)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := postgres.Migrate(ctx, repo.Pool(), &log); err != nil {
		return err
	}
	inserted, err := seedPostgres(ctx, repo, log)
	if err != nil {
		return err
	}
	if inserted {
		fmt.Fprintln(cmd.OutOrStdout(), "reference dataset loaded")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "store already populated, nothing to do")
	}
	return nil
}
