// Command check-synoptic-config loads the synoptic configuration tree and
// validates the series ordering and grouping invariants of every station.
// Violations are printed one per line; the exit code is non-zero when any
// are found.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/openmeteo/enhydris-synoptic/internal/aggregator"
	"github.com/openmeteo/enhydris-synoptic/internal/config"
	"github.com/openmeteo/enhydris-synoptic/internal/db"
	"github.com/openmeteo/enhydris-synoptic/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to postgres: %v\n", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	ctx := context.Background()
	repo := repository.NewGroupRepository(sqlDB)

	groups, err := repo.ListGroups(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list groups: %v\n", err)
		os.Exit(1)
	}

	violations := 0
	for _, group := range groups {
		stations, err := repo.ListStations(ctx, group.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to list stations of %q: %v\n", group.Slug, err)
			os.Exit(1)
		}
		for _, station := range stations {
			series, err := repo.ListSeries(ctx, station.ID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to list series of %q: %v\n", station.StationName, err)
				os.Exit(1)
			}
			if err := aggregator.CheckSeriesIntegrity(series); err != nil {
				fmt.Printf("group %q station %q: %v\n", group.Slug, station.StationName, err)
				violations++
			}
		}
	}

	if violations > 0 {
		fmt.Printf("%d station(s) with violations\n", violations)
		os.Exit(1)
	}
	fmt.Println("configuration OK")
}
