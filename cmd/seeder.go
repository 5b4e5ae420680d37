package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/admin"
	"github.com/frahmantamala/hr-management/internal/team"
	"github.com/frahmantamala/hr-management/pkg/logger"
	"github.com/spf13/cobra"
)

var seedTeam string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the bootstrap admin and a sample team",
	Long:  `Create the admin account from seed.admin_username / seed.admin_password and, when no team exists yet, one sample team.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		if cfg.Seed.AdminPassword == "" {
			log.Fatal("seed.admin_password must be set")
		}

		appLogger := logger.LoggerWrapper()
		db, err := initDB(cfg.Database, appLogger)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		svc := newServices(cfg, db, nil, appLogger)
		ctx := context.Background()

		created, err := svc.Admin.EnsureAdmin(ctx, admin.CreateAdminDTO{
			Username: cfg.Seed.AdminUsername,
			Password: cfg.Seed.AdminPassword,
		})
		if err != nil {
			log.Fatalf("failed to seed admin: %v", err)
		}
		if created {
			fmt.Println("Seeded admin:", cfg.Seed.AdminUsername)
		} else {
			fmt.Println("admin already exists:", cfg.Seed.AdminUsername)
		}

		if seedTeam == "" {
			return
		}
		_, err = svc.Team.ListTeams(ctx)
		switch {
		case err == nil:
			fmt.Println("teams already exist; skipping sample team")
		case errors.Is(err, internal.NewNoRecordsError("teams")):
			t, err := svc.Team.CreateTeam(ctx, team.CreateTeamDTO{Name: seedTeam})
			if err != nil {
				log.Fatalf("failed to seed team: %v", err)
			}
			fmt.Printf("Seeded team %q (id %d)\n", t.Name, t.ID)
		default:
			log.Fatalf("failed to list teams: %v", err)
		}
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedTeam, "team", "General", "name of the sample team; empty skips it")
}
