package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/frahmantamala/hr-management/pkg/logger"
	"github.com/spf13/cobra"
)

var auditFix bool

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Compare stored team member counters with live employee counts",
	Long:  `Print every team's stored total_members next to its creation seed and the number of employees referencing it. With --fix, drifted counters are reset to seed plus live count.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		appLogger := logger.LoggerWrapper()
		db, err := initDB(cfg.Database, appLogger)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		manager := newServices(cfg, db, nil, appLogger).Membership
		ctx := context.Background()

		report, err := manager.Audit(ctx)
		if err != nil {
			log.Fatalf("audit failed: %v", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TEAM\tNAME\tSTORED\tSEED\tLIVE\tDRIFT")
		for _, t := range report.Teams {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\n", t.TeamID, t.Name, t.StoredMembers, t.SeedMembers, t.LiveMembers, t.Drift())
		}
		_ = w.Flush()
		fmt.Printf("%d of %d teams inconsistent\n", report.Inconsistent, len(report.Teams))

		if !auditFix || report.Inconsistent == 0 {
			return
		}
		for _, t := range report.Teams {
			if t.Consistent() {
				continue
			}
			fixed, err := manager.Reconcile(ctx, t.TeamID)
			if err != nil {
				log.Fatalf("failed to reconcile team %d: %v", t.TeamID, err)
			}
			fmt.Printf("team %d reset from %d to %d\n", fixed.TeamID, t.StoredMembers, fixed.StoredMembers)
		}
	},
}

func init() {
	auditCmd.Flags().BoolVar(&auditFix, "fix", false, "reset drifted counters to seed plus live employee count")
}
