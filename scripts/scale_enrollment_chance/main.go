// Command scale_enrollment_chance migrates stored enrollment_chance
// values between the probability scale ([0,1]) and the percentage
// scale ([0,100]). Earlier deployments wrote raw model probabilities;
// the API now stores percentages, so existing rows need a one-off
// scale-up. The --backward flag reverses the migration.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/itzjmbruhhh/NU-Admission/internal/repository"
	"github.com/itzjmbruhhh/NU-Admission/internal/service"
	"github.com/itzjmbruhhh/NU-Admission/pkg/config"
	"github.com/itzjmbruhhh/NU-Admission/pkg/database"
)

func main() {
	var (
		dryRun   bool
		verbose  bool
		backward bool
		timeout  time.Duration
	)

	flag.BoolVar(&dryRun, "dry-run", false, "report rows without writing changes")
	flag.BoolVar(&verbose, "verbose", false, "print each affected row")
	flag.BoolVar(&backward, "backward", false, "scale percentages back down to probabilities")
	flag.DurationVar(&timeout, "timeout", 2*time.Minute, "overall run timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	repo := repository.NewApplicantRepository(db)
	svc := service.NewReconcileService(repo, zap.NewNop())

	var report *service.ReconcileReport
	if backward {
		report, err = svc.ScaleToProbability(ctx, dryRun)
	} else {
		report, err = svc.ScaleToPercentage(ctx, dryRun)
	}
	if err != nil {
		log.Fatalf("scaling failed: %v", err)
	}

	render(os.Stdout, report, verbose, backward)
}

// render writes the operator-facing summary. Per-row lines appear when
// asked for (--verbose) and always on a dry run, so the operator can see
// exactly what a real run would write.
func render(w io.Writer, report *service.ReconcileReport, verbose, backward bool) {
	if report.Found == 0 {
		if backward {
			fmt.Fprintln(w, "No percentage-style values found; nothing to scale.")
		} else {
			fmt.Fprintln(w, "No probability-style values found; nothing to scale.")
		}
		return
	}

	if backward {
		fmt.Fprintf(w, "Found %d enrollment_chance values in (1.0, 100.0] to scale down.\n", report.Found)
	} else {
		fmt.Fprintf(w, "Found %d enrollment_chance values <= 1.0 to scale.\n", report.Found)
	}

	if verbose || report.DryRun {
		for _, row := range report.Rows {
			fmt.Fprintf(w, "ID %s: %.6f -> %.2f\n", row.ID, row.Before, row.After)
		}
	}

	if report.DryRun {
		fmt.Fprintln(w, "Dry run complete; no changes written.")
		return
	}

	fmt.Fprintf(w, "Scaled %d rows.\n", report.Scaled)
}
