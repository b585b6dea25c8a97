// Command lunchreport writes monthly lunch report as CSV file.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/rookgm/lunchorder/config"
	"github.com/rookgm/lunchorder/internal/export"
	"github.com/rookgm/lunchorder/internal/logger"
	"github.com/rookgm/lunchorder/internal/repository"
	"github.com/rookgm/lunchorder/internal/repository/postgres"
	"github.com/rookgm/lunchorder/internal/service"
	"go.uber.org/zap"
)

func main() {
	year := flag.Int("year", 0, "report year, current year by default")
	month := flag.Int("month", 0, "report month 1-12, current month by default")
	out := flag.String("o", "", "output file, lunch_report_YYYYMM.csv by default")

	// create new config, it parses the flags above too
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Log.Sync()

	if *month < 0 || *month > 12 {
		logger.Log.Fatal("Invalid month", zap.Int("month", *month))
	}

	policy, err := cfg.Policy()
	if err != nil {
		logger.Log.Fatal("Error building order policy", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Log.Fatal("Error initializing database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Log.Fatal("Error migrating database", zap.Error(err))
	}

	reportService := service.NewReportService(repository.NewReportRepository(db), policy)

	report, err := reportService.Monthly(ctx, *year, time.Month(*month))
	if err != nil {
		logger.Log.Fatal("Error building monthly report", zap.Error(err))
	}

	filename := *out
	if filename == "" {
		filename = export.MonthlyFilename(report)
	}

	f, err := os.Create(filename)
	if err != nil {
		logger.Log.Fatal("Error creating report file", zap.Error(err))
	}
	defer f.Close()

	if err := export.WriteMonthly(f, report); err != nil {
		logger.Log.Fatal("Error writing report", zap.Error(err))
	}

	logger.Log.Info("Monthly report written",
		zap.String("file", filename),
		zap.Int("year", report.Year),
		zap.Int("month", int(report.Month)),
		zap.Int("users", len(report.Users)),
	)
}
