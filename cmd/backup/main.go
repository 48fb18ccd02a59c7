package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	exportapp "github.com/zaoknom/docbox-backend/internal/application/export"
	"github.com/zaoknom/docbox-backend/internal/infrastructure/config"
	"github.com/zaoknom/docbox-backend/internal/infrastructure/logger"
	"github.com/zaoknom/docbox-backend/internal/infrastructure/persistence"
	"github.com/zaoknom/docbox-backend/internal/infrastructure/storage"
)

// Exports the order and transaction books as dated CSV files and
// uploads them to the configured S3 bucket. Meant to run from cron.
func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	orderRepo := persistence.NewGormOrderRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	providerRepo := persistence.NewGormProviderRepository(db.DB)
	csvService := exportapp.NewCSVService(orderRepo, transactionRepo, clientRepo, providerRepo)

	backupStorage, err := storage.NewS3BackupStorage(&cfg.Backup, storage.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize backup storage", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := backupStorage.EnsureBucket(ctx); err != nil {
		log.Fatal("Failed to ensure backup bucket", zap.Error(err))
	}

	now := time.Now()

	orders, err := csvService.ExportOrders(ctx)
	if err != nil {
		log.Fatal("Failed to export orders", zap.Error(err))
	}
	if err := backupStorage.Upload(ctx, exportapp.OrdersFilename(now), orders, "text/csv"); err != nil {
		log.Fatal("Failed to upload orders backup", zap.Error(err))
	}

	transactions, err := csvService.ExportTransactions(ctx)
	if err != nil {
		log.Fatal("Failed to export transactions", zap.Error(err))
	}
	if err := backupStorage.Upload(ctx, exportapp.TransactionsFilename(now), transactions, "text/csv"); err != nil {
		log.Fatal("Failed to upload transactions backup", zap.Error(err))
	}

	log.Info("Backup completed",
		zap.String("orders_file", exportapp.OrdersFilename(now)),
		zap.String("transactions_file", exportapp.TransactionsFilename(now)),
	)
}
