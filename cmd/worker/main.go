package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trackmint/mailledger/internal/config"
	"github.com/trackmint/mailledger/internal/ingest"
	"github.com/trackmint/mailledger/internal/jobs"
	"github.com/trackmint/mailledger/internal/jobs/inmemory"
	"github.com/trackmint/mailledger/internal/logger"
	"github.com/trackmint/mailledger/internal/mail"
	"github.com/trackmint/mailledger/internal/store"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	txStore, err := store.NewFirestoreStore(ctx, cfg.GoogleProject)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open transaction store")
	}
	defer txStore.Close()

	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, jobStore)

	log.Info().Msg("starting sync worker")

	handler := func(ctx context.Context, job jobs.Job) error {
		syncJob, ok := job.(*jobs.SyncMailboxJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		log.Info().
			Str("job_id", syncJob.JobID).
			Str("user_id", syncJob.UserID).
			Msg("processing sync job")

		syncer := ingest.NewSyncer(
			func(ctx context.Context, session mail.Session) (mail.Client, error) {
				return mail.NewGmailClient(ctx, session)
			},
			txStore,
			ingest.Options{
				UserID:       syncJob.UserID,
				LookbackDays: syncJob.LookbackDays,
				MaxMessages:  syncJob.MaxMessages,
				Concurrency:  cfg.Concurrency,
			},
		)

		session := mail.Session{Token: cfg.GmailToken, ExpiresAt: cfg.GmailTokenExpiry}
		report, err := syncer.Sync(ctx, session)
		if err != nil {
			if errors.Is(err, mail.ErrUnauthorized) {
				log.Warn().Str("job_id", syncJob.JobID).Msg("mailbox access expired, user must reconnect")
			} else {
				log.Error().Err(err).Str("job_id", syncJob.JobID).Msg("sync failed")
			}
			return err
		}

		syncJob.Stored = report.Stored
		syncJob.Duplicates = report.Duplicates
		syncJob.Rejected = report.Rejected

		log.Info().
			Str("job_id", syncJob.JobID).
			Int("stored", report.Stored).
			Int("duplicates", report.Duplicates).
			Msg("sync job completed")
		return nil
	}

	if err := jobQueue.Start(ctx, handler); err != nil {
		log.Fatal().Err(err).Msg("failed to start job consumer")
	}

	// Seed one sync for the configured user; further jobs arrive through
	// the publisher as callers enqueue them.
	seed := &jobs.SyncMailboxJob{
		UserID:       cfg.UserID,
		LookbackDays: cfg.LookbackDays,
		MaxMessages:  cfg.MaxMessages,
	}
	if err := jobQueue.PublishSyncMailbox(ctx, seed); err != nil {
		log.Error().Err(err).Msg("failed to enqueue initial sync")
	}

	log.Info().Msg("worker started, waiting for jobs")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during graceful shutdown")
	}
	log.Info().Msg("worker exited")
}
