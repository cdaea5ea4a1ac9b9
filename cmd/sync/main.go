package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/trackmint/mailledger/internal/config"
	"github.com/trackmint/mailledger/internal/extract"
	"github.com/trackmint/mailledger/internal/ingest"
	"github.com/trackmint/mailledger/internal/logger"
	"github.com/trackmint/mailledger/internal/mail"
	"github.com/trackmint/mailledger/internal/store"
)

func main() {
	log := logger.New()

	var (
		days          = flag.Int("days", 0, "override lookback window in days")
		maxMessages   = flag.Int("max", 0, "override processed-message cap")
		subscriptions = flag.Bool("subscriptions", false, "list detected recurring subscriptions instead of syncing")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}
	if *days > 0 {
		cfg.LookbackDays = *days
	}
	if *maxMessages > 0 {
		cfg.MaxMessages = *maxMessages
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	txStore, err := store.NewFirestoreStore(ctx, cfg.GoogleProject)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open transaction store")
	}
	defer txStore.Close()

	if *subscriptions {
		listSubscriptions(ctx, txStore, cfg.UserID)
		return
	}

	syncer := ingest.NewSyncer(
		func(ctx context.Context, session mail.Session) (mail.Client, error) {
			return mail.NewGmailClient(ctx, session)
		},
		txStore,
		ingest.Options{
			UserID:       cfg.UserID,
			LookbackDays: cfg.LookbackDays,
			MaxMessages:  cfg.MaxMessages,
			Concurrency:  cfg.Concurrency,
		},
	)

	session := mail.Session{Token: cfg.GmailToken, ExpiresAt: cfg.GmailTokenExpiry}
	report, err := syncer.Sync(ctx, session)
	if err != nil {
		if errors.Is(err, mail.ErrUnauthorized) {
			log.Fatal().Msg("mail access expired - reconnect your mailbox and try again")
		}
		log.Fatal().Err(err).
			Int("scanned", report.Scanned).
			Int("stored", report.Stored).
			Msg("sync stopped early")
	}

	fmt.Printf("Sync complete: %d new transactions (%d scanned, %d duplicates, %d rejected)\n",
		report.Stored, report.Scanned, report.Duplicates, report.Rejected)
}

func listSubscriptions(ctx context.Context, txStore store.TransactionStore, userID string) {
	log := logger.FromContext(ctx)

	txs, err := txStore.List(ctx, userID)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list transactions")
	}

	subs := extract.DetectSubscriptions(txs, time.Now())
	if len(subs) == 0 {
		fmt.Println("No recurring subscriptions detected.")
		return
	}
	for _, s := range subs {
		fmt.Printf("%-20s ₹%-10s last %s, next due %s (%d days)\n",
			s.Name, s.Amount.StringFixed(2),
			s.LastCharged.Format("2006-01-02"), s.NextDue.Format("2006-01-02"),
			s.DaysRemaining)
	}
}
