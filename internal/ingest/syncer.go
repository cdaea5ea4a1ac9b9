package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trackmint/mailledger/internal/domain"
	"github.com/trackmint/mailledger/internal/extract"
	"github.com/trackmint/mailledger/internal/logger"
	"github.com/trackmint/mailledger/internal/mail"
	"github.com/trackmint/mailledger/internal/store"
)

// outcome is the terminal state of one message's ingestion.
type outcome int

const (
	outcomeRejected outcome = iota // gate failed or extraction incomplete
	outcomeDuplicate               // identity already stored
	outcomeStored
)

// Report summarizes one sync run. When Sync returns alongside an error the
// counts cover the messages processed before the run stopped.
type Report struct {
	RunID      string
	Scanned    int
	Stored     int
	Duplicates int
	Rejected   int
}

// Options configures a Syncer.
type Options struct {
	UserID        string
	LookbackDays  int
	MaxMessages   int // hard cap on processed messages per run
	Concurrency   int // messages of one page processed at once
	QueryKeywords []string
}

// DialFunc opens a mail client for an authorized session. Injected so
// tests can supply a fake mailbox.
type DialFunc func(ctx context.Context, session mail.Session) (mail.Client, error)

// Syncer runs the email-to-transaction pipeline over a mailbox: page
// through the search results, gate and extract each message, and persist
// candidates whose identity has not been stored before.
type Syncer struct {
	dial  DialFunc
	store store.TransactionStore
	opts  Options
}

// NewSyncer creates a Syncer. Zero options get safe defaults.
func NewSyncer(dial DialFunc, st store.TransactionStore, opts Options) *Syncer {
	if opts.LookbackDays <= 0 {
		opts.LookbackDays = 30
	}
	if opts.MaxMessages <= 0 {
		opts.MaxMessages = 200
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	return &Syncer{dial: dial, store: st, opts: opts}
}

// Sync processes one batch. The session is checked up front so an expired
// credential surfaces as mail.ErrUnauthorized before any work happens; the
// caller distinguishes that (re-authorize) from other transport errors
// (try again later), which return the partial report.
//
// Pages are walked sequentially because page tokens are sequential remote
// state; messages within a page are independent and processed concurrently.
func (s *Syncer) Sync(ctx context.Context, session mail.Session) (Report, error) {
	log := logger.FromContext(ctx)
	report := Report{RunID: uuid.NewString()}

	if session.Expired(time.Now()) {
		return report, mail.ErrUnauthorized
	}
	client, err := s.dial(ctx, session)
	if err != nil {
		return report, fmt.Errorf("dial mail transport: %w", err)
	}

	query := mail.Query{
		Keywords:      s.opts.QueryKeywords,
		NewerThanDays: s.opts.LookbackDays,
		PageSize:      int64(s.opts.Concurrency * 4),
	}

	log.Info().
		Str("run_id", report.RunID).
		Str("user_id", s.opts.UserID).
		Int("lookback_days", s.opts.LookbackDays).
		Msg("starting mailbox sync")

	pageToken := ""
	for {
		page, err := client.Search(ctx, query, pageToken)
		if err != nil {
			return report, fmt.Errorf("search page: %w", err)
		}

		ids := page.IDs
		if remaining := s.opts.MaxMessages - report.Scanned; len(ids) > remaining {
			ids = ids[:remaining]
		}

		if err := s.processPage(ctx, client, ids, &report); err != nil {
			return report, err
		}

		if report.Scanned >= s.opts.MaxMessages || page.NextToken == "" {
			break
		}
		pageToken = page.NextToken
	}

	log.Info().
		Str("run_id", report.RunID).
		Int("scanned", report.Scanned).
		Int("stored", report.Stored).
		Int("duplicates", report.Duplicates).
		Int("rejected", report.Rejected).
		Msg("mailbox sync finished")

	return report, nil
}

// processPage fetches and ingests one page of message ids concurrently.
// Counts accumulate into report under a mutex; the first transport or
// storage error stops the run after the page drains.
func (s *Syncer) processPage(ctx context.Context, client mail.Client, ids []string, report *Report) error {
	log := logger.FromContext(ctx)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	sem := make(chan struct{}, s.opts.Concurrency)

	for _, id := range ids {
		wg.Add(1)
		sem <- struct{}{}
		go func(id string) {
			defer wg.Done()
			defer func() { <-sem }()

			msg, err := client.Fetch(ctx, id)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("fetch %s: %w", id, err)
				}
				mu.Unlock()
				return
			}

			result := s.ingestMessage(ctx, msg)

			mu.Lock()
			report.Scanned++
			switch result {
			case outcomeStored:
				report.Stored++
			case outcomeDuplicate:
				report.Duplicates++
			default:
				report.Rejected++
			}
			if result != outcomeStored {
				log.Debug().Str("message_id", id).Int("outcome", int(result)).Msg("message not stored")
			}
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	return firstErr
}

// ingestMessage runs the per-message state machine:
// RECEIVED -> GATED -> {REJECTED | EXTRACTED} -> {DUPLICATE | STORED}.
// Failures on a single message never abort the batch; a panic from a
// malformed payload counts as a rejection.
func (s *Syncer) ingestMessage(ctx context.Context, msg *domain.RawMessage) (result outcome) {
	defer func() {
		if r := recover(); r != nil {
			log := logger.FromContext(ctx)
			log.Warn().
				Str("message_id", msg.ID).
				Interface("panic", r).
				Msg("message ingestion panicked, skipping")
			result = outcomeRejected
		}
	}()

	text := msg.Text()
	bank := extract.DetectBank(msg.From, msg.Subject, msg.Body)

	if !extract.PassesTransactionGate(text, extract.SenderDomain(msg.From), bank) &&
		!extract.PassesIncomeGate(text) {
		return outcomeRejected
	}

	dir := extract.InferDirection(text)
	if dir == domain.DirectionNone {
		return outcomeRejected
	}
	amount, ok := extract.Amount(text)
	if !ok {
		return outcomeRejected
	}

	id := extract.BuildIdentity(bank.CodeOrUnknown(), amount, msg.Timestamp, dir)
	exists, err := s.store.Exists(ctx, s.opts.UserID, id)
	if err != nil {
		log := logger.FromContext(ctx)
		log.Error().Err(err).Str("message_id", msg.ID).Msg("existence check failed")
		return outcomeRejected
	}
	if exists {
		return outcomeDuplicate
	}

	counterparty, found := extract.Merchant(text, dir)
	if !found {
		counterparty = domain.Counterparty{Type: domain.CounterpartyUnknown}
	}
	category := extract.Categorize(text, counterparty.Name)
	signals := extract.AnalyzeTransaction(text)

	tx := &domain.PersistedTransaction{
		ID:               id,
		Kind:             domain.KindFor(dir),
		Amount:           amount,
		BankCode:         bank.Code,
		Note:             msg.FirstLine(100),
		Timestamp:        msg.Timestamp,
		Counterparty:     counterparty,
		CardLast4:        extract.CardLast4(text),
		Instrument:       extract.InferInstrument(text, counterparty.VPA != ""),
		Category:         category.Category,
		Subcategory:      category.Subcategory,
		Tags:             category.Tags,
		IsSubscription:   signals.IsSubscription,
		SubscriptionName: signals.SubscriptionName,
		IsHiddenCharge:   signals.IsHiddenCharge,
		Provenance:       domain.Provenance{MessageID: msg.ID, Snippet: msg.Snippet},
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.store.Create(ctx, s.opts.UserID, tx); err != nil {
		if errors.Is(err, store.ErrExists) {
			// Lost the check-then-write race; same terminal state as the
			// existence check finding it first.
			return outcomeDuplicate
		}
		log := logger.FromContext(ctx)
		log.Error().Err(err).Str("message_id", msg.ID).Msg("store create failed")
		return outcomeRejected
	}
	return outcomeStored
}
