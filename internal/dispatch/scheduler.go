// Copyright (C) 2020  Lukas Dietrich <lukas@lukasdietrich.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package dispatch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/lukasdietrich/mailpog/internal/accounts"
	"github.com/lukasdietrich/mailpog/internal/database"
	"github.com/lukasdietrich/mailpog/internal/delivery"
	"github.com/lukasdietrich/mailpog/internal/dkim"
	"github.com/lukasdietrich/mailpog/internal/log"
	"github.com/lukasdietrich/mailpog/internal/models"
	"github.com/lukasdietrich/mailpog/internal/recipients"
	"github.com/lukasdietrich/mailpog/internal/storage"
)

// State is the terminal state of a recipient.
type State int

const (
	_ State = iota
	StateDelivered
	StateSkipped
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDelivered:
		return "delivered"
	case StateSkipped:
		return "skipped"
	case StateFailed:
		return "failed"
	}

	return "unknown"
}

// Composer writes the message from an account to a recipient.
type Composer interface {
	Compose(*accounts.Account, models.Address) ([]byte, error)
}

// Signer prepends a signature to a message.
type Signer interface {
	SignMessage(ctx context.Context, message []byte, selector, domain string) ([]byte, error)
}

// Courier submits a signed message.
type Courier interface {
	Deliver(ctx context.Context, account *accounts.Account, recipient models.Address, message []byte) error
}

// DeliveryLog is the durable record of delivered recipients.
type DeliveryLog interface {
	Append(models.Address, time.Time) error
	Entries() ([]storage.DeliveryLogEntry, error)
}

// RecipientStream yields recipients until io.EOF.
type RecipientStream interface {
	Next() (recipients.Recipient, error)
}

// Scheduler sends one message per distinct recipient over the first eligible account and
// waits for the next hour once every account is exhausted. A Scheduler runs on a single
// goroutine.
type Scheduler struct {
	opts        Options
	registry    *accounts.Registry
	composer    Composer
	signer      Signer
	courier     Courier
	deliveryLog DeliveryLog
	conn        database.Conn
	attemptDao  database.AttemptDao
	clock       Clock

	sent    map[string]bool
	settled map[string]bool
}

func NewScheduler(
	opts Options,
	registry *accounts.Registry,
	composer Composer,
	signer Signer,
	courier Courier,
	deliveryLog DeliveryLog,
	conn database.Conn,
	attemptDao database.AttemptDao,
	clock Clock,
) *Scheduler {
	return &Scheduler{
		opts:        opts,
		registry:    registry,
		composer:    composer,
		signer:      signer,
		courier:     courier,
		deliveryLog: deliveryLog,
		conn:        conn,
		attemptDao:  attemptDao,
		clock:       clock,
		sent:        make(map[string]bool),
		settled:     make(map[string]bool),
	}
}

// Run dispatches every recipient of the stream. Failed recipients do not stop the run. An
// error is only returned, when the context is done, the stream cannot be read, previous
// runs cannot be restored or the delivery log cannot be written.
func (s *Scheduler) Run(ctx context.Context, stream RecipientStream) (Summary, error) {
	var summary Summary

	if err := s.restore(ctx); err != nil {
		return summary, err
	}

	defer func() { summary.log() }()

	for {
		recipient, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return summary, nil
		}

		if err != nil {
			return summary, err
		}

		state, err := s.dispatch(ctx, recipient, &summary)
		summary.count(state)

		if err != nil {
			return summary, err
		}
	}
}

// Sent reports whether the recipient was delivered in this run or a restored one.
func (s *Scheduler) Sent(recipient models.Address) bool {
	return s.sent[recipient.String()]
}

func (s *Scheduler) restore(ctx context.Context) error {
	if s.opts.Resume {
		if err := s.restoreSent(ctx); err != nil {
			return fmt.Errorf("dispatch: resume: %w", err)
		}
	}

	if s.opts.RestoreQuota {
		if err := s.restoreQuota(ctx); err != nil {
			return fmt.Errorf("dispatch: restore quota: %w", err)
		}
	}

	return nil
}

func (s *Scheduler) restoreSent(ctx context.Context) error {
	delivered, err := s.attemptDao.FindDelivered(ctx, s.conn)
	if err != nil {
		return err
	}

	for _, recipient := range delivered {
		s.sent[recipient.String()] = true
	}

	entries, err := s.deliveryLog.Entries()
	if err != nil {
		return err
	}

	for _, entry := range entries {
		s.sent[entry.Recipient] = true
	}

	log.InfoContext(ctx).
		Int("recipients", len(s.sent)).
		Msg("resuming after earlier deliveries")

	return nil
}

func (s *Scheduler) restoreQuota(ctx context.Context) error {
	since := startOfDay(s.clock.Now())

	for _, account := range s.registry.Accounts() {
		count, err := s.attemptDao.CountDeliveredSince(ctx, s.conn, account.Address, since)
		if err != nil {
			return err
		}

		s.registry.Restore(account, count)

		log.InfoContext(log.WithAccount(ctx, account.Address.String())).
			Int("sentToday", count).
			Msg("restored daily quota")
	}

	return nil
}

func (s *Scheduler) dispatch(ctx context.Context, recipient recipients.Recipient, summary *Summary) (State, error) {
	key := recipient.Address.String()

	ctx = log.WithBatch(ctx, recipient.Batch)
	ctx = log.WithRecipient(ctx, key)

	if s.sent[key] || s.settled[key] {
		log.InfoContext(ctx).
			Int("line", recipient.Line).
			Msg("skipped")

		return StateSkipped, nil
	}

	tried := make(map[*accounts.Account]bool)

	for {
		account := s.selectAccount(ctx, tried)

		if account == nil {
			if len(tried) > 0 {
				s.settled[key] = true
				return StateFailed, nil
			}

			if err := s.waitForNextHour(ctx); err != nil {
				return 0, err
			}

			summary.Waits++
			continue
		}

		accountCtx := log.WithAccount(ctx, account.Address.String())

		err := s.attempt(accountCtx, account, recipient.Address)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return 0, ctxErr
			}

			s.recordAttempt(accountCtx, account, recipient.Address, models.OutcomeFailed, err)

			if !s.opts.Failover {
				s.settled[key] = true
				return StateFailed, nil
			}

			tried[account] = true
			continue
		}

		return StateDelivered, s.delivered(accountCtx, account, recipient.Address)
	}
}

// selectAccount returns the first eligible account in registry order, that was not tried
// yet.
func (s *Scheduler) selectAccount(ctx context.Context, tried map[*accounts.Account]bool) *accounts.Account {
	now := s.clock.Now()

	for _, account := range s.registry.Accounts() {
		if tried[account] {
			continue
		}

		if s.registry.IsEligible(account, now) {
			return account
		}

		event := log.DebugContext(log.WithAccount(ctx, account.Address.String()))
		if s.registry.AtDailyCap(account) {
			event.Msg("daily limit reached")
		} else {
			event.Msg("hourly limit reached")
		}
	}

	return nil
}

func (s *Scheduler) attempt(ctx context.Context, account *accounts.Account, recipient models.Address) error {
	message, err := s.composer.Compose(account, recipient)
	if err != nil {
		log.ErrorContext(ctx).Err(err).Msg("could not compose message")
		return err
	}

	domain, err := account.Address.ASCIIDomain()
	if err != nil {
		log.ErrorContext(ctx).Err(err).Msg("invalid account domain")
		return err
	}

	signed, err := s.signer.SignMessage(ctx, message, account.Selector, domain)
	if err != nil {
		log.ErrorContext(ctx).
			Bool("notFound", dkim.IsNotFound(err)).
			Err(err).
			Msg("could not sign message")

		return err
	}

	if err := s.courier.Deliver(ctx, account, recipient, signed); err != nil {
		var deliveryErr *delivery.Error

		event := log.ErrorContext(ctx).Err(err)
		if errors.As(err, &deliveryErr) {
			event.Bool("permanent", deliveryErr.Permanent)
		}

		event.Msg("could not deliver message")
		return err
	}

	return nil
}

func (s *Scheduler) delivered(ctx context.Context, account *accounts.Account, recipient models.Address) error {
	now := s.clock.Now()

	s.registry.RecordSend(account, now)
	s.sent[recipient.String()] = true

	if err := s.deliveryLog.Append(recipient, now); err != nil {
		return err
	}

	// The message was accepted, so the attempt is stored even if the run is being cancelled.
	s.recordAttempt(context.WithoutCancel(ctx), account, recipient, models.OutcomeDelivered, nil)

	quota := account.Snapshot()
	log.InfoContext(ctx).
		Int("sentToday", quota.SentToday).
		Int("sentThisHour", quota.SentThisHour).
		Msg("sent")

	if s.opts.GlobalHourlyReset && s.registry.AtHourlyCap(account) {
		log.InfoContext(ctx).Msg("hourly limit reached, resetting hourly counters of all accounts")
		s.registry.ResetHourly()
	}

	return s.clock.Sleep(ctx, s.opts.SendDelay)
}

func (s *Scheduler) waitForNextHour(ctx context.Context) error {
	var (
		before = s.clock.Now()
		wait   = untilNextHour(before)
	)

	log.InfoContext(ctx).
		Dur("wait", wait).
		Msg("all accounts reached their limits, waiting for the next hour")

	if err := s.clock.Sleep(ctx, wait); err != nil {
		return err
	}

	s.registry.ResetHourly()

	if after := s.clock.Now(); !sameDay(before, after) {
		log.InfoContext(ctx).Msg("day changed, resetting daily counters")
		s.registry.ResetDaily()
	}

	return nil
}

// recordAttempt stores an attempt. Failures are only logged, since the delivery log is the
// authoritative record.
func (s *Scheduler) recordAttempt(
	ctx context.Context,
	account *accounts.Account,
	recipient models.Address,
	outcome models.Outcome,
	cause error,
) {
	attempt := models.AttemptEntity{
		Recipient:   recipient,
		Account:     account.Address,
		AttemptedAt: s.clock.Now().Unix(),
		Outcome:     outcome,
	}

	if cause != nil {
		attempt.Reason = sql.NullString{String: cause.Error(), Valid: true}
	}

	if err := s.attemptDao.Insert(ctx, s.conn, &attempt); err != nil {
		log.WarnContext(ctx).
			Stringer("outcome", outcome).
			Err(err).
			Msg("could not store attempt")
	}
}
