package app

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/cimillas/ticketcore/internal/clock"
	"github.com/cimillas/ticketcore/internal/domain"
)

type CheckinRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetTicket(ctx context.Context, id string) (domain.Ticket, error)
	GetTicketForUpdate(ctx context.Context, id string) (domain.Ticket, error)
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	IsVerified(ctx context.Context, principal string) (bool, error)
	UpdateTicketStatus(ctx context.Context, id string, status domain.TicketStatus) error
}

type CheckinService struct {
	repo   CheckinRepository
	clock  clock.Clock
	margin time.Duration
}

const defaultCheckinMargin = 2 * time.Hour

func NewCheckinService(repo CheckinRepository, clk clock.Clock, opts ...CheckinServiceOption) *CheckinService {
	svc := &CheckinService{
		repo:   repo,
		clock:  clk,
		margin: defaultCheckinMargin,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type CheckinServiceOption func(*CheckinService)

// WithMargin overrides how long before the event start check-in opens.
func WithMargin(d time.Duration) CheckinServiceOption {
	return func(s *CheckinService) {
		if d > 0 {
			s.margin = d
		}
	}
}

type VerificationData struct {
	Code       string
	ValidFrom  time.Time
	ValidUntil time.Time
}

// VerificationData derives the ticket's attendance code. The code is a
// keyed hash over the ticket id, so it is deterministic for a given
// ticket but unguessable without the stored seed.
func (s *CheckinService) VerificationData(ctx context.Context, ticketID string) (VerificationData, error) {
	if ticketID == "" {
		return VerificationData{}, domain.ErrInvalidID
	}

	ticket, err := s.repo.GetTicket(ctx, ticketID)
	if err != nil {
		return VerificationData{}, err
	}
	if ticket.Status != domain.TicketStatusValid {
		return VerificationData{}, domain.ErrTicketNotValid
	}
	event, err := s.repo.GetEvent(ctx, ticket.EventID)
	if err != nil {
		return VerificationData{}, err
	}

	return VerificationData{
		Code:       deriveCode(ticket.VerificationSeed, ticket.ID),
		ValidFrom:  event.StartsAt.Add(-s.margin),
		ValidUntil: event.EndsAt,
	}, nil
}

// CheckIn marks a ticket Used. This is the only transition out of Valid
// into Used: the code must match, the current time must lie inside the
// attendance window, and for identity-gated events the owner must hold a
// verification record.
func (s *CheckinService) CheckIn(ctx context.Context, ticketID, code string) error {
	if ticketID == "" {
		return domain.ErrInvalidID
	}

	now := s.clock.Now()

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		ticket, err := s.repo.GetTicketForUpdate(txCtx, ticketID)
		if err != nil {
			return err
		}
		if ticket.Status != domain.TicketStatusValid {
			return domain.ErrTicketNotValid
		}

		event, err := s.repo.GetEvent(txCtx, ticket.EventID)
		if err != nil {
			return err
		}
		if now.Before(event.StartsAt.Add(-s.margin)) || now.After(event.EndsAt) {
			return domain.ErrOutsideEventWindow
		}

		expected := deriveCode(ticket.VerificationSeed, ticket.ID)
		if !hmac.Equal([]byte(expected), []byte(code)) {
			return domain.ErrInvalidVerificationCode
		}

		if event.IdentityRequired {
			verified, err := s.repo.IsVerified(txCtx, ticket.Owner)
			if err != nil {
				return err
			}
			if !verified {
				return domain.ErrIdentityNotVerified
			}
		}

		return s.repo.UpdateTicketStatus(txCtx, ticket.ID, domain.TicketStatusUsed)
	})
}

func deriveCode(seed []byte, ticketID string) string {
	mac := hmac.New(sha256.New, seed)
	mac.Write([]byte(ticketID))
	return hex.EncodeToString(mac.Sum(nil))
}
