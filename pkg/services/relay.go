package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/limaadvogados/leadrelay/pkg/clients/brevo"
	"github.com/limaadvogados/leadrelay/pkg/logger"
	"github.com/limaadvogados/leadrelay/pkg/metrics"
	"github.com/limaadvogados/leadrelay/pkg/models"
	"github.com/limaadvogados/leadrelay/pkg/utils"
)

// ErrUpdateAfterDuplicate wraps the failure of the update issued after a
// duplicate-contact answer.
var ErrUpdateAfterDuplicate = errors.New("update after duplicate contact failed")

// OutcomeKind is the branch a relay request ended in.
type OutcomeKind int

const (
	OutcomeFailed OutcomeKind = iota
	OutcomeCreated
	// OutcomeUpdated means the create call itself updated an existing contact.
	OutcomeUpdated
	OutcomeUpdatedAfterDuplicate
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeUpdatedAfterDuplicate:
		return "updated_after_duplicate"
	default:
		return "failed"
	}
}

// RelayOutcome is the result of forwarding one contact upstream.
type RelayOutcome struct {
	Kind      OutcomeKind
	ContactID int64
	// Reason is set only when Kind is OutcomeFailed. It carries upstream
	// detail and must not be shown to callers.
	Reason error
}

// ContactRelay defines the interface for forwarding contacts upstream
type ContactRelay interface {
	Relay(ctx context.Context, contact models.NormalizedContact) RelayOutcome
}

type contactRelayImpl struct {
	client  brevo.Client
	metrics *metrics.Metrics
	log     *logger.Logger
}

// NewContactRelay creates a new relay service
func NewContactRelay(client brevo.Client, m *metrics.Metrics, log *logger.Logger) ContactRelay {
	return &contactRelayImpl{
		client:  client,
		metrics: m,
		log:     log,
	}
}

// Relay creates the contact and, when it already exists, updates it once.
func (s *contactRelayImpl) Relay(ctx context.Context, contact models.NormalizedContact) RelayOutcome {
	outcome := s.relay(ctx, contact)
	s.metrics.ObserveRelay(outcome.Kind.String())

	leadKey := utils.HashString(utils.NormalizeEmail(contact.Email))
	if outcome.Kind == OutcomeFailed {
		s.log.Errorw("contact relay failed",
			"lead", leadKey,
			"origin", contact.Attributes.Origin,
			"error", outcome.Reason,
		)
	} else {
		s.log.Infow("contact relayed",
			"lead", leadKey,
			"origin", contact.Attributes.Origin,
			"outcome", outcome.Kind.String(),
		)
	}
	return outcome
}

func (s *contactRelayImpl) relay(ctx context.Context, contact models.NormalizedContact) RelayOutcome {
	res, err := s.client.CreateContact(ctx, contact)
	if err == nil {
		if res.Updated {
			return RelayOutcome{Kind: OutcomeUpdated}
		}
		return RelayOutcome{Kind: OutcomeCreated, ContactID: res.ID}
	}

	if !brevo.IsDuplicate(err) {
		return RelayOutcome{Kind: OutcomeFailed, Reason: fmt.Errorf("create contact: %w", err)}
	}

	s.log.Debugw("contact already exists, updating", "email", utils.MaskEmail(contact.Email))

	if err := s.client.UpdateContact(ctx, contact); err != nil {
		return RelayOutcome{Kind: OutcomeFailed, Reason: fmt.Errorf("%w: %w", ErrUpdateAfterDuplicate, err)}
	}
	return RelayOutcome{Kind: OutcomeUpdatedAfterDuplicate}
}
