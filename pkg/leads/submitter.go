package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/limaadvogados/leadrelay/pkg/logger"
	"github.com/limaadvogados/leadrelay/pkg/models"
	"github.com/limaadvogados/leadrelay/pkg/utils"
)

const signupDateLayout = "2006-01-02"

// Submitter turns form input into a normalized contact and posts it to the
// relay endpoint.
type Submitter struct {
	relayURL   string
	httpClient *http.Client
	lists      Lists
	now        func() time.Time
	log        *logger.Logger
}

// SubmitterOption customizes a Submitter.
type SubmitterOption func(*Submitter)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) SubmitterOption {
	return func(s *Submitter) { s.httpClient = c }
}

// WithLists overrides the mailing list ids.
func WithLists(l Lists) SubmitterOption {
	return func(s *Submitter) { s.lists = l }
}

// WithClock sets the time source used for the signup date.
func WithClock(now func() time.Time) SubmitterOption {
	return func(s *Submitter) { s.now = now }
}

// NewSubmitter creates a submitter posting to relayURL
func NewSubmitter(relayURL string, log *logger.Logger, opts ...SubmitterOption) *Submitter {
	s := &Submitter{
		relayURL:   relayURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		lists:      DefaultLists,
		now:        time.Now,
		log:        log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildContact derives the upstream contact record for a form post.
func (s *Submitter) BuildContact(input models.LeadFormInput, origin models.Origin) models.NormalizedContact {
	phone := ""
	if input.Phone != "" {
		phone = FormatPhone(input.Phone)
	}

	// Unknown sections still join the base list but never reach ORIGIN.
	attrOrigin := origin
	if !origin.Valid() {
		attrOrigin = ""
	}

	return models.NormalizedContact{
		Email: input.Email,
		Attributes: models.ContactAttributes{
			Name:       input.Name,
			Company:    input.Company,
			Phone:      phone,
			Origin:     attrOrigin,
			Interest:   InterestFor(origin),
			SignupDate: s.now().UTC().Format(signupDateLayout),
		},
		ListIDs:       s.lists.For(origin),
		UpdateEnabled: true,
	}
}

// SubmitLead sends one request to the relay. Failures are reported in the
// result, never retried.
func (s *Submitter) SubmitLead(ctx context.Context, input models.LeadFormInput, origin models.Origin) models.SubmissionResult {
	contact := s.BuildContact(input, origin)
	leadKey := utils.HashString(utils.NormalizeEmail(contact.Email))

	data, err := s.post(ctx, contact)
	if err != nil {
		s.log.Errorw("lead submission failed",
			"lead", leadKey,
			"origin", origin,
			"phone", utils.MaskPhone(contact.Attributes.Phone),
			"error", err,
		)
		return models.SubmissionResult{Success: false, Error: err.Error()}
	}

	s.log.Infow("lead submitted", "lead", leadKey, "origin", origin, "lists", contact.ListIDs)
	return models.SubmissionResult{Success: true, Data: data}
}

func (s *Submitter) post(ctx context.Context, contact models.NormalizedContact) (json.RawMessage, error) {
	payload, err := json.Marshal(contact)
	if err != nil {
		return nil, fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.relayURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling relay: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("relay responded with status %d", resp.StatusCode)
	}

	if len(bytes.TrimSpace(body)) == 0 || !json.Valid(body) {
		return nil, errors.New("error parsing relay response")
	}
	return json.RawMessage(body), nil
}
