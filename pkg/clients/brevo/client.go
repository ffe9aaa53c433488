package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/limaadvogados/leadrelay/pkg/logger"
	"github.com/limaadvogados/leadrelay/pkg/models"
	"github.com/limaadvogados/leadrelay/pkg/utils"
)

// CodeDuplicateParameter is returned with a 400 when the contact already exists.
const CodeDuplicateParameter = "duplicate_parameter"

// CreateResult is the answer to a create call. With updateEnabled set, Brevo
// answers 204 and no id when it updated an existing contact instead.
type CreateResult struct {
	ID      int64
	Updated bool
}

// Client defines the interface for interacting with the Brevo contacts API
type Client interface {
	CreateContact(ctx context.Context, contact models.NormalizedContact) (CreateResult, error)
	UpdateContact(ctx context.Context, contact models.NormalizedContact) error
}

// APIError is a non-2xx answer from Brevo.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("brevo api error: status=%d code=%s message=%s", e.StatusCode, e.Code, e.Message)
}

// IsDuplicate reports whether err means the contact already exists upstream.
func IsDuplicate(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		apiErr.StatusCode == http.StatusBadRequest &&
		apiErr.Code == CodeDuplicateParameter
}

type clientImpl struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient creates a new Brevo client
func NewClient(apiKey, baseURL string, timeout time.Duration, log *logger.Logger) Client {
	return &clientImpl{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

type createContactRequest struct {
	Email         string                   `json:"email"`
	Attributes    models.ContactAttributes `json:"attributes"`
	ListIDs       []int64                  `json:"listIds"`
	UpdateEnabled bool                     `json:"updateEnabled"`
}

type updateContactRequest struct {
	Attributes models.ContactAttributes `json:"attributes"`
	ListIDs    []int64                  `json:"listIds"`
}

func (c *clientImpl) CreateContact(ctx context.Context, contact models.NormalizedContact) (CreateResult, error) {
	payload := createContactRequest{
		Email:         contact.Email,
		Attributes:    contact.Attributes,
		ListIDs:       contact.ListIDs,
		UpdateEnabled: contact.UpdateEnabled,
	}

	status, body, err := c.do(ctx, http.MethodPost, c.baseURL+"/contacts", payload)
	if err != nil {
		return CreateResult{}, err
	}

	if status == http.StatusNoContent {
		c.log.Infow("updated brevo contact on create", "email", utils.MaskEmail(contact.Email))
		return CreateResult{Updated: true}, nil
	}

	var response struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return CreateResult{}, fmt.Errorf("error parsing response: %w", err)
	}

	c.log.Infow("created brevo contact", "email", utils.MaskEmail(contact.Email), "id", response.ID)
	return CreateResult{ID: response.ID}, nil
}

func (c *clientImpl) UpdateContact(ctx context.Context, contact models.NormalizedContact) error {
	updateURL := fmt.Sprintf("%s/contacts/%s", c.baseURL, escapeIdentifier(contact.Email))
	payload := updateContactRequest{
		Attributes: contact.Attributes,
		ListIDs:    contact.ListIDs,
	}

	if _, _, err := c.do(ctx, http.MethodPut, updateURL, payload); err != nil {
		return err
	}

	c.log.Infow("updated brevo contact", "email", utils.MaskEmail(contact.Email))
	return nil
}

func (c *clientImpl) do(ctx context.Context, method, endpoint string, payload any) (int, []byte, error) {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(jsonPayload))
	if err != nil {
		return 0, nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("error calling brevo: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(body, apiErr); err != nil {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return resp.StatusCode, nil, apiErr
	}

	return resp.StatusCode, body, nil
}

// escapeIdentifier percent-encodes an email for use as a path segment,
// including '@' and '+'.
func escapeIdentifier(email string) string {
	return strings.ReplaceAll(url.QueryEscape(email), "+", "%20")
}
