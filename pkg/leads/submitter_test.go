package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaadvogados/leadrelay/pkg/logger"
	"github.com/limaadvogados/leadrelay/pkg/models"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)
}

func TestBuildContactEbook(t *testing.T) {
	s := NewSubmitter("http://unused", logger.Nop(), WithClock(fixedClock))

	contact := s.BuildContact(models.LeadFormInput{Name: "Ana", Email: "ana@x.com"}, models.OriginEbook)

	assert.Equal(t, "ana@x.com", contact.Email)
	assert.Equal(t, "Ana", contact.Attributes.Name)
	assert.Equal(t, "", contact.Attributes.Company)
	assert.Equal(t, "", contact.Attributes.Phone)
	assert.Equal(t, models.OriginEbook, contact.Attributes.Origin)
	assert.Equal(t, models.InterestEbook, contact.Attributes.Interest)
	assert.Equal(t, "2026-03-14", contact.Attributes.SignupDate)
	assert.Equal(t, []int64{1, 2}, contact.ListIDs)
	assert.True(t, contact.UpdateEnabled)
}

func TestBuildContactFormatsPhoneAndUsesCustomLists(t *testing.T) {
	lists := Lists{Leads: 10, EbookDownloads: 20, DiagnosticUsers: 30, HotLeads: 40}
	s := NewSubmitter("http://unused", logger.Nop(), WithClock(fixedClock), WithLists(lists))

	contact := s.BuildContact(models.LeadFormInput{
		Name:    "Bruno",
		Email:   "bruno@empresa.com.br",
		Company: "Empresa",
		Phone:   "11987654321",
	}, models.OriginCTAFinal)

	assert.Equal(t, "(11) 98765-4321", contact.Attributes.Phone)
	assert.Equal(t, "Empresa", contact.Attributes.Company)
	assert.Equal(t, models.InterestJudicialRecovery, contact.Attributes.Interest)
	assert.Equal(t, []int64{10, 40}, contact.ListIDs)
}

func TestBuildContactUnknownOrigin(t *testing.T) {
	s := NewSubmitter("http://unused", logger.Nop(), WithClock(fixedClock))

	contact := s.BuildContact(models.LeadFormInput{Name: "Ana", Email: "ana@x.com"}, models.Origin("newsletter"))

	assert.Empty(t, contact.Attributes.Origin)
	assert.Equal(t, []int64{1}, contact.ListIDs)

	payload, err := json.Marshal(contact)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "ORIGIN")
}

func TestSubmitLeadSuccess(t *testing.T) {
	var calls int32
	var received models.NormalizedContact

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"id":42,"message":"contact created"}`))
	}))
	defer server.Close()

	s := NewSubmitter(server.URL, logger.Nop(), WithClock(fixedClock))
	result := s.SubmitLead(context.Background(), models.LeadFormInput{Name: "Ana", Email: "ana@x.com"}, models.OriginDiagnostic)

	require.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.JSONEq(t, `{"success":true,"id":42,"message":"contact created"}`, string(result.Data))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, []int64{1, 3}, received.ListIDs)
	assert.Equal(t, models.OriginDiagnostic, received.Attributes.Origin)
}

func TestSubmitLeadNonSuccessStatusIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"failed to process request"}`))
	}))
	defer server.Close()

	s := NewSubmitter(server.URL, logger.Nop())
	result := s.SubmitLead(context.Background(), models.LeadFormInput{Name: "Ana", Email: "ana@x.com"}, models.OriginHeroCTA)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "500")
	assert.Nil(t, result.Data)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSubmitLeadTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	s := NewSubmitter(url, logger.Nop(), WithHTTPClient(&http.Client{Timeout: time.Second}))
	result := s.SubmitLead(context.Background(), models.LeadFormInput{Name: "Ana", Email: "ana@x.com"}, models.OriginEbook)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "error calling relay")
}

func TestSubmitLeadUnreadableSuccessBody(t *testing.T) {
	for _, body := range []string{"", "<html>proxy login</html>"} {
		t.Run(body, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(body))
			}))
			defer server.Close()

			s := NewSubmitter(server.URL, logger.Nop())
			result := s.SubmitLead(context.Background(), models.LeadFormInput{Name: "Ana", Email: "ana@x.com"}, models.OriginEbook)

			assert.False(t, result.Success)
			assert.Equal(t, "error parsing relay response", result.Error)
			assert.Nil(t, result.Data)
		})
	}
}
