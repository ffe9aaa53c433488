package leads

import "github.com/limaadvogados/leadrelay/pkg/models"

// Lists holds the upstream mailing list ids leads are segmented into.
type Lists struct {
	Leads           int64
	EbookDownloads  int64
	DiagnosticUsers int64
	HotLeads        int64
}

// DefaultLists are the list ids configured in the marketing account.
var DefaultLists = Lists{
	Leads:           1,
	EbookDownloads:  2,
	DiagnosticUsers: 3,
	HotLeads:        4,
}

// For returns the lists a lead from origin joins. The base leads list is
// always first; unknown origins get the base list only.
func (l Lists) For(origin models.Origin) []int64 {
	switch origin {
	case models.OriginEbook:
		return []int64{l.Leads, l.EbookDownloads}
	case models.OriginDiagnostic:
		return []int64{l.Leads, l.DiagnosticUsers}
	case models.OriginHeroCTA, models.OriginCTAFinal:
		return []int64{l.Leads, l.HotLeads}
	default:
		return []int64{l.Leads}
	}
}

// InterestFor maps an origin to the interest stored on the contact.
func InterestFor(origin models.Origin) models.Interest {
	switch origin {
	case models.OriginEbook:
		return models.InterestEbook
	default:
		return models.InterestJudicialRecovery
	}
}
