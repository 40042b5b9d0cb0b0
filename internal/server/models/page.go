package models

const (
	DefaultPageLimit         = 10
	MaxPageLimit             = 100
	DefaultConversationLimit = 100
	MaxConversationLimit     = 500
)

// Page selects records [Offset, Offset+Limit) of an ordered listing.
// A Limit of 0 means no upper bound.
type Page struct {
	Limit  int
	Offset int
}

// DefaultPage is used when the caller does not specify one.
var DefaultPage = Page{Limit: DefaultPageLimit}

// Bounds returns the slice bounds of the page over n ordered records.
// Pages past the end yield an empty range.
func (p Page) Bounds(n int) (int, int) {
	start := max(p.Offset, 0)
	if start > n {
		start = n
	}
	end := n
	if p.Limit > 0 && start+p.Limit < n {
		end = start + p.Limit
	}
	return start, end
}

// DashboardStats are the record counts shown on the dashboard.
type DashboardStats struct {
	MoleculeCount      int `json:"moleculeCount"`
	DrugCandidateCount int `json:"drugCandidateCount"`
	ProjectCount       int `json:"projectCount"`
	ResearchPaperCount int `json:"researchPaperCount"`
}
