package models

import "time"

// ResearchPaper is a literature reference. DocumentKey is the object
// storage key of an uploaded full text, empty until one is uploaded.
type ResearchPaper struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Authors     string    `json:"authors,omitempty"`
	Abstract    string    `json:"abstract,omitempty"`
	Journal     string    `json:"journal,omitempty"`
	Year        *int      `json:"year"`
	DOI         string    `json:"doi,omitempty"`
	URL         string    `json:"url,omitempty"`
	DocumentKey string    `json:"documentKey,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p ResearchPaper) Clone() ResearchPaper {
	p.Year = clonePtr(p.Year)
	return p
}

// PublicationYear returns the year, treating a missing year as 0 for ordering.
func (p ResearchPaper) PublicationYear() int {
	if p.Year == nil {
		return 0
	}
	return *p.Year
}
