package models

import "time"

// Activity feed type tags.
const (
	ActivityMoleculeCreated      = "molecule_created"
	ActivityDrugCandidateCreated = "drug_candidate_created"
	ActivityDrugCandidateUpdated = "drug_candidate_updated"
	ActivityProjectCreated       = "project_created"
)

// Related entity type tags.
const (
	EntityMolecule      = "molecule"
	EntityDrugCandidate = "drug_candidate"
	EntityProject       = "project"
)

// Activity is an append-only audit/feed entry.
type Activity struct {
	ID                int64     `json:"id"`
	Type              string    `json:"type"`
	Description       string    `json:"description"`
	RelatedEntityID   *int64    `json:"relatedEntityId"`
	RelatedEntityType string    `json:"relatedEntityType,omitempty"`
	Metadata          JSONMap   `json:"metadata"`
	CreatedAt         time.Time `json:"createdAt"`
	UserID            *int64    `json:"userId"`
}

func (a Activity) Clone() Activity {
	a.RelatedEntityID = clonePtr(a.RelatedEntityID)
	a.UserID = clonePtr(a.UserID)
	a.Metadata = a.Metadata.Clone()
	return a
}
