package models

import "time"

type CandidateStatus string

const (
	CandidateActive   CandidateStatus = "active"
	CandidateTesting  CandidateStatus = "testing"
	CandidateReview   CandidateStatus = "review"
	CandidateRejected CandidateStatus = "rejected"
	CandidateApproved CandidateStatus = "approved"
)

// Valid reports whether s is one of the known statuses.
func (s CandidateStatus) Valid() bool {
	switch s {
	case CandidateActive, CandidateTesting, CandidateReview, CandidateRejected, CandidateApproved:
		return true
	}
	return false
}

type DrugCandidate struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	MoleculeID      *int64          `json:"moleculeId"`
	TargetProtein   string          `json:"targetProtein,omitempty"`
	BindingAffinity *float64        `json:"bindingAffinity"`
	Status          CandidateStatus `json:"status"`
	AIScore         *float64        `json:"aiScore"`
	Properties      JSONMap         `json:"properties"`
	CreatedAt       time.Time       `json:"createdAt"`
	UserID          *int64          `json:"userId"`
}

func (c DrugCandidate) Clone() DrugCandidate {
	c.MoleculeID = clonePtr(c.MoleculeID)
	c.BindingAffinity = clonePtr(c.BindingAffinity)
	c.AIScore = clonePtr(c.AIScore)
	c.UserID = clonePtr(c.UserID)
	c.Properties = c.Properties.Clone()
	return c
}

// Score returns the AI score, treating a missing score as 0 for ordering.
func (c DrugCandidate) Score() float64 {
	if c.AIScore == nil {
		return 0
	}
	return *c.AIScore
}

// CandidatePatch is a partial update. Nil fields are left unchanged.
type CandidatePatch struct {
	Name            *string
	MoleculeID      *int64
	TargetProtein   *string
	BindingAffinity *float64
	Status          *CandidateStatus
	AIScore         *float64
	Properties      JSONMap
	UserID          *int64
}

// Apply merges the non-nil fields of p into c.
func (p CandidatePatch) Apply(c *DrugCandidate) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.MoleculeID != nil {
		c.MoleculeID = clonePtr(p.MoleculeID)
	}
	if p.TargetProtein != nil {
		c.TargetProtein = *p.TargetProtein
	}
	if p.BindingAffinity != nil {
		c.BindingAffinity = clonePtr(p.BindingAffinity)
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.AIScore != nil {
		c.AIScore = clonePtr(p.AIScore)
	}
	if p.Properties != nil {
		c.Properties = p.Properties.Clone()
	}
	if p.UserID != nil {
		c.UserID = clonePtr(p.UserID)
	}
}

// Empty reports whether the patch changes nothing.
func (p CandidatePatch) Empty() bool {
	return p.Name == nil && p.MoleculeID == nil && p.TargetProtein == nil &&
		p.BindingAffinity == nil && p.Status == nil && p.AIScore == nil && p.Properties == nil &&
		p.UserID == nil
}
