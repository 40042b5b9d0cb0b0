package models

import "time"

type Molecule struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	SMILES          string    `json:"smiles"`
	Formula         string    `json:"formula,omitempty"`
	MolecularWeight *float64  `json:"molecularWeight,omitempty"`
	InChIKey        string    `json:"inchiKey,omitempty"`
	PubChemID       string    `json:"pubchemId,omitempty"`
	Structure       JSONMap   `json:"structure"`
	Properties      JSONMap   `json:"properties"`
	CreatedAt       time.Time `json:"createdAt"`
	UserID          *int64    `json:"userId"`
}

// Clone returns a copy that does not share maps or pointers with m.
func (m Molecule) Clone() Molecule {
	m.MolecularWeight = clonePtr(m.MolecularWeight)
	m.UserID = clonePtr(m.UserID)
	m.Structure = m.Structure.Clone()
	m.Properties = m.Properties.Clone()
	return m
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
