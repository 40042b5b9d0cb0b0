package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bharat3214/Genei/internal/common"
	"github.com/bharat3214/Genei/internal/dbx"
	"github.com/bharat3214/Genei/internal/logging"
	"github.com/bharat3214/Genei/internal/server/auth"
	"github.com/bharat3214/Genei/internal/server/models"
	"github.com/bharat3214/Genei/internal/server/repositories/repomanager"
)

// DemoUsername and DemoPassword sign in to the seeded demo account.
const (
	DemoUsername = "johndoe"
	DemoPassword = "password123"
)

// Seed loads the demo catalog: one account, four molecules, three drug
// candidates, three projects, three papers and a few feed entries. Records
// go straight to the repositories, so no activities are derived from them.
// It does nothing when the demo account already exists.
func Seed(ctx context.Context, m repomanager.RepositoryManager, logger logging.Logger) error {
	_, err := m.Accounts(m.DB()).GetByUsername(ctx, DemoUsername)
	if err == nil {
		logger.Info(ctx, "demo data already present, skipping seed")
		return nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error checking demo account: %w", err)
	}

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return err
	}

	return m.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		owner, err := m.Accounts(tx).Create(ctx, &models.Account{
			Username:     DemoUsername,
			PasswordHash: hash,
			FullName:     "John Doe",
			Role:         "Research Scientist",
		})
		if err != nil {
			return fmt.Errorf("error seeding account: %w", err)
		}
		uid := &owner.ID

		moleculeIDs := make([]int64, 0, len(seedMolecules))
		for _, mol := range seedMolecules {
			mol.UserID = uid
			created, err := m.Molecules(tx).Create(ctx, &mol)
			if err != nil {
				return fmt.Errorf("error seeding molecule %s: %w", mol.Name, err)
			}
			moleculeIDs = append(moleculeIDs, created.ID)
		}

		var candidateIDs []int64
		for i, c := range seedCandidates {
			c.UserID = uid
			// candidates reference molecules 2..4
			c.MoleculeID = &moleculeIDs[i+1]
			created, err := m.DrugCandidates(tx).Create(ctx, &c)
			if err != nil {
				return fmt.Errorf("error seeding drug candidate %s: %w", c.Name, err)
			}
			candidateIDs = append(candidateIDs, created.ID)
		}

		for _, p := range seedProjects {
			p.UserID = uid
			if _, err := m.Projects(tx).Create(ctx, &p); err != nil {
				return fmt.Errorf("error seeding project %s: %w", p.Name, err)
			}
		}

		for _, p := range seedPapers {
			p.URL = "https://doi.org/" + p.DOI
			if _, err := m.ResearchPapers(tx).Create(ctx, &p); err != nil {
				return fmt.Errorf("error seeding paper: %w", err)
			}
		}

		feed := []models.Activity{
			{
				Type:              models.ActivityDrugCandidateCreated,
				Description:       "New candidate generated",
				RelatedEntityID:   &candidateIDs[0],
				RelatedEntityType: models.EntityDrugCandidate,
				Metadata:          models.JSONMap{"aiScore": 0.92},
			},
			{
				Type:              "property_analysis",
				Description:       "Property analysis completed",
				RelatedEntityID:   &candidateIDs[1],
				RelatedEntityType: models.EntityDrugCandidate,
				Metadata:          models.JSONMap{"result": "favorable"},
			},
			{
				Type:        "literature_update",
				Description: "Literature update",
				Metadata:    models.JSONMap{"count": 12},
			},
		}
		for _, a := range feed {
			a.UserID = uid
			if _, err := m.Activities(tx).Create(ctx, &a); err != nil {
				return fmt.Errorf("error seeding activity: %w", err)
			}
		}

		logger.Info(ctx, "demo data seeded", "user_id", owner.ID)
		return nil
	})
}

func properties(logP float64, hDonors, hAcceptors int, bioavailability, solubility, bbb, toxicity float64) models.JSONMap {
	return models.JSONMap{
		"logP":              logP,
		"hDonors":           hDonors,
		"hAcceptors":        hAcceptors,
		"bioavailability":   bioavailability,
		"solubility":        solubility,
		"bloodBrainBarrier": bbb,
		"toxicityRisk":      toxicity,
	}
}

func admet(absorption, distribution, metabolism, excretion, toxicity float64) models.JSONMap {
	return models.JSONMap{"admet": map[string]any{
		"absorption":   absorption,
		"distribution": distribution,
		"metabolism":   metabolism,
		"excretion":    excretion,
		"toxicity":     toxicity,
	}}
}

var seedMolecules = []models.Molecule{
	{
		Name:            "Aspirin",
		SMILES:          "CC(=O)OC1=CC=CC=C1C(=O)O",
		Formula:         "C9H8O4",
		MolecularWeight: common.Ptr(180.16),
		InChIKey:        "BSYNRYMUTXBXSQ-UHFFFAOYSA-N",
		PubChemID:       "2244",
		Structure:       models.JSONMap{},
		Properties:      properties(1.24, 1, 4, 0.85, 0.62, 0.27, 0.15),
	},
	{
		Name:            "CMP-42X",
		SMILES:          "CC1=CC=C(C=C1)C2=CC(=NN2C3=CC=C(C=C3)S(=O)(=O)N)C(F)(F)F",
		Formula:         "C22H28N4O2",
		MolecularWeight: common.Ptr(380.48),
		Structure:       models.JSONMap{},
		Properties:      properties(3.45, 2, 6, 0.92, 0.78, 0.45, 0.22),
	},
	{
		Name:            "CMP-18A",
		SMILES:          "CC1=CC=C(C=C1)C(=O)NC2=CC=C(C=C2)S(=O)(=O)NC3=NC=CS3",
		Formula:         "C18H22N2O3",
		MolecularWeight: common.Ptr(314.39),
		Structure:       models.JSONMap{},
		Properties:      properties(2.87, 3, 7, 0.76, 0.65, 0.35, 0.31),
	},
	{
		Name:            "CMP-73B",
		SMILES:          "C1=CC=C(C=C1)C2=CSC(=N2)NC3=CC=NC=C3",
		Formula:         "C16H20N6O1",
		MolecularWeight: common.Ptr(328.37),
		Structure:       models.JSONMap{},
		Properties:      properties(2.21, 2, 8, 0.81, 0.59, 0.39, 0.25),
	},
}

var seedCandidates = []models.DrugCandidate{
	{
		Name:            "CMP-42X",
		TargetProtein:   "EGFR",
		BindingAffinity: common.Ptr(8.7),
		Status:          models.CandidateActive,
		AIScore:         common.Ptr(0.92),
		Properties:      admet(0.85, 0.76, 0.65, 0.72, 0.22),
	},
	{
		Name:            "CMP-18A",
		TargetProtein:   "PI3K",
		BindingAffinity: common.Ptr(7.9),
		Status:          models.CandidateTesting,
		AIScore:         common.Ptr(0.87),
		Properties:      admet(0.72, 0.68, 0.59, 0.63, 0.31),
	},
	{
		Name:            "CMP-73B",
		TargetProtein:   "JAK2",
		BindingAffinity: common.Ptr(7.2),
		Status:          models.CandidateReview,
		AIScore:         common.Ptr(0.81),
		Properties:      admet(0.68, 0.64, 0.55, 0.61, 0.25),
	},
}

var seedProjects = []models.Project{
	{Name: "Project Artemis", Description: "Targeting EGFR mutations in lung cancer", Status: models.ProjectActive},
	{Name: "Project Helios", Description: "Novel JAK inhibitors for autoimmune diseases", Status: models.ProjectActive},
	{Name: "Project Athena", Description: "Blood-brain barrier penetrating compounds", Status: models.ProjectActive},
}

var seedPapers = []models.ResearchPaper{
	{
		Title:    "Novel EGFR inhibitors with improved selectivity",
		Authors:  "Zhang, J., Smith, A., Johnson, B.",
		Abstract: "This study presents a series of novel compounds targeting EGFR with improved selectivity profiles...",
		Journal:  "Journal of Medicinal Chemistry",
		Year:     common.Ptr(2023),
		DOI:      "10.1021/jm.2023.12345",
	},
	{
		Title:    "Structure-based design of PI3K inhibitors",
		Authors:  "Brown, L., Davis, M., Wilson, E.",
		Abstract: "Using structure-based drug design approaches, we developed a series of potent PI3K inhibitors...",
		Journal:  "ACS Chemical Biology",
		Year:     common.Ptr(2022),
		DOI:      "10.1021/cb.2022.67890",
	},
	{
		Title:    "AI-guided optimization of kinase inhibitors",
		Authors:  "Lee, K., Wang, S., Garcia, R.",
		Abstract: "Implementation of machine learning approaches for the optimization of kinase inhibitors resulted in compounds with improved properties...",
		Journal:  "Journal of Chemical Information and Modeling",
		Year:     common.Ptr(2023),
		DOI:      "10.1021/ci.2023.54321",
	},
}
