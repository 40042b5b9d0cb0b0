package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/bharat3214/Genei/internal/common"
	"github.com/bharat3214/Genei/internal/logging"
	"github.com/bharat3214/Genei/internal/server/events"
	"github.com/bharat3214/Genei/internal/server/models"
	"github.com/bharat3214/Genei/internal/server/repositories/repomanager"
)

// CatalogService reads and writes the research catalog: molecules, drug
// candidates, projects, research papers and the activity feed. Successful
// writes are announced on the event bus.
type CatalogService struct {
	repomanager repomanager.RepositoryManager
	events      events.Publisher
	logger      logging.Logger
}

func NewCatalogService(m repomanager.RepositoryManager, publisher events.Publisher, logger logging.Logger) *CatalogService {
	return &CatalogService{
		repomanager: m,
		events:      publisher,
		logger:      logger.With("module", "catalog"),
	}
}

func (s *CatalogService) CreateMolecule(ctx context.Context, m *models.Molecule) (*models.Molecule, error) {
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.SMILES) == "" {
		return nil, common.ErrorInvalidInput
	}

	created, err := s.repomanager.Molecules(s.repomanager.DB()).Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("error creating molecule: %w", err)
	}

	s.events.Publish(ctx, events.Event{
		Kind:       events.MoleculeCreated,
		EntityID:   created.ID,
		EntityName: created.Name,
		OwnerID:    created.UserID,
	})
	return created, nil
}

func (s *CatalogService) GetMolecule(ctx context.Context, id int64) (*models.Molecule, error) {
	return s.repomanager.Molecules(s.repomanager.DB()).GetByID(ctx, id)
}

func (s *CatalogService) GetMoleculeBySMILES(ctx context.Context, smiles string) (*models.Molecule, error) {
	return s.repomanager.Molecules(s.repomanager.DB()).GetBySMILES(ctx, smiles)
}

func (s *CatalogService) ListMolecules(ctx context.Context, page models.Page) ([]*models.Molecule, error) {
	return s.repomanager.Molecules(s.repomanager.DB()).List(ctx, page)
}

func (s *CatalogService) CreateDrugCandidate(ctx context.Context, c *models.DrugCandidate) (*models.DrugCandidate, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, common.ErrorInvalidInput
	}
	if c.Status != "" && !c.Status.Valid() {
		return nil, common.ErrorInvalidInput
	}

	created, err := s.repomanager.DrugCandidates(s.repomanager.DB()).Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("error creating drug candidate: %w", err)
	}

	var score any
	if created.AIScore != nil {
		score = *created.AIScore
	}
	s.events.Publish(ctx, events.Event{
		Kind:       events.DrugCandidateCreated,
		EntityID:   created.ID,
		EntityName: created.Name,
		OwnerID:    created.UserID,
		Metadata:   models.JSONMap{"aiScore": score},
	})
	return created, nil
}

func (s *CatalogService) GetDrugCandidate(ctx context.Context, id int64) (*models.DrugCandidate, error) {
	return s.repomanager.DrugCandidates(s.repomanager.DB()).GetByID(ctx, id)
}

func (s *CatalogService) ListDrugCandidates(ctx context.Context, page models.Page) ([]*models.DrugCandidate, error) {
	return s.repomanager.DrugCandidates(s.repomanager.DB()).List(ctx, page)
}

// UpdateDrugCandidate applies patch. The patch's UserID, when set, becomes the
// candidate's owner and the author of the feed entry; without it no activity
// is written.
func (s *CatalogService) UpdateDrugCandidate(ctx context.Context, id int64, patch models.CandidatePatch) (*models.DrugCandidate, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, common.ErrorInvalidInput
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, common.ErrorInvalidInput
	}

	updated, err := s.repomanager.DrugCandidates(s.repomanager.DB()).Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, events.Event{
		Kind:       events.DrugCandidateUpdated,
		EntityID:   updated.ID,
		EntityName: updated.Name,
		OwnerID:    patch.UserID,
	})
	return updated, nil
}

func (s *CatalogService) CreateProject(ctx context.Context, p *models.Project) (*models.Project, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, common.ErrorInvalidInput
	}
	if p.Status != "" && !p.Status.Valid() {
		return nil, common.ErrorInvalidInput
	}

	created, err := s.repomanager.Projects(s.repomanager.DB()).Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("error creating project: %w", err)
	}

	s.events.Publish(ctx, events.Event{
		Kind:       events.ProjectCreated,
		EntityID:   created.ID,
		EntityName: created.Name,
		OwnerID:    created.UserID,
	})
	return created, nil
}

func (s *CatalogService) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	return s.repomanager.Projects(s.repomanager.DB()).GetByID(ctx, id)
}

func (s *CatalogService) ListProjects(ctx context.Context, page models.Page) ([]*models.Project, error) {
	return s.repomanager.Projects(s.repomanager.DB()).List(ctx, page)
}

func (s *CatalogService) ListActivities(ctx context.Context, page models.Page) ([]*models.Activity, error) {
	return s.repomanager.Activities(s.repomanager.DB()).List(ctx, page)
}

func (s *CatalogService) CreateResearchPaper(ctx context.Context, p *models.ResearchPaper) (*models.ResearchPaper, error) {
	if strings.TrimSpace(p.Title) == "" {
		return nil, common.ErrorInvalidInput
	}
	if p.URL == "" && p.DOI != "" {
		p.URL = "https://doi.org/" + p.DOI
	}
	created, err := s.repomanager.ResearchPapers(s.repomanager.DB()).Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("error creating research paper: %w", err)
	}
	return created, nil
}

func (s *CatalogService) GetResearchPaper(ctx context.Context, id int64) (*models.ResearchPaper, error) {
	return s.repomanager.ResearchPapers(s.repomanager.DB()).GetByID(ctx, id)
}

func (s *CatalogService) ListResearchPapers(ctx context.Context, page models.Page) ([]*models.ResearchPaper, error) {
	return s.repomanager.ResearchPapers(s.repomanager.DB()).List(ctx, page)
}

// DashboardStats counts the catalog records shown on the dashboard.
func (s *CatalogService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	db := s.repomanager.DB()
	stats := &models.DashboardStats{}

	var err error
	if stats.MoleculeCount, err = s.repomanager.Molecules(db).Count(ctx); err != nil {
		return nil, err
	}
	if stats.DrugCandidateCount, err = s.repomanager.DrugCandidates(db).Count(ctx); err != nil {
		return nil, err
	}
	if stats.ProjectCount, err = s.repomanager.Projects(db).Count(ctx); err != nil {
		return nil, err
	}
	if stats.ResearchPaperCount, err = s.repomanager.ResearchPapers(db).Count(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}
