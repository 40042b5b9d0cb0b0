package httpapi

import (
	"net/http"
	"strings"

	"github.com/bharat3214/Genei/internal/logging"
	"github.com/bharat3214/Genei/internal/server/models"
	"github.com/bharat3214/Genei/internal/server/services"
)

// CatalogHandler serves molecules, drug candidates, projects, research
// papers, the activity feed and dashboard statistics.
type CatalogHandler struct {
	catalog   *services.CatalogService
	documents *services.DocumentService
	logger    logging.Logger
}

func NewCatalogHandler(catalog *services.CatalogService, documents *services.DocumentService, logger logging.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, documents: documents, logger: logger}
}

type CreateMoleculeRequest struct {
	Name            string         `json:"name" validate:"required,max=200"`
	SMILES          string         `json:"smiles" validate:"required,max=2000"`
	Formula         string         `json:"formula,omitempty" validate:"max=200"`
	MolecularWeight *float64       `json:"molecularWeight,omitempty" validate:"omitempty,gt=0"`
	InChIKey        string         `json:"inchiKey,omitempty" validate:"max=64"`
	PubChemID       string         `json:"pubchemId,omitempty" validate:"max=64"`
	Structure       models.JSONMap `json:"structure,omitempty"`
	Properties      models.JSONMap `json:"properties,omitempty"`
	UserID          *int64         `json:"userId,omitempty" validate:"omitempty,gt=0"`
}

type CreateDrugCandidateRequest struct {
	Name            string                 `json:"name" validate:"required,max=200"`
	MoleculeID      *int64                 `json:"moleculeId,omitempty" validate:"omitempty,gt=0"`
	TargetProtein   string                 `json:"targetProtein,omitempty" validate:"max=200"`
	BindingAffinity *float64               `json:"bindingAffinity,omitempty"`
	Status          models.CandidateStatus `json:"status,omitempty" validate:"omitempty,oneof=active testing review rejected approved"`
	AIScore         *float64               `json:"aiScore,omitempty" validate:"omitempty,gte=0,lte=1"`
	Properties      models.JSONMap         `json:"properties,omitempty"`
	UserID          *int64                 `json:"userId,omitempty" validate:"omitempty,gt=0"`
}

type UpdateDrugCandidateRequest struct {
	Name            *string                 `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	MoleculeID      *int64                  `json:"moleculeId,omitempty" validate:"omitempty,gt=0"`
	TargetProtein   *string                 `json:"targetProtein,omitempty" validate:"omitempty,max=200"`
	BindingAffinity *float64                `json:"bindingAffinity,omitempty"`
	Status          *models.CandidateStatus `json:"status,omitempty" validate:"omitempty,oneof=active testing review rejected approved"`
	AIScore         *float64                `json:"aiScore,omitempty" validate:"omitempty,gte=0,lte=1"`
	Properties      models.JSONMap          `json:"properties,omitempty"`
	UserID          *int64                  `json:"userId,omitempty" validate:"omitempty,gt=0"`
}

type CreateProjectRequest struct {
	Name        string               `json:"name" validate:"required,max=200"`
	Description string               `json:"description,omitempty" validate:"max=5000"`
	Status      models.ProjectStatus `json:"status,omitempty" validate:"omitempty,oneof=active completed on-hold"`
	UserID      *int64               `json:"userId,omitempty" validate:"omitempty,gt=0"`
}

type CreateResearchPaperRequest struct {
	Title    string `json:"title" validate:"required,max=500"`
	Authors  string `json:"authors,omitempty" validate:"max=2000"`
	Abstract string `json:"abstract,omitempty"`
	Journal  string `json:"journal,omitempty" validate:"max=300"`
	Year     *int   `json:"year,omitempty" validate:"omitempty,gte=1000,lte=3000"`
	DOI      string `json:"doi,omitempty" validate:"max=200"`
	URL      string `json:"url,omitempty" validate:"omitempty,url"`
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// DashboardStats handles GET /api/dashboard/stats
func (h *CatalogHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalog.DashboardStats(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// ListMolecules handles GET /api/molecules
func (h *CatalogHandler) ListMolecules(w http.ResponseWriter, r *http.Request) {
	page, err := listPage(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.catalog.ListMolecules(r.Context(), page)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(out))
}

// CreateMolecule handles POST /api/molecules
func (h *CatalogHandler) CreateMolecule(w http.ResponseWriter, r *http.Request) {
	var req CreateMoleculeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.catalog.CreateMolecule(r.Context(), &models.Molecule{
		Name:            req.Name,
		SMILES:          req.SMILES,
		Formula:         req.Formula,
		MolecularWeight: req.MolecularWeight,
		InChIKey:        req.InChIKey,
		PubChemID:       req.PubChemID,
		Structure:       req.Structure,
		Properties:      req.Properties,
		UserID:          req.UserID,
	})
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// GetMolecule handles GET /api/molecules/{id}
func (h *CatalogHandler) GetMolecule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.catalog.GetMolecule(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

// LookupMolecule handles GET /api/molecules/lookup?smiles=
func (h *CatalogHandler) LookupMolecule(w http.ResponseWriter, r *http.Request) {
	smiles := strings.TrimSpace(r.URL.Query().Get("smiles"))
	if smiles == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Message: "Validation failed",
			Errors:  []FieldError{{Field: "smiles", Rule: "required", Message: "smiles is required"}},
		})
		return
	}
	m, err := h.catalog.GetMoleculeBySMILES(r.Context(), smiles)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

// ListDrugCandidates handles GET /api/drug-candidates
func (h *CatalogHandler) ListDrugCandidates(w http.ResponseWriter, r *http.Request) {
	page, err := listPage(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.catalog.ListDrugCandidates(r.Context(), page)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(out))
}

// CreateDrugCandidate handles POST /api/drug-candidates
func (h *CatalogHandler) CreateDrugCandidate(w http.ResponseWriter, r *http.Request) {
	var req CreateDrugCandidateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.catalog.CreateDrugCandidate(r.Context(), &models.DrugCandidate{
		Name:            req.Name,
		MoleculeID:      req.MoleculeID,
		TargetProtein:   req.TargetProtein,
		BindingAffinity: req.BindingAffinity,
		Status:          req.Status,
		AIScore:         req.AIScore,
		Properties:      req.Properties,
		UserID:          req.UserID,
	})
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// GetDrugCandidate handles GET /api/drug-candidates/{id}
func (h *CatalogHandler) GetDrugCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.catalog.GetDrugCandidate(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// UpdateDrugCandidate handles PATCH /api/drug-candidates/{id}
func (h *CatalogHandler) UpdateDrugCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req UpdateDrugCandidateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	patch := models.CandidatePatch{
		Name:            req.Name,
		MoleculeID:      req.MoleculeID,
		TargetProtein:   req.TargetProtein,
		BindingAffinity: req.BindingAffinity,
		Status:          req.Status,
		AIScore:         req.AIScore,
		Properties:      req.Properties,
		UserID:          req.UserID,
	}
	if patch.Empty() {
		respondError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	updated, err := h.catalog.UpdateDrugCandidate(r.Context(), id, patch)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// ListProjects handles GET /api/projects
func (h *CatalogHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	page, err := listPage(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.catalog.ListProjects(r.Context(), page)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(out))
}

// CreateProject handles POST /api/projects
func (h *CatalogHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.catalog.CreateProject(r.Context(), &models.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		UserID:      req.UserID,
	})
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// GetProject handles GET /api/projects/{id}
func (h *CatalogHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.catalog.GetProject(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// ListActivities handles GET /api/activities
func (h *CatalogHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	page, err := listPage(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.catalog.ListActivities(r.Context(), page)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(out))
}

// ListResearchPapers handles GET /api/research-papers
func (h *CatalogHandler) ListResearchPapers(w http.ResponseWriter, r *http.Request) {
	page, err := listPage(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.catalog.ListResearchPapers(r.Context(), page)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(out))
}

// CreateResearchPaper handles POST /api/research-papers
func (h *CatalogHandler) CreateResearchPaper(w http.ResponseWriter, r *http.Request) {
	var req CreateResearchPaperRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.catalog.CreateResearchPaper(r.Context(), &models.ResearchPaper{
		Title:    req.Title,
		Authors:  req.Authors,
		Abstract: req.Abstract,
		Journal:  req.Journal,
		Year:     req.Year,
		DOI:      req.DOI,
		URL:      req.URL,
	})
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// GetResearchPaper handles GET /api/research-papers/{id}
func (h *CatalogHandler) GetResearchPaper(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.catalog.GetResearchPaper(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// RequestDocumentUpload handles POST /api/research-papers/{id}/document
func (h *CatalogHandler) RequestDocumentUpload(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	doc, err := h.documents.RequestUpload(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, doc)
}

// DocumentDownload handles GET /api/research-papers/{id}/document
func (h *CatalogHandler) DocumentDownload(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	doc, err := h.documents.DownloadURL(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}
