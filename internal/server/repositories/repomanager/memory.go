package repomanager

import (
	"context"

	"github.com/bharat3214/Genei/internal/dbx"
	"github.com/bharat3214/Genei/internal/server/repositories/accounts"
	"github.com/bharat3214/Genei/internal/server/repositories/activities"
	"github.com/bharat3214/Genei/internal/server/repositories/candidates"
	"github.com/bharat3214/Genei/internal/server/repositories/memstore"
	"github.com/bharat3214/Genei/internal/server/repositories/messages"
	"github.com/bharat3214/Genei/internal/server/repositories/molecules"
	"github.com/bharat3214/Genei/internal/server/repositories/papers"
	"github.com/bharat3214/Genei/internal/server/repositories/projects"
	"github.com/bharat3214/Genei/internal/server/repositories/refreshtokens"
)

// MemoryRepositoryManager serves every repository from one memstore.Store.
// Repositories are built once and shared.
type MemoryRepositoryManager struct {
	store *memstore.Store

	accounts      *accounts.MemoryRepository
	refreshTokens *refreshtokens.MemoryRepository
	molecules     *molecules.MemoryRepository
	candidates    *candidates.MemoryRepository
	projects      *projects.MemoryRepository
	activities    *activities.MemoryRepository
	papers        *papers.MemoryRepository
	messages      *messages.MemoryRepository
}

func NewMemoryRepositoryManager(store *memstore.Store) *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		store:         store,
		accounts:      accounts.NewMemoryRepository(store.Accounts),
		refreshTokens: refreshtokens.NewMemoryRepository(store.RefreshTokens),
		molecules:     molecules.NewMemoryRepository(store.Molecules),
		candidates:    candidates.NewMemoryRepository(store.DrugCandidates),
		projects:      projects.NewMemoryRepository(store.Projects),
		activities:    activities.NewMemoryRepository(store.Activities),
		papers:        papers.NewMemoryRepository(store.ResearchPapers),
		messages:      messages.NewMemoryRepository(store.Messages),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) DB() dbx.DBTX { return nil }

// WithTx runs fn directly. Each table operation is atomic on its own, but
// a group of them is not.
func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return fn(ctx, nil)
}

func (m *MemoryRepositoryManager) Ping(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }

func (m *MemoryRepositoryManager) Accounts(dbx.DBTX) accounts.Repository { return m.accounts }

func (m *MemoryRepositoryManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return m.refreshTokens
}

func (m *MemoryRepositoryManager) Molecules(dbx.DBTX) molecules.Repository { return m.molecules }

func (m *MemoryRepositoryManager) DrugCandidates(dbx.DBTX) candidates.Repository {
	return m.candidates
}

func (m *MemoryRepositoryManager) Projects(dbx.DBTX) projects.Repository { return m.projects }

func (m *MemoryRepositoryManager) Activities(dbx.DBTX) activities.Repository { return m.activities }

func (m *MemoryRepositoryManager) ResearchPapers(dbx.DBTX) papers.Repository { return m.papers }

func (m *MemoryRepositoryManager) Messages(dbx.DBTX) messages.Repository { return m.messages }
