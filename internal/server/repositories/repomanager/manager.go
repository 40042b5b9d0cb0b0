// Package repomanager vends the repositories of one storage backend:
// the in-memory store or PostgreSQL.
package repomanager

import (
	"context"

	"github.com/bharat3214/Genei/internal/dbx"
	"github.com/bharat3214/Genei/internal/server/repositories/accounts"
	"github.com/bharat3214/Genei/internal/server/repositories/activities"
	"github.com/bharat3214/Genei/internal/server/repositories/candidates"
	"github.com/bharat3214/Genei/internal/server/repositories/messages"
	"github.com/bharat3214/Genei/internal/server/repositories/molecules"
	"github.com/bharat3214/Genei/internal/server/repositories/papers"
	"github.com/bharat3214/Genei/internal/server/repositories/projects"
	"github.com/bharat3214/Genei/internal/server/repositories/refreshtokens"
)

// RepositoryManager binds repositories to a DBTX. Pass DB() for standalone
// calls or the tx handed to WithTx to group writes. The memory backend
// ignores the argument.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	DB() dbx.DBTX
	WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error
	Ping(ctx context.Context) error
	Close() error

	Accounts(db dbx.DBTX) accounts.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Molecules(db dbx.DBTX) molecules.Repository
	DrugCandidates(db dbx.DBTX) candidates.Repository
	Projects(db dbx.DBTX) projects.Repository
	Activities(db dbx.DBTX) activities.Repository
	ResearchPapers(db dbx.DBTX) papers.Repository
	Messages(db dbx.DBTX) messages.Repository
}
