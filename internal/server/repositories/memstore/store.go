package memstore

import "github.com/bharat3214/Genei/internal/server/models"

// Store bundles one table per record kind. Build it once at startup and
// hand it to the repositories; tests construct their own.
type Store struct {
	Accounts       *Table[models.Account]
	RefreshTokens  *Table[models.RefreshToken]
	Molecules      *Table[models.Molecule]
	DrugCandidates *Table[models.DrugCandidate]
	Projects       *Table[models.Project]
	Activities     *Table[models.Activity]
	ResearchPapers *Table[models.ResearchPaper]
	Messages       *Table[models.Message]
}

func NewStore() *Store {
	return &Store{
		Accounts:       NewTable(cloneAccount),
		RefreshTokens:  NewTable(identity[models.RefreshToken]),
		Molecules:      NewTable(models.Molecule.Clone),
		DrugCandidates: NewTable(models.DrugCandidate.Clone),
		Projects:       NewTable(models.Project.Clone),
		Activities:     NewTable(models.Activity.Clone),
		ResearchPapers: NewTable(models.ResearchPaper.Clone),
		Messages:       NewTable(identity[models.Message]),
	}
}

func identity[T any](v T) T { return v }

func cloneAccount(a models.Account) models.Account {
	a.PasswordHash = append([]byte(nil), a.PasswordHash...)
	return a
}
