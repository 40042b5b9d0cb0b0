package molecules

import (
	"context"
	"testing"
	"time"

	"github.com/bharat3214/Genei/internal/common"
	"github.com/bharat3214/Genei/internal/server/models"
	"github.com/bharat3214/Genei/internal/server/repositories/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tickingRepo returns a repository whose clock advances one second per record.
func tickingRepo() *MemoryRepository {
	repo := NewMemoryRepository(memstore.NewStore().Molecules)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	repo.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	return repo
}

func TestMemory_CreateAssignsIDAndTimestamp(t *testing.T) {
	ctx := context.Background()
	repo := tickingRepo()

	owner := int64(7)
	m, err := repo.Create(ctx, &models.Molecule{Name: "Aspirin", SMILES: "CC(=O)OC1=CC=CC=C1C(=O)O", UserID: &owner})
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.ID)
	assert.False(t, m.CreatedAt.IsZero())
	assert.Equal(t, int64(7), *m.UserID)
}

func TestMemory_DuplicateSMILESRejected(t *testing.T) {
	ctx := context.Background()
	repo := tickingRepo()

	_, err := repo.Create(ctx, &models.Molecule{Name: "a", SMILES: "CCO"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.Molecule{Name: "b", SMILES: "CCO"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	_, err = repo.Create(ctx, &models.Molecule{Name: "c", SMILES: "cco"})
	assert.NoError(t, err, "SMILES comparison is exact")

	n, _ := repo.Count(ctx)
	assert.Equal(t, 2, n)
}

func TestMemory_GetBySMILES(t *testing.T) {
	ctx := context.Background()
	repo := tickingRepo()
	_, _ = repo.Create(ctx, &models.Molecule{Name: "ethanol", SMILES: "CCO"})

	m, err := repo.GetBySMILES(ctx, "CCO")
	require.NoError(t, err)
	assert.Equal(t, "ethanol", m.Name)

	_, err = repo.GetBySMILES(ctx, "CCN")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemory_ListNewestFirstWithPagination(t *testing.T) {
	ctx := context.Background()
	repo := tickingRepo()
	for _, s := range []string{"C", "CC", "CCC", "CCCC", "CCCCC"} {
		_, err := repo.Create(ctx, &models.Molecule{Name: s, SMILES: s})
		require.NoError(t, err)
	}

	first, err := repo.List(ctx, models.Page{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, int64(5), first[0].ID)
	assert.Equal(t, int64(4), first[1].ID)

	last, err := repo.List(ctx, models.Page{Limit: 2, Offset: 4})
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, int64(1), last[0].ID)

	beyond, err := repo.List(ctx, models.Page{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestMemory_SameTimestampTieBreaksOnID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(memstore.NewStore().Molecules)
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	_, _ = repo.Create(ctx, &models.Molecule{SMILES: "A"})
	_, _ = repo.Create(ctx, &models.Molecule{SMILES: "B"})

	list, err := repo.List(ctx, models.Page{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].SMILES)
}
