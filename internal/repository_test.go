package internal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firodj/clipperlift/models"
)

func TestRepositoryCreateTables(t *testing.T) {
	repo := NewSQLRepository("")
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.CreateTables(ctx))

	// creating twice is harmless
	require.NoError(t, repo.CreateTables(ctx))

	_, err := repo.DB().ExecContext(ctx, "SELECT 1")
	assert.NoError(t, err)
}

func TestRepositorySaveDocument(t *testing.T) {
	repo := NewSQLRepository("")
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.CreateTables(ctx))

	doc := loadTestDoc(t)
	doc.AnalyzeFrom(doc.EntryAddr)

	var addrs []uint32
	doc.InstrManager.Each(func(line *Line) { addrs = append(addrs, line.Instr.Address) })
	for _, a := range addrs {
		_, err := doc.LiftAt(a, nil)
		require.NoError(t, err)
	}

	require.NoError(t, repo.SaveDocument(ctx, doc))

	count, err := repo.DB().NewSelect().
		Model((*models.Instruction)(nil)).
		Where("session_id = ?", repo.Session()).
		Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(addrs), count)

	var funs []models.Function
	err = repo.DB().NewSelect().
		Model(&funs).
		Where("session_id = ?", repo.Session()).
		Order("address").
		Scan(ctx)
	require.NoError(t, err)
	require.Len(t, funs, 2)
	assert.Equal(t, "start", funs[0].Name)
	assert.Equal(t, uint32(0x1018), funs[1].Address)
}
