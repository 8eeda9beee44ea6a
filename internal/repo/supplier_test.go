package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanchoice/livestock/backend/internal/domain"
	"github.com/tanchoice/livestock/backend/internal/repo"
)

func TestSupplierRepo_Create(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewSupplierRepo(tx)

	got, err := r.Create(context.Background(), domain.Supplier{
		Name:        "Mwanga Livestock Traders",
		Phone:       "+255 700 000 001",
		Region:      "Manyara",
		DefaultMark: "M1",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "Mwanga Livestock Traders", got.Name)
	assert.Equal(t, "M1", got.DefaultMark)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestSupplierRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewSupplierRepo(newTestTx(t))

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSupplierRepo_List_SortedByName(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	r := repo.NewSupplierRepo(tx)

	// Inserted out of order on purpose.
	for _, name := range []string{"Kilimanjaro Goats", "Arusha Farm Co", "Mwanga Livestock Traders"} {
		_, err := r.Create(ctx, domain.Supplier{Name: name})
		require.NoError(t, err)
	}

	got, err := r.List(ctx)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Arusha Farm Co", got[0].Name)
	assert.Equal(t, "Kilimanjaro Goats", got[1].Name)
	assert.Equal(t, "Mwanga Livestock Traders", got[2].Name)
}

func TestSupplierRepo_Update(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	r := repo.NewSupplierRepo(tx)

	created, err := r.Create(ctx, domain.Supplier{Name: "Mwanga Livestock Traders", Region: "Manyara"})
	require.NoError(t, err)

	created.Phone = "+255 700 000 002"
	created.DefaultMark = "MW"

	updated, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "+255 700 000 002", updated.Phone)
	assert.Equal(t, "MW", updated.DefaultMark)
}

func TestSupplierRepo_Update_NotFound(t *testing.T) {
	r := repo.NewSupplierRepo(newTestTx(t))

	_, err := r.Update(context.Background(), domain.Supplier{ID: uuid.New(), Name: "Ghost"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSupplierRepo_Delete(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	r := repo.NewSupplierRepo(tx)

	created, err := r.Create(ctx, domain.Supplier{Name: "Mwanga Livestock Traders"})
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSupplierRepo_Delete_NotFound(t *testing.T) {
	r := repo.NewSupplierRepo(newTestTx(t))

	err := r.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
