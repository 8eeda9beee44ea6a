package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanchoice/livestock/backend/internal/domain"
	"github.com/tanchoice/livestock/backend/internal/service"
)

// echoSupplierRepo echoes writes back unchanged.
func echoSupplierRepo() *mockSupplierRepo {
	echo := func(_ context.Context, s domain.Supplier) (domain.Supplier, error) { return s, nil }
	return &mockSupplierRepo{create: echo, update: echo}
}

func TestSupplierService_Create_Valid(t *testing.T) {
	svc := service.NewSupplierService(echoSupplierRepo())

	got, err := svc.Create(context.Background(), domain.Supplier{
		Name:        "Mwanga Livestock Traders",
		Region:      "Manyara",
		DefaultMark: "M1",
	})

	require.NoError(t, err)
	assert.Equal(t, "Mwanga Livestock Traders", got.Name)
}

func TestSupplierService_Create_MissingName(t *testing.T) {
	svc := service.NewSupplierService(echoSupplierRepo())

	// Whitespace-only should be treated as empty.
	_, err := svc.Create(context.Background(), domain.Supplier{Name: "   "})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSupplierService_Create_OnlyNameRequired(t *testing.T) {
	svc := service.NewSupplierService(echoSupplierRepo())

	// Phone, region, and default mark are all optional.
	_, err := svc.Create(context.Background(), domain.Supplier{Name: "Kilimanjaro Goats"})

	assert.NoError(t, err)
}

func TestSupplierService_GetByID_NotFound(t *testing.T) {
	svc := service.NewSupplierService(supplierLookup())

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSupplierService_List(t *testing.T) {
	r := &mockSupplierRepo{
		list: func(_ context.Context) ([]domain.Supplier, error) {
			return []domain.Supplier{{Name: "A"}, {Name: "B"}}, nil
		},
	}
	svc := service.NewSupplierService(r)

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSupplierService_List_Empty(t *testing.T) {
	r := &mockSupplierRepo{
		list: func(_ context.Context) ([]domain.Supplier, error) { return nil, nil },
	}
	svc := service.NewSupplierService(r)

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSupplierService_Update_MissingName(t *testing.T) {
	svc := service.NewSupplierService(echoSupplierRepo())

	_, err := svc.Update(context.Background(), domain.Supplier{ID: uuid.New()})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSupplierService_Delete_PropagatesRepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := &mockSupplierRepo{
		delete: func(_ context.Context, _ uuid.UUID) error { return repoErr },
	}
	svc := service.NewSupplierService(r)

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, repoErr)
}
