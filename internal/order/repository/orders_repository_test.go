package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radagast/internal/domain"
	apperrors "radagast/internal/errors"
	"radagast/internal/testutil"
)

func seedOrder(t *testing.T, repo *MySQLOrderRepository, loc domain.Location) *domain.Order {
	t.Helper()

	order := &domain.Order{
		PhoneNumber: "89281234567",
		Items: []domain.OrderLine{
			{FoodID: "f1", Quantity: 2, Price: 250},
			{FoodID: "f2", Quantity: 1, Price: 100},
		},
		Total:          600,
		DeliveryMethod: domain.DeliveryCourier,
		Address:        "ул. Ленина, 10",
		PaymentMethod:  domain.PaymentCash,
		Location:       loc,
		Status:         domain.OrderStatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), order))
	return order
}

func TestOrderRepository_CreateAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	created := seedOrder(t, repo, domain.LocationShatoy)

	found, err := repo.FindByID(context.Background(), created.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, "89281234567", found.PhoneNumber)
	assert.Equal(t, 600.0, found.Total)
	assert.Equal(t, domain.OrderStatusPending, found.Status)
	assert.Nil(t, found.StatusChangedAt)
	require.Len(t, found.Items, 2)
	assert.Equal(t, "f1", found.Items[0].FoodID)
	assert.Equal(t, 250.0, found.Items[0].Price)
}

func TestOrderRepository_FindAllScoped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	seedOrder(t, repo, domain.LocationShatoy)
	seedOrder(t, repo, domain.LocationGikalo)
	ctx := context.Background()

	all, err := repo.FindAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scope := domain.LocationShatoy
	scoped, err := repo.FindAll(ctx, &scope)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, domain.LocationShatoy, scoped[0].Location)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	created := seedOrder(t, repo, domain.LocationShatoy)
	ctx := context.Background()

	updated, err := repo.UpdateStatus(ctx, created.ID, domain.OrderStatusConfirmed, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, updated.Status)
	assert.NotNil(t, updated.StatusChangedAt)

	firstChange := *updated.StatusChangedAt

	// Re-applying the current status is a no-op.
	updated, err = repo.UpdateStatus(ctx, created.ID, domain.OrderStatusConfirmed, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, updated.Status)
	assert.Equal(t, firstChange, *updated.StatusChangedAt)

	// Confirmed is terminal.
	_, err = repo.UpdateStatus(ctx, created.ID, domain.OrderStatusCancelled, nil)
	_, ok := apperrors.IsBadRequestError(err)
	assert.True(t, ok)
}

func TestOrderRepository_UpdateStatusOutOfScope(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	created := seedOrder(t, repo, domain.LocationShatoy)

	scope := domain.LocationGikalo
	_, err := repo.UpdateStatus(context.Background(), created.ID, domain.OrderStatusConfirmed, &scope)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderRepository_DeleteRemovesItems(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	created := seedOrder(t, repo, domain.LocationShatoy)
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, created.ID, nil))

	_, err := repo.FindByID(ctx, created.ID, nil)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)

	var count int
	require.NoError(t, db.QueryRow(
		"SELECT COUNT(*) FROM order_items WHERE order_id = ?", created.ID,
	).Scan(&count))
	assert.Equal(t, 0, count)
}
