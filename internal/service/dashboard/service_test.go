package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/repository/memory"
)

func newDashboardService(t *testing.T) *Service {
	t.Helper()
	store, err := memory.NewStore()
	require.NoError(t, err)
	return NewService(
		memory.NewPatientRepository(store),
		memory.NewAppointmentRepository(store),
		memory.NewProductRepository(store),
		memory.NewSaleRepository(store),
		memory.NewNotificationRepository(store),
	)
}

func TestStatsForAdmin(t *testing.T) {
	svc := newDashboardService(t)

	stats, err := svc.Stats(context.Background(), model.RoleAdmin)
	require.NoError(t, err)

	require.NotNil(t, stats.Patients)
	assert.Equal(t, 1, *stats.Patients)
	require.NotNil(t, stats.Products)
	assert.Equal(t, 2, *stats.Products)
	require.NotNil(t, stats.LowStockProducts)
	assert.Equal(t, 1, *stats.LowStockProducts, "seeded dewormer sits below its minimum")
	require.NotNil(t, stats.Revenue)
	assert.Equal(t, "R$ 0,00", stats.RevenueFormatted)
	assert.Equal(t, 2, stats.UnreadNotifications)
}

func TestStatsForReceptionistHidesInventoryAndRevenue(t *testing.T) {
	svc := newDashboardService(t)

	stats, err := svc.Stats(context.Background(), model.RoleReceptionist)
	require.NoError(t, err)

	require.NotNil(t, stats.Patients)
	assert.Nil(t, stats.Products)
	assert.Nil(t, stats.LowStockProducts)
	assert.Nil(t, stats.Revenue)
	assert.Empty(t, stats.RevenueFormatted)
	assert.Equal(t, 2, stats.UnreadNotifications)
}

func TestStatsForStockkeeperHidesClinical(t *testing.T) {
	svc := newDashboardService(t)

	stats, err := svc.Stats(context.Background(), model.RoleStockkeeper)
	require.NoError(t, err)

	assert.Nil(t, stats.Patients)
	assert.Nil(t, stats.AppointmentsToday)
	require.NotNil(t, stats.Products)
	require.NotNil(t, stats.LowStockProducts)
	assert.Nil(t, stats.Revenue)
}

func TestStatsMemoized(t *testing.T) {
	svc := newDashboardService(t)
	ctx := context.Background()

	first, err := svc.Stats(ctx, model.RoleAdmin)
	require.NoError(t, err)
	second, err := svc.Stats(ctx, model.RoleAdmin)
	require.NoError(t, err)
	assert.Same(t, first, second)
}
