package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/repository"
	"github.com/patasfelizes/clinic-api/pkg/metrics"
)

// prometheus registration is once per process, so every test shares
// this registry.
var storeMetrics = metrics.NewMetrics("store_test")

func TestSeed(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)
	ctx := context.Background()

	tutors, err := NewTutorRepository(store).List(ctx)
	require.NoError(t, err)
	assert.Len(t, tutors, 1)
	assert.Equal(t, "João Silva", tutors[0].Name)

	patients, err := NewPatientRepository(store).List(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, tutors[0].ID, patients[0].TutorID)

	products, err := NewProductRepository(store).List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	notifications, err := NewNotificationRepository(store).List(ctx)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	for _, n := range notifications {
		assert.False(t, n.Read, "seeded notifications start unread")
	}

	users, err := NewUserRepository(store).List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)
}

func TestPatientCreateIssuesDistinctIDs(t *testing.T) {
	store := NewEmptyStore()
	repo := NewPatientRepository(store)
	ctx := context.Background()

	seen := make(map[uuid.UUID]bool)
	for i := 0; i < 50; i++ {
		p := &model.Patient{
			Name:      "Luna",
			TutorID:   uuid.New(),
			Species:   "cat",
			Breed:     "Siamese",
			Gender:    model.GenderFemale,
			BirthDate: time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
			Weight:    4.2,
		}
		require.NoError(t, repo.Create(ctx, p))
		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.False(t, seen[p.ID], "id issued twice")
		seen[p.ID] = true
		assert.False(t, p.CreatedAt.IsZero())
		assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	}

	patients, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, patients, 50)
}

func TestPatientAppearsExactlyOnceInSnapshot(t *testing.T) {
	store := NewEmptyStore()
	repo := NewPatientRepository(store)
	ctx := context.Background()

	p := &model.Patient{Name: "Thor", TutorID: uuid.New(), Species: "dog", Breed: "Boxer", Gender: model.GenderMale, Weight: 30}
	require.NoError(t, repo.Create(ctx, p))

	patients, err := repo.List(ctx)
	require.NoError(t, err)
	count := 0
	for _, got := range patients {
		if got.ID == p.ID {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestSnapshotsAreCopies(t *testing.T) {
	store := NewEmptyStore()
	repo := NewPatientRepository(store)
	ctx := context.Background()

	p := &model.Patient{Name: "Mel", TutorID: uuid.New(), Species: "dog", Breed: "Poodle", Gender: model.GenderFemale, Weight: 6, Allergies: []string{"pollen"}}
	require.NoError(t, repo.Create(ctx, p))

	snap, err := repo.List(ctx)
	require.NoError(t, err)
	snap[0].Name = "mutated"
	snap[0].Allergies[0] = "mutated"

	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Mel", again[0].Name)
	assert.Equal(t, []string{"pollen"}, again[0].Allergies)
}

func TestAdjustStockFloorsAtZero(t *testing.T) {
	store := NewEmptyStore()
	repo := NewProductRepository(store)
	ctx := context.Background()

	p := &model.Product{Name: "Flea Shampoo", Category: "hygiene", Stock: 5, MinStock: 2}
	require.NoError(t, repo.Create(ctx, p))

	got, found := repo.AdjustStock(ctx, p.ID, -1000)
	assert.True(t, found)
	assert.Equal(t, 0, got.Stock)

	got, found = repo.AdjustStock(ctx, p.ID, 3)
	assert.True(t, found)
	assert.Equal(t, 3, got.Stock)
}

func TestAdjustStockUnknownIDIsNoOp(t *testing.T) {
	store := NewEmptyStore()
	repo := NewProductRepository(store)
	ctx := context.Background()

	p := &model.Product{Name: "Cat Litter", Category: "hygiene", Stock: 7}
	require.NoError(t, repo.Create(ctx, p))

	got, found := repo.AdjustStock(ctx, uuid.New(), -1)
	assert.False(t, found)
	assert.Nil(t, got)

	after, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, after.Stock)
}

func TestMarkReadUnknownIDIsNoOp(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)
	repo := NewNotificationRepository(store)
	ctx := context.Background()

	before, err := repo.List(ctx)
	require.NoError(t, err)

	assert.False(t, repo.MarkRead(ctx, uuid.New()))

	after, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMarkRead(t *testing.T) {
	store := NewEmptyStore()
	repo := NewNotificationRepository(store)
	ctx := context.Background()

	n := &model.Notification{Type: model.NotificationInfo, Title: "hi", Message: "there", Read: true}
	require.NoError(t, repo.Create(ctx, n))
	assert.False(t, n.Read, "notifications are created unread")

	assert.True(t, repo.MarkRead(ctx, n.ID))
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.True(t, list[0].Read)
}

func TestCreateWithStockDecrementsInventory(t *testing.T) {
	store := NewEmptyStore()
	products := NewProductRepository(store)
	sales := NewSaleRepository(store)
	ctx := context.Background()

	p := &model.Product{Name: "Premium Dog Food", Category: "food", Stock: 10, SellPrice: 65}
	require.NoError(t, products.Create(ctx, p))

	sale := &model.Sale{
		TutorID:       uuid.New(),
		Items:         []model.SaleItem{{ProductID: p.ID, Quantity: 3, UnitPrice: 65, Total: 195}},
		Total:         195,
		PaymentMethod: model.PaymentCash,
		Status:        model.SaleStatusPaid,
	}
	require.NoError(t, sales.CreateWithStock(ctx, sale))
	assert.NotEqual(t, uuid.Nil, sale.ID)

	after, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, after.Stock)

	list, err := sales.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sale.ID, list[0].ID)
}

func TestCreateWithStockRejectsInsufficientStockAtomically(t *testing.T) {
	store := NewEmptyStore()
	products := NewProductRepository(store)
	sales := NewSaleRepository(store)
	ctx := context.Background()

	a := &model.Product{Name: "Dewormer", Category: "medication", Stock: 10}
	b := &model.Product{Name: "Antibiotic", Category: "medication", Stock: 2}
	require.NoError(t, products.Create(ctx, a))
	require.NoError(t, products.Create(ctx, b))

	sale := &model.Sale{
		TutorID: uuid.New(),
		Items: []model.SaleItem{
			{ProductID: a.ID, Quantity: 5},
			{ProductID: b.ID, Quantity: 3},
		},
		PaymentMethod: model.PaymentPix,
		Status:        model.SaleStatusPending,
	}
	err := sales.CreateWithStock(ctx, sale)
	require.ErrorIs(t, err, repository.ErrInsufficientStock)

	// nothing was written
	gotA, _ := products.Get(ctx, a.ID)
	gotB, _ := products.Get(ctx, b.ID)
	assert.Equal(t, 10, gotA.Stock)
	assert.Equal(t, 2, gotB.Stock)

	list, err := sales.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMutationsUpdateMetrics(t *testing.T) {
	store := NewEmptyStore()
	store.SetMetrics(storeMetrics)
	products := NewProductRepository(store)
	notifications := NewNotificationRepository(store)
	ctx := context.Background()

	createsBefore := testutil.ToFloat64(storeMetrics.RegistryMutations.WithLabelValues("products", "create"))
	adjustsBefore := testutil.ToFloat64(storeMetrics.RegistryMutations.WithLabelValues("products", "adjust_stock"))

	p := &model.Product{Name: "Dog Vitamins", Category: "medication", Stock: 4}
	require.NoError(t, products.Create(ctx, p))
	assert.Equal(t, createsBefore+1, testutil.ToFloat64(storeMetrics.RegistryMutations.WithLabelValues("products", "create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(storeMetrics.RegistryRecords.WithLabelValues("products")))

	_, found := products.AdjustStock(ctx, p.ID, -2)
	require.True(t, found)
	assert.Equal(t, adjustsBefore+1, testutil.ToFloat64(storeMetrics.RegistryMutations.WithLabelValues("products", "adjust_stock")))

	// an unknown id mutates nothing and is not counted
	_, found = products.AdjustStock(ctx, uuid.New(), -1)
	require.False(t, found)
	assert.Equal(t, adjustsBefore+1, testutil.ToFloat64(storeMetrics.RegistryMutations.WithLabelValues("products", "adjust_stock")))

	n := &model.Notification{Type: model.NotificationInfo, Title: "low stock", Message: "Dog Vitamins"}
	require.NoError(t, notifications.Create(ctx, n))
	assert.Equal(t, 1.0, testutil.ToFloat64(storeMetrics.RegistryRecords.WithLabelValues("notifications")))
}

func TestSetMetricsSeedsRecordGauges(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)
	store.SetMetrics(storeMetrics)

	assert.Equal(t, 1.0, testutil.ToFloat64(storeMetrics.RegistryRecords.WithLabelValues("tutors")))
	assert.Equal(t, 2.0, testutil.ToFloat64(storeMetrics.RegistryRecords.WithLabelValues("products")))
	assert.Equal(t, 4.0, testutil.ToFloat64(storeMetrics.RegistryRecords.WithLabelValues("users")))
}

func TestCreateWithStockUnknownProduct(t *testing.T) {
	store := NewEmptyStore()
	sales := NewSaleRepository(store)
	ctx := context.Background()

	sale := &model.Sale{
		TutorID:       uuid.New(),
		Items:         []model.SaleItem{{ProductID: uuid.New(), Quantity: 1}},
		PaymentMethod: model.PaymentCard,
	}
	err := sales.CreateWithStock(ctx, sale)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
