package usecase

import (
	"context"
	"testing"
	"time"

	"billiard-club/internal/data/entity"
	"billiard-club/internal/data/repository"
	"billiard-club/pkg/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubTx satisfies pgx.Tx for calls that never reach the database.
type stubTx struct {
	pgx.Tx
}

// fakeInventoryRepo records mutations so tests can assert the ledger
// stayed untouched on a refused decrease.
type fakeInventoryRepo struct {
	record  *entity.InventoryRecord
	updates []int64
	txns    []*entity.InventoryTransaction
}

func (f *fakeInventoryRepo) FindByServiceID(ctx context.Context, tenantID, serviceID uuid.UUID) (*entity.InventoryRecord, error) {
	return f.record, nil
}

func (f *fakeInventoryRepo) FindByServiceIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, serviceID uuid.UUID) (*entity.InventoryRecord, error) {
	return f.record, nil
}

func (f *fakeInventoryRepo) CreateRecord(ctx context.Context, tx pgx.Tx, record *entity.InventoryRecord) error {
	f.record = record
	return nil
}

func (f *fakeInventoryRepo) UpdateRecord(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int64, avgUnitCost decimal.Decimal) error {
	f.updates = append(f.updates, quantity)
	return nil
}

func (f *fakeInventoryRepo) CreateTransaction(ctx context.Context, tx pgx.Tx, txn *entity.InventoryTransaction) error {
	f.txns = append(f.txns, txn)
	return nil
}

func (f *fakeInventoryRepo) ListTransactions(ctx context.Context, tenantID, recordID uuid.UUID, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error) {
	return nil, nil
}

func newInventoryServiceWithFake(fake *fakeInventoryRepo) *inventoryService {
	return &inventoryService{
		repo: &repository.Repository{Inventory: fake},
		log:  zap.NewNop(),
	}
}

func trackedService(qtyThreshold int64) *entity.ServiceItem {
	svc := &entity.ServiceItem{
		Name:              "Cola",
		TrackStock:        true,
		LowStockThreshold: qtyThreshold,
		IsActive:          true,
	}
	svc.ID = uuid.New()
	return svc
}

func TestDecreaseTxInsufficientStockLeavesLedgerUntouched(t *testing.T) {
	tenantID := uuid.New()
	svc := trackedService(0)

	t.Run("stock below requested quantity", func(t *testing.T) {
		fake := &fakeInventoryRepo{record: &entity.InventoryRecord{
			TenantID:  tenantID,
			ServiceID: svc.ID,
			Quantity:  3,
		}}
		s := newInventoryServiceWithFake(fake)

		_, err := s.DecreaseTx(context.Background(), stubTx{}, tenantID, svc, 5, "sale", "staff")
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindInsufficientStock))

		assert.Empty(t, fake.updates)
		assert.Empty(t, fake.txns)
		assert.Equal(t, int64(3), fake.record.Quantity)
	})

	t.Run("no record at all", func(t *testing.T) {
		fake := &fakeInventoryRepo{}
		s := newInventoryServiceWithFake(fake)

		_, err := s.DecreaseTx(context.Background(), stubTx{}, tenantID, svc, 1, "sale", "staff")
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindInsufficientStock))

		assert.Empty(t, fake.updates)
		assert.Empty(t, fake.txns)
	})
}

func TestDecreaseTxUntrackedServiceSkipsLedger(t *testing.T) {
	fake := &fakeInventoryRepo{}
	s := newInventoryServiceWithFake(fake)

	svc := trackedService(0)
	svc.TrackStock = false

	resulting, err := s.DecreaseTx(context.Background(), stubTx{}, uuid.New(), svc, 10, "sale", "staff")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), resulting)
	assert.Empty(t, fake.updates)
	assert.Empty(t, fake.txns)
}

func TestDecreaseTxConsumesStock(t *testing.T) {
	tenantID := uuid.New()
	svc := trackedService(0)

	avg := decimal.RequireFromString("1250.5")
	fake := &fakeInventoryRepo{record: &entity.InventoryRecord{
		TenantID:    tenantID,
		ServiceID:   svc.ID,
		Quantity:    5,
		AvgUnitCost: avg,
	}}
	s := newInventoryServiceWithFake(fake)

	resulting, err := s.DecreaseTx(context.Background(), stubTx{}, tenantID, svc, 2, "sale", "staff")
	require.NoError(t, err)
	assert.Equal(t, int64(3), resulting)

	require.Len(t, fake.updates, 1)
	assert.Equal(t, int64(3), fake.updates[0])

	require.Len(t, fake.txns, 1)
	txn := fake.txns[0]
	assert.Equal(t, entity.InventoryTxSale, txn.Type)
	assert.Equal(t, int64(-2), txn.QuantityDelta)
	assert.Equal(t, int64(3), txn.ResultingQty)
	// A sale never moves the average cost.
	assert.True(t, txn.UnitCost.Equal(avg), txn.UnitCost.String())
}

func TestWeightedAverage(t *testing.T) {
	d := func(s string) decimal.Decimal {
		v, err := decimal.NewFromString(s)
		if err != nil {
			t.Fatalf("bad decimal %q: %v", s, err)
		}
		return v
	}

	t.Run("blends existing stock with new acquisition", func(t *testing.T) {
		// 10 units @ 1000 + 10 units @ 2000 = 20 units @ 1500
		avg := weightedAverage(10, d("1000"), 10, d("2000"))
		assert.True(t, avg.Equal(d("1500")), avg.String())
	})

	t.Run("uneven quantities weight accordingly", func(t *testing.T) {
		// 30 @ 100 + 10 @ 500 = 40 @ 200
		avg := weightedAverage(30, d("100"), 10, d("500"))
		assert.True(t, avg.Equal(d("200")), avg.String())
	})

	t.Run("empty stock takes the incoming cost", func(t *testing.T) {
		avg := weightedAverage(0, d("0"), 5, d("1234.5678"))
		assert.True(t, avg.Equal(d("1234.5678")), avg.String())
	})

	t.Run("rounds to four places", func(t *testing.T) {
		// 3 @ 1 + 1 @ 2 = 1.25
		avg := weightedAverage(3, d("1"), 1, d("2"))
		assert.True(t, avg.Equal(d("1.25")), avg.String())

		// 1 @ 1 + 2 @ 2 = 5/3 = 1.6667
		avg = weightedAverage(1, d("1"), 2, d("2"))
		assert.True(t, avg.Equal(d("1.6667")), avg.String())
	})

	t.Run("same cost leaves the average unchanged", func(t *testing.T) {
		avg := weightedAverage(7, d("42.5"), 13, d("42.5"))
		assert.True(t, avg.Equal(d("42.5")), avg.String())
	})
}
