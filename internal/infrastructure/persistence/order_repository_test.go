package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/order"
	"github.com/meditrack/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormOrderRepository(gormDB), mock, mockDB
}

func TestGormOrderRepository_FindByID(t *testing.T) {
	t.Run("finds order with items", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		orderRows := sqlmock.NewRows([]string{"id", "order_number", "customer_name", "phone", "status"}).
			AddRow(orderID, "SO-20260901-ABCDEF12", "Amal Haddad", "+9613555555", "pending")
		itemRows := sqlmock.NewRows([]string{"id", "order_id", "name", "quantity"}).
			AddRow(uuid.New(), orderID, "Paracetamol 500mg", 2)

		mock.ExpectQuery(`SELECT \* FROM "special_orders" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnRows(orderRows)
		mock.ExpectQuery(`SELECT \* FROM "special_order_items" WHERE "special_order_items"\."order_id" = \$1`).
			WithArgs(orderID).
			WillReturnRows(itemRows)

		o, err := repo.FindByID(context.Background(), orderID)
		require.NoError(t, err)
		assert.Equal(t, "SO-20260901-ABCDEF12", o.OrderNumber)
		require.Len(t, o.Items, 1)
		assert.Equal(t, "Paracetamol 500mg", o.Items[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing order to ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "special_orders"`).
			WithArgs(orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), orderID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormOrderRepository_FindAll_SearchSpansItems(t *testing.T) {
	repo, mock, mockDB := newMockOrderRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "special_orders" WHERE \(LOWER\(customer_name\) LIKE .* OR phone LIKE .* OR EXISTS \(SELECT 1 FROM special_order_items.*\)\).*ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_number", "customer_name"}))

	filter := shared.DefaultFilter()
	filter.Search = "para"

	_, err := repo.FindAll(context.Background(), filter)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_FindAll_StatusInFilter(t *testing.T) {
	repo, mock, mockDB := newMockOrderRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "special_orders" WHERE status IN \(\$1,\$2,\$3\)`).
		WithArgs("pending", "ordered", "arrived", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_number", "customer_name"}))

	filter := shared.DefaultFilter()
	filter.Filters["status_in"] = order.ActiveStatuses()

	_, err := repo.FindAll(context.Background(), filter)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_CountByStatus(t *testing.T) {
	repo, mock, mockDB := newMockOrderRepository(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"status", "total"}).
		AddRow("pending", 3).
		AddRow("delivered", 7)

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS total FROM "special_orders" GROUP BY .*status.*`).
		WillReturnRows(rows)

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[order.StatusPending])
	assert.Equal(t, int64(7), counts[order.StatusDelivered])
	assert.NoError(t, mock.ExpectationsWereMet())
}
