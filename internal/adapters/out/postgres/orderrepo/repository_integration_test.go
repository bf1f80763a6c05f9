package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"tableside/internal/adapters/out/postgres/catalogrepo"
	"tableside/internal/adapters/out/postgres/orderrepo"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers to verify persistence behavior,
// cascade deletes, and the stored-total invariants.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	catalog    *catalogrepo.GormCatalog
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&catalogrepo.CategoryDTO{},
		&catalogrepo.MenuItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE categories, menu_items, orders, order_line_items CASCADE").Error
	suite.Require().NoError(err)

	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
	suite.catalog = catalogrepo.NewGormCatalog(suite.db)
}

// seedMenuItem creates a category and one menu item under it, returning the
// menu item's ID.
func (suite *OrderRepositoryIntegrationTestSuite) seedMenuItem(name string, cents int64) kernel.UUID {
	ctx := context.Background()

	categoryID := kernel.NewUUID()
	suite.Require().NoError(suite.catalog.AddCategory(ctx, categoryID, "category for "+name))

	price, err := kernel.NewMoneyFromCents(cents)
	suite.Require().NoError(err)

	itemID := kernel.NewUUID()
	suite.Require().NoError(suite.catalog.AddItem(ctx, itemID, categoryID, name, price, true))
	return itemID
}

// lineItem builds a validated line item for a seeded menu item.
func (suite *OrderRepositoryIntegrationTestSuite) lineItem(
	menuItemID kernel.UUID, quantity int, cents int64,
) *order.LineItem {
	price, err := kernel.NewMoneyFromCents(cents)
	suite.Require().NoError(err)

	item, err := order.NewLineItem(kernel.NewUUID(), menuItemID, quantity, price)
	suite.Require().NoError(err)
	return item
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrderWithItems(
	tableNumber int, items ...*order.LineItem,
) *order.Order {
	aggregate, err := order.NewOrder(kernel.NewUUID(), tableNumber)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AddItems(items...))
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	burgerID := suite.seedMenuItem("burger", 1200)
	colaID := suite.seedMenuItem("cola", 250)

	aggregate := suite.newOrderWithItems(5,
		suite.lineItem(burgerID, 1, 1200),
		suite.lineItem(colaID, 3, 250),
	)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(aggregate.IsEqual(restored))
	suite.Equal(5, restored.TableNumber())
	suite.Equal(order.New, restored.Status())
	suite.Len(restored.Items(), 2)
	suite.Equal("19.50", restored.Total().String())
	suite.False(restored.CreatedAt().IsZero())
	suite.False(restored.UpdatedAt().IsZero())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MergesNewLineItems() {
	ctx := context.Background()
	burgerID := suite.seedMenuItem("burger", 1200)
	pizzaID := suite.seedMenuItem("pizza", 1800)

	aggregate := suite.newOrderWithItems(2, suite.lineItem(burgerID, 1, 1200))
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	price, _ := kernel.NewMoneyFromCents(1800)
	extra, err := order.NewLineItem(kernel.NewUUID(), pizzaID, 2, price)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AddItems(extra))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Len(restored.Items(), 2)
	suite.Equal("48.00", restored.Total().String())
	suite.Equal(order.New, restored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_TouchesUpdatedAt() {
	ctx := context.Background()
	burgerID := suite.seedMenuItem("burger", 1200)

	aggregate := suite.newOrderWithItems(2, suite.lineItem(burgerID, 1, 1200))
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	before, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	time.Sleep(10 * time.Millisecond)
	suite.Require().NoError(aggregate.Start())
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	after, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InProgress, after.Status())
	suite.True(after.UpdatedAt().After(before.UpdatedAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NotFound() {
	burgerID := suite.seedMenuItem("burger", 1200)
	aggregate := suite.newOrderWithItems(2, suite.lineItem(burgerID, 1, 1200))

	err := suite.repository.Update(context.Background(), aggregate)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetOpenByTable_FindsOpenOrder() {
	ctx := context.Background()
	burgerID := suite.seedMenuItem("burger", 1200)

	aggregate := suite.newOrderWithItems(4, suite.lineItem(burgerID, 1, 1200))
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	open, err := suite.repository.GetOpenByTable(ctx, 4)
	suite.Require().NoError(err)
	suite.True(aggregate.IsEqual(open))

	suite.Require().NoError(aggregate.Start())
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	open, err = suite.repository.GetOpenByTable(ctx, 4)
	suite.Require().NoError(err)
	suite.Equal(order.InProgress, open.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetOpenByTable_IgnoresFulfilledOrders() {
	ctx := context.Background()
	burgerID := suite.seedMenuItem("burger", 1200)

	aggregate := suite.newOrderWithItems(6, suite.lineItem(burgerID, 1, 1200))
	suite.Require().NoError(aggregate.Start())
	suite.Require().NoError(aggregate.Fulfill())
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	_, err := suite.repository.GetOpenByTable(ctx, 6)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetOpenByTable_NoOrdersForTable() {
	_, err := suite.repository.GetOpenByTable(context.Background(), 99)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_CascadesToLineItems() {
	ctx := context.Background()
	burgerID := suite.seedMenuItem("burger", 1200)
	colaID := suite.seedMenuItem("cola", 250)

	aggregate := suite.newOrderWithItems(1,
		suite.lineItem(burgerID, 1, 1200),
		suite.lineItem(colaID, 2, 250),
	)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(suite.repository.Delete(ctx, aggregate.ID()))

	_, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var itemCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.LineItemDTO{}).Count(&itemCount).Error)
	suite.Zero(itemCount)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_NotFound() {
	err := suite.repository.Delete(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDeleteAll_WipesOrdersAndLineItems() {
	ctx := context.Background()
	burgerID := suite.seedMenuItem("burger", 1200)

	for tableNumber := 1; tableNumber <= 3; tableNumber++ {
		aggregate := suite.newOrderWithItems(tableNumber, suite.lineItem(burgerID, 1, 1200))
		suite.Require().NoError(suite.repository.Add(ctx, aggregate))
	}

	suite.Require().NoError(suite.repository.DeleteAll(ctx))

	var orderCount, itemCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orderCount).Error)
	suite.Require().NoError(suite.db.Model(&orderrepo.LineItemDTO{}).Count(&itemCount).Error)
	suite.Zero(orderCount)
	suite.Zero(itemCount)

	// menu data survives the sales reset
	var menuCount int64
	suite.Require().NoError(suite.db.Model(&catalogrepo.MenuItemDTO{}).Count(&menuCount).Error)
	suite.Equal(int64(1), menuCount)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDeleteAll_EmptyTableIsNotAnError() {
	suite.Require().NoError(suite.repository.DeleteAll(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestMenuItemRemoval_CascadesAndRederivesTotals() {
	ctx := context.Background()
	burgerID := suite.seedMenuItem("burger", 1200)
	colaID := suite.seedMenuItem("cola", 250)

	aggregate := suite.newOrderWithItems(8,
		suite.lineItem(burgerID, 1, 1200),
		suite.lineItem(colaID, 3, 250),
	)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(suite.catalog.RemoveItem(ctx, colaID))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Len(restored.Items(), 1)
	suite.Equal("12.00", restored.Total().String())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID() {
	ctx := context.Background()
	burgerID := suite.seedMenuItem("burger", 1200)

	aggregate := suite.newOrderWithItems(3, suite.lineItem(burgerID, 1, 1200))
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	err := suite.repository.Add(ctx, aggregate)
	suite.Require().ErrorIs(err, orderrepo.ErrDuplicateOrder)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_UnknownMenuItemReference() {
	ctx := context.Background()

	aggregate := suite.newOrderWithItems(3, suite.lineItem(kernel.NewUUID(), 1, 1200))
	err := suite.repository.Add(ctx, aggregate)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestLockTable_SerializesSameTable() {
	ctx := context.Background()

	tx1 := suite.db.WithContext(ctx).Begin()
	suite.Require().NoError(tx1.Error)
	suite.Require().NoError(orderrepo.NewGormOrderRepository(tx1).LockTable(ctx, 11))

	acquired := make(chan struct{})
	go func() {
		tx2 := suite.db.WithContext(ctx).Begin()
		defer tx2.Rollback()
		if err := orderrepo.NewGormOrderRepository(tx2).LockTable(ctx, 11); err == nil {
			close(acquired)
		}
	}()

	select {
	case <-acquired:
		suite.Fail("second transaction acquired the table lock while the first still held it")
	case <-time.After(300 * time.Millisecond):
	}

	suite.Require().NoError(tx1.Commit().Error)

	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		suite.Fail("table lock was not released on commit")
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestLockTable_IndependentTablesDoNotBlock() {
	ctx := context.Background()

	tx1 := suite.db.WithContext(ctx).Begin()
	suite.Require().NoError(tx1.Error)
	defer tx1.Rollback()
	suite.Require().NoError(orderrepo.NewGormOrderRepository(tx1).LockTable(ctx, 21))

	tx2 := suite.db.WithContext(ctx).Begin()
	suite.Require().NoError(tx2.Error)
	defer tx2.Rollback()

	done := make(chan error, 1)
	go func() {
		done <- orderrepo.NewGormOrderRepository(tx2).LockTable(ctx, 22)
	}()

	select {
	case err := <-done:
		suite.Require().NoError(err)
	case <-time.After(2 * time.Second):
		suite.Fail("lock on an independent table blocked")
	}
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
