package cmd

import (
	"tableside/internal/adapters/out/postgres"
	"tableside/internal/core/application/usecases/commands"
	"tableside/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateSubmitCartCommandHandler() commands.SubmitCartCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitCartCommandHandler(f)
}

func (c *CompositionRoot) CreateSetOrderStatusCommandHandler() commands.SetOrderStatusCommandHandler {
	return commands.NewSetOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateResetSalesDataCommandHandler() commands.ResetSalesDataCommandHandler {
	return commands.NewResetSalesDataCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOpenOrderQueryHandler() queries.GetOpenOrderQueryHandler {
	return queries.NewGetOpenOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSalesReportQueryHandler() queries.GetSalesReportQueryHandler {
	return queries.NewGetSalesReportQueryHandler(c.gormDB)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}
