package cmd

import (
	"log/slog"
	"os"

	"shop/internal/adapters/out/carrier"
	"shop/internal/adapters/out/postgres"
	"shop/internal/adapters/out/postgres/inventoryrepo"
	"shop/internal/adapters/out/redisx"
	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/domain/services"
	"shop/internal/core/ports"
	"shop/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	inventoryRepo *inventoryrepo.GormInventoryRepository
	cartHolds     *redisx.CartHoldStore
	carrierClient *carrier.Client
	logger        *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		inventoryRepo: inventoryrepo.NewGormInventoryRepository(gormDB),
		cartHolds:     redisx.NewCartHoldStore(redisx.New(config.RedisAddr)),
		carrierClient: carrier.NewClient(config.CarrierBaseURL, config.CarrierToken, logger),
		logger:        logger,
	}
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CartHoldStore() ports.CartHoldStore {
	return c.cartHolds
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(c.inventoryRepo, services.NewBranchAllocator(), f)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.carrierClient)
}

func (c *CompositionRoot) CreateUpdateOrderDetailsCommandHandler() commands.UpdateOrderDetailsCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderDetailsCommandHandler(f)
}

func (c *CompositionRoot) CreateSyncCarrierCancellationsCommandHandler() commands.SyncCarrierCancellationsCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSyncCarrierCancellationsCommandHandler(f, c.carrierClient)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetVariantAvailabilityQueryHandler() queries.GetVariantAvailabilityQueryHandler {
	return queries.NewGetVariantAvailabilityQueryHandler(c.gormDB, c.cartHolds)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateSyncCarrierCancellationsCommandHandler(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
