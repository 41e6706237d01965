package cmd

import (
	adapterhttp "bakeflow/internal/adapters/in/http"
	"bakeflow/internal/adapters/out/postgres"
	"bakeflow/internal/core/application/usecases/commands"
	"bakeflow/internal/core/application/usecases/queries"

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

// NewHTTPServer assembles the HTTP server from every use case handler.
func (c *CompositionRoot) NewHTTPServer() *adapterhttp.Server {
	return adapterhttp.NewServer(adapterhttp.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		ChangeOrderStatus:    c.CreateChangeOrderStatusCommandHandler(),
		SubmitForApproval:    c.CreateSubmitForApprovalCommandHandler(),
		ApproveOrder:         c.CreateApproveOrderCommandHandler(),
		RequestRevision:      c.CreateRequestRevisionCommandHandler(),
		ArchiveOrder:         c.CreateArchiveOrderCommandHandler(),
		RestoreOrder:         c.CreateRestoreOrderCommandHandler(),
		CancelOrder:          c.CreateCancelOrderCommandHandler(),
		AssignDriver:         c.CreateAssignDriverCommandHandler(),
		AggregateBakingTasks: c.CreateAggregateBakingTasksCommandHandler(),
		CreateManualTask:     c.CreateCreateManualTaskCommandHandler(),
		CancelManualTask:     c.CreateCancelManualTaskCommandHandler(),
		DeleteManualTask:     c.CreateDeleteManualTaskCommandHandler(),
		RecordProduction:     c.CreateRecordProductionCommandHandler(),
		AcknowledgeCancelled: c.CreateAcknowledgeCancelledTaskCommandHandler(),
		CreateTrip:           c.CreateCreateTripCommandHandler(),
		AddOrderToTrip:       c.CreateAddOrderToTripCommandHandler(),
		RemoveOrderFromTrip:  c.CreateRemoveOrderFromTripCommandHandler(),
		ResequenceTrip:       c.CreateResequenceTripCommandHandler(),
		ChangeTripStatus:     c.CreateChangeTripStatusCommandHandler(),
		DeleteTrip:           c.CreateDeleteTripCommandHandler(),
		RepairTripLinks:      c.CreateRepairTripLinksCommandHandler(),
		GetActiveTasks:       c.CreateGetActiveTasksQueryHandler(),
		GetTripsByDate:       c.CreateGetTripsByDateQueryHandler(),
		GetInventory:         c.CreateGetInventoryQueryHandler(),
		GetOrderHistory:      c.CreateGetOrderHistoryQueryHandler(),
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) taskUoWFactory() commands.TaskUoWFactory {
	return FuncTaskUoWFactory(func() commands.TaskUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) aggregationUoWFactory() commands.AggregationUoWFactory {
	return FuncAggregationUoWFactory(func() commands.AggregationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) productionUoWFactory() commands.ProductionUoWFactory {
	return FuncProductionUoWFactory(func() commands.ProductionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) tripUoWFactory() commands.TripUoWFactory {
	return FuncTripUoWFactory(func() commands.TripUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSubmitForApprovalCommandHandler() commands.SubmitForApprovalCommandHandler {
	return commands.NewSubmitForApprovalCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateApproveOrderCommandHandler() commands.ApproveOrderCommandHandler {
	return commands.NewApproveOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRequestRevisionCommandHandler() commands.RequestRevisionCommandHandler {
	return commands.NewRequestRevisionCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateArchiveOrderCommandHandler() commands.ArchiveOrderCommandHandler {
	return commands.NewArchiveOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRestoreOrderCommandHandler() commands.RestoreOrderCommandHandler {
	return commands.NewRestoreOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAggregateBakingTasksCommandHandler() commands.AggregateBakingTasksCommandHandler {
	return commands.NewAggregateBakingTasksCommandHandler(c.aggregationUoWFactory())
}

func (c *CompositionRoot) CreateCreateManualTaskCommandHandler() commands.CreateManualTaskCommandHandler {
	return commands.NewCreateManualTaskCommandHandler(c.taskUoWFactory())
}

func (c *CompositionRoot) CreateCancelManualTaskCommandHandler() commands.CancelManualTaskCommandHandler {
	return commands.NewCancelManualTaskCommandHandler(c.taskUoWFactory())
}

func (c *CompositionRoot) CreateDeleteManualTaskCommandHandler() commands.DeleteManualTaskCommandHandler {
	return commands.NewDeleteManualTaskCommandHandler(c.productionUoWFactory())
}

func (c *CompositionRoot) CreateRecordProductionCommandHandler() commands.RecordProductionCommandHandler {
	return commands.NewRecordProductionCommandHandler(c.productionUoWFactory())
}

func (c *CompositionRoot) CreateAcknowledgeCancelledTaskCommandHandler() commands.AcknowledgeCancelledTaskCommandHandler {
	return commands.NewAcknowledgeCancelledTaskCommandHandler(c.productionUoWFactory())
}

func (c *CompositionRoot) CreateCreateTripCommandHandler() commands.CreateTripCommandHandler {
	return commands.NewCreateTripCommandHandler(c.tripUoWFactory())
}

func (c *CompositionRoot) CreateAddOrderToTripCommandHandler() commands.AddOrderToTripCommandHandler {
	return commands.NewAddOrderToTripCommandHandler(c.tripUoWFactory())
}

func (c *CompositionRoot) CreateRemoveOrderFromTripCommandHandler() commands.RemoveOrderFromTripCommandHandler {
	return commands.NewRemoveOrderFromTripCommandHandler(c.tripUoWFactory())
}

func (c *CompositionRoot) CreateResequenceTripCommandHandler() commands.ResequenceTripCommandHandler {
	return commands.NewResequenceTripCommandHandler(c.tripUoWFactory())
}

func (c *CompositionRoot) CreateChangeTripStatusCommandHandler() commands.ChangeTripStatusCommandHandler {
	return commands.NewChangeTripStatusCommandHandler(c.tripUoWFactory())
}

func (c *CompositionRoot) CreateDeleteTripCommandHandler() commands.DeleteTripCommandHandler {
	return commands.NewDeleteTripCommandHandler(c.tripUoWFactory())
}

func (c *CompositionRoot) CreateRepairTripLinksCommandHandler() commands.RepairTripLinksCommandHandler {
	return commands.NewRepairTripLinksCommandHandler(c.tripUoWFactory())
}

func (c *CompositionRoot) CreateGetActiveTasksQueryHandler() queries.GetActiveTasksQueryHandler {
	return queries.NewGetActiveTasksQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTripsByDateQueryHandler() queries.GetTripsByDateQueryHandler {
	return queries.NewGetTripsByDateQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetInventoryQueryHandler() queries.GetInventoryQueryHandler {
	return queries.NewGetInventoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTaskUoWFactory func() commands.TaskUoW

func (f FuncTaskUoWFactory) Create() commands.TaskUoW {
	return f()
}

type FuncAggregationUoWFactory func() commands.AggregationUoW

func (f FuncAggregationUoWFactory) Create() commands.AggregationUoW {
	return f()
}

type FuncProductionUoWFactory func() commands.ProductionUoW

func (f FuncProductionUoWFactory) Create() commands.ProductionUoW {
	return f()
}

type FuncTripUoWFactory func() commands.TripUoW

func (f FuncTripUoWFactory) Create() commands.TripUoW {
	return f()
}
