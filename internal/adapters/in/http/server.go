// Package http exposes the engine's commands and queries over HTTP.
// Handlers do thin mapping only: bind the request, build the command or
// query, invoke its handler, translate the error. Rendering, auth, and
// shop-front concerns stay outside the engine.
package http

import (
	"errors"
	"net/http"
	"time"

	"bakeflow/internal/core/application/usecases/commands"
	"bakeflow/internal/core/application/usecases/queries"
	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/core/domain/model/production"
	"bakeflow/internal/core/domain/model/trip"
	"bakeflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler          commands.CreateOrderCommandHandler
	changeOrderStatusHandler    commands.ChangeOrderStatusCommandHandler
	submitForApprovalHandler    commands.SubmitForApprovalCommandHandler
	approveOrderHandler         commands.ApproveOrderCommandHandler
	requestRevisionHandler      commands.RequestRevisionCommandHandler
	archiveOrderHandler         commands.ArchiveOrderCommandHandler
	restoreOrderHandler         commands.RestoreOrderCommandHandler
	cancelOrderHandler          commands.CancelOrderCommandHandler
	assignDriverHandler         commands.AssignDriverCommandHandler
	aggregateBakingTasksHandler commands.AggregateBakingTasksCommandHandler
	createManualTaskHandler     commands.CreateManualTaskCommandHandler
	cancelManualTaskHandler     commands.CancelManualTaskCommandHandler
	deleteManualTaskHandler     commands.DeleteManualTaskCommandHandler
	recordProductionHandler     commands.RecordProductionCommandHandler
	acknowledgeCancelledHandler commands.AcknowledgeCancelledTaskCommandHandler
	createTripHandler           commands.CreateTripCommandHandler
	addOrderToTripHandler       commands.AddOrderToTripCommandHandler
	removeOrderFromTripHandler  commands.RemoveOrderFromTripCommandHandler
	resequenceTripHandler       commands.ResequenceTripCommandHandler
	changeTripStatusHandler     commands.ChangeTripStatusCommandHandler
	deleteTripHandler           commands.DeleteTripCommandHandler
	repairTripLinksHandler      commands.RepairTripLinksCommandHandler

	getActiveTasksHandler  queries.GetActiveTasksQueryHandler
	getTripsByDateHandler  queries.GetTripsByDateQueryHandler
	getInventoryHandler    queries.GetInventoryQueryHandler
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler
}

// Handlers bundles every use case handler the server needs. A composition
// root fills this in once; NewServer takes it whole so adding a handler does
// not ripple through a long positional parameter list.
type Handlers struct {
	CreateOrder          commands.CreateOrderCommandHandler
	ChangeOrderStatus    commands.ChangeOrderStatusCommandHandler
	SubmitForApproval    commands.SubmitForApprovalCommandHandler
	ApproveOrder         commands.ApproveOrderCommandHandler
	RequestRevision      commands.RequestRevisionCommandHandler
	ArchiveOrder         commands.ArchiveOrderCommandHandler
	RestoreOrder         commands.RestoreOrderCommandHandler
	CancelOrder          commands.CancelOrderCommandHandler
	AssignDriver         commands.AssignDriverCommandHandler
	AggregateBakingTasks commands.AggregateBakingTasksCommandHandler
	CreateManualTask     commands.CreateManualTaskCommandHandler
	CancelManualTask     commands.CancelManualTaskCommandHandler
	DeleteManualTask     commands.DeleteManualTaskCommandHandler
	RecordProduction     commands.RecordProductionCommandHandler
	AcknowledgeCancelled commands.AcknowledgeCancelledTaskCommandHandler
	CreateTrip           commands.CreateTripCommandHandler
	AddOrderToTrip       commands.AddOrderToTripCommandHandler
	RemoveOrderFromTrip  commands.RemoveOrderFromTripCommandHandler
	ResequenceTrip       commands.ResequenceTripCommandHandler
	ChangeTripStatus     commands.ChangeTripStatusCommandHandler
	DeleteTrip           commands.DeleteTripCommandHandler
	RepairTripLinks      commands.RepairTripLinksCommandHandler

	GetActiveTasks  queries.GetActiveTasksQueryHandler
	GetTripsByDate  queries.GetTripsByDateQueryHandler
	GetInventory    queries.GetInventoryQueryHandler
	GetOrderHistory queries.GetOrderHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers) *Server {
	return &Server{
		createOrderHandler:          h.CreateOrder,
		changeOrderStatusHandler:    h.ChangeOrderStatus,
		submitForApprovalHandler:    h.SubmitForApproval,
		approveOrderHandler:         h.ApproveOrder,
		requestRevisionHandler:      h.RequestRevision,
		archiveOrderHandler:         h.ArchiveOrder,
		restoreOrderHandler:         h.RestoreOrder,
		cancelOrderHandler:          h.CancelOrder,
		assignDriverHandler:         h.AssignDriver,
		aggregateBakingTasksHandler: h.AggregateBakingTasks,
		createManualTaskHandler:     h.CreateManualTask,
		cancelManualTaskHandler:     h.CancelManualTask,
		deleteManualTaskHandler:     h.DeleteManualTask,
		recordProductionHandler:     h.RecordProduction,
		acknowledgeCancelledHandler: h.AcknowledgeCancelled,
		createTripHandler:           h.CreateTrip,
		addOrderToTripHandler:       h.AddOrderToTrip,
		removeOrderFromTripHandler:  h.RemoveOrderFromTrip,
		resequenceTripHandler:       h.ResequenceTrip,
		changeTripStatusHandler:     h.ChangeTripStatus,
		deleteTripHandler:           h.DeleteTrip,
		repairTripLinksHandler:      h.RepairTripLinks,
		getActiveTasksHandler:       h.GetActiveTasks,
		getTripsByDateHandler:       h.GetTripsByDate,
		getInventoryHandler:         h.GetInventory,
		getOrderHistoryHandler:      h.GetOrderHistory,
	}
}

// RegisterRoutes attaches every endpoint to the echo instance under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:code/status", s.ChangeOrderStatus)
	api.POST("/orders/:code/submit", s.SubmitForApproval)
	api.POST("/orders/:code/approve", s.ApproveOrder)
	api.POST("/orders/:code/revision", s.RequestRevision)
	api.POST("/orders/:code/archive", s.ArchiveOrder)
	api.POST("/orders/:code/restore", s.RestoreOrder)
	api.POST("/orders/:code/cancel", s.CancelOrder)
	api.POST("/orders/:code/driver", s.AssignDriver)
	api.GET("/orders/:code/history", s.GetOrderHistory)

	api.POST("/tasks/aggregate", s.AggregateBakingTasks)
	api.POST("/tasks", s.CreateManualTask)
	api.POST("/tasks/:id/cancel", s.CancelManualTask)
	api.POST("/tasks/:id/acknowledge", s.AcknowledgeCancelledTask)
	api.DELETE("/tasks/:id", s.DeleteManualTask)
	api.GET("/tasks/active", s.GetActiveTasks)

	api.POST("/production", s.RecordProduction)
	api.GET("/inventory", s.GetInventory)

	api.POST("/trips", s.CreateTrip)
	api.POST("/trips/:id/orders", s.AddOrderToTrip)
	api.DELETE("/trips/:id/orders/:code", s.RemoveOrderFromTrip)
	api.PUT("/trips/:id/sequence", s.ResequenceTrip)
	api.POST("/trips/:id/status", s.ChangeTripStatus)
	api.POST("/trips/:id/repair", s.RepairTripLinks)
	api.DELETE("/trips/:id", s.DeleteTrip)
	api.GET("/trips", s.GetTripsByDate)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps a use case error to an HTTP status: unknown objects to
// 404, everything else to 409 since by this point the request itself already
// parsed and validated.
func respondError(ctx echo.Context, err error) error {
	status := http.StatusConflict
	if errors.Is(err, errs.ErrObjectNotFound) {
		status = http.StatusNotFound
	}
	return ctx.JSON(status, errorResponse{Code: status, Message: err.Error()})
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

func parseOrderCode(ctx echo.Context) (kernel.OrderCode, error) {
	return kernel.OrderCodeFromString(ctx.Param("code"))
}

func parseTripID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

type tierPayload struct {
	Number int    `json:"number"`
	Detail string `json:"detail"`
}

type createOrderRequest struct {
	CustomerName string        `json:"customerName"`
	Shape        string        `json:"shape"`
	Size         string        `json:"size"`
	Flavor       string        `json:"flavor"`
	Tiers        []tierPayload `json:"tiers"`
	DeliveryDate string        `json:"deliveryDate"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	deliveryDate, err := time.Parse(dateLayout, req.DeliveryDate)
	if err != nil {
		return badRequest(ctx, err)
	}

	tiers := make([]order.Tier, 0, len(req.Tiers))
	for _, t := range req.Tiers {
		tiers = append(tiers, order.Tier{Number: t.Number, Detail: t.Detail})
	}

	cmd, err := commands.NewCreateOrderCommand(
		req.CustomerName, req.Shape, req.Size, req.Flavor, tiers, deliveryDate, time.Now().UTC(),
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	code, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"code": code.String()})
}

type changeOrderStatusRequest struct {
	Status        string `json:"status"`
	KitchenStatus string `json:"kitchenStatus"`
	Actor         string `json:"actor"`
	Note          string `json:"note"`
}

// ChangeOrderStatus handles POST /api/v1/orders/:code/status.
// Status and kitchenStatus are both optional in the body, but the command
// constructor rejects a request that carries neither.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	code, err := parseOrderCode(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req changeOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	newStatus := order.StatusUnknown
	if req.Status != "" {
		if newStatus, err = order.StatusFromString(req.Status); err != nil {
			return badRequest(ctx, err)
		}
	}

	kitchenStatus, err := order.KitchenStatusFromString(req.KitchenStatus)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(
		code, newStatus, kitchenStatus, req.Actor, req.Note, time.Now().UTC(),
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

type submitForApprovalRequest struct {
	Photos []string `json:"photos"`
	Actor  string   `json:"actor"`
}

// SubmitForApproval handles POST /api/v1/orders/:code/submit.
func (s *Server) SubmitForApproval(ctx echo.Context) error {
	code, err := parseOrderCode(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req submitForApprovalRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewSubmitForApprovalCommand(code, req.Photos, req.Actor, time.Now().UTC())
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.submitForApprovalHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

type actorRequest struct {
	Actor string `json:"actor"`
	Note  string `json:"note"`
}

// ApproveOrder handles POST /api/v1/orders/:code/approve.
func (s *Server) ApproveOrder(ctx echo.Context) error {
	code, err := parseOrderCode(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req actorRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewApproveOrderCommand(code, req.Actor, time.Now().UTC())
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.approveOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

type requestRevisionRequest struct {
	Notes       string   `json:"notes"`
	Photos      []string `json:"photos"`
	RequestedBy string   `json:"requestedBy"`
}

// RequestRevision handles POST /api/v1/orders/:code/revision.
func (s *Server) RequestRevision(ctx echo.Context) error {
	code, err := parseOrderCode(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req requestRevisionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewRequestRevisionCommand(
		code, req.Notes, req.Photos, req.RequestedBy, time.Now().UTC(),
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.requestRevisionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ArchiveOrder handles POST /api/v1/orders/:code/archive.
func (s *Server) ArchiveOrder(ctx echo.Context) error {
	code, err := parseOrderCode(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req actorRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewArchiveOrderCommand(code, req.Actor, time.Now().UTC())
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.archiveOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RestoreOrder handles POST /api/v1/orders/:code/restore.
func (s *Server) RestoreOrder(ctx echo.Context) error {
	code, err := parseOrderCode(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req actorRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewRestoreOrderCommand(code, req.Actor, time.Now().UTC())
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.restoreOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:code/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	code, err := parseOrderCode(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req actorRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(code, req.Actor, req.Note, time.Now().UTC())
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

type assignDriverRequest struct {
	DriverType    string `json:"driverType"`
	DriverName    string `json:"driverName"`
	AssignedBy    string `json:"assignedBy"`
	VehicleInfo   string `json:"vehicleInfo"`
	IsPreliminary bool   `json:"isPreliminary"`
}

// AssignDriver handles POST /api/v1/orders/:code/driver.
func (s *Server) AssignDriver(ctx echo.Context) error {
	code, err := parseOrderCode(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req assignDriverRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	driverType, err := order.DriverTypeFromString(req.DriverType)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAssignDriverCommand(
		code, driverType, req.DriverName, req.AssignedBy, req.VehicleInfo,
		req.IsPreliminary, time.Now().UTC(),
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.assignDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderHistory handles GET /api/v1/orders/:code/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	code, err := parseOrderCode(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(code)
	if err != nil {
		return badRequest(ctx, err)
	}

	history, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	type entryPayload struct {
		EventType      string    `json:"eventType"`
		PreviousStatus string    `json:"previousStatus"`
		NewStatus      string    `json:"newStatus"`
		Actor          string    `json:"actor"`
		Note           string    `json:"note,omitempty"`
		Timestamp      time.Time `json:"timestamp"`
	}

	response := make([]entryPayload, len(history))
	for i, entry := range history {
		response[i] = entryPayload{
			EventType:      string(entry.EventType),
			PreviousStatus: entry.PreviousStatus.String(),
			NewStatus:      entry.NewStatus.String(),
			Actor:          entry.Actor,
			Note:           entry.Note,
			Timestamp:      entry.Timestamp,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AggregateBakingTasks handles POST /api/v1/tasks/aggregate.
func (s *Server) AggregateBakingTasks(ctx echo.Context) error {
	cmd, err := commands.NewAggregateBakingTasksCommand(time.Now().UTC())
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.aggregateBakingTasksHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

type createManualTaskRequest struct {
	Shape    string `json:"shape"`
	Size     string `json:"size"`
	Flavor   string `json:"flavor"`
	Quantity int    `json:"quantity"`
	DueDate  string `json:"dueDate"`
}

// CreateManualTask handles POST /api/v1/tasks.
func (s *Server) CreateManualTask(ctx echo.Context) error {
	var req createManualTaskRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCreateManualTaskCommand(
		req.Shape, req.Size, req.Flavor, req.Quantity, dueDate, time.Now().UTC(),
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	id, err := s.createManualTaskHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": id.String()})
}

type cancelTaskRequest struct {
	Reason string `json:"reason"`
}

// CancelManualTask handles POST /api/v1/tasks/:id/cancel.
func (s *Server) CancelManualTask(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req cancelTaskRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCancelManualTaskCommand(id, req.Reason)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.cancelManualTaskHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

type acknowledgeTaskRequest struct {
	Notes string `json:"notes"`
}

// AcknowledgeCancelledTask handles POST /api/v1/tasks/:id/acknowledge.
func (s *Server) AcknowledgeCancelledTask(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req acknowledgeTaskRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAcknowledgeCancelledTaskCommand(id, req.Notes, time.Now().UTC())
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.acknowledgeCancelledHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteManualTask handles DELETE /api/v1/tasks/:id.
func (s *Server) DeleteManualTask(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewDeleteManualTaskCommand(id, time.Now().UTC())
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.deleteManualTaskHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveTasks handles GET /api/v1/tasks/active.
func (s *Server) GetActiveTasks(ctx echo.Context) error {
	tasks, err := s.getActiveTasksHandler.Handle(ctx.Request().Context(), queries.NewGetActiveTasksQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	type taskPayload struct {
		ID                string    `json:"id"`
		Shape             string    `json:"shape"`
		Size              string    `json:"size"`
		Flavor            string    `json:"flavor"`
		Quantity          int       `json:"quantity"`
		QuantityCompleted int       `json:"quantityCompleted"`
		Status            string    `json:"status"`
		DueDate           time.Time `json:"dueDate"`
		OrderCodes        []string  `json:"orderCodes"`
		IsManual          bool      `json:"isManual"`
		IsPriority        bool      `json:"isPriority"`
	}

	response := make([]taskPayload, len(tasks))
	for i, task := range tasks {
		codes := make([]string, 0, len(task.OrderCodes))
		for _, code := range task.OrderCodes {
			codes = append(codes, code.String())
		}
		response[i] = taskPayload{
			ID:                task.ID.String(),
			Shape:             task.Key.Shape,
			Size:              task.Key.Size,
			Flavor:            task.Key.Flavor,
			Quantity:          task.Quantity,
			QuantityCompleted: task.QuantityCompleted,
			Status:            task.Status.String(),
			DueDate:           task.DueDate,
			OrderCodes:        codes,
			IsManual:          task.IsManual,
			IsPriority:        task.IsPriority,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type qualityCheckPayload struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

type recordProductionRequest struct {
	TaskID        string                `json:"taskId"`
	Shape         string                `json:"shape"`
	Size          string                `json:"size"`
	Flavor        string                `json:"flavor"`
	Quantity      int                   `json:"quantity"`
	Baker         string                `json:"baker"`
	Notes         string                `json:"notes"`
	QualityChecks []qualityCheckPayload `json:"qualityChecks"`
}

// RecordProduction handles POST /api/v1/production. A missing taskId records
// an off-task run that still feeds inventory.
func (s *Server) RecordProduction(ctx echo.Context) error {
	var req recordProductionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	var taskID *kernel.UUID
	if req.TaskID != "" {
		id, err := kernel.UUIDFromString(req.TaskID)
		if err != nil {
			return badRequest(ctx, err)
		}
		taskID = &id
	}

	checks := make([]production.QualityCheck, 0, len(req.QualityChecks))
	for _, qc := range req.QualityChecks {
		checks = append(checks, production.QualityCheck{Name: qc.Name, Passed: qc.Passed})
	}

	cmd, err := commands.NewRecordProductionCommand(
		taskID, req.Shape, req.Size, req.Flavor, req.Quantity,
		req.Baker, req.Notes, checks, time.Now().UTC(),
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.recordProductionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetInventory handles GET /api/v1/inventory.
func (s *Server) GetInventory(ctx echo.Context) error {
	items, err := s.getInventoryHandler.Handle(ctx.Request().Context(), queries.NewGetInventoryQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	type itemPayload struct {
		Shape    string `json:"shape"`
		Size     string `json:"size"`
		Flavor   string `json:"flavor"`
		Quantity int    `json:"quantity"`
	}

	response := make([]itemPayload, len(items))
	for i, item := range items {
		response[i] = itemPayload{
			Shape:    item.Key.Shape,
			Size:     item.Key.Size,
			Flavor:   item.Key.Flavor,
			Quantity: item.Quantity,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type createTripRequest struct {
	Name        string `json:"name"`
	DriverType  string `json:"driverType"`
	DriverName  string `json:"driverName"`
	VehicleInfo string `json:"vehicleInfo"`
	Date        string `json:"date"`
}

// CreateTrip handles POST /api/v1/trips.
func (s *Server) CreateTrip(ctx echo.Context) error {
	var req createTripRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	driverType, err := order.DriverTypeFromString(req.DriverType)
	if err != nil {
		return badRequest(ctx, err)
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCreateTripCommand(req.Name, driverType, req.DriverName, req.VehicleInfo, date)
	if err != nil {
		return badRequest(ctx, err)
	}

	id, err := s.createTripHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": id.String()})
}

type addOrderToTripRequest struct {
	OrderCode string `json:"orderCode"`
	Sequence  *int   `json:"sequence"`
}

// AddOrderToTrip handles POST /api/v1/trips/:id/orders. Omitting sequence
// appends the order after the trip's current last stop.
func (s *Server) AddOrderToTrip(ctx echo.Context) error {
	tripID, err := parseTripID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req addOrderToTripRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	code, err := kernel.OrderCodeFromString(req.OrderCode)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAddOrderToTripCommand(tripID, code, req.Sequence)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.addOrderToTripHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RemoveOrderFromTrip handles DELETE /api/v1/trips/:id/orders/:code.
func (s *Server) RemoveOrderFromTrip(ctx echo.Context) error {
	tripID, err := parseTripID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	code, err := parseOrderCode(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewRemoveOrderFromTripCommand(tripID, code)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.removeOrderFromTripHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

type resequenceTripRequest struct {
	Sequence map[string]int `json:"sequence"`
}

// ResequenceTrip handles PUT /api/v1/trips/:id/sequence. The body maps every
// member order code to its new position.
func (s *Server) ResequenceTrip(ctx echo.Context) error {
	tripID, err := parseTripID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req resequenceTripRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewResequenceTripCommand(tripID, req.Sequence)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.resequenceTripHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

type changeTripStatusRequest struct {
	Status string `json:"status"`
}

// ChangeTripStatus handles POST /api/v1/trips/:id/status.
func (s *Server) ChangeTripStatus(ctx echo.Context) error {
	tripID, err := parseTripID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req changeTripStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	status, err := trip.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewChangeTripStatusCommand(tripID, status)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.changeTripStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RepairTripLinks handles POST /api/v1/trips/:id/repair.
func (s *Server) RepairTripLinks(ctx echo.Context) error {
	tripID, err := parseTripID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewRepairTripLinksCommand(tripID)
	if err != nil {
		return badRequest(ctx, err)
	}

	report, err := s.repairTripLinksHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	missing := make([]string, 0, len(report.MissingMembers))
	for _, code := range report.MissingMembers {
		missing = append(missing, code.String())
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"relinked":       len(report.Relinked),
		"unlinked":       len(report.Unlinked),
		"missingMembers": missing,
	})
}

// DeleteTrip handles DELETE /api/v1/trips/:id.
func (s *Server) DeleteTrip(ctx echo.Context) error {
	tripID, err := parseTripID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewDeleteTripCommand(tripID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.deleteTripHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetTripsByDate handles GET /api/v1/trips?date=YYYY-MM-DD.
func (s *Server) GetTripsByDate(ctx echo.Context) error {
	date, err := time.Parse(dateLayout, ctx.QueryParam("date"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetTripsByDateQuery(date)
	if err != nil {
		return badRequest(ctx, err)
	}

	trips, err := s.getTripsByDateHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	type stopPayload struct {
		OrderCode string `json:"orderCode"`
		Sequence  int    `json:"sequence"`
	}
	type tripPayload struct {
		ID          string        `json:"id"`
		Name        string        `json:"name"`
		DriverType  string        `json:"driverType"`
		DriverName  string        `json:"driverName,omitempty"`
		VehicleInfo string        `json:"vehicleInfo,omitempty"`
		Date        string        `json:"date"`
		Status      string        `json:"status"`
		Stops       []stopPayload `json:"stops"`
	}

	response := make([]tripPayload, len(trips))
	for i, t := range trips {
		stops := make([]stopPayload, 0, len(t.Stops))
		for _, stop := range t.Stops {
			stops = append(stops, stopPayload{OrderCode: stop.OrderCode.String(), Sequence: stop.Sequence})
		}
		response[i] = tripPayload{
			ID:          t.ID.String(),
			Name:        t.Name,
			DriverType:  t.DriverType.String(),
			DriverName:  t.DriverName,
			VehicleInfo: t.VehicleInfo,
			Date:        t.Date.Format(dateLayout),
			Status:      t.Status.String(),
			Stops:       stops,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
