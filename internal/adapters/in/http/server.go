// Package http exposes the fulfillment and ledger commands over HTTP.
//
// Every command is a POST to /api/v1/commands/<name> with a JSON body.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"farmdesk/internal/core/application/usecases/commands"
	"farmdesk/internal/core/application/usecases/queries"
	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/model/ledger"
	"farmdesk/internal/core/domain/model/lifecycle"
	"farmdesk/internal/core/domain/model/payment"
	"farmdesk/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// Handler is a command or query handler.
type Handler[C, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// EntityDeleter deletes orders and reservations.
type EntityDeleter interface {
	Handle(ctx context.Context, cmd commands.DeleteEntityCommand) error
}

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	UpdateSaleStatus       Handler[commands.UpdateSaleStatusCommand, commands.TransitionResult]
	CompleteShipment       Handler[commands.CompleteShipmentCommand, commands.TransitionResult]
	UpdateExperienceStatus Handler[commands.UpdateExperienceStatusCommand, commands.TransitionResult]
	UpdatePaymentStatus    Handler[commands.UpdatePaymentStatusCommand, commands.TransitionResult]
	DeleteEntity           EntityDeleter
	CreateLedgerEntry      Handler[commands.CreateLedgerEntryCommand, commands.LedgerEntryResult]
	DeleteLedgerEntry      Handler[commands.DeleteLedgerEntryCommand, int64]
	ApplyBatchAction       Handler[commands.ApplyBatchActionCommand, commands.BatchReport]
	SyncCourierStatus      Handler[commands.SyncCourierStatusCommand, commands.CourierStatus]
	SyncCourierStatuses    Handler[commands.SyncCourierStatusesCommand, commands.SyncReport]
	GetLedger              Handler[queries.GetLedgerQuery, queries.GetLedgerQueryResponse]
	GetLedgerDebtors       Handler[queries.GetLedgerDebtorsQuery, []queries.GetLedgerDebtorsQueryResponse]
}

// Server translates wire commands into use case calls.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// UpdateSaleStatus handles update_sale_status.
func (s *Server) UpdateSaleStatus(ctx echo.Context) error {
	var req UpdateSaleStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := lifecycle.ParseStatus(lifecycle.Order, req.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateSaleStatusCommand(req.SalesID, status, req.ProceedWithOutstandingBalance)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.UpdateSaleStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toTransitionResponse(result))
}

// CompleteShipment handles complete_shipment.
func (s *Server) CompleteShipment(ctx echo.Context) error {
	var req CompleteShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCompleteShipmentCommand(
		req.SalesID,
		req.Carrier,
		req.TrackingNumber,
		toDate(req.ShippingDate),
		req.Memo,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.CompleteShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toTransitionResponse(result))
}

// SyncCourierStatus handles sync_courier_status for a single order.
func (s *Server) SyncCourierStatus(ctx echo.Context) error {
	var req SyncCourierStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSyncCourierStatusCommand(req.SalesID)
	if err != nil {
		return s.fail(ctx, err)
	}

	status, err := s.handlers.SyncCourierStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, CourierStatusResponse{
		SalesID:    status.Transition.ID.Key(),
		Status:     status.Status.String(),
		Level:      status.Level,
		Location:   status.Location,
		Transition: toTransitionResponse(status.Transition),
	})
}

// BatchSyncCourierStatuses handles batch_sync_courier_statuses. Per-order
// failures are returned in the body next to the count.
func (s *Server) BatchSyncCourierStatuses(ctx echo.Context) error {
	report, err := s.handlers.SyncCourierStatuses.Handle(ctx.Request().Context(), commands.NewSyncCourierStatusesCommand())
	if err != nil {
		return s.fail(ctx, err)
	}

	resp := SyncResponse{
		Count:  report.Count,
		Errors: make([]SyncErrorResponse, 0, len(report.Errors)),
	}
	for _, e := range report.Errors {
		resp.Errors = append(resp.Errors, SyncErrorResponse{ID: e.ID.String(), Reason: e.Reason})
	}
	return ctx.JSON(http.StatusOK, resp)
}

// UpdateExperienceStatus handles update_experience_status.
func (s *Server) UpdateExperienceStatus(ctx echo.Context) error {
	var req UpdateExperienceStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := lifecycle.ParseStatus(lifecycle.Reservation, req.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateExperienceStatusCommand(
		req.ReservationID,
		status,
		req.AppendMemo,
		req.ProceedWithOutstandingBalance,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.UpdateExperienceStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toTransitionResponse(result))
}

// UpdateExperiencePaymentStatus handles update_experience_payment_status.
func (s *Server) UpdateExperiencePaymentStatus(ctx echo.Context) error {
	var req UpdateExperiencePaymentStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := fulfillment.NewReservationID(req.ReservationID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.updatePayment(ctx, id, req.PaymentStatus, req.PaidAmount)
}

// UpdateSalePaymentStatus handles update_sale_payment_status.
func (s *Server) UpdateSalePaymentStatus(ctx echo.Context) error {
	var req UpdateSalePaymentStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := fulfillment.NewOrderID(req.SalesID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.updatePayment(ctx, id, req.PaymentStatus, req.PaidAmount)
}

func (s *Server) updatePayment(ctx echo.Context, id fulfillment.ID, rawStatus string, paidAmount int64) error {
	status, err := payment.Parse(rawStatus)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdatePaymentStatusCommand(id, status, paidAmount)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.UpdatePaymentStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toTransitionResponse(result))
}

// DeleteExperienceReservation handles delete_experience_reservation.
func (s *Server) DeleteExperienceReservation(ctx echo.Context) error {
	var req DeleteExperienceReservationRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := fulfillment.NewReservationID(req.ReservationID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.deleteEntity(ctx, id)
}

// DeleteSale handles delete_sale.
func (s *Server) DeleteSale(ctx echo.Context) error {
	var req DeleteSaleRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := fulfillment.NewOrderID(req.SalesID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.deleteEntity(ctx, id)
}

func (s *Server) deleteEntity(ctx echo.Context, id fulfillment.ID) error {
	cmd, err := commands.NewDeleteEntityCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.handlers.DeleteEntity.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CreateLedgerEntry handles create_ledger_entry.
func (s *Server) CreateLedgerEntry(ctx echo.Context) error {
	var req CreateLedgerEntryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	txType, err := ledger.ParseTransactionType(req.TransactionType)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateLedgerEntryCommand(
		req.CustomerID,
		txType,
		req.Amount,
		toDate(req.TransactionDate),
		req.Description,
		req.ReferenceID,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.CreateLedgerEntry.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateLedgerEntryResponse{
		Entry:          toLedgerEntryResponse(result.Entry),
		CurrentBalance: result.CurrentBalance,
	})
}

// DeleteLedgerEntry handles delete_ledger_entry.
func (s *Server) DeleteLedgerEntry(ctx echo.Context) error {
	var req DeleteLedgerEntryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewDeleteLedgerEntryCommand(req.LedgerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	balance, err := s.handlers.DeleteLedgerEntry.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, DeleteLedgerEntryResponse{CurrentBalance: balance})
}

// GetLedger handles get_ledger.
func (s *Server) GetLedger(ctx echo.Context) error {
	var req GetLedgerRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	query, err := queries.NewGetLedgerQuery(req.CustomerID, toDate(req.StartDate), toDate(req.EndDate))
	if err != nil {
		return s.fail(ctx, err)
	}

	ledgerView, err := s.handlers.GetLedger.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp := LedgerResponse{
		CustomerID:     ledgerView.CustomerID,
		Name:           ledgerView.Name,
		CurrentBalance: ledgerView.CurrentBalance,
		OpeningBalance: ledgerView.OpeningBalance,
		Entries:        make([]LedgerEntryResponse, 0),
	}
	for entry, iterErr := range ledgerView.Entries {
		if iterErr != nil {
			return s.fail(ctx, iterErr)
		}
		resp.Entries = append(resp.Entries, LedgerEntryResponse{
			LedgerID:        entry.LedgerID,
			TransactionDate: entry.TransactionDate.String(),
			TransactionType: entry.TransactionType.String(),
			Amount:          entry.Amount,
			RunningBalance:  entry.RunningBalance,
			Description:     entry.Description,
			ReferenceID:     entry.ReferenceID,
		})
	}

	return ctx.JSON(http.StatusOK, resp)
}

// GetLedgerDebtors handles get_ledger_debtors.
func (s *Server) GetLedgerDebtors(ctx echo.Context) error {
	debtors, err := s.handlers.GetLedgerDebtors.Handle(ctx.Request().Context(), queries.NewGetLedgerDebtorsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	resp := make([]DebtorResponse, len(debtors))
	for i, d := range debtors {
		resp[i] = DebtorResponse{
			CustomerID: d.CustomerID,
			Name:       d.Name,
			Balance:    d.Balance,
		}
	}
	return ctx.JSON(http.StatusOK, resp)
}

// ApplyBatchAction handles apply_batch_action. The report is returned with
// 200 even when items failed or nothing was eligible.
func (s *Server) ApplyBatchAction(ctx echo.Context) error {
	var req ApplyBatchActionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	action, err := services.ParseBatchAction(req.Action)
	if err != nil {
		return s.fail(ctx, err)
	}

	ids := make([]fulfillment.ID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, parseErr := fulfillment.ParseID(raw)
		if parseErr != nil {
			return s.fail(ctx, parseErr)
		}
		ids = append(ids, id)
	}

	opts := services.BatchOptions{
		ProceedWithOutstandingBalance: req.ProceedWithOutstandingBalance,
		Memo:                          req.Memo,
	}
	if req.Shipment != nil {
		opts.Shipment = fulfillment.NewShipment(
			req.Shipment.Carrier,
			req.Shipment.TrackingNumber,
			toDate(req.Shipment.ShippingDate),
		)
	}

	cmd, err := commands.NewApplyBatchActionCommand(ids, action, opts)
	if err != nil {
		return s.fail(ctx, err)
	}

	report, err := s.handlers.ApplyBatchAction.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toBatchResponse(report))
}

func toTransitionResponse(r commands.TransitionResult) TransitionResponse {
	return TransitionResponse{
		ID:            r.ID.String(),
		From:          r.From.String(),
		To:            r.To.String(),
		PaymentStatus: r.PaymentStatus.String(),
		Changed:       r.Changed,
		DebtPosted:    r.DebtPosted,
		LedgerEntryID: r.LedgerEntryID,
	}
}

func toLedgerEntryResponse(e ledger.Entry) LedgerEntryResponse {
	return LedgerEntryResponse{
		LedgerID:        e.ID(),
		CustomerID:      e.CustomerID(),
		TransactionDate: e.OccurredAt().String(),
		TransactionType: e.Type().String(),
		Amount:          e.Amount(),
		RunningBalance:  e.RunningBalance(),
		Description:     e.Description(),
		ReferenceID:     e.ReferenceID(),
	}
}

func toBatchResponse(r commands.BatchReport) BatchResponse {
	resp := BatchResponse{
		RunID:        r.RunID.String(),
		Action:       r.Action.String(),
		Succeeded:    make([]TransitionResponse, 0, len(r.Succeeded)),
		Failed:       make([]ItemReasonResponse, 0, len(r.Failed)),
		Skipped:      make([]ItemReasonResponse, 0, len(r.Skipped)),
		NotAttempted: idStrings(r.NotAttempted),
		Flagged:      idStrings(r.Flagged),
	}
	for _, item := range r.Succeeded {
		resp.Succeeded = append(resp.Succeeded, toTransitionResponse(item))
	}
	for _, item := range r.Failed {
		resp.Failed = append(resp.Failed, ItemReasonResponse{ID: item.ID.String(), Reason: item.Reason})
	}
	for _, item := range r.Skipped {
		resp.Skipped = append(resp.Skipped, ItemReasonResponse{ID: item.ID.String(), Reason: string(item.Reason)})
	}
	if err := r.Err(); err != nil {
		resp.Message = err.Error()
	}
	return resp
}

func idStrings(ids []fulfillment.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
