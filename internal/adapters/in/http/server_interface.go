package http

import (
	"github.com/labstack/echo/v4"
)

// ServerInterface lists one method per operation in openapi.yaml.
type ServerInterface interface {
	// (GET /health)
	Health(ctx echo.Context) error
	// (POST /api/v1/commands/update_sale_status)
	UpdateSaleStatus(ctx echo.Context) error
	// (POST /api/v1/commands/complete_shipment)
	CompleteShipment(ctx echo.Context) error
	// (POST /api/v1/commands/sync_courier_status)
	SyncCourierStatus(ctx echo.Context) error
	// (POST /api/v1/commands/batch_sync_courier_statuses)
	BatchSyncCourierStatuses(ctx echo.Context) error
	// (POST /api/v1/commands/update_experience_status)
	UpdateExperienceStatus(ctx echo.Context) error
	// (POST /api/v1/commands/update_experience_payment_status)
	UpdateExperiencePaymentStatus(ctx echo.Context) error
	// (POST /api/v1/commands/update_sale_payment_status)
	UpdateSalePaymentStatus(ctx echo.Context) error
	// (POST /api/v1/commands/delete_experience_reservation)
	DeleteExperienceReservation(ctx echo.Context) error
	// (POST /api/v1/commands/delete_sale)
	DeleteSale(ctx echo.Context) error
	// (POST /api/v1/commands/create_ledger_entry)
	CreateLedgerEntry(ctx echo.Context) error
	// (POST /api/v1/commands/delete_ledger_entry)
	DeleteLedgerEntry(ctx echo.Context) error
	// (POST /api/v1/commands/get_ledger)
	GetLedger(ctx echo.Context) error
	// (POST /api/v1/commands/get_ledger_debtors)
	GetLedgerDebtors(ctx echo.Context) error
	// (POST /api/v1/commands/apply_batch_action)
	ApplyBatchAction(ctx echo.Context) error
}

var _ ServerInterface = (*Server)(nil)

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts every operation of si on router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL mounts every operation of si under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	commands := baseURL + "/api/v1/commands"

	router.GET(baseURL+"/health", si.Health)
	router.POST(commands+"/update_sale_status", si.UpdateSaleStatus)
	router.POST(commands+"/complete_shipment", si.CompleteShipment)
	router.POST(commands+"/sync_courier_status", si.SyncCourierStatus)
	router.POST(commands+"/batch_sync_courier_statuses", si.BatchSyncCourierStatuses)
	router.POST(commands+"/update_experience_status", si.UpdateExperienceStatus)
	router.POST(commands+"/update_experience_payment_status", si.UpdateExperiencePaymentStatus)
	router.POST(commands+"/update_sale_payment_status", si.UpdateSalePaymentStatus)
	router.POST(commands+"/delete_experience_reservation", si.DeleteExperienceReservation)
	router.POST(commands+"/delete_sale", si.DeleteSale)
	router.POST(commands+"/create_ledger_entry", si.CreateLedgerEntry)
	router.POST(commands+"/delete_ledger_entry", si.DeleteLedgerEntry)
	router.POST(commands+"/get_ledger", si.GetLedger)
	router.POST(commands+"/get_ledger_debtors", si.GetLedgerDebtors)
	router.POST(commands+"/apply_batch_action", si.ApplyBatchAction)
}
