package http

import (
	"farmdesk/internal/core/domain/model/kernel"

	openapitypes "github.com/oapi-codegen/runtime/types"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type UpdateSaleStatusRequest struct {
	SalesID                       string `json:"salesId"`
	Status                        string `json:"status"`
	ProceedWithOutstandingBalance bool   `json:"proceedWithOutstandingBalance"`
}

type CompleteShipmentRequest struct {
	SalesID        string             `json:"salesId"`
	Carrier        string             `json:"carrier"`
	TrackingNumber string             `json:"trackingNumber"`
	ShippingDate   *openapitypes.Date `json:"shippingDate,omitempty"`
	Memo           string             `json:"memo"`
}

type UpdateExperienceStatusRequest struct {
	ReservationID                 int64  `json:"reservation_id"`
	Status                        string `json:"status"`
	AppendMemo                    string `json:"append_memo"`
	ProceedWithOutstandingBalance bool   `json:"proceedWithOutstandingBalance"`
}

type UpdateExperiencePaymentStatusRequest struct {
	ReservationID int64  `json:"reservation_id"`
	PaymentStatus string `json:"payment_status"`
	PaidAmount    int64  `json:"paidAmount"`
}

type UpdateSalePaymentStatusRequest struct {
	SalesID       string `json:"salesId"`
	PaymentStatus string `json:"payment_status"`
	PaidAmount    int64  `json:"paidAmount"`
}

type DeleteExperienceReservationRequest struct {
	ReservationID int64 `json:"reservation_id"`
}

type DeleteSaleRequest struct {
	SalesID string `json:"salesId"`
}

type CreateLedgerEntryRequest struct {
	CustomerID      string             `json:"customerId"`
	TransactionType string             `json:"transactionType"`
	Amount          int64              `json:"amount"`
	TransactionDate *openapitypes.Date `json:"transactionDate,omitempty"`
	Description     string             `json:"description"`
	ReferenceID     string             `json:"referenceId"`
}

type DeleteLedgerEntryRequest struct {
	LedgerID int64 `json:"ledgerId"`
}

type GetLedgerRequest struct {
	CustomerID string             `json:"customerId"`
	StartDate  *openapitypes.Date `json:"startDate,omitempty"`
	EndDate    *openapitypes.Date `json:"endDate,omitempty"`
}

type ShipmentRequest struct {
	Carrier        string             `json:"carrier"`
	TrackingNumber string             `json:"trackingNumber"`
	ShippingDate   *openapitypes.Date `json:"shippingDate,omitempty"`
}

// ApplyBatchActionRequest selects entities by their "kind:key" id,
// e.g. "order:S-1" or "reservation:42".
type ApplyBatchActionRequest struct {
	IDs                           []string         `json:"ids"`
	Action                        string           `json:"action"`
	ProceedWithOutstandingBalance bool             `json:"proceedWithOutstandingBalance"`
	Shipment                      *ShipmentRequest `json:"shipment,omitempty"`
	Memo                          string           `json:"memo"`
}

type TransitionResponse struct {
	ID            string `json:"id"`
	From          string `json:"from"`
	To            string `json:"to"`
	PaymentStatus string `json:"paymentStatus"`
	Changed       bool   `json:"changed"`
	DebtPosted    int64  `json:"debtPosted"`
	LedgerEntryID int64  `json:"ledgerEntryId,omitempty"`
}

type LedgerEntryResponse struct {
	LedgerID        int64  `json:"ledgerId"`
	CustomerID      string `json:"customerId,omitempty"`
	TransactionDate string `json:"transactionDate"`
	TransactionType string `json:"transactionType"`
	Amount          int64  `json:"amount"`
	RunningBalance  int64  `json:"runningBalance"`
	Description     string `json:"description"`
	ReferenceID     string `json:"referenceId,omitempty"`
}

type CreateLedgerEntryResponse struct {
	Entry          LedgerEntryResponse `json:"entry"`
	CurrentBalance int64               `json:"currentBalance"`
}

type DeleteLedgerEntryResponse struct {
	CurrentBalance int64 `json:"currentBalance"`
}

type LedgerResponse struct {
	CustomerID     string                `json:"customerId"`
	Name           string                `json:"name"`
	CurrentBalance int64                 `json:"currentBalance"`
	OpeningBalance int64                 `json:"openingBalance"`
	Entries        []LedgerEntryResponse `json:"entries"`
}

type DebtorResponse struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
	Balance    int64  `json:"balance"`
}

type SyncErrorResponse struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type SyncCourierStatusRequest struct {
	SalesID string `json:"salesId"`
}

type CourierStatusResponse struct {
	SalesID    string             `json:"salesId"`
	Status     string             `json:"status"`
	Level      int                `json:"level,omitempty"`
	Location   string             `json:"location,omitempty"`
	Transition TransitionResponse `json:"transition"`
}

type SyncResponse struct {
	Count  int                 `json:"count"`
	Errors []SyncErrorResponse `json:"errors"`
}

type ItemReasonResponse struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type BatchResponse struct {
	RunID        string               `json:"runId"`
	Action       string               `json:"action"`
	Succeeded    []TransitionResponse `json:"succeeded"`
	Failed       []ItemReasonResponse `json:"failed"`
	Skipped      []ItemReasonResponse `json:"skipped"`
	NotAttempted []string             `json:"notAttempted"`
	Flagged      []string             `json:"flagged"`
	Message      string               `json:"message,omitempty"`
}

func toDate(d *openapitypes.Date) kernel.Date {
	if d == nil {
		return kernel.Date{}
	}
	return kernel.DateOf(d.Time)
}
