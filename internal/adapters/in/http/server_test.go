package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "farmdesk/internal/adapters/in/http"
	"farmdesk/internal/core/application/usecases/commands"
	"farmdesk/internal/core/application/usecases/queries"
	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/core/domain/model/ledger"
	"farmdesk/internal/core/domain/model/lifecycle"
	"farmdesk/internal/core/domain/model/payment"
	"farmdesk/internal/core/domain/services"
	"farmdesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockHandler[C, R any] struct{ mock.Mock }

func (m *MockHandler[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	args := m.Called(ctx, cmd)
	var zero R
	if args.Get(0) == nil {
		return zero, args.Error(1)
	}
	return args.Get(0).(R), args.Error(1)
}

type MockEntityDeleter struct{ mock.Mock }

func (m *MockEntityDeleter) Handle(ctx context.Context, cmd commands.DeleteEntityCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRouter(t *testing.T, h httpadapter.Handlers) *echo.Echo {
	t.Helper()
	e, err := httpadapter.NewRouter(httpadapter.NewServer(h, discardLogger()), discardLogger())
	require.NoError(t, err)
	return e
}

func post(t *testing.T, e *echo.Echo, command, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/commands/"+command, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func mustOrderID(t *testing.T, salesID string) fulfillment.ID {
	t.Helper()
	id, err := fulfillment.NewOrderID(salesID)
	require.NoError(t, err)
	return id
}

func TestServer_UpdateSaleStatus_AcceptsKoreanLabel(t *testing.T) {
	// Given
	handler := new(MockHandler[commands.UpdateSaleStatusCommand, commands.TransitionResult])
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateSaleStatusCommand) bool {
		return cmd.ID().Key() == "S-1" && cmd.Status() == lifecycle.Delivered && cmd.ProceedWithOutstandingBalance()
	})).Return(commands.TransitionResult{
		ID:            mustOrderID(t, "S-1"),
		From:          lifecycle.Shipping,
		To:            lifecycle.Delivered,
		PaymentStatus: payment.Unpaid,
		Changed:       true,
		DebtPosted:    45000,
		LedgerEntryID: 7,
	}, nil).Once()

	e := newRouter(t, httpadapter.Handlers{UpdateSaleStatus: handler})

	// When
	rec := post(t, e, "update_sale_status", `{"salesId":"S-1","status":"배송완료","proceedWithOutstandingBalance":true}`)

	// Then
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[httpadapter.TransitionResponse](t, rec)
	assert.Equal(t, "order:S-1", resp.ID)
	assert.Equal(t, "Shipping", resp.From)
	assert.Equal(t, "Delivered", resp.To)
	assert.Equal(t, "Unpaid", resp.PaymentStatus)
	assert.Equal(t, int64(45000), resp.DebtPosted)
	assert.Equal(t, int64(7), resp.LedgerEntryID)
	handler.AssertExpectations(t)
}

func TestServer_UpdateSaleStatus_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", errs.NewObjectNotFoundError("entity", "order:S-1"), http.StatusNotFound},
		{"illegal transition", errs.NewIllegalTransitionError("order", "Delivered", "Shipping"), http.StatusConflict},
		{"payment required", errs.NewPaymentRequiredError("order:S-1", 45000), http.StatusUnprocessableEntity},
		{"concurrent update", errs.NewConflictingConcurrentUpdateError("entity", "order:S-1"), http.StatusConflict},
		{"timeout", errs.NewTimeoutError("update entity", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			handler := new(MockHandler[commands.UpdateSaleStatusCommand, commands.TransitionResult])
			handler.On("Handle", mock.Anything, mock.Anything).Return(nil, tt.err).Once()
			e := newRouter(t, httpadapter.Handlers{UpdateSaleStatus: handler})

			// When
			rec := post(t, e, "update_sale_status", `{"salesId":"S-1","status":"Shipping"}`)

			// Then
			assert.Equal(t, tt.code, rec.Code)
			body := decode[httpadapter.Error](t, rec)
			assert.Equal(t, tt.code, body.Code)
			if tt.code == http.StatusInternalServerError {
				assert.NotContains(t, body.Message, "connection reset")
			}
		})
	}
}

func TestServer_UpdateSaleStatus_BadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"salesId":`},
		{"unknown status", `{"salesId":"S-1","status":"Teleported"}`},
		{"reservation status on an order", `{"salesId":"S-1","status":"Completed"}`},
		{"missing sales id", `{"salesId":"","status":"Shipping"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			handler := new(MockHandler[commands.UpdateSaleStatusCommand, commands.TransitionResult])
			e := newRouter(t, httpadapter.Handlers{UpdateSaleStatus: handler})

			// When
			rec := post(t, e, "update_sale_status", tt.body)

			// Then
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestServer_CompleteShipment_ParsesShippingDate(t *testing.T) {
	// Given
	handler := new(MockHandler[commands.CompleteShipmentCommand, commands.TransitionResult])
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CompleteShipmentCommand) bool {
		s := cmd.Shipment()
		return s.Carrier() == "CJ대한통운" &&
			s.TrackingNumber() == "123456789012" &&
			s.ShippingDate().Equal(kernel.NewDate(2026, time.March, 2)) &&
			cmd.Memo() == "fragile"
	})).Return(commands.TransitionResult{ID: mustOrderID(t, "S-1"), To: lifecycle.Shipping, Changed: true}, nil).Once()

	e := newRouter(t, httpadapter.Handlers{CompleteShipment: handler})

	// When
	rec := post(t, e, "complete_shipment",
		`{"salesId":"S-1","carrier":"CJ대한통운","trackingNumber":"123456789012","shippingDate":"2026-03-02","memo":"fragile"}`)

	// Then
	assert.Equal(t, http.StatusOK, rec.Code)
	handler.AssertExpectations(t)
}

func TestServer_UpdateExperiencePaymentStatus(t *testing.T) {
	// Given
	handler := new(MockHandler[commands.UpdatePaymentStatusCommand, commands.TransitionResult])
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdatePaymentStatusCommand) bool {
		return cmd.ID().Kind() == lifecycle.Reservation &&
			cmd.ID().Key() == "42" &&
			cmd.Status() == payment.PartiallyPaid &&
			cmd.PaidAmount() == 10000
	})).Return(commands.TransitionResult{PaymentStatus: payment.PartiallyPaid, Changed: true}, nil).Once()

	e := newRouter(t, httpadapter.Handlers{UpdatePaymentStatus: handler})

	// When
	rec := post(t, e, "update_experience_payment_status", `{"reservation_id":42,"payment_status":"부분결제","paidAmount":10000}`)

	// Then
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PartiallyPaid", decode[httpadapter.TransitionResponse](t, rec).PaymentStatus)
	handler.AssertExpectations(t)
}

func TestServer_DeleteSale(t *testing.T) {
	// Given
	deleter := new(MockEntityDeleter)
	deleter.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DeleteEntityCommand) bool {
		return cmd.ID() == mustOrderID(t, "S-9")
	})).Return(nil).Once()

	e := newRouter(t, httpadapter.Handlers{DeleteEntity: deleter})

	// When
	rec := post(t, e, "delete_sale", `{"salesId":"S-9"}`)

	// Then
	assert.Equal(t, http.StatusNoContent, rec.Code)
	deleter.AssertExpectations(t)
}

func TestServer_CreateLedgerEntry(t *testing.T) {
	// Given
	entry, err := ledger.RestoreEntry(ledger.EntryParams{
		ID:             3,
		CustomerID:     "C-1",
		OccurredAt:     kernel.NewDate(2026, time.March, 5),
		Type:           ledger.Deposit,
		Amount:         -10000,
		RunningBalance: 20000,
		Description:    "bank transfer",
	})
	require.NoError(t, err)

	handler := new(MockHandler[commands.CreateLedgerEntryCommand, commands.LedgerEntryResult])
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateLedgerEntryCommand) bool {
		return cmd.CustomerID() == "C-1" &&
			cmd.TransactionType() == ledger.Deposit &&
			cmd.TransactionDate().Equal(kernel.NewDate(2026, time.March, 5))
	})).Return(commands.LedgerEntryResult{Entry: entry, CurrentBalance: 20000}, nil).Once()

	e := newRouter(t, httpadapter.Handlers{CreateLedgerEntry: handler})

	// When
	rec := post(t, e, "create_ledger_entry",
		`{"customerId":"C-1","transactionType":"Deposit","amount":10000,"transactionDate":"2026-03-05","description":"bank transfer"}`)

	// Then
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[httpadapter.CreateLedgerEntryResponse](t, rec)
	assert.Equal(t, int64(20000), resp.CurrentBalance)
	assert.Equal(t, int64(3), resp.Entry.LedgerID)
	assert.Equal(t, "2026-03-05", resp.Entry.TransactionDate)
	assert.Equal(t, int64(-10000), resp.Entry.Amount)
	handler.AssertExpectations(t)
}

func TestServer_GetLedger_CollectsEntries(t *testing.T) {
	// Given
	views := []queries.LedgerEntryView{
		{LedgerID: 1, TransactionDate: kernel.NewDate(2026, time.March, 1), TransactionType: ledger.Sale, Amount: 30000, RunningBalance: 35000},
		{LedgerID: 2, TransactionDate: kernel.NewDate(2026, time.March, 5), TransactionType: ledger.Deposit, Amount: -10000, RunningBalance: 25000},
	}
	handler := new(MockHandler[queries.GetLedgerQuery, queries.GetLedgerQueryResponse])
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetLedgerQuery) bool {
		return q.CustomerID() == "C-1" && q.Window().To.IsZero() && q.Window().From.Equal(kernel.NewDate(2026, time.March, 1))
	})).Return(queries.GetLedgerQueryResponse{
		CustomerID:     "C-1",
		Name:           "Kim",
		CurrentBalance: 25000,
		OpeningBalance: 5000,
		Entries: func(yield func(queries.LedgerEntryView, error) bool) {
			for _, v := range views {
				if !yield(v, nil) {
					return
				}
			}
		},
	}, nil).Once()

	e := newRouter(t, httpadapter.Handlers{GetLedger: handler})

	// When
	rec := post(t, e, "get_ledger", `{"customerId":"C-1","startDate":"2026-03-01"}`)

	// Then
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[httpadapter.LedgerResponse](t, rec)
	assert.Equal(t, int64(25000), resp.CurrentBalance)
	assert.Equal(t, int64(5000), resp.OpeningBalance)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, []int64{35000, 25000}, []int64{resp.Entries[0].RunningBalance, resp.Entries[1].RunningBalance})
	assert.Equal(t, "Deposit", resp.Entries[1].TransactionType)
}

func TestServer_GetLedger_InvertedWindow(t *testing.T) {
	// Given
	handler := new(MockHandler[queries.GetLedgerQuery, queries.GetLedgerQueryResponse])
	e := newRouter(t, httpadapter.Handlers{GetLedger: handler})

	// When
	rec := post(t, e, "get_ledger", `{"customerId":"C-1","startDate":"2026-03-10","endDate":"2026-03-01"}`)

	// Then
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestServer_ApplyBatchAction_ReturnsReportWith200(t *testing.T) {
	// Given
	a := mustOrderID(t, "A")
	b := mustOrderID(t, "B")
	handler := new(MockHandler[commands.ApplyBatchActionCommand, commands.BatchReport])
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ApplyBatchActionCommand) bool {
		return cmd.Action() == services.Ship &&
			len(cmd.IDs()) == 2 &&
			cmd.Options().Shipment.Carrier() == "롯데택배"
	})).Return(commands.BatchReport{
		Action:    services.Ship,
		Succeeded: []commands.TransitionResult{{ID: a, From: lifecycle.Received, To: lifecycle.Shipping, Changed: true}},
		Skipped:   []services.SkippedItem{{ID: b, Reason: services.ReasonIllegalTransition}},
	}, nil).Once()

	e := newRouter(t, httpadapter.Handlers{ApplyBatchAction: handler})

	// When
	rec := post(t, e, "apply_batch_action",
		`{"ids":["order:A","order:B"],"action":"ship","shipment":{"carrier":"롯데택배","trackingNumber":"T-1"}}`)

	// Then
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[httpadapter.BatchResponse](t, rec)
	require.Len(t, resp.Succeeded, 1)
	assert.Equal(t, "order:A", resp.Succeeded[0].ID)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, "order:B", resp.Skipped[0].ID)
	assert.Equal(t, string(services.ReasonIllegalTransition), resp.Skipped[0].Reason)
	assert.Empty(t, resp.Message)
	handler.AssertExpectations(t)
}

func TestServer_ApplyBatchAction_NoEligibleItems(t *testing.T) {
	// Given
	b := mustOrderID(t, "B")
	handler := new(MockHandler[commands.ApplyBatchActionCommand, commands.BatchReport])
	handler.On("Handle", mock.Anything, mock.Anything).Return(commands.BatchReport{
		Action:  services.Cancel,
		Skipped: []services.SkippedItem{{ID: b, Reason: services.ReasonAlreadyInTarget}},
	}, nil).Once()

	e := newRouter(t, httpadapter.Handlers{ApplyBatchAction: handler})

	// When
	rec := post(t, e, "apply_batch_action", `{"ids":["order:B"],"action":"cancel"}`)

	// Then
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, errs.ErrNoEligibleItems.Error(), decode[httpadapter.BatchResponse](t, rec).Message)
}

func TestServer_ApplyBatchAction_RejectsMalformedID(t *testing.T) {
	// Given
	handler := new(MockHandler[commands.ApplyBatchActionCommand, commands.BatchReport])
	e := newRouter(t, httpadapter.Handlers{ApplyBatchAction: handler})

	// When
	rec := post(t, e, "apply_batch_action", `{"ids":["S-1"],"action":"ship"}`)

	// Then
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestServer_BatchSyncCourierStatuses(t *testing.T) {
	// Given
	handler := new(MockHandler[commands.SyncCourierStatusesCommand, commands.SyncReport])
	handler.On("Handle", mock.Anything, mock.Anything).Return(commands.SyncReport{
		Count:  2,
		Errors: []commands.SyncError{{ID: mustOrderID(t, "S-3"), Reason: "operation timed out"}},
	}, nil).Once()

	e := newRouter(t, httpadapter.Handlers{SyncCourierStatuses: handler})

	// When
	rec := post(t, e, "batch_sync_courier_statuses", ``)

	// Then
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[httpadapter.SyncResponse](t, rec)
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "order:S-3", resp.Errors[0].ID)
}

func TestServer_SyncCourierStatus(t *testing.T) {
	t.Run("delivered order", func(t *testing.T) {
		// Given
		id := mustOrderID(t, "S-7")
		handler := new(MockHandler[commands.SyncCourierStatusCommand, commands.CourierStatus])
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SyncCourierStatusCommand) bool {
			return cmd.ID() == id
		})).Return(commands.CourierStatus{
			Transition: commands.TransitionResult{
				ID: id, From: lifecycle.Shipping, To: lifecycle.Delivered, PaymentStatus: payment.Paid, Changed: true,
			},
			Status:   lifecycle.Delivered,
			Level:    6,
			Location: "도착지",
		}, nil).Once()
		e := newRouter(t, httpadapter.Handlers{SyncCourierStatus: handler})

		// When
		rec := post(t, e, "sync_courier_status", `{"salesId":"S-7"}`)

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[httpadapter.CourierStatusResponse](t, rec)
		assert.Equal(t, "S-7", resp.SalesID)
		assert.Equal(t, lifecycle.Delivered.String(), resp.Status)
		assert.Equal(t, 6, resp.Level)
		assert.Equal(t, "도착지", resp.Location)
		assert.True(t, resp.Transition.Changed)
		handler.AssertExpectations(t)
	})

	t.Run("order not shipping", func(t *testing.T) {
		// Given
		handler := new(MockHandler[commands.SyncCourierStatusCommand, commands.CourierStatus])
		handler.On("Handle", mock.Anything, mock.Anything).Return(commands.CourierStatus{},
			errs.NewIllegalTransitionError("order", "Received", "Delivered")).Once()
		e := newRouter(t, httpadapter.Handlers{SyncCourierStatus: handler})

		// When
		rec := post(t, e, "sync_courier_status", `{"salesId":"S-8"}`)

		// Then
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("missing sales id", func(t *testing.T) {
		// Given
		handler := new(MockHandler[commands.SyncCourierStatusCommand, commands.CourierStatus])
		e := newRouter(t, httpadapter.Handlers{SyncCourierStatus: handler})

		// When
		rec := post(t, e, "sync_courier_status", `{}`)

		// Then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestRegisterHandlersWithBaseURL(t *testing.T) {
	// Given
	e := echo.New()
	server := httpadapter.NewServer(httpadapter.Handlers{}, discardLogger())

	// When
	httpadapter.RegisterHandlersWithBaseURL(e, server, "/farm")

	// Then
	paths := make(map[string]string)
	for _, r := range e.Routes() {
		paths[r.Path] = r.Method
	}
	assert.Len(t, paths, 15)
	assert.Equal(t, http.MethodGet, paths["/farm/health"])
	assert.Equal(t, http.MethodPost, paths["/farm/api/v1/commands/sync_courier_status"])
	assert.Equal(t, http.MethodPost, paths["/farm/api/v1/commands/apply_batch_action"])
}

func TestServer_GetLedgerDebtors(t *testing.T) {
	// Given
	handler := new(MockHandler[queries.GetLedgerDebtorsQuery, []queries.GetLedgerDebtorsQueryResponse])
	handler.On("Handle", mock.Anything, mock.Anything).Return([]queries.GetLedgerDebtorsQueryResponse{
		{CustomerID: "C-2", Name: "Lee", Balance: 50000},
	}, nil).Once()

	e := newRouter(t, httpadapter.Handlers{GetLedgerDebtors: handler})

	// When
	rec := post(t, e, "get_ledger_debtors", ``)

	// Then
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[[]httpadapter.DebtorResponse](t, rec)
	assert.Equal(t, []httpadapter.DebtorResponse{{CustomerID: "C-2", Name: "Lee", Balance: 50000}}, resp)
}

func TestRouter_HealthAndSwagger(t *testing.T) {
	// Given
	e := newRouter(t, httpadapter.Handlers{})

	// When
	health := httptest.NewRecorder()
	e.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	doc := httptest.NewRecorder()
	e.ServeHTTP(doc, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	// Then
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Equal(t, "Healthy", health.Body.String())
	assert.Equal(t, http.StatusOK, doc.Code)
	assert.Contains(t, doc.Body.String(), "/api/v1/commands/apply_batch_action")
}

func TestLoadOpenAPI(t *testing.T) {
	doc, err := httpadapter.LoadOpenAPI()

	require.NoError(t, err)
	assert.Equal(t, "farmdesk", doc.Info.Title)
	assert.NotNil(t, doc.Paths.Find("/api/v1/commands/update_sale_status"))

	e := echo.New()
	httpadapter.RegisterHandlers(e, httpadapter.NewServer(httpadapter.Handlers{}, discardLogger()))
	for _, r := range e.Routes() {
		assert.NotNil(t, doc.Paths.Find(r.Path), "route %s is missing from openapi.yaml", r.Path)
	}
}
