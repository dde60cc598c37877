// Package lifecycle defines the fulfillment statuses of orders and experience
// reservations and the graph of allowed moves between them.
//
// Order flow:
//
//	Received ─> PendingPayment ─> PaymentConfirmed ─> PreparingShipment ─> Shipping ─> Delivered
//	    └──────────────┴──────────────────┴───────────────────┘ (forward skips allowed)
//
// Reservation flow:
//
//	Waiting ─> Confirmed ─> Completed
//
// Every non-terminal status of either kind may also move to Cancelled.
// Delivered, Completed and Cancelled are terminal.
//
// Moving an order into PreparingShipment, Shipping or Delivered, or a
// reservation into Completed, is payment gated: the entity must be paid in
// full unless the caller accepts the outstanding balance as customer debt.
package lifecycle
