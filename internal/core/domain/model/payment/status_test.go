package payment_test

import (
	"testing"

	"farmdesk/internal/core/domain/model/payment"
	"farmdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Advance(t *testing.T) {
	tests := []struct {
		name     string
		from, to payment.Status
		ok       bool
	}{
		{"unpaid to partial", payment.Unpaid, payment.PartiallyPaid, true},
		{"unpaid to paid", payment.Unpaid, payment.Paid, true},
		{"partial to paid", payment.PartiallyPaid, payment.Paid, true},
		{"paid to unpaid", payment.Paid, payment.Unpaid, false},
		{"paid to paid", payment.Paid, payment.Paid, false},
		{"partial to unpaid", payment.PartiallyPaid, payment.Unpaid, false},
		{"unknown target", payment.Unpaid, payment.Unknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.Advance(tt.to)

			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.to, got)
				return
			}
			require.ErrorIs(t, err, errs.ErrIllegalPaymentTransition)
			assert.Equal(t, tt.from, got)
		})
	}
}

func TestParse(t *testing.T) {
	for input, want := range map[string]payment.Status{
		"Paid":          payment.Paid,
		"paid":          payment.Paid,
		"결제완료":          payment.Paid,
		"부분결제":          payment.PartiallyPaid,
		"PartiallyPaid": payment.PartiallyPaid,
		"미결제":           payment.Unpaid,
	} {
		got, err := payment.Parse(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := payment.Parse("refunded")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Presentation(t *testing.T) {
	assert.Equal(t, "PartiallyPaid", payment.PartiallyPaid.String())
	assert.Equal(t, "미결제", payment.Unpaid.Label())
	assert.Equal(t, "Unknown", payment.Status(42).String())
	require.Error(t, payment.Unknown.Validate())
}
