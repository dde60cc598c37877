package commands

import (
	"context"
	"errors"

	"farmdesk/internal/core/domain/model/fulfillment"
	"farmdesk/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// conflictRetries is how many times an operation is repeated after losing an
// optimistic version check.
const conflictRetries = 1

func entityKey(id fulfillment.ID) string {
	return "entity:" + id.String()
}

func customerKey(customerID string) string {
	return "customer:" + customerID
}

// retryOnConflict runs op and repeats it once when it fails with
// errs.ErrConflictingConcurrentUpdate. Any other error is returned as is.
func retryOnConflict(ctx context.Context, op func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(&backoff.ZeroBackOff{}, conflictRetries),
		ctx,
	)

	return backoff.Retry(func() error {
		err := op()
		if err == nil || errors.Is(err, errs.ErrConflictingConcurrentUpdate) {
			return err
		}
		return backoff.Permanent(err)
	}, policy)
}
