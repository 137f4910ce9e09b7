package commands

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	helper "studentpoints_client/internals/helpers"
)

const retryInitialInterval = 200 * time.Millisecond

// retryRead mengulang operasi baca selama hasilnya network_unavailable,
// maksimal `retries` kali tambahan. Operasi tulis tidak lewat sini.
func retryRead[T any](ctx context.Context, retries uint64, fn func() helper.Result[T]) helper.Result[T] {
	var res helper.Result[T]

	op := func() error {
		res = fn()
		if res.Success || res.Kind != helper.KindNetworkUnavailable {
			return nil
		}
		return res.Err()
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = retryInitialInterval
	_ = backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(eb, retries), ctx))
	return res
}
