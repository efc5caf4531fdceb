//go:generate mockgen -source=runner.go -destination=mocks/runner_mock.go -package=mocks

package cargotx

import "context"

// Runner is a transaction runner. fn's error rolls the transaction back.
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
