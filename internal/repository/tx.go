package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shop-checkout/internal/db"
	"github.com/nikolayk812/shop-checkout/internal/port"
)

func withTx[T any](ctx context.Context, pool *pgxpool.Pool, q *db.Queries, fn func(q *db.Queries) (T, error)) (_ T, txErr error) {
	var zero T

	// already inside a transaction
	if pool == nil {
		return fn(q)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return zero, fmt.Errorf("pool.Begin: %w", err)
	}

	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	result, err := fn(db.New(tx))
	if err != nil {
		return zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, fmt.Errorf("tx.Commit: %w", err)
	}

	return result, nil
}

type unitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork runs callbacks against cart and order repositories sharing
// one transaction. Any error returned by the callback rolls it back.
func NewUnitOfWork(pool *pgxpool.Pool) port.UnitOfWork {
	return &unitOfWork{pool: pool}
}

func (u *unitOfWork) Do(ctx context.Context, fn func(repos port.TxRepositories) error) error {
	_, err := withTx(ctx, u.pool, nil, func(q *db.Queries) (struct{}, error) {
		return struct{}{}, fn(port.TxRepositories{
			Carts:  &cartRepository{q: q},
			Orders: &orderRepository{q: q},
		})
	})
	return err
}
