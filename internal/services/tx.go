package services

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxBeginner starts transactions. *pgxpool.Pool and pgxmock both
// satisfy it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
