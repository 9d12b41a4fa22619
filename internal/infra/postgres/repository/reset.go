package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/cp31-tracker/internal/infra/postgres"
)

type ResetRepository struct {
	transactor *postgres.Transactor
}

func NewResetRepository(transactor *postgres.Transactor) *ResetRepository {
	return &ResetRepository{transactor: transactor}
}

// ResetUser drops the progress document and clears the Codeforces handle in one transaction.
func (s *ResetRepository) ResetUser(ctx context.Context, userID int64) error {
	return s.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM progress_state WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("delete progress_state: %w", err)
		}
		if _, err := tx.Exec(ctx, `UPDATE users SET cf_handle = '' WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("clear cf_handle: %w", err)
		}
		return nil
	})
}
