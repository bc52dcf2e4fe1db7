package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiranacart/marketplace_backend/internal/apperrors"
	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	portsrepo "github.com/kiranacart/marketplace_backend/internal/core/ports/repositories"
)

type PgxLedgerRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepository
}

// newPgxLedgerRepository creates a new repository for the append-only ledger.
func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepository) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepository
var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

const ledgerColumns = `entry_id, account_id, amount, kind, description, reference_id, running_balance, created_at`

func scanLedgerEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	err := row.Scan(
		&e.EntryID,
		&e.AccountID,
		&e.Amount,
		&e.Kind,
		&e.Description,
		&e.ReferenceID,
		&e.RunningBalance,
		&e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// AppendEntry posts one entry in its own transaction: lock the account row,
// compute the running balance, insert the entry and move the account totals.
func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.accountRepo.FindAccountByIDForUpdate(ctx, tx, entry.AccountID)
	if err != nil {
		return nil, err
	}

	posted, err := r.AppendEntryInTx(ctx, tx, entry, *locked)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return posted, nil
}

// AppendEntryInTx posts one entry inside an already-open transaction. The
// caller must hold the account row lock; `locked` carries the balance the
// running balance is computed from.
func (r *PgxLedgerRepository) AppendEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry, locked domain.Account) (*domain.LedgerEntry, error) {
	if !entry.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown entry kind %q", apperrors.ErrValidation, entry.Kind)
	}
	if entry.Amount.IsNegative() || entry.Amount.IsZero() {
		return nil, fmt.Errorf("%w: entry amount must be positive", apperrors.ErrValidation)
	}

	newBalance := locked.Balance.Add(entry.SignedAmount())
	if newBalance.IsNegative() {
		return nil, fmt.Errorf("%w: balance of account %s would go below zero", apperrors.ErrInsufficientBalance, entry.AccountID)
	}
	entry.RunningBalance = newBalance

	insertQuery := `
		INSERT INTO ledger_entries (entry_id, account_id, amount, kind, description, reference_id, running_balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, insertQuery,
		entry.EntryID,
		entry.AccountID,
		entry.Amount,
		entry.Kind,
		entry.Description,
		entry.ReferenceID,
		entry.RunningBalance,
		entry.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: ledger entry with this reference already posted", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to insert ledger entry %s: %w", entry.EntryID, err)
	}

	updateQuery := `
		UPDATE accounts
		SET balance = $2,
		    total_credited = total_credited + CASE WHEN $3 THEN $4 ELSE 0 END,
		    total_debited = total_debited + CASE WHEN $3 THEN 0 ELSE $4 END,
		    last_updated_at = $5
		WHERE account_id = $1;
	`
	_, err = tx.Exec(ctx, updateQuery,
		entry.AccountID,
		newBalance,
		entry.Kind.IsCredit(),
		entry.Amount,
		entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update account %s totals: %w", entry.AccountID, err)
	}

	return &entry, nil
}

// ListEntriesByAccount retrieves a page of entries, newest first.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC, entry_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for account %s: %w", accountID, err)
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0)
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entries: %w", err)
	}
	return entries, nil
}

// FindEntryByReference retrieves the entry posted under a reference ID.
func (r *PgxLedgerRepository) FindEntryByReference(ctx context.Context, referenceID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE reference_id = $1;`
	e, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, referenceID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find ledger entry by reference %s: %w", referenceID, err)
	}
	return e, nil
}
