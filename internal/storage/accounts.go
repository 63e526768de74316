package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pocketplan/pocketplan/internal/model"
)

// SaveAccounts upserts account records. The latest balances always win.
func (s *SQLiteStorage) SaveAccounts(ctx context.Context, accounts []model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAccounts(accounts); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO accounts (
			id, item_id, name, type, subtype,
			current_balance, available_balance, credit_limit,
			apr, minimum_payment, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			item_id = excluded.item_id,
			name = excluded.name,
			type = excluded.type,
			subtype = excluded.subtype,
			current_balance = excluded.current_balance,
			available_balance = excluded.available_balance,
			credit_limit = excluded.credit_limit,
			apr = excluded.apr,
			minimum_payment = excluded.minimum_payment,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now()
	for _, account := range accounts {
		_, err = stmt.ExecContext(ctx,
			account.ID,
			account.ItemID,
			account.Name,
			string(account.Type),
			account.Subtype,
			account.CurrentBalance,
			account.AvailableBalance,
			account.CreditLimit,
			account.APR,
			account.MinimumPayment,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert account %s: %w", account.ID, err)
		}
	}

	return tx.Commit()
}

// GetAccounts retrieves all stored accounts ordered by name.
func (s *SQLiteStorage) GetAccounts(ctx context.Context) ([]model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, item_id, name, type, subtype,
		       current_balance, available_balance, credit_limit,
		       apr, minimum_payment
		FROM accounts
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	for rows.Next() {
		var account model.Account
		var itemID, subtype sql.NullString
		var accountType string
		var available, creditLimit, apr, minimum sql.NullFloat64

		err := rows.Scan(
			&account.ID,
			&itemID,
			&account.Name,
			&accountType,
			&subtype,
			&account.CurrentBalance,
			&available,
			&creditLimit,
			&apr,
			&minimum,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}

		account.ItemID = itemID.String
		account.Subtype = subtype.String
		account.Type = model.ParseAccountType(accountType)
		if available.Valid {
			account.AvailableBalance = &available.Float64
		}
		if creditLimit.Valid {
			account.CreditLimit = &creditLimit.Float64
		}
		if apr.Valid {
			account.APR = &apr.Float64
		}
		if minimum.Valid {
			account.MinimumPayment = &minimum.Float64
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}
