package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pocketplan/pocketplan/internal/common"
	"github.com/pocketplan/pocketplan/internal/model"
	"github.com/pocketplan/pocketplan/internal/service"
)

// SaveTransactions saves multiple transactions to the database. Duplicates
// are detected by content hash and silently skipped.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			id, hash, date, name, merchant_name, amount,
			primary_category, detailed_category, categories,
			account_id, confidence, pending
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, txn := range transactions {
		if txn.Hash == "" {
			txn.Hash = txn.GenerateHash()
		}

		categoriesJSON := ""
		if len(txn.Category) > 0 {
			categoriesBytes, marshalErr := json.Marshal(txn.Category)
			if marshalErr == nil {
				categoriesJSON = string(categoriesBytes)
			}
		}

		_, err = stmt.ExecContext(ctx,
			txn.ID,
			txn.Hash,
			txn.Date,
			txn.Name,
			txn.MerchantName,
			txn.Amount,
			txn.PrimaryCategory,
			txn.DetailedCategory,
			categoriesJSON,
			txn.AccountID,
			txn.Confidence.String(),
			txn.Pending,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
		}
	}

	return tx.Commit()
}

const transactionColumns = `
	id, hash, date, name, merchant_name, amount,
	primary_category, detailed_category, categories,
	account_id, confidence, pending, bucket_override
`

// GetTransactions retrieves transactions matching the filter, newest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	args := []any{}

	if filter.StartDate != nil {
		query += " AND date >= ?"
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += " AND date <= ?"
		args = append(args, *filter.EndDate)
	}
	if filter.AccountID != "" {
		query += " AND account_id = ?"
		args = append(args, filter.AccountID)
	}

	query += " ORDER BY date DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTransactions(rows)
}

// GetTransactionByID retrieves a single transaction by ID.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	txn, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

// SetBucketOverride records a user's bucket decision for one transaction.
// A nil bucket clears the override.
func (s *SQLiteStorage) SetBucketOverride(ctx context.Context, transactionID string, bucket *model.BucketCategory) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(transactionID, "transactionID"); err != nil {
		return err
	}

	var value any
	if bucket != nil {
		value = string(*bucket)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions SET bucket_override = ? WHERE id = ?
	`, value, transactionID)
	if err != nil {
		return fmt.Errorf("failed to set bucket override: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s: %w", transactionID, common.ErrNotFound)
	}
	return nil
}

// TransactionCount returns the total number of stored transactions.
func (s *SQLiteStorage) TransactionCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get transaction count: %w", err)
	}
	return count, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var txn model.Transaction
	var merchantName, primaryCategory, detailedCategory sql.NullString
	var categoriesJSON, confidence, override sql.NullString

	err := row.Scan(
		&txn.ID,
		&txn.Hash,
		&txn.Date,
		&txn.Name,
		&merchantName,
		&txn.Amount,
		&primaryCategory,
		&detailedCategory,
		&categoriesJSON,
		&txn.AccountID,
		&confidence,
		&txn.Pending,
		&override,
	)
	if err != nil {
		return nil, err
	}

	txn.MerchantName = merchantName.String
	txn.PrimaryCategory = primaryCategory.String
	txn.DetailedCategory = detailedCategory.String
	if confidence.Valid {
		txn.Confidence = model.ParseConfidenceLevel(confidence.String)
	}
	if override.Valid && override.String != "" {
		bucket, parseErr := model.ParseBucketCategory(override.String)
		if parseErr != nil {
			slog.Warn("Ignoring unknown bucket override", "transaction", txn.ID, "value", override.String)
		} else {
			txn.BucketOverride = &bucket
		}
	}
	if categoriesJSON.Valid && categoriesJSON.String != "" {
		if err := json.Unmarshal([]byte(categoriesJSON.String), &txn.Category); err != nil {
			// Log but don't fail on JSON parse error
			slog.Warn("Failed to parse categories JSON", "error", err, "json", categoriesJSON.String)
		}
	}

	return &txn, nil
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *txn)
	}
	return transactions, rows.Err()
}
