package metadata

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/bizdesk/internal/dbx"
)

const (
	KeyToken  = "token"
	KeyUserID = "user_id"
)

// TokenPersister stores the session credentials in the metadata table.
// It satisfies session.Persister.
type TokenPersister struct {
	db *sql.DB
}

func NewTokenPersister(db *sql.DB) *TokenPersister {
	return &TokenPersister{db: db}
}

// Load returns the stored pair; missing keys come back as empty strings.
func (p *TokenPersister) Load(ctx context.Context) (string, string, error) {
	vals, err := NewSQLiteRepository(p.db).Lookup(ctx, KeyToken, KeyUserID)
	if err != nil {
		return "", "", fmt.Errorf("load credentials: %w", err)
	}
	return vals[KeyToken], vals[KeyUserID], nil
}

// Save writes token and user id together; either both land or neither does.
func (p *TokenPersister) Save(ctx context.Context, token, userID string) error {
	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyToken, token); err != nil {
			return err
		}
		return repo.Set(ctx, KeyUserID, userID)
	})
}

// Erase removes both keys. Erasing absent keys is not an error.
func (p *TokenPersister) Erase(ctx context.Context) error {
	return NewSQLiteRepository(p.db).Delete(ctx, KeyToken, KeyUserID)
}
