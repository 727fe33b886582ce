package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/crlapples/commerce/internal/logger"

	"go.uber.org/zap"
)

// Schema for the carts table: one serialized cart per session scope.
// cmd/migrate applies it; InitSchema does the same in-process.
const Schema = `
CREATE TABLE IF NOT EXISTS carts (
	scope TEXT PRIMARY KEY,
	payload TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// InitSchema creates the carts table if it doesn't exist.
func InitSchema(db *sql.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("init cart schema: %w", err)
	}
	return nil
}

// Store persists one cart per session scope.
//
// Load returns (nil, nil) when no usable cart exists: both the
// nothing-persisted case and the corrupt-record case, which is discarded
// on the spot. Save overwrites the scope's record; last writer wins with
// no cross-scope locking.
type Store interface {
	Load(ctx context.Context) (*Cart, error)
	Save(ctx context.Context, c Cart) error
	Delete(ctx context.Context) error
}

type sqlStore struct {
	db    *sql.DB
	scope string
}

// NewSQLStore returns a Store backed by the carts table, bound to one
// session scope.
func NewSQLStore(db *sql.DB, scope string) Store {
	return &sqlStore{db: db, scope: scope}
}

func (s *sqlStore) Load(ctx context.Context) (*Cart, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM carts WHERE scope = ?`, s.scope,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	c, err := UnmarshalCart(payload)
	if err != nil {
		logger.FromCtx(ctx).Warn("discarding corrupt persisted cart",
			zap.String("scope", s.scope),
			zap.Error(err),
		)
		// Best effort: a corrupt record left in place would be rejected
		// again on every load.
		if _, delErr := s.db.ExecContext(ctx,
			`DELETE FROM carts WHERE scope = ?`, s.scope,
		); delErr != nil {
			logger.FromCtx(ctx).Warn("failed to clear corrupt cart",
				zap.String("scope", s.scope),
				zap.Error(delErr),
			)
		}
		return nil, nil
	}
	return &c, nil
}

func (s *sqlStore) Save(ctx context.Context, c Cart) error {
	payload, err := MarshalCart(c)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO carts (scope, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(scope) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		s.scope, payload, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *sqlStore) Delete(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM carts WHERE scope = ?`, s.scope,
	); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
