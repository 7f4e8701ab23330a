package rewards

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// SpendTicket atomically takes one ticket, returning the balance left.
// The points > 0 guard makes concurrent rolls safe: the second one sees
// no rows and gets ErrNoTickets.
func (s *PostgresStore) SpendTicket(ctx context.Context, userID int64) (int, error) {
	var remaining int
	err := s.db.QueryRowContext(ctx,
		`UPDATE users SET points = points - 1, updated_at = NOW()
		 WHERE id = $1 AND points > 0
		 RETURNING points`,
		userID,
	).Scan(&remaining)
	if err == sql.ErrNoRows {
		return 0, ErrNoTickets
	}
	if err != nil {
		return 0, fmt.Errorf("spend ticket: %w", err)
	}
	return remaining, nil
}

// AddItem inserts into the inventory, reporting false for duplicates.
func (s *PostgresStore) AddItem(ctx context.Context, userID int64, itemName string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO user_inventory (user_id, item_name)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, item_name) DO NOTHING`,
		userID, itemName,
	)
	if err != nil {
		return false, fmt.Errorf("add item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *PostgresStore) Owns(ctx context.Context, userID int64, itemName string) (bool, error) {
	var owns bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_inventory WHERE user_id = $1 AND item_name = $2)`,
		userID, itemName,
	).Scan(&owns)
	if err != nil {
		return false, fmt.Errorf("check ownership: %w", err)
	}
	return owns, nil
}

type InventoryRow struct {
	ItemName   string
	ObtainedAt time.Time
}

func (s *PostgresStore) Inventory(ctx context.Context, userID int64) ([]InventoryRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT item_name, obtained_at FROM user_inventory
		 WHERE user_id = $1 ORDER BY obtained_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	defer rows.Close()

	var items []InventoryRow
	for rows.Next() {
		var row InventoryRow
		if err := rows.Scan(&row.ItemName, &row.ObtainedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		items = append(items, row)
	}
	return items, rows.Err()
}

func (s *PostgresStore) Tickets(ctx context.Context, userID int64) (int, error) {
	var points int
	err := s.db.QueryRowContext(ctx,
		`SELECT points FROM users WHERE id = $1`, userID,
	).Scan(&points)
	if err != nil {
		return 0, fmt.Errorf("get tickets: %w", err)
	}
	return points, nil
}

func (s *PostgresStore) Equipment(ctx context.Context, userID int64) (icon, theme string, err error) {
	var iconVal, themeVal sql.NullString
	err = s.db.QueryRowContext(ctx,
		`SELECT equipped_icon, equipped_theme FROM user_equipment WHERE user_id = $1`,
		userID,
	).Scan(&iconVal, &themeVal)
	if err == sql.ErrNoRows {
		return "", "", nil
	}
	if err != nil {
		return "", "", fmt.Errorf("get equipment: %w", err)
	}
	return iconVal.String, themeVal.String, nil
}

// SetEquipped upserts one equipment slot; nil clears it.
func (s *PostgresStore) SetEquipped(ctx context.Context, userID int64, itemType string, itemName *string) error {
	column := "equipped_icon"
	if itemType == TypeTheme {
		column = "equipped_theme"
	}
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(
		`INSERT INTO user_equipment (user_id, %s) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET %s = $2`, column, column),
		userID, itemName,
	)
	if err != nil {
		return fmt.Errorf("set equipped: %w", err)
	}
	return nil
}
