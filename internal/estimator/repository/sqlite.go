package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"carpet-estimator/internal/estimator/models"
)

//go:embed migrations/001_init_quotes.sql
var initMigration string

var ErrNotFound = errors.New("quote not found")

// Quote is a saved estimate: the customer and a frozen copy of the room set.
type Quote struct {
	ID        string          `json:"id"`
	Customer  models.Customer `json:"customer"`
	RoomSet   models.RoomSet  `json:"roomSet"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Summary is the list view of a quote.
type Summary struct {
	ID                  string    `json:"id"`
	CustomerName        string    `json:"customerName"`
	RoomCount           int       `json:"roomCount"`
	TotalCarpetableArea float64   `json:"totalCarpetableArea"`
	TotalLinearMetres   float64   `json:"totalLinearMetres"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Init applies the schema.
func (r *Repository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, initMigration); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// Save stores a new quote and returns it with its id and timestamp set.
func (r *Repository) Save(ctx context.Context, customer models.Customer, set models.RoomSet) (*Quote, error) {
	customerJSON, err := json.Marshal(customer)
	if err != nil {
		return nil, fmt.Errorf("encode customer: %w", err)
	}
	setJSON, err := json.Marshal(set)
	if err != nil {
		return nil, fmt.Errorf("encode room set: %w", err)
	}

	q := &Quote{
		ID:        uuid.NewString(),
		Customer:  customer,
		RoomSet:   set,
		CreatedAt: r.now().UTC().Truncate(time.Second),
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO quotes (id, customer_name, customer, room_set, room_count, total_carpetable_area, total_linear_metres, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `,
		q.ID,
		customer.Name,
		string(customerJSON),
		string(setJSON),
		len(set.Rooms),
		set.TotalCarpetableArea,
		set.TotalLinearMetres,
		q.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("insert quote: %w", err)
	}

	log.Printf("[REPO] Saved quote %s (%d rooms, %.2f m2)", q.ID, len(set.Rooms), set.TotalCarpetableArea)
	return q, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*Quote, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, customer, room_set, created_at
        FROM quotes
        WHERE id = ?
    `, id)

	var q Quote
	var customerJSON, setJSON, created string
	if err := row.Scan(&q.ID, &customerJSON, &setJSON, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(customerJSON), &q.Customer); err != nil {
		return nil, fmt.Errorf("decode customer: %w", err)
	}
	if err := json.Unmarshal([]byte(setJSON), &q.RoomSet); err != nil {
		return nil, fmt.Errorf("decode room set: %w", err)
	}
	q.CreatedAt = parseTime(created)
	return &q, nil
}

// List returns quote summaries, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT id, customer_name, room_count, total_carpetable_area, total_linear_metres, created_at
        FROM quotes
        ORDER BY created_at DESC, rowid DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var s Summary
		var created string
		if err := rows.Scan(&s.ID, &s.CustomerName, &s.RoomCount, &s.TotalCarpetableArea, &s.TotalLinearMetres, &created); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		s.CreatedAt = parseTime(created)
		out = append(out, s)
	}
	return out, rows.Err()
}

func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// OpenSQLite opens (and creates if needed) the sqlite database at dbPath.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
