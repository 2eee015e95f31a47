package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/andresmx/sentimsg/internal/domain/messages"
)

type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Save inserts one classified message and fills in its store-assigned ID.
func (r *MessageRepository) Save(ctx context.Context, m *domain.Message) error {
	const q = `
INSERT INTO mensajes (batch_id, fecha, usuario, red_social, empresa, servicio, mensaje, sentimiento)
VALUES (?,?,?,?,?,?,?,?);
`
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	res, err := r.db.ExecContext(ctx, q,
		m.BatchID, ts, m.User, m.Platform,
		orUnknown(m.Company), orUnknown(m.Service),
		m.Body, string(m.Sentiment),
	)
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		m.ID = id
	}
	return nil
}

// CountBySentiment returns sentiment buckets, optionally filtered by
// company and service.
func (r *MessageRepository) CountBySentiment(ctx context.Context, f domain.Filter) (map[domain.Sentiment]int, error) {
	q := `SELECT sentimiento, COUNT(*) FROM mensajes`
	var (
		conds []string
		args  []any
	)
	if f.Company != "" {
		conds = append(conds, "empresa = ?")
		args = append(args, f.Company)
	}
	if f.Service != "" {
		conds = append(conds, "servicio = ?")
		args = append(args, f.Service)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " GROUP BY sentimiento;"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[domain.Sentiment]int)
	for rows.Next() {
		var s string
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		out[domain.Sentiment(s)] = n
	}
	return out, rows.Err()
}

// Distinct lists distinct field values in first-insert order.
func (r *MessageRepository) Distinct(ctx context.Context, field domain.Field, f domain.Filter) ([]string, error) {
	var (
		q    string
		args []any
	)
	switch field {
	case domain.FieldCompany:
		q = `SELECT empresa FROM mensajes GROUP BY empresa ORDER BY MIN(id);`
	case domain.FieldService:
		q = `SELECT servicio FROM mensajes WHERE empresa = ? GROUP BY servicio ORDER BY MIN(id);`
		args = append(args, f.Company)
	default:
		return nil, fmt.Errorf("unsupported distinct field: %q", field)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, orUnknown(v))
	}
	return out, rows.Err()
}

func (r *MessageRepository) EarliestTimestamp(ctx context.Context) (time.Time, bool, error) {
	const q = `SELECT fecha FROM mensajes ORDER BY fecha ASC LIMIT 1;`
	var ts time.Time
	err := r.db.QueryRowContext(ctx, q).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return ts, true, nil
}

// GroupedCounts returns one row per (company, service, sentiment), ordered
// by each group's first-inserted message.
func (r *MessageRepository) GroupedCounts(ctx context.Context) ([]domain.GroupCount, error) {
	const q = `
SELECT empresa, servicio, sentimiento, COUNT(*)
FROM mensajes
GROUP BY empresa, servicio, sentimiento
ORDER BY MIN(id);
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.GroupCount
	for rows.Next() {
		var g domain.GroupCount
		var sentiment string
		if err := rows.Scan(&g.Company, &g.Service, &sentiment, &g.Count); err != nil {
			return nil, err
		}
		g.Company = orUnknown(g.Company)
		g.Service = orUnknown(g.Service)
		g.Sentiment = domain.Sentiment(sentiment)
		out = append(out, g)
	}
	return out, rows.Err()
}

// orUnknown maps empty column values to the unknown sentinel.
func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return domain.CompanyUnknown
	}
	return s
}
