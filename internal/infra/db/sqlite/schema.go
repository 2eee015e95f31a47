package sqlite

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the mensajes table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const q = `
CREATE TABLE IF NOT EXISTS mensajes (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  batch_id    TEXT NOT NULL,
  fecha       TIMESTAMP NOT NULL,
  usuario     TEXT NOT NULL DEFAULT '',
  red_social  TEXT NOT NULL DEFAULT '',
  empresa     TEXT NOT NULL DEFAULT 'unknown',
  servicio    TEXT NOT NULL DEFAULT 'unknown',
  mensaje     TEXT NOT NULL DEFAULT '',
  sentimiento TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_mensajes_empresa_servicio ON mensajes (empresa, servicio);
`
	_, err := db.ExecContext(ctx, q)
	return err
}
