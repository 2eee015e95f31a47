package mysql

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the mensajes table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const q = `
CREATE TABLE IF NOT EXISTS mensajes (
  id          BIGINT AUTO_INCREMENT PRIMARY KEY,
  batch_id    VARCHAR(36)  NOT NULL,
  fecha       DATETIME     NOT NULL,
  usuario     VARCHAR(255) NOT NULL DEFAULT '',
  red_social  VARCHAR(64)  NOT NULL DEFAULT '',
  empresa     VARCHAR(255) NOT NULL DEFAULT 'unknown',
  servicio    VARCHAR(255) NOT NULL DEFAULT 'unknown',
  mensaje     TEXT         NOT NULL,
  sentimiento VARCHAR(16)  NOT NULL,
  INDEX idx_mensajes_empresa_servicio (empresa, servicio)
);
`
	_, err := db.ExecContext(ctx, q)
	return err
}
