package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the invoicing store.
var Migrations = migrate.NewGroup("invoicing")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_invoicing_invoices",
			Version: "20240101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS invoicing_invoices (
    id                 TEXT PRIMARY KEY,
    number             TEXT NOT NULL,
    customer_name      TEXT NOT NULL DEFAULT '',
    status             TEXT NOT NULL DEFAULT 'draft',
    currency           TEXT NOT NULL DEFAULT '',
    total_amount_cents BIGINT NOT NULL DEFAULT 0,
    amount_paid_cents  BIGINT NOT NULL DEFAULT 0,
    line_items         JSONB NOT NULL DEFAULT '[]',
    payments           JSONB NOT NULL DEFAULT '[]',
    finalized_at       TIMESTAMPTZ,
    paid_at            TIMESTAMPTZ,
    created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_invoicing_invoices_number ON invoicing_invoices (number);
CREATE INDEX IF NOT EXISTS idx_invoicing_invoices_status ON invoicing_invoices (status);
CREATE INDEX IF NOT EXISTS idx_invoicing_invoices_created ON invoicing_invoices (created_at);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS invoicing_invoices`)
				return err
			},
		},
	)
}
