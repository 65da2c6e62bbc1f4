// =============================================================================
// Coupon Settlement System - MySQL Settlement Store
// =============================================================================
//
// MySQL/MariaDB-backed implementation of the settlement ledger. Accepts
// mysql:// and mariadb:// URLs as well as raw driver DSNs.
//
// =============================================================================

package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
)

const createTableStmt = `
CREATE TABLE IF NOT EXISTS settlements (
	id               VARCHAR(36)  NOT NULL PRIMARY KEY,
	vendor_code      VARCHAR(64)  NOT NULL,
	total_amount     INT          NOT NULL,
	message          TEXT         NOT NULL,
	settlement_month CHAR(7)      NOT NULL,
	item_count       INT          NOT NULL,
	schema_tag       VARCHAR(16)  NOT NULL,
	status           VARCHAR(16)  NOT NULL,
	created_at       DATETIME     NOT NULL
)`

// MySQLStore records settlement documents in a MySQL table.
type MySQLStore struct {
	db *sql.DB
}

// OpenMySQL opens the ledger database and ensures the settlements table
// exists.
func OpenMySQL(ctx context.Context, dsn string) (*MySQLStore, error) {
	driverDSN, err := toDriverDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", driverDSN)
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if _, err := db.ExecContext(ctx, createTableStmt); err != nil {
		db.Close()
		return nil, fmt.Errorf("create settlements table: %w", err)
	}

	return &MySQLStore{db: db}, nil
}

// toDriverDSN converts mysql:// or mariadb:// URLs to the driver DSN format.
// Anything else is passed through unchanged.
func toDriverDSN(dsn string) (string, error) {
	if !strings.HasPrefix(dsn, "mysql://") && !strings.HasPrefix(dsn, "mariadb://") {
		return dsn, nil
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}

	user := ""
	pass := ""
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	db := strings.TrimPrefix(u.Path, "/")
	if user == "" || u.Host == "" || db == "" {
		return "", fmt.Errorf("incomplete dsn: user, host and database are required")
	}

	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=Local&interpolateParams=true",
		user, pass, u.Host, db), nil
}

// RecordSettlement inserts the document and returns its generated id.
func (s *MySQLStore) RecordSettlement(ctx context.Context, doc SettlementDocument) (string, error) {
	id := uuid.NewString()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settlements
		 (id, vendor_code, total_amount, message, settlement_month, item_count, schema_tag, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, doc.VendorCode, doc.TotalAmount, doc.Message, doc.SettlementMonth,
		doc.ItemCount, doc.SchemaTag, doc.Status, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert settlement for %s: %w", doc.VendorCode, err)
	}

	return id, nil
}

// Ping verifies the database is reachable.
func (s *MySQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database handle.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
