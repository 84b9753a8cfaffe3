// Package sqlite provides the SQLite implementation of storage.Catalog.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/tasklink/tasklink/core"
	"github.com/tasklink/tasklink/storage"
)

// Catalog implements storage.Catalog using SQLite.
// Service names are stored lowercase; all lookups normalize first.
type Catalog struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ storage.Catalog = (*Catalog)(nil)

// NewCatalog opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist. Use
// ":memory:" for an ephemeral catalog.
//
// Returns the storage.Catalog interface to enforce abstraction.
func NewCatalog(dbPath string) (storage.Catalog, error) {
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Catalog{
		db:     db,
		logger: slog.Default().With("component", "sqlite-catalog"),
	}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS services (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_services_name ON services(name);

	CREATE TABLE IF NOT EXISTS supplier_services (
		supplier_id TEXT NOT NULL,
		service_id TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (supplier_id, service_id),
		FOREIGN KEY (service_id) REFERENCES services(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_supplier_services_service ON supplier_services(service_id);
	CREATE INDEX IF NOT EXISTS idx_supplier_services_supplier ON supplier_services(supplier_id);
	`
	_, err := db.Exec(schema)
	return err
}

// ListServiceNames returns the names of all known services.
func (c *Catalog) ListServiceNames(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT name FROM services ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// FindServiceByName retrieves a service by case-insensitive name.
func (c *Catalog) FindServiceByName(ctx context.Context, name string) (*core.Service, error) {
	var service core.Service
	err := c.db.QueryRowContext(ctx,
		`SELECT id, name, description FROM services WHERE name = ?`,
		core.NormalizeServiceName(name),
	).Scan(&service.ID, &service.Name, &service.Description)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: service %q", storage.ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// GetOrCreateService finds a service by case-insensitive name, creating it
// if absent. A concurrent create of the same name resolves to the existing
// row via the unique name constraint.
func (c *Catalog) GetOrCreateService(ctx context.Context, name, description string) (*core.Service, error) {
	normalized := core.NormalizeServiceName(name)
	if err := core.ValidateService(&core.Service{Name: normalized}); err != nil {
		return nil, err
	}

	_, err := c.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO services (id, name, description) VALUES (?, ?, ?)`,
		uuid.New().String(), normalized, description,
	)
	if err != nil {
		return nil, err
	}

	return c.FindServiceByName(ctx, normalized)
}

// LinkSupplierService associates a supplier with a service. Idempotent.
func (c *Catalog) LinkSupplierService(ctx context.Context, supplierID, serviceID string) error {
	if supplierID == "" || serviceID == "" {
		return fmt.Errorf("%w: supplier and service ids are required", storage.ErrInvalidQuery)
	}

	_, err := c.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO supplier_services (supplier_id, service_id) VALUES (?, ?)`,
		supplierID, serviceID,
	)
	return err
}

// SuppliersForService returns the ids of all suppliers linked to the named
// service. An unknown service yields an empty result.
func (c *Catalog) SuppliersForService(ctx context.Context, serviceName string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT ss.supplier_id
		 FROM supplier_services ss
		 JOIN services s ON s.id = ss.service_id
		 WHERE s.name = ?`,
		core.NormalizeServiceName(serviceName),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var supplierIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		supplierIDs = append(supplierIDs, id)
	}
	return supplierIDs, rows.Err()
}

// ServicesForSupplier returns all services a supplier is linked to.
func (c *Catalog) ServicesForSupplier(ctx context.Context, supplierID string) ([]*core.Service, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT s.id, s.name, s.description
		 FROM services s
		 JOIN supplier_services ss ON ss.service_id = s.id
		 WHERE ss.supplier_id = ?
		 ORDER BY s.name`,
		supplierID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*core.Service
	for rows.Next() {
		var service core.Service
		if err := rows.Scan(&service.ID, &service.Name, &service.Description); err != nil {
			return nil, err
		}
		services = append(services, &service)
	}
	return services, rows.Err()
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}
