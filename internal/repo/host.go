// Package repo contains all database access logic for the host locator API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sandwichproject/host-locator/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// hostColumns is the SELECT list shared by every host query, in scanHost order.
const hostColumns = `id, name, area, neighborhood, phone, hours, notes,
		lat, lng, open_time, close_time, thursday_open_time, thursday_close_time,
		available, created_at, updated_at`

// HostRepo defines the persistence operations for Hosts.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type HostRepo interface {
	// Create inserts a new host and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, host domain.Host) (domain.Host, error)

	// GetByID retrieves a single host by its integer primary key.
	// Returns domain.ErrNotFound if no host with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Host, error)

	// List returns all hosts ordered by name. The locator's filtering and
	// ranking happen in memory over this list, matching the in-memory host
	// collection the geo utilities are specified against.
	List(ctx context.Context) ([]domain.Host, error)

	// ListPaged returns one page of hosts ordered by name and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Host, int64, error)

	// Update overwrites the mutable fields of an existing host and returns the
	// updated record. Returns domain.ErrNotFound if no host with that ID exists.
	Update(ctx context.Context, host domain.Host) (domain.Host, error)

	// Delete removes a host by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}

// pgHostRepo is the Postgres implementation of HostRepo.
type pgHostRepo struct {
	db db
}

// NewHostRepo constructs a HostRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewHostRepo(db db) HostRepo {
	return &pgHostRepo{db: db}
}

// Create inserts a new host row and returns the full persisted record.
func (r *pgHostRepo) Create(ctx context.Context, host domain.Host) (domain.Host, error) {
	q := `
		INSERT INTO hosts (name, area, neighborhood, phone, hours, notes,
			lat, lng, open_time, close_time, thursday_open_time, thursday_close_time, available)
		VALUES (@name, @area, @neighborhood, @phone, @hours, @notes,
			@lat, @lng, @open_time, @close_time, @thursday_open_time, @thursday_close_time, @available)
		RETURNING ` + hostColumns

	row := r.db.QueryRow(ctx, q, hostArgs(host))
	result, err := scanHost(row)
	if err != nil {
		return domain.Host{}, fmt.Errorf("repo.HostRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a host by primary key.
func (r *pgHostRepo) GetByID(ctx context.Context, id int64) (domain.Host, error) {
	q := `SELECT ` + hostColumns + ` FROM hosts WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanHost(row)
	if err != nil {
		return domain.Host{}, fmt.Errorf("repo.HostRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all hosts ordered by name.
func (r *pgHostRepo) List(ctx context.Context) ([]domain.Host, error) {
	q := `SELECT ` + hostColumns + ` FROM hosts ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.HostRepo.List: %w", err)
	}
	defer rows.Close()

	var hosts []domain.Host
	for rows.Next() {
		h, err := scanHost(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.HostRepo.List: scan: %w", err)
		}
		hosts = append(hosts, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.HostRepo.List: rows: %w", err)
	}

	return hosts, nil
}

// ListPaged returns one page of hosts ordered by name, plus the total count.
func (r *pgHostRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Host, int64, error) {
	q := `SELECT ` + hostColumns + `, count(*) OVER () AS total
		FROM hosts
		ORDER BY name
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.HostRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var (
		hosts []domain.Host
		total int64
	)
	for rows.Next() {
		h, err := scanHostWithTotal(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.HostRepo.ListPaged: scan: %w", err)
		}
		hosts = append(hosts, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.HostRepo.ListPaged: rows: %w", err)
	}

	// An empty page past the end still needs the true total.
	if hosts == nil && total == 0 {
		row := r.db.QueryRow(ctx, `SELECT count(*) FROM hosts`)
		if err := row.Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("repo.HostRepo.ListPaged: count: %w", err)
		}
	}

	return hosts, total, nil
}

// Update overwrites the mutable fields of a host and returns the updated record.
func (r *pgHostRepo) Update(ctx context.Context, host domain.Host) (domain.Host, error) {
	q := `
		UPDATE hosts
		SET name                = @name,
		    area                = @area,
		    neighborhood        = @neighborhood,
		    phone               = @phone,
		    hours               = @hours,
		    notes               = @notes,
		    lat                 = @lat,
		    lng                 = @lng,
		    open_time           = @open_time,
		    close_time          = @close_time,
		    thursday_open_time  = @thursday_open_time,
		    thursday_close_time = @thursday_close_time,
		    available           = @available,
		    updated_at          = now()
		WHERE id = @id
		RETURNING ` + hostColumns

	args := hostArgs(host)
	args["id"] = host.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanHost(row)
	if err != nil {
		return domain.Host{}, fmt.Errorf("repo.HostRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a host by primary key.
func (r *pgHostRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM hosts WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.HostRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.HostRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// hostArgs maps the mutable host fields to named SQL arguments.
func hostArgs(host domain.Host) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":                host.Name,
		"area":                host.Area,
		"neighborhood":        host.Neighborhood,
		"phone":               host.Phone,
		"hours":               host.Hours,
		"notes":               host.Notes,
		"lat":                 host.Lat,
		"lng":                 host.Lng,
		"open_time":           host.OpenTime,
		"close_time":          host.CloseTime,
		"thursday_open_time":  host.ThursdayOpenTime,
		"thursday_close_time": host.ThursdayCloseTime,
		"available":           host.Available,
	}
}

// scanHost maps a single database row into a domain.Host.
func scanHost(s scanner) (domain.Host, error) {
	var h domain.Host
	err := s.Scan(
		&h.ID, &h.Name, &h.Area, &h.Neighborhood, &h.Phone, &h.Hours, &h.Notes,
		&h.Lat, &h.Lng, &h.OpenTime, &h.CloseTime, &h.ThursdayOpenTime, &h.ThursdayCloseTime,
		&h.Available, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Host{}, domain.ErrNotFound
		}
		return domain.Host{}, err
	}
	return h, nil
}

// scanHostWithTotal scans a host row that carries a trailing window-function total.
func scanHostWithTotal(s scanner, total *int64) (domain.Host, error) {
	var h domain.Host
	err := s.Scan(
		&h.ID, &h.Name, &h.Area, &h.Neighborhood, &h.Phone, &h.Hours, &h.Notes,
		&h.Lat, &h.Lng, &h.OpenTime, &h.CloseTime, &h.ThursdayOpenTime, &h.ThursdayCloseTime,
		&h.Available, &h.CreatedAt, &h.UpdatedAt, total,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Host{}, domain.ErrNotFound
		}
		return domain.Host{}, err
	}
	return h, nil
}
