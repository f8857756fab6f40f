package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/sandwichproject/host-locator/internal/domain"
)

// ChangeRepo defines the persistence operations for the host audit trail.
type ChangeRepo interface {
	// Record appends an audit entry and returns the persisted record
	// (with DB-generated id and changed_at populated).
	Record(ctx context.Context, change domain.HostChange) (domain.HostChange, error)

	// ListByHost returns all audit entries for a host, newest first.
	// Entries survive the host's deletion.
	ListByHost(ctx context.Context, hostID int64) ([]domain.HostChange, error)
}

// pgChangeRepo is the Postgres implementation of ChangeRepo.
type pgChangeRepo struct {
	db db
}

// NewChangeRepo constructs a ChangeRepo backed by the provided db connection.
func NewChangeRepo(db db) ChangeRepo {
	return &pgChangeRepo{db: db}
}

// Record appends one audit row.
func (r *pgChangeRepo) Record(ctx context.Context, change domain.HostChange) (domain.HostChange, error) {
	const q = `
		INSERT INTO host_changes (host_id, action, actor)
		VALUES (@host_id, @action, @actor)
		RETURNING id, host_id, action, actor, changed_at`

	args := pgx.NamedArgs{
		"host_id": change.HostID,
		"action":  change.Action,
		"actor":   change.Actor,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanChange(row)
	if err != nil {
		return domain.HostChange{}, fmt.Errorf("repo.ChangeRepo.Record: %w", err)
	}
	return result, nil
}

// ListByHost returns the audit trail for a host, newest first.
func (r *pgChangeRepo) ListByHost(ctx context.Context, hostID int64) ([]domain.HostChange, error) {
	const q = `
		SELECT id, host_id, action, actor, changed_at
		FROM host_changes
		WHERE host_id = @host_id
		ORDER BY changed_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"host_id": hostID})
	if err != nil {
		return nil, fmt.Errorf("repo.ChangeRepo.ListByHost: %w", err)
	}
	defer rows.Close()

	changes := []domain.HostChange{}
	for rows.Next() {
		c, err := scanChange(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ChangeRepo.ListByHost: scan: %w", err)
		}
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ChangeRepo.ListByHost: rows: %w", err)
	}
	return changes, nil
}

// scanChange maps a single database row into a domain.HostChange.
func scanChange(s scanner) (domain.HostChange, error) {
	var (
		c  domain.HostChange
		id pgtype.UUID
	)
	err := s.Scan(&id, &c.HostID, &c.Action, &c.Actor, &c.ChangedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.HostChange{}, domain.ErrNotFound
		}
		return domain.HostChange{}, err
	}
	c.ID = uuid.UUID(id.Bytes)
	return c, nil
}
