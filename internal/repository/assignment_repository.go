package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/library-duty-api/internal/models"
)

// ErrLockOutsideTx is returned when a term lock is requested without a transaction.
var ErrLockOutsideTx = errors.New("term lock requires a transaction")

// AssignmentRepository persists duty assignments per term.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// LockTerm takes a transaction-scoped advisory lock for the term so concurrent
// regenerations of the same term run one after another.
func (r *AssignmentRepository) LockTerm(ctx context.Context, exec sqlx.ExtContext, term models.Term) error {
	if exec == nil {
		return ErrLockOutsideTx
	}
	const query = `SELECT pg_advisory_xact_lock(hashtext($1))`
	if _, err := exec.ExecContext(ctx, query, "duty_schedule:"+string(term)); err != nil {
		return fmt.Errorf("lock duty term %s: %w", term, err)
	}
	return nil
}

// ListByTerm returns the term's assignments ordered by day, room and student.
func (r *AssignmentRepository) ListByTerm(ctx context.Context, exec sqlx.ExtContext, term models.Term) ([]models.Assignment, error) {
	const query = `SELECT id, student_id, room_id, day_of_week, term, created_at
FROM duty_assignments WHERE term = $1 ORDER BY day_of_week ASC, room_id ASC, student_id ASC`
	var assignments []models.Assignment
	if err := sqlx.SelectContext(ctx, r.exec(exec), &assignments, query, term); err != nil {
		return nil, fmt.Errorf("list duty assignments: %w", err)
	}
	return assignments, nil
}

// DeleteByTerm removes every assignment of the term and reports how many were removed.
func (r *AssignmentRepository) DeleteByTerm(ctx context.Context, exec sqlx.ExtContext, term models.Term) (int64, error) {
	const query = `DELETE FROM duty_assignments WHERE term = $1`
	result, err := r.exec(exec).ExecContext(ctx, query, term)
	if err != nil {
		return 0, fmt.Errorf("delete duty assignments: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("duty assignments rows affected: %w", err)
	}
	return affected, nil
}

// BulkInsert writes assignments, filling missing ids and timestamps.
func (r *AssignmentRepository) BulkInsert(ctx context.Context, exec sqlx.ExtContext, assignments []models.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	target := r.exec(exec)
	now := time.Now().UTC()

	const query = `
INSERT INTO duty_assignments (id, student_id, room_id, day_of_week, term, created_at)
VALUES (:id, :student_id, :room_id, :day_of_week, :term, :created_at)`

	for i := range assignments {
		item := &assignments[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		if _, err := sqlx.NamedExecContext(ctx, target, query, item); err != nil {
			return fmt.Errorf("insert duty assignment: %w", err)
		}
	}
	return nil
}
