package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/library-duty-api/internal/models"
)

// RosterRepository reads the committee roster: active students, active rooms
// and the classes they belong to.
type RosterRepository struct {
	db *sqlx.DB
}

// NewRosterRepository constructs a RosterRepository.
func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// ListActiveStudents returns active committee members. Grade comes from the
// class year so it stays consistent with the class grouping.
func (r *RosterRepository) ListActiveStudents(ctx context.Context) ([]models.Student, error) {
	const query = `SELECT s.id, s.name, s.class_id, c.year AS grade, s.is_active, s.created_at, s.updated_at
FROM students s JOIN classes c ON c.id = s.class_id
WHERE s.is_active = TRUE ORDER BY c.year ASC, s.class_id ASC, s.name ASC, s.id ASC`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list active students: %w", err)
	}
	return students, nil
}

// ListActiveRooms returns rooms open for duty ordered by id.
func (r *RosterRepository) ListActiveRooms(ctx context.Context) ([]models.Room, error) {
	const query = `SELECT id, name, capacity, is_active, created_at, updated_at FROM rooms WHERE is_active = TRUE ORDER BY id ASC`
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("list active rooms: %w", err)
	}
	return rooms, nil
}

// ListClasses returns every class.
func (r *RosterRepository) ListClasses(ctx context.Context) ([]models.SchoolClass, error) {
	const query = `SELECT id, name, year, created_at FROM classes ORDER BY year ASC, name ASC`
	var classes []models.SchoolClass
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}
