package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/peoplemesh/hrms-backend-go/internal/domain/master/position"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/database"
)

type positionRepository struct {
	db *database.DB
}

func NewPositionRepository(db *database.DB) position.PositionRepository {
	return &positionRepository{db: db}
}

func (r *positionRepository) Create(ctx context.Context, p position.Position) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO positions (id, title, department_id, min_salary, max_salary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query, p.ID, p.Title, p.DepartmentID, p.MinSalary, p.MaxSalary, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return position.Position{}, fmt.Errorf("failed to create position: %w", err)
	}

	return p, nil
}

func (r *positionRepository) GetByID(ctx context.Context, id string) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, title, department_id, min_salary, max_salary, created_at, updated_at
		FROM positions
		WHERE id = $1
	`

	var p position.Position
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.DepartmentID, &p.MinSalary, &p.MaxSalary, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return position.Position{}, position.ErrPositionNotFound
		}
		return position.Position{}, fmt.Errorf("failed to get position: %w", err)
	}

	return p, nil
}

func (r *positionRepository) List(ctx context.Context) ([]position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, title, department_id, min_salary, max_salary, created_at, updated_at
		FROM positions
		ORDER BY title
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var positions []position.Position
	for rows.Next() {
		var p position.Position
		if err := rows.Scan(&p.ID, &p.Title, &p.DepartmentID, &p.MinSalary, &p.MaxSalary, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}

	return positions, nil
}

func (r *positionRepository) Update(ctx context.Context, p position.Position) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE positions
		SET title = $2, department_id = $3, min_salary = $4, max_salary = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, p.ID, p.Title, p.DepartmentID, p.MinSalary, p.MaxSalary, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return position.ErrPositionNotFound
	}

	return nil
}

func (r *positionRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM positions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return position.ErrPositionNotFound
	}

	return nil
}
