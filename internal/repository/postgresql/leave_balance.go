package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/peoplemesh/hrms-backend-go/internal/domain/leave"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/database"
)

type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepository{db: db}
}

func (r *leaveBalanceRepository) Seed(ctx context.Context, employeeID string, entitlements map[leave.Category]int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (id, employee_id, category, remaining_days, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (employee_id, category) DO NOTHING
	`

	// Ledger order keeps seeding deterministic.
	for _, category := range leave.Categories() {
		days, ok := entitlements[category]
		if !ok {
			continue
		}
		if _, err := q.Exec(ctx, query, uuid.New().String(), employeeID, category, days); err != nil {
			return fmt.Errorf("failed to seed leave balance for %s: %w", category, err)
		}
	}

	return nil
}

func (r *leaveBalanceRepository) Get(ctx context.Context, employeeID string, category leave.Category) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, category, remaining_days, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND category = $2
	`

	var b leave.Balance
	err := q.QueryRow(ctx, query, employeeID, category).Scan(
		&b.ID, &b.EmployeeID, &b.Category, &b.RemainingDays, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return b, nil
}

func (r *leaveBalanceRepository) GetAll(ctx context.Context, employeeID string) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, category, remaining_days, updated_at
		FROM leave_balances
		WHERE employee_id = $1
		ORDER BY category
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		var b leave.Balance
		if err := rows.Scan(&b.ID, &b.EmployeeID, &b.Category, &b.RemainingDays, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leave balances: %w", err)
	}

	return balances, nil
}

// Decrement is a single UPDATE so concurrent approvals serialize on
// the row lock. No floor: the balance may go negative.
func (r *leaveBalanceRepository) Decrement(ctx context.Context, employeeID string, category leave.Category, days int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET remaining_days = remaining_days - $3, updated_at = NOW()
		WHERE employee_id = $1 AND category = $2
	`

	tag, err := q.Exec(ctx, query, employeeID, category, days)
	if err != nil {
		return fmt.Errorf("failed to decrement leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}

	return nil
}
