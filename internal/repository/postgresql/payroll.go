package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/peoplemesh/hrms-backend-go/internal/domain/payroll"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollSelect = `
	SELECT pr.id, pr.employee_id, pr.month, pr.year, pr.basic_salary,
		   pr.allowances, pr.deductions, pr.overtime, pr.bonus, pr.net_salary,
		   pr.status, pr.paid_at, pr.created_at, pr.updated_at,
		   e.full_name AS employee_name, e.employee_code
	FROM payroll_records pr
	JOIN employees e ON e.id = pr.employee_id
`

func scanPayroll(row pgx.Row) (payroll.PayrollRecord, error) {
	var p payroll.PayrollRecord
	var allowancesJSON, deductionsJSON, overtimeJSON []byte

	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Month, &p.Year, &p.BasicSalary,
		&allowancesJSON, &deductionsJSON, &overtimeJSON, &p.Bonus, &p.NetSalary,
		&p.Status, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName, &p.EmployeeCode,
	)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	if err := json.Unmarshal(allowancesJSON, &p.Allowances); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to unmarshal allowances: %w", err)
	}
	if err := json.Unmarshal(deductionsJSON, &p.Deductions); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to unmarshal deductions: %w", err)
	}
	if err := json.Unmarshal(overtimeJSON, &p.Overtime); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to unmarshal overtime: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	allowancesJSON, err := json.Marshal(record.Allowances)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to marshal allowances: %w", err)
	}
	deductionsJSON, err := json.Marshal(record.Deductions)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to marshal deductions: %w", err)
	}
	overtimeJSON, err := json.Marshal(record.Overtime)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to marshal overtime: %w", err)
	}

	query := `
		INSERT INTO payroll_records (
			id, employee_id, month, year, basic_salary,
			allowances, deductions, overtime, bonus, net_salary,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = q.Exec(ctx, query,
		record.ID, record.EmployeeID, record.Month, record.Year, record.BasicSalary,
		allowancesJSON, deductionsJSON, overtimeJSON, record.Bonus, record.NetSalary,
		record.Status, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		// One payslip per (employee, month, year) is held by the store.
		if strings.Contains(err.Error(), "uk_payroll_employee_period") {
			return payroll.PayrollRecord{}, payroll.ErrPayrollAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return record, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPayroll(q.QueryRow(ctx, payrollSelect+` WHERE pr.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := payrollSelect + ` WHERE pr.employee_id = $1 AND pr.month = $2 AND pr.year = $3`

	p, err := scanPayroll(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record by period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("pr.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Month != nil {
		conditions = append(conditions, fmt.Sprintf("pr.month = $%d", argIdx))
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("pr.year = $%d", argIdx))
		args = append(args, *filter.Year)
		argIdx++
	}
	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM payroll_records pr WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	query := fmt.Sprintf(
		payrollSelect+` WHERE %s ORDER BY pr.year DESC, pr.month DESC, e.employee_code LIMIT $%d OFFSET $%d`,
		where, argIdx, argIdx+1,
	)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read payroll records: %w", err)
	}

	return records, total, nil
}

func (r *payrollRepository) UpdateStatus(ctx context.Context, id string, status payroll.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = $2,
			paid_at = CASE WHEN $2 = 'paid' THEN NOW() ELSE paid_at END,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update payroll status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}

	return nil
}
