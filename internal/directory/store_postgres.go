package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"accessdesk/pkg/sentinel"
)

// PostgresStore reads employees and locations from the BPO directory schema.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindEmployee(ctx context.Context, ntlogin string) (*Employee, error) {
	query := `
		SELECT employee_id, email, name, ntlogin, department, location
		FROM employees
		WHERE LOWER(ntlogin) = LOWER($1)
	`

	var emp Employee
	err := s.db.QueryRowContext(ctx, query, ntlogin).Scan(
		&emp.EmployeeID,
		&emp.Email,
		&emp.Name,
		&emp.NTLogin,
		&emp.Department,
		&emp.Location,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query employee: %w", err)
	}
	return &emp, nil
}

func (s *PostgresStore) ListLocations(ctx context.Context) ([]Location, error) {
	query := `
		SELECT location_id, label
		FROM locations
		ORDER BY label
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer rows.Close()

	var locations []Location
	for rows.Next() {
		var loc Location
		if err := rows.Scan(&loc.ID, &loc.Label); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}
	return locations, nil
}
