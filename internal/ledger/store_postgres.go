package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"accessdesk/pkg/requestcontext"
	"accessdesk/pkg/sentinel"
)

// PostgresStore persists audit records in the action_logs table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, rec *Record) error {
	query := `
		INSERT INTO action_logs (
			employee_id, employee_email, employee_name, ip_address, user_agent,
			app_name, app_role, action, actor_id, data_request, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	createdAt := requestcontext.Now(ctx)
	err := s.db.QueryRowContext(ctx, query,
		rec.EmployeeID,
		rec.EmployeeEmail,
		rec.EmployeeName,
		rec.IPAddress,
		rec.UserAgent,
		rec.AppName,
		rec.AppRole,
		rec.Action,
		rec.ActorID,
		nullableJSON(rec.DataRequest),
		createdAt,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("insert action log: %w", err)
	}
	rec.CreatedAt = createdAt
	return nil
}

func (s *PostgresStore) Resolve(ctx context.Context, id int64, res Resolution) error {
	// The resolved_at guard makes resolution single-shot: a second resolve
	// matches zero rows and reports NotFound.
	query := `
		UPDATE action_logs
		SET data_request = $2, data_response = $3, request_status = $4,
		    request_message = $5, resolved_at = $6
		WHERE id = $1 AND resolved_at IS NULL
	`

	result, err := s.db.ExecContext(ctx, query,
		id,
		nullableJSON(res.DataRequest),
		nullableJSON(res.DataResponse),
		res.Status,
		res.Message,
		requestcontext.Now(ctx),
	)
	if err != nil {
		return fmt.Errorf("resolve action log: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("resolve action log: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// sortColumns whitelists client-supplied sort fields.
var sortColumns = map[string]string{
	"id":            "id",
	"employee_id":   "employee_id",
	"employee_name": "employee_name",
	"app_name":      "app_name",
}

func (s *PostgresStore) List(ctx context.Context, q ListQuery) (*Page, error) {
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}

	column, ok := sortColumns[q.SortField]
	direction := "ASC"
	if !ok {
		column, direction = "id", "DESC"
	} else if q.SortDescending {
		direction = "DESC"
	}

	where := ""
	args := []any{}
	if q.Search != "" {
		where = `WHERE employee_id ILIKE $1 OR employee_name ILIKE $1 OR app_name ILIKE $1`
		args = append(args, "%"+q.Search+"%")
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM action_logs %s`, where)
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count action logs: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT id, employee_id, employee_email, employee_name, ip_address,
		       user_agent, app_name, app_role, action, actor_id,
		       data_request, data_response, request_status, request_message,
		       created_at, resolved_at
		FROM action_logs
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, where, column, direction, len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := s.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("query action logs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec           Record
			dataRequest   []byte
			dataResponse  []byte
			requestStatus sql.NullBool
			message       sql.NullString
			resolvedAt    sql.NullTime
		)
		err := rows.Scan(
			&rec.ID,
			&rec.EmployeeID,
			&rec.EmployeeEmail,
			&rec.EmployeeName,
			&rec.IPAddress,
			&rec.UserAgent,
			&rec.AppName,
			&rec.AppRole,
			&rec.Action,
			&rec.ActorID,
			&dataRequest,
			&dataResponse,
			&requestStatus,
			&message,
			&rec.CreatedAt,
			&resolvedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan action log: %w", err)
		}

		rec.DataRequest = dataRequest
		rec.DataResponse = dataResponse
		if requestStatus.Valid {
			status := requestStatus.Bool
			rec.RequestStatus = &status
		}
		if message.Valid {
			rec.RequestMessage = message.String
		}
		if resolvedAt.Valid {
			t := resolvedAt.Time
			rec.ResolvedAt = &t
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate action logs: %w", err)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &Page{
		Records:    records,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
