package ledger

import (
	"context"
	"sort"
	"strings"
	"sync"

	"accessdesk/pkg/requestcontext"
	"accessdesk/pkg/sentinel"
)

// InMemoryStore backs unit tests and local runs. Records live in insertion
// order; IDs are assigned from a monotonic counter.
type InMemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	records []*Record
	byID    map[int64]*Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1, byID: make(map[int64]*Record)}
}

func (s *InMemoryStore) Create(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextID
	s.nextID++
	rec.CreatedAt = requestcontext.Now(ctx)

	stored := *rec
	s.records = append(s.records, &stored)
	s.byID[stored.ID] = &stored
	return nil
}

func (s *InMemoryStore) Resolve(ctx context.Context, id int64, res Resolution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok || rec.Resolved() {
		return sentinel.ErrNotFound
	}

	now := requestcontext.Now(ctx)
	status := res.Status
	rec.DataRequest = res.DataRequest
	rec.DataResponse = res.DataResponse
	rec.RequestStatus = &status
	rec.RequestMessage = res.Message
	rec.ResolvedAt = &now
	return nil
}

func (s *InMemoryStore) List(_ context.Context, q ListQuery) (*Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]Record, 0, len(s.records))
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	for _, rec := range s.records {
		if needle != "" && !matchesSearch(rec, needle) {
			continue
		}
		matched = append(matched, *rec)
	}

	sortRecords(matched, q)
	return paginate(matched, q), nil
}

// ListByUserApp returns all records for a target user and application, oldest
// first. Test helper for audit-trail assertions.
func (s *InMemoryStore) ListByUserApp(employeeID, appName string) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Record
	for _, rec := range s.records {
		if rec.EmployeeID == employeeID && rec.AppName == appName {
			out = append(out, *rec)
		}
	}
	return out
}

func matchesSearch(rec *Record, needle string) bool {
	return strings.Contains(strings.ToLower(rec.EmployeeID), needle) ||
		strings.Contains(strings.ToLower(rec.EmployeeName), needle) ||
		strings.Contains(strings.ToLower(rec.AppName), needle)
}

func sortRecords(records []Record, q ListQuery) {
	field := q.SortField
	desc := q.SortDescending
	if field == "" {
		field, desc = "id", true
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := &records[i], &records[j]
		if desc {
			a, b = b, a
		}
		switch field {
		case "employee_id":
			return a.EmployeeID < b.EmployeeID
		case "employee_name":
			return a.EmployeeName < b.EmployeeName
		case "app_name":
			return a.AppName < b.AppName
		default:
			return a.ID < b.ID
		}
	})
}

func paginate(records []Record, q ListQuery) *Page {
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}

	total := int64(len(records))
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	start := (page - 1) * pageSize
	if start > len(records) {
		start = len(records)
	}
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}

	return &Page{
		Records:    records[start:end],
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
