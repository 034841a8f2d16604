package screens

import (
	"context"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/client/router"
	"github.com/dmitrijs2005/useradmin/internal/client/services"
)

// DefaultPageSize is the number of records per list page.
const DefaultPageSize = 5

// List is the search/list screen. Pages are 1-based.
type List struct {
	users    services.UserService
	notify   Notifier
	nav      Navigator
	pageSize int

	field   models.SearchField
	query   string
	results []models.User
	page    int
}

func NewList(users services.UserService, n Notifier, nav Navigator, pageSize int) *List {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &List{
		users:    users,
		notify:   n,
		nav:      nav,
		pageSize: pageSize,
		field:    models.FieldFirstName,
		page:     1,
	}
}

// Refresh re-fetches the current filter and keeps the page in range.
func (s *List) Refresh(ctx context.Context) error {
	users, err := s.users.Search(ctx, s.field, s.query)
	if err != nil {
		s.results = nil
		s.page = 1
		failure(s.notify, err, MsgFetchFailed)
		return err
	}
	s.results = users
	s.page = min(s.page, max(s.Pages(), 1))
	return nil
}

// SetField switches the search attribute, re-fetches and returns to page 1.
func (s *List) SetField(ctx context.Context, f models.SearchField) error {
	s.field = f
	s.page = 1
	return s.Refresh(ctx)
}

// SetQuery replaces the query, re-fetches and returns to page 1.
func (s *List) SetQuery(ctx context.Context, q string) error {
	s.query = q
	s.page = 1
	return s.Refresh(ctx)
}

func (s *List) Field() models.SearchField { return s.field }
func (s *List) Query() string { return s.query }
func (s *List) Total() int { return len(s.results) }
func (s *List) Current() int { return s.page }
func (s *List) PageSize() int { return s.pageSize }

// Pages is ceil(Total / PageSize).
func (s *List) Pages() int {
	return (len(s.results) + s.pageSize - 1) / s.pageSize
}

// Page returns the records of the current page.
func (s *List) Page() []models.User {
	start := (s.page - 1) * s.pageSize
	if start >= len(s.results) {
		return nil
	}
	end := min(start+s.pageSize, len(s.results))
	return s.results[start:end]
}

func (s *List) Next() {
	if s.page < s.Pages() {
		s.page++
	}
}

func (s *List) Prev() {
	if s.page > 1 {
		s.page--
	}
}

// Goto jumps to page n and reports whether n exists.
func (s *List) Goto(n int) bool {
	if n < 1 || n > s.Pages() {
		return false
	}
	s.page = n
	return true
}

// Delete removes the record and re-fetches.
func (s *List) Delete(ctx context.Context, id models.ID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		failure(s.notify, err, MsgDeleteFailed)
		return err
	}
	s.notify.Success(MsgUserDeleted)
	return s.Refresh(ctx)
}

// Edit navigates to the edit screen of id.
func (s *List) Edit(id models.ID) {
	s.nav.Navigate(router.EditUserPath(id.String()))
}
