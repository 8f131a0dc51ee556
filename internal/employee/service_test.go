// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

package employee_test

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ndquang/staffdesk/internal/employee"
	"github.com/ndquang/staffdesk/internal/platform/apperr"
	"github.com/ndquang/staffdesk/internal/platform/sec"
	"github.com/ndquang/staffdesk/pkg/pointer"
	"github.com/ndquang/staffdesk/pkg/textfold"
)

// fakeStore is an in-memory Store used by the service tests.
//
// It mirrors the PostgreSQL semantics the service relies on: NotFound for
// missing rows, Conflict for duplicate emails, and a mutation counter so
// tests can assert the store was never touched.
type fakeStore struct {
	records   map[int64]*employee.Employee
	nextID    int64
	mutations int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[int64]*employee.Employee), nextID: 1}
}

func (s *fakeStore) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	record, ok := s.records[id]
	if !ok {
		return nil, apperr.NotFound("Employee")
	}
	clone := *record
	return &clone, nil
}

func (s *fakeStore) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	for _, record := range s.records {
		if record.Email == email {
			clone := *record
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Employee")
}

func (s *fakeStore) Create(ctx context.Context, e *employee.Employee) error {
	s.mutations++
	for _, record := range s.records {
		if record.Email == e.Email {
			return apperr.Conflict("Record already exists")
		}
	}
	e.ID = s.nextID
	e.CreatedAt = time.Now()
	s.nextID++
	clone := *e
	s.records[e.ID] = &clone
	return nil
}

func (s *fakeStore) Update(ctx context.Context, e *employee.Employee) error {
	s.mutations++
	existing, ok := s.records[e.ID]
	if !ok {
		return apperr.NotFound("Employee")
	}
	for id, record := range s.records {
		if id != e.ID && record.Email == e.Email {
			return apperr.Conflict("Record already exists")
		}
	}
	clone := *e
	clone.CreatedAt = existing.CreatedAt
	s.records[e.ID] = &clone
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, id int64) error {
	s.mutations++
	if _, ok := s.records[id]; !ok {
		return apperr.NotFound("Employee")
	}
	delete(s.records, id)
	return nil
}

func (s *fakeStore) List(ctx context.Context, f employee.Filter, limit, offset int) ([]*employee.Employee, int, error) {
	matched := make([]*employee.Employee, 0, len(s.records))
	for _, record := range s.records {
		if f.Query != "" && !strings.Contains(textfold.Fold(record.Name), textfold.Fold(f.Query)) {
			continue
		}
		clone := *record
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func newTestService(store employee.Store) *employee.Service {
	return employee.NewService(store, sec.NewHasher(bcrypt.MinCost), slog.New(slog.DiscardHandler))
}

/*
TestService_Create verifies validation, hashing, and persistence on create.
*/
func TestService_Create(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)

	record, err := service.Create(context.Background(), employee.CreateInput{
		Name:     "Alice",
		Email:    "Alice@Example.COM",
		Password: "supersecret",
		Level:    sec.LevelStaff,
	})
	require.NoError(t, err)

	assert.NotZero(t, record.ID)
	assert.Equal(t, "alice@example.com", record.Email, "emails are normalized to lowercase")
	assert.NotEqual(t, "supersecret", record.PasswordHash)
	assert.True(t, strings.HasPrefix(record.PasswordHash, "$2a$"))
}

/*
TestService_Create_Invalid verifies malformed input is rejected before any
store call.
*/
func TestService_Create_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input employee.CreateInput
	}{
		{"missing_name", employee.CreateInput{Email: "a@b.com", Password: "longenough"}},
		{"bad_email", employee.CreateInput{Name: "A", Email: "nope", Password: "longenough"}},
		{"short_password", employee.CreateInput{Name: "A", Email: "a@b.com", Password: "short"}},
		{"level_out_of_range", employee.CreateInput{Name: "A", Email: "a@b.com", Password: "longenough", Level: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			service := newTestService(store)

			_, err := service.Create(context.Background(), tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Equal(t, 0, store.mutations, "invalid input must never reach the store")
		})
	}
}

/*
TestService_Create_DuplicateEmail verifies the store's uniqueness answer
surfaces as Conflict.
*/
func TestService_Create_DuplicateEmail(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)

	_, err := service.Create(context.Background(), employee.CreateInput{
		Name: "Alice", Email: "alice@example.com", Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), employee.CreateInput{
		Name: "Impostor", Email: "ALICE@example.com", Password: "supersecret",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

/*
TestService_Patch verifies partial updates touch only the provided fields.
*/
func TestService_Patch(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)

	created, err := service.Create(context.Background(), employee.CreateInput{
		Name: "Alice", Email: "alice@example.com", Password: "supersecret",
	})
	require.NoError(t, err)

	patched, err := service.Patch(context.Background(), created.ID, employee.PatchInput{Name: pointer.To("Alice Cooper")})
	require.NoError(t, err)

	assert.Equal(t, "Alice Cooper", patched.Name)
	assert.Equal(t, created.Email, patched.Email)
	assert.Equal(t, created.PasswordHash, patched.PasswordHash)
	assert.Equal(t, created.Level, patched.Level)
}

/*
TestService_Patch_Empty verifies that a no-op patch is rejected before any
store access.
*/
func TestService_Patch_Empty(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)

	created, err := service.Create(context.Background(), employee.CreateInput{
		Name: "Alice", Email: "alice@example.com", Password: "supersecret",
	})
	require.NoError(t, err)

	mutationsBefore := store.mutations
	_, err = service.Patch(context.Background(), created.ID, employee.PatchInput{})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Equal(t, "No data to update", ae.Message)
	assert.Equal(t, mutationsBefore, store.mutations)
}

/*
TestService_Patch_Missing verifies patching an unknown ID answers NotFound.
*/
func TestService_Patch_Missing(t *testing.T) {
	service := newTestService(newFakeStore())

	_, err := service.Patch(context.Background(), 404, employee.PatchInput{Name: pointer.To("Nobody")})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestService_Replace verifies the full-replace path rehashes the password and
preserves CreatedAt.
*/
func TestService_Replace(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)

	created, err := service.Create(context.Background(), employee.CreateInput{
		Name: "Alice", Email: "alice@example.com", Password: "supersecret",
	})
	require.NoError(t, err)

	replaced, err := service.Replace(context.Background(), created.ID, employee.ReplaceInput{
		Name:     "Alice Cooper",
		Email:    "cooper@example.com",
		Password: "newpassword",
		Level:    sec.LevelStaff,
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice Cooper", replaced.Name)
	assert.Equal(t, "cooper@example.com", replaced.Email)
	assert.NotEqual(t, created.PasswordHash, replaced.PasswordHash)
	assert.Equal(t, sec.LevelStaff, replaced.Level)

	stored, err := store.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, stored.CreatedAt, "replace must preserve the creation timestamp")
}

/*
TestService_Delete verifies deletion and the NotFound answer for unknown IDs.
*/
func TestService_Delete(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)

	created, err := service.Create(context.Background(), employee.CreateInput{
		Name: "Alice", Email: "alice@example.com", Password: "supersecret",
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))

	_, err = service.Get(context.Background(), created.ID)
	require.Error(t, err)

	err = service.Delete(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_List verifies pagination and the folded name filter.
*/
func TestService_List(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)

	names := []string{"Côté Anna", "Bob Stone", "anna maria"}
	for i, name := range names {
		_, err := service.Create(context.Background(), employee.CreateInput{
			Name:     name,
			Email:    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
			Password: "supersecret",
		})
		require.NoError(t, err, "seed %d", i)
	}

	// Unfiltered, paginated.
	page, total, err := service.List(context.Background(), employee.Filter{}, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 2)

	// Folded filter: "ANNA" matches both "Côté Anna" and "anna maria".
	page, total, err = service.List(context.Background(), employee.Filter{Query: "ANNA"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, page, 2)
}

/*
TestService_ResolveSubject verifies the middleware-facing identity lookup.
*/
func TestService_ResolveSubject(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)

	created, err := service.Create(context.Background(), employee.CreateInput{
		Name: "Alice", Email: "alice@example.com", Password: "supersecret", Level: sec.LevelStaff,
	})
	require.NoError(t, err)

	identity, err := service.ResolveSubject(context.Background(), "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, identity.ID)
	assert.Equal(t, sec.LevelStaff, identity.Level)

	_, err = service.ResolveSubject(context.Background(), "ghost@example.com")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
