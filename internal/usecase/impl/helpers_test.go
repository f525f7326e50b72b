package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"tasklist/internal/domain/entity"
	"tasklist/internal/domain/repository"
	"tasklist/internal/domain/service"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- repository fakes ---

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	user, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	key := strings.ToLower(user.Email)
	if _, ok := r.byEmail[key]; ok {
		return repository.ErrDuplicateEmail
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()
	r.byEmail[key] = user

	return nil
}

type fakeTodoRepo struct {
	todos map[uuid.UUID]*entity.Todo
	// clock makes creation times strictly increasing so ordering is
	// testable. It starts in the past so real time.Now() timestamps set by
	// the service always sort after it.
	clock time.Time
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{
		todos: make(map[uuid.UUID]*entity.Todo),
		clock: time.Now().UTC().Add(-time.Hour),
	}
}

func (r *fakeTodoRepo) Create(_ context.Context, todo *entity.Todo) error {
	r.clock = r.clock.Add(time.Second)
	todo.ID = uuid.New()
	todo.CreatedAt = r.clock
	todo.UpdatedAt = r.clock

	copied := *todo
	r.todos[todo.ID] = &copied

	return nil
}

func (r *fakeTodoRepo) FindByIDAndOwner(_ context.Context, id, ownerID uuid.UUID) (*entity.Todo, error) {
	todo, ok := r.todos[id]
	if !ok || todo.UserID != ownerID {
		return nil, repository.ErrTodoNotFound
	}

	copied := *todo

	return &copied, nil
}

func (r *fakeTodoRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, offset, limit int) ([]*entity.Todo, int64, error) {
	var owned []*entity.Todo
	for _, todo := range r.todos {
		if todo.UserID == ownerID {
			copied := *todo
			owned = append(owned, &copied)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	total := int64(len(owned))
	if offset >= len(owned) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}

	return owned[offset:end], total, nil
}

func (r *fakeTodoRepo) Update(_ context.Context, todo *entity.Todo) error {
	existing, ok := r.todos[todo.ID]
	if !ok || existing.UserID != todo.UserID {
		return repository.ErrTodoNotFound
	}

	copied := *todo
	copied.CreatedAt = existing.CreatedAt
	r.todos[todo.ID] = &copied

	return nil
}

func (r *fakeTodoRepo) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	existing, ok := r.todos[id]
	if !ok || existing.UserID != ownerID {
		return repository.ErrTodoNotFound
	}

	delete(r.todos, id)

	return nil
}

// --- transaction fake ---

type fakeRepoFactory struct {
	userRepo repository.UserRepository
	todoRepo repository.TodoRepository
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository { return f.userRepo }
func (f *fakeRepoFactory) TodoRepo() repository.TodoRepository { return f.todoRepo }

type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (tm *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(tm.factory)
}

// --- service fakes ---

type fakeHasher struct{}

func (fakeHasher) Hash(password string) ([]byte, []byte, error) {
	return []byte("digest:" + password), []byte("fixed-salt"), nil
}

func (fakeHasher) Verify(password string, hash, _ []byte) bool {
	return string(hash) == "digest:"+password
}

func (fakeHasher) ValidatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 64 {
		return fmt.Errorf("password length out of bounds")
	}

	return nil
}

type fakeTokenService struct {
	issued map[string]*service.Claims
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{issued: make(map[string]*service.Claims)}
}

func (s *fakeTokenService) Issue(userID uuid.UUID, email, name string) (string, time.Time, error) {
	token := "token-" + uuid.NewString()
	s.issued[token] = &service.Claims{UserID: userID, Email: email, Name: name}

	return token, time.Now().Add(time.Hour), nil
}

func (s *fakeTokenService) Verify(tokenString string) (*service.Claims, error) {
	claims, ok := s.issued[tokenString]
	if !ok {
		return nil, service.ErrTokenSignatureInvalid
	}

	return claims, nil
}
