package repositories

import (
	"sync"

	"go-todo-api/backend/internal/models"
)

// MemoryTodoRepo はTodoRepositoryのインメモリ実装です。
// テストハーネスがMySQLなしでルーター全体を動かすために使います。
type MemoryTodoRepo struct {
	mu     sync.RWMutex
	nextID int
	todos  map[int]models.Todo
	order  []int // 挿入順を保持
}

// NewMemoryTodoRepo は新しいMemoryTodoRepoインスタンスを作成します。
func NewMemoryTodoRepo() *MemoryTodoRepo {
	return &MemoryTodoRepo{
		nextID: 1,
		todos:  make(map[int]models.Todo),
	}
}

// Create はTodoを保存し、採番したIDをセットして返します。
func (r *MemoryTodoRepo) Create(t *models.Todo) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.nextID
	r.nextID++
	r.todos[t.ID] = *t
	r.order = append(r.order, t.ID)

	created := r.todos[t.ID]
	return &created, nil
}

// FindAll はすべてのTodoを挿入順で返します。
func (r *MemoryTodoRepo) FindAll() ([]*models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var todos []*models.Todo
	for _, id := range r.order {
		t := r.todos[id]
		todos = append(todos, &t)
	}
	return todos, nil
}

// FindByUserID は指定ユーザーが所有するTodoを挿入順で返します。
func (r *MemoryTodoRepo) FindByUserID(userID string) ([]*models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var todos []*models.Todo
	for _, id := range r.order {
		t := r.todos[id]
		if t.UserID == userID {
			todos = append(todos, &t)
		}
	}
	return todos, nil
}

// FindByID は指定されたIDのTodoを返します。
func (r *MemoryTodoRepo) FindByID(id int) (*models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.todos[id]
	if !ok {
		return nil, ErrTodoNotFound
	}
	return &t, nil
}

// Update は指定されたIDのTodoのタイトル・完了状態・更新日時を差し替えます。
func (r *MemoryTodoRepo) Update(id int, t *models.Todo) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.todos[id]
	if !ok {
		return nil, ErrTodoNotFound
	}

	existing.Title = t.Title
	existing.Completed = t.Completed
	existing.UpdatedAt = t.UpdatedAt
	r.todos[id] = existing

	updated := existing
	return &updated, nil
}

// Delete は指定されたIDのTodoを削除します。
func (r *MemoryTodoRepo) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[id]; !ok {
		return ErrTodoNotFound
	}
	delete(r.todos, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// MemoryUserRepo はUserRepositoryのインメモリ実装です。
type MemoryUserRepo struct {
	mu      sync.RWMutex
	users   map[string]models.User // キーはユーザーID
	byEmail map[string]string      // email -> ユーザーID
}

// NewMemoryUserRepo は新しいMemoryUserRepoインスタンスを作成します。
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

// Create はユーザーを保存します。メールアドレスの重複はErrDuplicateEmailを返します。
func (r *MemoryUserRepo) Create(u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[u.Email]; ok {
		return nil, ErrDuplicateEmail
	}
	r.users[u.ID] = *u
	r.byEmail[u.Email] = u.ID

	created := r.users[u.ID]
	return &created, nil
}

// FindByEmail はメールアドレスでユーザーを検索します。
func (r *MemoryUserRepo) FindByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := r.users[id]
	return &u, nil
}
