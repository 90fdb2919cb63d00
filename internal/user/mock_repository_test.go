package user

import (
	"context"
	"fmt"
	"sync"
)

type mockRepository struct {
	mu      sync.Mutex
	users   map[string]*User
	nextID  int
	lookErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[string]*User)}
}

func (m *mockRepository) CreateUser(_ context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	user.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", m.nextID)
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockRepository) GetUserByID(_ context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lookErr != nil {
		return nil, m.lookErr
	}
	user, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockRepository) GetUserByLoginOrEmail(_ context.Context, loginOrEmail string) (*User, error) {
	return m.FindByLoginOrEmail(context.Background(), loginOrEmail, loginOrEmail)
}

func (m *mockRepository) FindByLoginOrEmail(_ context.Context, login, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lookErr != nil {
		return nil, m.lookErr
	}
	for _, user := range m.users {
		if user.Login == login || user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}
