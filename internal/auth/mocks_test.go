package auth

import (
	"context"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/sebuszqo/FinanceTracker/internal/user"
)

type mockUserProvider struct {
	users map[string]*user.User
}

func newMockUserProvider(users ...*user.User) *mockUserProvider {
	m := &mockUserProvider{users: make(map[string]*user.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserProvider) GetUserByID(_ context.Context, userID string) (*user.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserProvider) GetUserByLoginOrEmail(_ context.Context, loginOrEmail string) (*user.User, error) {
	for _, u := range m.users {
		if u.Login == loginOrEmail || u.Email == loginOrEmail {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

type mockTwoFactorRepository struct {
	mu      sync.Mutex
	secrets map[string]string
	users   *mockUserProvider
}

func (m *mockTwoFactorRepository) SaveTwoFactorSecret(_ context.Context, userID, secret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secrets[userID] = secret
	return nil
}

func (m *mockTwoFactorRepository) GetTwoFactorSecret(_ context.Context, userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	secret, ok := m.secrets[userID]
	if !ok {
		return "", ErrUser2FANotEnabled
	}
	return secret, nil
}

func (m *mockTwoFactorRepository) EnableTwoFactor(_ context.Context, userID, method string) error {
	u := m.users.users[userID]
	u.TwoFactorEnabled = true
	u.TwoFactorMethod = method
	return nil
}

func testUser(id, login, password string) *user.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return &user.User{
		ID:           id,
		Email:        login + "@example.com",
		Login:        login,
		PasswordHash: string(hash),
	}
}
