package httpapi

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"raankai/backend/internal/domain"
)

type userStoreStub struct {
	mu      sync.Mutex
	users   map[string]domain.UserAccount
	updates int
}

func (s *userStoreStub) CreateUser(_ context.Context, user domain.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.users == nil {
		s.users = make(map[string]domain.UserAccount)
	}
	s.users[user.Username] = user
	return nil
}

func (s *userStoreStub) ListUsers(_ context.Context) ([]domain.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.UserAccount, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, user)
	}
	return out, nil
}

func (s *userStoreStub) UpdateUserPassword(_ context.Context, username string, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := s.users[username]
	user.Password = password
	s.users[username] = user
	s.updates++
	return nil
}

func adminOnlyStore() *userStoreStub {
	return &userStoreStub{
		users: map[string]domain.UserAccount{
			"admin": {
				Username:  "admin",
				Password:  "admin123",
				Name:      "Owner",
				Role:      domain.RoleAdmin,
				Active:    true,
				CreatedAt: time.Now().UTC(),
			},
		},
	}
}

func TestAuthManagerUpgradesLegacyPlainPassword(t *testing.T) {
	store := adminOnlyStore()

	manager := NewAuthManager("test-secret", time.Hour, store)
	resp, err := manager.Login(domain.LoginRequest{
		Username: "admin",
		Password: "admin123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role %s", resp.Role)
	}

	users, err := store.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	if users[0].Password == "admin123" {
		t.Fatalf("expected password to be upgraded from plain-text")
	}
	if !strings.HasPrefix(users[0].Password, "$2") {
		t.Fatalf("expected bcrypt password hash, got %s", users[0].Password)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	manager := NewAuthManager("test-secret", time.Hour, adminOnlyStore())

	if _, err := manager.Login(domain.LoginRequest{Username: "admin", Password: "wrong"}); err == nil {
		t.Fatal("expected wrong password to fail")
	}
	if _, err := manager.Login(domain.LoginRequest{Username: "ghost", Password: "admin123"}); err == nil {
		t.Fatal("expected unknown user to fail")
	}
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	store := adminOnlyStore()
	store.users["frozen"] = domain.UserAccount{
		Username:  "frozen",
		Password:  "secret99",
		Role:      domain.RoleStaff,
		Active:    false,
		CreatedAt: time.Now().UTC(),
	}

	manager := NewAuthManager("test-secret", time.Hour, store)
	if _, err := manager.Login(domain.LoginRequest{Username: "frozen", Password: "secret99"}); err == nil {
		t.Fatal("expected inactive account login to fail")
	}
}

func TestParseTokenRoundTrip(t *testing.T) {
	manager := NewAuthManager("test-secret", time.Hour, adminOnlyStore())

	resp, err := manager.Login(domain.LoginRequest{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	actor, err := manager.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if actor.Username != "admin" || actor.Role != domain.RoleAdmin {
		t.Fatalf("unexpected actor %+v", actor)
	}
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	issuer := NewAuthManager("secret-one", time.Hour, adminOnlyStore())
	verifier := NewAuthManager("secret-two", time.Hour, adminOnlyStore())

	resp, err := issuer.Login(domain.LoginRequest{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := verifier.ParseToken(resp.AccessToken); err == nil {
		t.Fatal("expected token signed elsewhere to be rejected")
	}
}

func TestRegisterStoresStaffPasswordHash(t *testing.T) {
	store := adminOnlyStore()
	manager := NewAuthManager("test-secret", time.Hour, store)

	staff, err := manager.Register(domain.RegisterRequest{
		Username: "newstaff",
		Password: "pass1234",
		Name:     "New Staff",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if staff.Role != domain.RoleStaff {
		t.Fatalf("registered accounts must be staff, got %s", staff.Role)
	}

	users, err := store.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	var found *domain.UserAccount
	for i := range users {
		if users[i].Username == "newstaff" {
			found = &users[i]
			break
		}
	}
	if found == nil {
		t.Fatalf("expected staff account to be saved")
	}
	if found.Password == "pass1234" {
		t.Fatalf("expected staff password to be hashed")
	}
	if !strings.HasPrefix(found.Password, "$2") {
		t.Fatalf("expected bcrypt hash prefix, got %s", found.Password)
	}

	if _, err := manager.Login(domain.LoginRequest{Username: "newstaff", Password: "pass1234"}); err != nil {
		t.Fatalf("login with registered staff failed: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	manager := NewAuthManager("test-secret", time.Hour, adminOnlyStore())

	cases := []struct {
		name string
		req  domain.RegisterRequest
	}{
		{"short username", domain.RegisterRequest{Username: "ab", Password: "pass1234"}},
		{"username with space", domain.RegisterRequest{Username: "bad name", Password: "pass1234"}},
		{"short password", domain.RegisterRequest{Username: "validname", Password: "123"}},
		{"duplicate username", domain.RegisterRequest{Username: "admin", Password: "pass1234"}},
	}
	for _, tc := range cases {
		if _, err := manager.Register(tc.req); err == nil {
			t.Fatalf("%s: expected register to fail", tc.name)
		}
	}
}

func TestListStaffExcludesAdmins(t *testing.T) {
	store := adminOnlyStore()
	manager := NewAuthManager("test-secret", time.Hour, store)

	if _, err := manager.Register(domain.RegisterRequest{Username: "staffone", Password: "pass1234"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	staff := manager.ListStaff()
	if len(staff) != 1 || staff[0].Username != "staffone" {
		t.Fatalf("expected only staffone, got %+v", staff)
	}
}
