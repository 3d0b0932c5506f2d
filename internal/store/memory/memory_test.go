package memory

import (
	"context"
	"testing"
)

func TestNewIsEmpty(t *testing.T) {
	s := New()

	parts, err := s.ListChickenParts(context.Background())
	if err != nil {
		t.Fatalf("list parts: %v", err)
	}
	if len(parts) != 0 {
		t.Fatalf("expected no parts, got %d", len(parts))
	}

	users, err := s.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no user accounts, got %d", len(users))
	}
}

func TestNewSeededHasCatalogAndUsers(t *testing.T) {
	s := NewSeeded()

	parts, err := s.ListChickenParts(context.Background())
	if err != nil {
		t.Fatalf("list parts: %v", err)
	}
	if len(parts) != 7 {
		t.Fatalf("expected the 7-part catalog, got %d", len(parts))
	}

	users, err := s.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	roles := map[string]string{}
	for _, u := range users {
		roles[u.Username] = u.Role
	}
	if roles["admin"] != "admin" || roles["staff"] != "staff" {
		t.Fatalf("expected seeded admin and staff accounts, got %v", roles)
	}
}
