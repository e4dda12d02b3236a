package main

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := hashPassword("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")); err != nil {
		t.Errorf("hash does not verify: %v", err)
	}
	if cost, _ := bcrypt.Cost([]byte(hash)); cost != bcrypt.MinCost {
		t.Errorf("expected cost %d, got %d", bcrypt.MinCost, cost)
	}
}

func TestHashPassword_Rejects(t *testing.T) {
	if _, err := hashPassword("", defaultCost); err == nil {
		t.Error("expected error for empty password")
	}
	if _, err := hashPassword("x", 2); err == nil {
		t.Error("expected error for cost below minimum")
	}
	if _, err := hashPassword("x", 40); err == nil {
		t.Error("expected error for cost above maximum")
	}
}
