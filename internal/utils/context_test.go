// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestAccountIDCtxKey(t *testing.T) {
	if AccountIDCtxKey.String() != "accountID" {
		t.Errorf("expected 'accountID', got '%s'", AccountIDCtxKey.String())
	}
}

func TestGetAccountIDFromContext_Success(t *testing.T) {
	ctx := WithAccountID(context.Background(), "acc-42")

	accountID, ok := GetAccountIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if accountID != "acc-42" {
		t.Errorf("expected accountID='acc-42', got '%s'", accountID)
	}
}

func TestGetAccountIDFromContext_Missing(t *testing.T) {
	ctx := context.Background()

	accountID, ok := GetAccountIDFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if accountID != "" {
		t.Errorf("expected empty accountID, got '%s'", accountID)
	}
}

func TestGetAccountIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), AccountIDCtxKey, 42)

	accountID, ok := GetAccountIDFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
	if accountID != "" {
		t.Errorf("expected empty accountID, got '%s'", accountID)
	}
}

func TestGetAccountIDFromContext_DifferentKey(t *testing.T) {
	otherKey := contextKey("otherKey")
	ctx := context.WithValue(context.Background(), otherKey, "acc-99")

	accountID, ok := GetAccountIDFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false for different key, got true")
	}
	if accountID != "" {
		t.Errorf("expected empty accountID, got '%s'", accountID)
	}
}
