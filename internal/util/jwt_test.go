package util

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJWTManagerRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	userID := uuid.New()

	token, expiresAt, err := manager.Generate(userID, "asha@example.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if remaining := time.Until(expiresAt); remaining < 59*time.Minute || remaining > time.Hour {
		t.Fatalf("expiry %v away, want about an hour", remaining)
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "asha@example.com" {
		t.Fatalf("Email = %q", claims.Email)
	}
	if claims.Subject != userID.String() {
		t.Fatalf("Subject = %q", claims.Subject)
	}
}

func TestJWTManagerRejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTManager("secret-a", time.Hour).Generate(uuid.New(), "asha@example.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := NewJWTManager("secret-b", time.Hour).Parse(token); err == nil {
		t.Fatal("token signed with another secret must not parse")
	}
}

func TestJWTManagerRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)
	token, _, err := manager.Generate(uuid.New(), "asha@example.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := manager.Parse(token); err == nil {
		t.Fatal("expired token must not parse")
	}
}

func TestJWTManagerRejectsGarbage(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	for _, token := range []string{"", "abc", "a.b.c"} {
		if _, err := manager.Parse(token); err == nil {
			t.Fatalf("Parse(%q) should fail", token)
		}
	}
}
