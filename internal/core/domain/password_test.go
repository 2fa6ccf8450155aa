package domain

import (
	"strings"
	"testing"
)

func TestValidatePassword_Accepted(t *testing.T) {
	for _, pw := range []string{"Passw0rd!", "Aa1@aa", "XyZ9$abcdefghijk"} {
		if err := ValidatePassword(pw); err != nil {
			t.Fatalf("%q should be accepted, got %v", pw, err)
		}
	}
}

func TestValidatePassword_Rejected(t *testing.T) {
	cases := []struct {
		name     string
		password string
		ruleHint string
	}{
		{"too short", "Aa1@p", "between 6 and 16"},
		{"too long", "Aa1@" + strings.Repeat("x", 13), "between 6 and 16"},
		{"no uppercase", "passw0rd!", "uppercase"},
		{"no lowercase", "PASSW0RD!", "lowercase"},
		{"no digit", "Password!", "digit"},
		{"no symbol", "Passw0rdd", "one of"},
		{"symbol outside allowed set", "Passw0rd#", "one of"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if err == nil {
				t.Fatalf("%q should be rejected", tc.password)
			}
			wpe, ok := err.(*WeakPasswordError)
			if !ok {
				t.Fatalf("expected *WeakPasswordError, got %T", err)
			}
			if !strings.Contains(wpe.Rule, tc.ruleHint) {
				t.Fatalf("rule %q does not mention %q", wpe.Rule, tc.ruleHint)
			}
		})
	}
}

func TestUser_RoleName(t *testing.T) {
	var nilUser *User
	if got := nilUser.RoleName(); got != "" {
		t.Fatalf("nil user role name should be empty, got %q", got)
	}

	u := &User{}
	if got := u.RoleName(); got != "" {
		t.Fatalf("unresolved role name should be empty, got %q", got)
	}

	u.Role = &Role{Name: RoleAdmin}
	if got := u.RoleName(); got != RoleAdmin {
		t.Fatalf("expected %q, got %q", RoleAdmin, got)
	}
}

func TestAuditEvent_ShardKey(t *testing.T) {
	e := AuditEvent{Subject: "user-1", Email: "a@example.com"}
	if e.ShardKey() != "user-1" {
		t.Fatalf("subject should win, got %q", e.ShardKey())
	}

	e.Subject = ""
	if e.ShardKey() != "a@example.com" {
		t.Fatalf("expected email fallback, got %q", e.ShardKey())
	}
}
