package rbac

import "testing"

func TestCheckerHas(t *testing.T) {
	c := NewChecker(nil)
	tests := []struct {
		role, perm string
		want       bool
	}{
		{"patient", "session:play", true},
		{"patient", "card:view", true},
		{"patient", "card:create", false},
		{"patient", "progress:view", false},
		{"caregiver", "card:create", true}, // via card:* wildcard
		{"caregiver", "card:delete", true},
		{"caregiver", "progress:view", true},
		{"admin", "anything:at-all", true},
		{"", "card:view", false},
		{"stranger", "card:view", false},
	}
	for _, tc := range tests {
		if got := c.Has(tc.role, tc.perm); got != tc.want {
			t.Errorf("Has(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestCheckerAny(t *testing.T) {
	c := NewChecker(nil)
	if !c.Any("patient", "progress:view", "session:play") {
		t.Error("Any should pass when one perm matches")
	}
	if c.Any("patient", "progress:view", "users:manage") {
		t.Error("Any should fail when no perm matches")
	}
}
