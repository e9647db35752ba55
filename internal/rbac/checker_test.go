package rbac

import "testing"

func TestCheckerHas(t *testing.T) {
	c := NewChecker(RolePermissions)

	cases := []struct {
		role, perm string
		want       bool
	}{
		{"student", "evaluation:view", true},
		{"student", "evaluation:write", false},
		{"student", "report:view", true},
		{"teacher", "evaluation:write", true},
		{"teacher", "grade:view", true},
		{"teacher", "report:view", true},
		{"admin", "evaluation:write", true},
		{"admin", "anything:at:all", true},
		{"unknown", "evaluation:view", false},
		{"", "evaluation:view", false},
	}
	for _, tc := range cases {
		if got := c.Has(tc.role, tc.perm); got != tc.want {
			t.Errorf("Has(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestCheckerAny(t *testing.T) {
	c := NewChecker(RolePermissions)

	if !c.Any("student", "evaluation:write", "grade:view") {
		t.Fatal("student should pass via grade:view")
	}
	if c.Any("student", "evaluation:write", "grade:write") {
		t.Fatal("student should fail with write-only perms")
	}
}

func TestMatchPerm(t *testing.T) {
	cases := []struct {
		pattern, perm string
		want          bool
	}{
		{"evaluation:view", "evaluation:view", true},
		{"evaluation:*", "evaluation:view", true},
		{"evaluation:*", "grade:view", false},
		{"*", "grade:write", true},
	}
	for _, tc := range cases {
		if got := matchPerm(tc.pattern, tc.perm); got != tc.want {
			t.Errorf("matchPerm(%q, %q) = %v, want %v", tc.pattern, tc.perm, got, tc.want)
		}
	}
}
