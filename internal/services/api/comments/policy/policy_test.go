package policy

import (
	"testing"

	"commentedit/internal/services/api/comments/domain"
)

func actor(id string, perms ...string) domain.Actor {
	return domain.Actor{ID: id, Username: id, Perms: perms}
}

func TestGateThenAllow(t *testing.T) {
	mine := domain.Comment{ID: 1, UserID: "u1"}
	anon := domain.Comment{ID: 2}

	cases := []struct {
		name string
		p    Policy
		a    domain.Actor
		c    domain.Comment
		want bool
	}{
		{"owner with change", Owner{}, actor("u1", domain.PermChangeComment), mine, true},
		{"owner without change", Owner{}, actor("u1"), mine, false},
		{"stranger with change", Owner{}, actor("u2", domain.PermChangeComment), mine, false},
		{"moderator any comment", Owner{}, actor("u2", domain.PermModerate), mine, true},
		{"anonymous comment has no owner", Owner{}, actor("", domain.PermChangeComment), anon, false},
		{"moderate policy owner only", Moderate{}, actor("u1", domain.PermChangeComment), mine, false},
		{"moderate policy moderator", Moderate{}, actor("u9", domain.PermModerate), anon, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.Gate(tc.a) && tc.p.Allow(tc.a, tc.c); got != tc.want {
				t.Fatalf("gate+allow=%v want %v", got, tc.want)
			}
		})
	}
}

func TestGate(t *testing.T) {
	if (Owner{}).Gate(actor("u1")) {
		t.Fatalf("owner gate must require a capability")
	}
	if !(Owner{}).Gate(actor("u1", domain.PermChangeComment)) {
		t.Fatalf("owner gate must accept change_comment")
	}
	if (Moderate{}).Gate(actor("u1", domain.PermChangeComment)) {
		t.Fatalf("moderate gate must require moderate")
	}
}

func TestFromName(t *testing.T) {
	for in, want := range map[string]Name{"": OwnerName, "owner": OwnerName, " Moderate ": ModerateName} {
		p, err := FromName(in)
		if err != nil || p.Name() != want {
			t.Fatalf("FromName(%q) = %v, %v", in, p, err)
		}
	}
	if _, err := FromName("anyone"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
