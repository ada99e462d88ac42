package domain

import "testing"

func TestErrorsOnlyAndString(t *testing.T) {
	e := Errors{}
	e.Add("comment", "This field is required.")
	e.Add("honeypot", "spam")
	e.Add("security_hash", "Security hash check failed.")
	e["user_url"] = nil

	sec := e.Only(SecurityFields...)
	if len(sec) != 2 || !sec.Has("honeypot") || !sec.Has("security_hash") || sec.Has("comment") {
		t.Fatalf("security subset: %v", sec)
	}
	if got := sec.String(); got != "honeypot: spam; security_hash: Security hash check failed." {
		t.Fatalf("string: %q", got)
	}
	if e.Empty() || !(Errors{"x": nil}).Empty() {
		t.Fatalf("empty")
	}
	if f := e.Fields(); len(f) != 3 {
		t.Fatalf("fields skip empty entries: %v", f)
	}
}

func TestActor(t *testing.T) {
	a := Actor{ID: "7", Perms: []string{PermChangeComment}}
	if !a.HasCapability(PermChangeComment) || a.HasCapability(PermModerate) {
		t.Fatalf("capabilities")
	}
	if !a.IsOwnerOf(Comment{UserID: "7"}) || a.IsOwnerOf(Comment{UserID: "8"}) {
		t.Fatalf("ownership")
	}
	if (Actor{}).IsOwnerOf(Comment{}) {
		t.Fatalf("anonymous comment has no owner")
	}
}
