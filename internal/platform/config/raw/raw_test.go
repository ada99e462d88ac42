package raw

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("LOG_LEVEL", " debug ")
	c := New().Prefix("LOG_")
	if got := c.Get("LEVEL", "info"); got != "debug" {
		t.Fatalf("Get = %q", got)
	}
	if got := c.Get("MISSING", "info"); got != "info" {
		t.Fatalf("Get default = %q", got)
	}
}

func TestGetBool(t *testing.T) {
	c := New().Prefix("RAWT_")
	cases := []struct {
		val  string
		def  bool
		want bool
	}{
		{"", true, true},
		{"1", false, true},
		{"TRUE", false, true},
		{"yes", false, true},
		{"on", false, true},
		{"no", true, false},
		{"junk", true, false},
	}
	for _, tc := range cases {
		t.Setenv("RAWT_FLAG", tc.val)
		if got := c.GetBool("FLAG", tc.def); got != tc.want {
			t.Fatalf("GetBool(%q, %v) = %v, want %v", tc.val, tc.def, got, tc.want)
		}
	}
}

func TestGetInt(t *testing.T) {
	c := New().Prefix("RAWT_")
	t.Setenv("RAWT_N", "17")
	if got := c.GetInt("N", 3); got != 17 {
		t.Fatalf("GetInt = %d", got)
	}
	t.Setenv("RAWT_N", "-4")
	if got := c.GetInt("N", 3); got != 3 {
		t.Fatalf("GetInt negative = %d", got)
	}
	t.Setenv("RAWT_N", "x")
	if got := c.GetInt("N", 3); got != 3 {
		t.Fatalf("GetInt junk = %d", got)
	}
}
