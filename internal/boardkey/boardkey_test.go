package boardkey

import "testing"

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "My Board!", want: "my-board"},
		{in: "QA Team", want: "qa-team"},
		{in: "  --Release 1.0--  ", want: "release-1-0"},
		{in: "Out of Scope", want: "out-of-scope"},
		{in: "a   b...c", want: "a-b-c"},
		{in: "", want: ""},
		{in: "!!!", want: ""},
		{in: "a _ b", want: "a-b"},
		{in: "a__b", want: "a-b"},
		{in: "snake_case title", want: "snake-case-title"},
		{in: "_lead_", want: "lead"},
	}
	for _, tc := range tests {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"My Board!",
		"Feature Requests",
		"  spaces  around ",
		"MiXeD_case-and_under",
		"Release 2.0 / hotfix",
		"Café déjà vu",
		"---",
		"a/b/c",
	}
	for _, in := range inputs {
		once := Slugify(in)
		if twice := Slugify(once); twice != once {
			t.Fatalf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: Default},
		{in: "/", want: Default},
		{in: "/My Board", want: "my-board"},
		{in: "/team-x/card/12", want: "team-x"},
		{in: "sprint 4", want: "sprint-4"},
		{in: "/???", want: Default},
	}
	for _, tc := range tests {
		if got := FromPath(tc.in); got != tc.want {
			t.Fatalf("FromPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStorageKey_RoundTrip(t *testing.T) {
	t.Parallel()

	key := StorageKey("", "My Board")
	if key != "kaiser/my-board" {
		t.Fatalf("StorageKey = %q", key)
	}
	got, ok := FromStorageKey("", key)
	if !ok || got != "my-board" {
		t.Fatalf("FromStorageKey = %q, %v", got, ok)
	}
	if _, ok := FromStorageKey("other", key); ok {
		t.Fatalf("expected key outside namespace to be rejected")
	}
	if got := StorageKey("/team/", ""); got != "team/default" {
		t.Fatalf("StorageKey with empty board = %q", got)
	}
}
