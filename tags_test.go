package tagstats

import "testing"

func TestTags_String(t *testing.T) {
	cases := []struct {
		name string
		tags Tags
		want string
	}{
		{name: "empty", tags: nil, want: ""},
		{name: "single", tags: Tags{{"k", "v"}}, want: "k=v"},
		{name: "ordered", tags: Tags{{"b", "2"}, {"a", "1"}}, want: "b=2,a=1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tags.String(); got != tc.want {
				t.Fatalf("unexpected string: got %q want %q", got, tc.want)
			}
		})
	}
}

func TestTags_MergedAppendsNewKeysInOrder(t *testing.T) {
	base := Tags{{"module", "m"}, {"service", "s"}}
	got := base.merged(Tags{{"def", "fn"}, {"zone", "eu"}})
	want := "module=m,service=s,def=fn,zone=eu"
	if got.String() != want {
		t.Fatalf("unexpected merge result: got %q want %q", got.String(), want)
	}
}

func TestTags_MergedOverrideKeepsPosition(t *testing.T) {
	base := Tags{{"module", "m"}, {"env", "dev"}, {"service", "s"}}
	got := base.merged(Tags{{"env", "prod"}})
	want := "module=m,env=prod,service=s"
	if got.String() != want {
		t.Fatalf("unexpected override result: got %q want %q", got.String(), want)
	}
}

func TestTags_MergedDoesNotMutateInputs(t *testing.T) {
	base := Tags{{"a", "1"}}
	extra := Tags{{"a", "2"}, {"b", "3"}}
	_ = base.merged(extra)
	if base.String() != "a=1" {
		t.Fatalf("base mutated: %q", base.String())
	}
	if extra.String() != "a=2,b=3" {
		t.Fatalf("extra mutated: %q", extra.String())
	}
}

func TestNewTag_CoercesValues(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  string
	}{
		{name: "string", value: "v", want: "v"},
		{name: "int", value: 42, want: "42"},
		{name: "bool", value: true, want: "true"},
		{name: "float", value: 1.5, want: "1.5"},
		{name: "nil", value: nil, want: "<nil>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tag := NewTag("k", tc.value)
			if tag.Value != tc.want {
				t.Fatalf("unexpected coerced value: got %q want %q", tag.Value, tc.want)
			}
		})
	}
}

func TestTags_ComposeName(t *testing.T) {
	cases := []struct {
		name string
		tags Tags
		want string
	}{
		{
			name: "with tags",
			tags: Tags{{"module", "m"}, {"service", "s"}},
			want: "incr,module=m,service=s,name=fool",
		},
		{
			name: "no tags",
			tags: nil,
			want: "incr,name=fool",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tags.composeName(baseIncr, "fool"); got != tc.want {
				t.Fatalf("unexpected composed name: got %q want %q", got, tc.want)
			}
		})
	}
}
