package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectCardLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"kaiser"},
			want: []string{"kaiser"},
		},
		{
			name: "card number first token",
			in:   []string{"kaiser", "12"},
			want: []string{"kaiser", "cards", "show", "12"},
		},
		{
			name: "hash card number",
			in:   []string{"kaiser", "#12"},
			want: []string{"kaiser", "cards", "show", "#12"},
		},
		{
			name: "after value flag",
			in:   []string{"kaiser", "--board", "release", "7"},
			want: []string{"kaiser", "--board", "release", "cards", "show", "7"},
		},
		{
			name: "numeric flag value is not a card",
			in:   []string{"kaiser", "--board", "2024", "lines", "list"},
			want: []string{"kaiser", "--board", "2024", "lines", "list"},
		},
		{
			name: "after equals flag",
			in:   []string{"kaiser", "--dsn=/tmp/boards", "7"},
			want: []string{"kaiser", "--dsn=/tmp/boards", "cards", "show", "7"},
		},
		{
			name: "after bool flag",
			in:   []string{"kaiser", "-q", "--pretty", "7"},
			want: []string{"kaiser", "-q", "--pretty", "cards", "show", "7"},
		},
		{
			name: "after double dash",
			in:   []string{"kaiser", "--", "7"},
			want: []string{"kaiser", "--", "cards", "show", "7"},
		},
		{
			name: "zero is not a card",
			in:   []string{"kaiser", "0"},
			want: []string{"kaiser", "0"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"kaiser", "cards", "show", "7"},
			want: []string{"kaiser", "cards", "show", "7"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"kaiser", "wat"},
			want: []string{"kaiser", "wat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectCardLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectCardLookupArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
