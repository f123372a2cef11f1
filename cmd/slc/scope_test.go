package main

import (
	"reflect"
	"testing"

	"github.com/Jjop12/renpy/pkg/script"
	"github.com/Jjop12/renpy/pkg/sl"
)

func TestParseVars(t *testing.T) {
	compiler := script.New()

	tests := []struct {
		name    string
		vars    []string
		want    sl.Scope
		wantErr bool
	}{
		{
			name: "empty",
			vars: nil,
			want: sl.Scope{},
		},
		{
			name: "literals",
			vars: []string{"count=3", `title="hi"`},
			want: sl.Scope{"count": 3, "title": "hi"},
		},
		{
			name: "later vars see earlier ones",
			vars: []string{"base=10", "total=base * 2"},
			want: sl.Scope{"base": 10, "total": 20},
		},
		{
			name:    "missing equals",
			vars:    []string{"count"},
			wantErr: true,
		},
		{
			name:    "empty name",
			vars:    []string{"=1"},
			wantErr: true,
		},
		{
			name:    "unbound reference",
			vars:    []string{"total=base * 2"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVars(compiler, tt.vars)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseVars() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseVars() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseVars() = %v, want %v", got, tt.want)
			}
		})
	}
}
