package db

import (
	"testing"
	"time"

	"github.com/robDaglio/msi/pkg/msi"
)

func TestValueOf(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want string
		kind msi.Kind
	}{
		{"nil", nil, "None", msi.KindNull},
		{"int64", int64(7), "7", msi.KindInt},
		{"float64", 3.5, "3.5", msi.KindFloat},
		{"bool", true, "true", msi.KindBool},
		{"bytes", []byte("42"), "42", msi.KindBytes},
		{"string", "abc", "abc", msi.KindString},
		{"time", ts, "2024-01-02 03:04:05", msi.KindTime},
		{"fallback", uint32(9), "9", msi.KindString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := valueOf(tt.in)
			if v.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", v.Kind(), tt.kind)
			}
			if v.String() != tt.want {
				t.Errorf("String() = %q, want %q", v.String(), tt.want)
			}
		})
	}
}
