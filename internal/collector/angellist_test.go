package collector

import "testing"

func TestEmployeeCountString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"range string", "11-50", "11-50"},
		{"number", float64(42), "42"},
		{"missing", nil, ""},
		{"unexpected type", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := employeeCountString(tt.in); got != tt.want {
				t.Fatalf("employeeCountString(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
