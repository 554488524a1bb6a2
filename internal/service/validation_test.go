package service_test

import (
	"testing"

	"github.com/maxviazov/petclinic-service/internal/service"
)

func TestIsNumeric(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"Ten digits", "6085551023", true},
		{"Short", "608", true},
		{"Empty string", "", true},
		{"Dash", "608-555", false},
		{"Sign", "+6085551023", false},
		{"Decimal", "60.8", false},
		{"Space inside", "608 555", false},
		{"Letters", "abc", false},
		{"Non-ASCII digits", "٦٠٨", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := service.IsNumeric(tc.input)
			if got != tc.want {
				t.Errorf("IsNumeric(%q) = %v; want %v", tc.input, got, tc.want)
			}
		})
	}
}
