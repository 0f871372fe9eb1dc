package validators

import "testing"

func TestIsPhoneValid(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"+79991234567", true},
		{"+14155552671", true},
		{"+440000000000", true},
		{"", false},
		{"79991234567", false},
		{"+0123456789", false},
		{"+7999123456a", false},
		{"+7 999 123 45 67", false},
		{"+7", false},
		{"+12345678901234567", false},
	}

	for _, tc := range cases {
		if got := IsPhoneValid(tc.phone); got != tc.want {
			t.Errorf("IsPhoneValid(%q) = %v, want %v", tc.phone, got, tc.want)
		}
	}
}
