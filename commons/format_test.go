package commons

import "testing"

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{500000, "500.000"},
		{1500000, "1.500.000"},
		{950, "950"},
		{0, "0"},
		{250000.75, "250.001"},
	}

	for _, tc := range cases {
		got := FormatRupiah(tc.amount)
		if got != tc.want {
			t.Errorf("FormatRupiah(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}
