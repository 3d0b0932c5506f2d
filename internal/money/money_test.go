package money

import "testing"

func TestLineTotalRoundsPerLine(t *testing.T) {
	// 120 baht/kg at 5 kg should be exactly 600 baht.
	if got := LineTotal(12000, 5); got != 60000 {
		t.Fatalf("expected 60000 satang, got %d", got)
	}

	// Fractional quantities round half away from zero.
	if got := LineTotal(9500, 0.333); got != 3164 {
		t.Fatalf("expected 3164 satang, got %d", got)
	}
	if got := LineTotal(100, 0.005); got != 1 {
		t.Fatalf("expected 1 satang, got %d", got)
	}
}

func TestSumIsIntegerOnly(t *testing.T) {
	// Amounts that would drift under float accumulation stay exact.
	if got := Sum(3164, 3164, 3164); got != 9492 {
		t.Fatalf("expected 9492, got %d", got)
	}
	if got := Sum(); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestFormatBaht(t *testing.T) {
	cases := []struct {
		satang int64
		want   string
	}{
		{0, "฿0.00"},
		{60000, "฿600.00"},
		{1234550, "฿12,345.50"},
		{-9050, "-฿90.50"},
		{100000000, "฿1,000,000.00"},
	}
	for _, tc := range cases {
		if got := FormatBaht(tc.satang); got != tc.want {
			t.Fatalf("FormatBaht(%d) = %q, want %q", tc.satang, got, tc.want)
		}
	}
}
