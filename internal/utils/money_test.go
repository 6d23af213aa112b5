package utils

import "testing"

func TestFormatINRGrouping(t *testing.T) {
	cases := map[int64]string{
		0:        "₹0",
		999:      "₹999",
		1000:     "₹1,000",
		99999:    "₹99,999",
		100000:   "₹1,00,000",
		150000:   "₹1,50,000",
		12345678: "₹1,23,45,678",
		-4500:    "-₹4,500",
	}
	for amount, want := range cases {
		if got := FormatINR(amount); got != want {
			t.Fatalf("FormatINR(%d) = %q, want %q", amount, got, want)
		}
	}
}

func TestParseINRToInt(t *testing.T) {
	cases := map[string]int64{
		"₹1,50,000": 150000,
		"Rs 1500":   1500,
		"rs. 2000":  2000,
		"750":       750,
		" 1,000 ":   1000,
	}
	for in, want := range cases {
		got, err := ParseINRToInt(in)
		if err != nil {
			t.Fatalf("ParseINRToInt(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseINRToInt(%q) = %d, want %d", in, got, want)
		}
	}

	if _, err := ParseINRToInt("₹"); err == nil {
		t.Fatalf("bare currency sign should fail")
	}
	if _, err := ParseINRToInt("abc"); err == nil {
		t.Fatalf("non-numeric input should fail")
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, amount := range []int64{0, 1, 149, 600, 99999, 100000, 9876543} {
		back, err := ParseINRToInt(FormatINR(amount))
		if err != nil {
			t.Fatalf("round trip of %d failed: %v", amount, err)
		}
		if back != amount {
			t.Fatalf("round trip of %d gave %d", amount, back)
		}
	}
}
