package guardrails

import "testing"

func TestMeetsMinPay(t *testing.T) {
	cases := []struct {
		salary string
		min    float64
		want   bool
	}{
		{"$25-$30/hr", 25, true},
		{"$20/hr", 25, false},
		{"$66362/yr", 25, true},  // 66362/2080 = 31.9
		{"$40000/yr", 25, false}, // 19.2
		{"$66362-$83000/yr", 25, true},
		{"25/hr", 25, true},
		{"$ 25 / hr", 25, true},
		{"N/A", 25, false},
		{"na", 25, false},
		{"", 25, false},
		{"competitive", 25, false},
		{"$25", 25, false},
	}

	for _, tc := range cases {
		if got := MeetsMinPay(tc.salary, tc.min); got != tc.want {
			t.Fatalf("MeetsMinPay(%q, %v) = %v, want %v", tc.salary, tc.min, got, tc.want)
		}
	}
}

func TestMeetsMinPayUsesRangeLowerBound(t *testing.T) {
	// $24 low end fails the floor even though the high end clears it.
	if MeetsMinPay("$24-$40/hr", 25) {
		t.Fatalf("range should be judged by its lower bound")
	}
}

func TestIsUSALocation(t *testing.T) {
	cases := []struct {
		location string
		want     bool
	}{
		{"Toronto, Ontario", false},
		{"London, United Kingdom", false},
		{"Bangalore, India", false},
		{"Sydney, Australia", false},
		{"Remote", true},
		{"New York, NY", true},
		{"San Francisco, CA, United States", true},
		{"", true},
		{"   ", true},
		{"Middle of Nowhere", true}, // unknown fails open
	}

	for _, tc := range cases {
		if got := IsUSALocation(tc.location); got != tc.want {
			t.Fatalf("IsUSALocation(%q) = %v, want %v", tc.location, got, tc.want)
		}
	}
}
