package schedule

import "testing"

func TestParseTime(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"00:01", 1},
		{"00:59", 59},
		{"05:00", 300},
		{"5:00", 300}, // single-digit hour normalizes
		{"06:30", 390},
		{"14:45", 885},
		{"24:00", 1440},
	}
	for _, c := range cases {
		got, err := ParseTime(c.in)
		if err != nil {
			t.Errorf("ParseTime(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseTime(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseTimeRejects(t *testing.T) {
	for _, in := range []string{
		"25:00",
		"12:60",
		"0530",
		"24:01",
		"-1:00",
		"12:-5",
		"aa:bb",
		"12",
		"12:00:00",
		"",
	} {
		if _, err := ParseTime(in); err == nil {
			t.Errorf("ParseTime(%q): expected error, got none", in)
		}
	}
}

func TestTimeRoundTrip(t *testing.T) {
	for _, m := range []int{0, 1, 59, 300, 390, 885, 1440} {
		got, err := ParseTime(FormatTime(m))
		if err != nil {
			t.Fatalf("ParseTime(FormatTime(%d)): %v", m, err)
		}
		if got != m {
			t.Errorf("round trip of %d minutes gave %d", m, got)
		}
	}
}

func TestFormatTime(t *testing.T) {
	cases := map[int]string{
		0:    "00:00",
		300:  "05:00",
		1320: "22:00",
		1440: "24:00",
	}
	for minutes, want := range cases {
		if got := FormatTime(minutes); got != want {
			t.Errorf("FormatTime(%d) = %q, want %q", minutes, got, want)
		}
	}
}
