package config

import "testing"

func TestParseRegion(t *testing.T) {
	raw := []byte(`{
		"boundary": [[40, -90], [40, -80], [50, -80], [50, -90]],
		"airports": ["KORD", "KMDW"],
		"positions": ["ORD", "CHI"],
		"neighbors": ["ZMP"],
		"excluded_callsigns": ["CHI_FSS"]
	}`)

	r, err := ParseRegion(raw)
	if err != nil {
		t.Fatalf("ParseRegion() error: %v", err)
	}
	if !r.Contains(45, -85) {
		t.Error("parsed region does not contain interior point")
	}
	if !r.IsAirport("KORD") {
		t.Error("parsed region missing configured airport")
	}
}

func TestParseRegionInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"malformed json", `{`},
		{"too few vertices", `{"boundary": [[40, -90]], "airports": ["KORD"], "positions": ["ORD"]}`},
		{"no airports", `{"boundary": [[40, -90], [40, -80], [50, -80]], "airports": [], "positions": ["ORD"]}`},
		{"no positions", `{"boundary": [[40, -90], [40, -80], [50, -80]], "airports": ["KORD"], "positions": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRegion([]byte(tt.raw)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
