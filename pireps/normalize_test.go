package pireps

import "testing"

func TestFormatWind(t *testing.T) {
	tests := []struct {
		name       string
		dir, speed int
		want       string
	}{
		{"both", 270, 15, "270@15"},
		{"direction only", 270, 0, "270"},
		{"speed only", 0, 15, "@15"},
		{"neither", 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatWind(tt.dir, tt.speed); got != tt.want {
				t.Errorf("formatWind(%d, %d) = %q, want %q", tt.dir, tt.speed, got, tt.want)
			}
		})
	}
}

func TestFormatIcing(t *testing.T) {
	tests := []struct {
		name            string
		intensity, kind string
		want            string
	}{
		{"both", "MOD", "RIME", "MOD RIME"},
		{"intensity only", "LGT", "", "LGT"},
		{"type only", "", "CLR", "CLR"},
		{"neither", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatIcing(tt.intensity, tt.kind); got != tt.want {
				t.Errorf("formatIcing(%q, %q) = %q, want %q", tt.intensity, tt.kind, got, tt.want)
			}
		})
	}
}

func TestFormatSky(t *testing.T) {
	tests := []struct {
		name      string
		coverage  string
		base, top int
		want      string
	}{
		{"full layer", "SCT", 45, 60, "SCT 045-060"},
		{"no top", "BKN", 120, 0, "BKN 120"},
		{"coverage only", "OVC", 0, 0, "OVC"},
		{"empty", "", 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatSky(tt.coverage, tt.base, tt.top); got != tt.want {
				t.Errorf("formatSky(%q, %d, %d) = %q, want %q", tt.coverage, tt.base, tt.top, got, tt.want)
			}
		})
	}
}

func TestFormatTurbulence(t *testing.T) {
	tests := []struct {
		name                       string
		intensity, frequency, kind string
		want                       string
	}{
		{"all parts", "MOD", "OCNL", "CHOP", "MOD OCNL CHOP"},
		{"missing frequency", "LGT", "", "CAT", "LGT CAT"},
		{"intensity only", "SEV", "", "", "SEV"},
		{"none", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatTurbulence(tt.intensity, tt.frequency, tt.kind); got != tt.want {
				t.Errorf("formatTurbulence(%q, %q, %q) = %q, want %q", tt.intensity, tt.frequency, tt.kind, got, tt.want)
			}
		})
	}
}
