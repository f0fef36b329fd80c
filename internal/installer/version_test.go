package installer

import "testing"

func TestParseToolVersion(t *testing.T) {
	tests := []struct {
		output  string
		want    string
		wantErr bool
	}{
		{"Bundler version 2.4.10", "2.4.10", false},
		{"ruby 3.2.2 (2023-03-30 revision e51014f9c0)", "3.2.2", false},
		{"2.5", "2.5", false},
		{"no digits here", "", true},
	}

	for _, tt := range tests {
		got, err := ParseToolVersion(tt.output)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseToolVersion(%q) error = %v, wantErr %v", tt.output, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseToolVersion(%q) = %q, want %q", tt.output, got, tt.want)
		}
	}
}

func TestMeetsMinimum(t *testing.T) {
	tests := []struct {
		version string
		minimum string
		want    bool
	}{
		{"2.4.10", "2.0.0", true},
		{"2.0.0", "2.0.0", true},
		{"1.17.3", "2.0.0", false},
		{"v2.1.0", "2.0.0", true},
	}

	for _, tt := range tests {
		got, err := MeetsMinimum(tt.version, tt.minimum)
		if err != nil {
			t.Errorf("MeetsMinimum(%q, %q) error = %v", tt.version, tt.minimum, err)
			continue
		}
		if got != tt.want {
			t.Errorf("MeetsMinimum(%q, %q) = %v, want %v", tt.version, tt.minimum, got, tt.want)
		}
	}
}

func TestMeetsMinimum_Malformed(t *testing.T) {
	if _, err := MeetsMinimum("banana", "2.0.0"); err == nil {
		t.Error("expected error for malformed version")
	}
}
