package options

import "testing"

func TestParseIndex(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"1", 0, false},
		{"12", 11, false},
		{"0", -1, false},
		{"two", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseIndex(tt.arg)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseIndex(%q) err = %v", tt.arg, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseIndex(%q) = %d, want %d", tt.arg, got, tt.want)
		}
	}
}
