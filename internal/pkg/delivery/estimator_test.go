package delivery

import (
	"errors"
	"testing"
)

func TestParseETA(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "42", want: 42},
		{in: " 17\n", want: 17},
		{in: "0", want: 0},
		{in: "", wantErr: true},
		{in: "soon", wantErr: true},
		{in: "12.5", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseETA([]byte(tt.in))
		if tt.wantErr {
			if !errors.Is(err, ErrEstimateFailed) {
				t.Fatalf("ParseETA(%q): expected ErrEstimateFailed, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseETA(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseETA(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
