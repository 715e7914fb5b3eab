package request

import (
	"errors"
	"testing"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
)

func TestParseWindow(t *testing.T) {
	tests := []struct {
		name    string
		param   string
		want    model.Window
		wantErr bool
	}{
		{"empty selects default", "", model.Window7D, false},
		{"one day", "1d", model.Window1D, false},
		{"thirty days", "30d", model.Window30D, false},
		{"one year upper case", "1Y", model.Window1Y, false},
		{"unknown window", "2w", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWindow(tt.param)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrInvalidWindow) {
					t.Fatalf("Expected ErrInvalidWindow, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseLimit(t *testing.T) {
	t.Run("empty selects default", func(t *testing.T) {
		got, err := ParseLimit("", 15)
		if err != nil || got != 15 {
			t.Errorf("Expected 15, got %d (%v)", got, err)
		}
	})

	t.Run("accepts value in range", func(t *testing.T) {
		got, err := ParseLimit("250", 10)
		if err != nil || got != 250 {
			t.Errorf("Expected 250, got %d (%v)", got, err)
		}
	})

	for _, param := range []string{"0", "251", "-3", "ten"} {
		t.Run("rejects "+param, func(t *testing.T) {
			if _, err := ParseLimit(param, 10); !errors.Is(err, apperrors.ErrInvalidLimit) {
				t.Errorf("Expected ErrInvalidLimit, got %v", err)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	t.Run("parses float", func(t *testing.T) {
		got, err := ParseAmount("12345.678")
		if err != nil || got != 12345.678 {
			t.Errorf("Expected 12345.678, got %v (%v)", got, err)
		}
	})

	t.Run("rejects empty", func(t *testing.T) {
		if _, err := ParseAmount(""); !errors.Is(err, apperrors.ErrInvalidAmount) {
			t.Errorf("Expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("rejects non-finite values", func(t *testing.T) {
		for _, param := range []string{"NaN", "Inf", "-inf"} {
			if _, err := ParseAmount(param); !errors.Is(err, apperrors.ErrInvalidAmount) {
				t.Errorf("%s: expected ErrInvalidAmount, got %v", param, err)
			}
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := ParseAmount("12abc"); !errors.Is(err, apperrors.ErrInvalidAmount) {
			t.Errorf("Expected ErrInvalidAmount, got %v", err)
		}
	})
}
