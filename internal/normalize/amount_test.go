package normalize

import "testing"

func TestAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"currency symbol", "$45.00", 45.00},
		{"thousands separators", "1,234.56", 1234.56},
		{"plain negative", "-12.30", -12.30},
		{"double minus", "--12.30", -12.30},
		{"scattered minus", "-12-.30", -12.30},
		{"dot run collapsed", "12..5", 12.5},
		{"surrounding text", "GBP 99.95 ", 99.95},
		{"rounded half away", "2.675", 2.68},
		{"integer", "250", 250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Amount(tt.raw)
			if got == nil {
				t.Fatalf("Amount(%q) = nil, want %v", tt.raw, tt.want)
			}
			if *got != tt.want {
				t.Errorf("Amount(%q) = %v, want %v", tt.raw, *got, tt.want)
			}
		})
	}
}

func TestAmount_Absent(t *testing.T) {
	for _, raw := range []string{"", "   ", "abc", "-", ".", "12.3.4"} {
		if got := Amount(raw); got != nil {
			t.Errorf("Amount(%q) = %v, want nil", raw, *got)
		}
	}
}

func TestAmount_Idempotent(t *testing.T) {
	first := Amount("$ 12.50")
	if first == nil {
		t.Fatal("Amount($ 12.50) = nil")
	}
	second := Amount("12.50")
	if second == nil || *second != *first {
		t.Errorf("normalizing a normalized amount changed it: %v vs %v", first, second)
	}
}
