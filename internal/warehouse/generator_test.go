package warehouse

import (
	"testing"
	"time"
)

func TestTimeRow(t *testing.T) {
	tests := []struct {
		name        string
		date        time.Time
		wantID      int
		wantQuarter int
		wantWeekday string
		wantWeekend bool
	}{
		{
			name:        "weekday in Q1",
			date:        time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC),
			wantID:      20250212,
			wantQuarter: 1,
			wantWeekday: "Wednesday",
			wantWeekend: false,
		},
		{
			name:        "saturday in Q3",
			date:        time.Date(2025, 8, 9, 0, 0, 0, 0, time.UTC),
			wantID:      20250809,
			wantQuarter: 3,
			wantWeekday: "Saturday",
			wantWeekend: true,
		},
		{
			name:        "sunday at year end",
			date:        time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC),
			wantID:      20241229,
			wantQuarter: 4,
			wantWeekday: "Sunday",
			wantWeekend: true,
		},
		{
			name:        "first of april starts Q2",
			date:        time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			wantID:      20250401,
			wantQuarter: 2,
			wantWeekday: "Tuesday",
			wantWeekend: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dateID, quarter, weekday, isWeekend := timeRow(tt.date)
			if dateID != tt.wantID {
				t.Errorf("dateID = %d, want %d", dateID, tt.wantID)
			}
			if quarter != tt.wantQuarter {
				t.Errorf("quarter = %d, want %d", quarter, tt.wantQuarter)
			}
			if weekday != tt.wantWeekday {
				t.Errorf("weekday = %q, want %q", weekday, tt.wantWeekday)
			}
			if isWeekend != tt.wantWeekend {
				t.Errorf("isWeekend = %v, want %v", isWeekend, tt.wantWeekend)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.234, 1.23},
		{1.236, 1.24},
		{99.999, 100.0},
		{0, 0},
		{-1.236, -1.24},
	}

	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSeedConfigValidate(t *testing.T) {
	valid := SeedConfig{Customers: 5, Products: 5, Days: 90, Transactions: 200}
	if err := valid.Validate(); err != nil {
		t.Errorf("Unexpected error for valid config: %v", err)
	}

	tests := []struct {
		name string
		cfg  SeedConfig
	}{
		{"zero customers", SeedConfig{Products: 5, Days: 90, Transactions: 200}},
		{"zero products", SeedConfig{Customers: 5, Days: 90, Transactions: 200}},
		{"zero days", SeedConfig{Customers: 5, Products: 5, Transactions: 200}},
		{"negative transactions", SeedConfig{Customers: 5, Products: 5, Days: 90, Transactions: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}

	// Zero transactions is an empty-but-valid dataset
	empty := SeedConfig{Customers: 1, Products: 1, Days: 1, Transactions: 0}
	if err := empty.Validate(); err != nil {
		t.Errorf("Unexpected error for zero transactions: %v", err)
	}
}
