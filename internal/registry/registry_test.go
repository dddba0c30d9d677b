package registry

import "testing"

func TestAll(t *testing.T) {
	t.Run("returns the full lineup", func(t *testing.T) {
		tickers := All()

		if len(tickers) != 37 {
			t.Errorf("Expected 37 tickers, got %d", len(tickers))
		}
		if tickers[0] != "TSLY" {
			t.Errorf("Expected first ticker TSLY, got %s", tickers[0])
		}
		if tickers[len(tickers)-1] != "MARO" {
			t.Errorf("Expected last ticker MARO, got %s", tickers[len(tickers)-1])
		}
	})

	t.Run("returns a copy", func(t *testing.T) {
		tickers := All()
		tickers[0] = "MUTATED"

		if All()[0] != "TSLY" {
			t.Error("Mutating the returned slice must not affect the registry")
		}
	})
}

func TestDefaultSelection(t *testing.T) {
	selection := DefaultSelection()

	if len(selection) != 2 {
		t.Fatalf("Expected 2 default tickers, got %d", len(selection))
	}
	if selection[0] != "YMAX" || selection[1] != "YMAG" {
		t.Errorf("Expected default selection [YMAX YMAG], got %v", selection)
	}

	for _, ticker := range selection {
		if !IsKnown(ticker) {
			t.Errorf("Default ticker %s must be part of the registry", ticker)
		}
	}
}

func TestIsKnown(t *testing.T) {
	cases := []struct {
		symbol string
		want   bool
	}{
		{"TSLY", true},
		{"YMAX", true},
		{"MARO", true},
		{"AAPL", false},
		{"tsly", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsKnown(tc.symbol); got != tc.want {
			t.Errorf("IsKnown(%q) = %v, want %v", tc.symbol, got, tc.want)
		}
	}
}
