package models

import "testing"

func TestParseSignal(t *testing.T) {
	tests := []struct {
		in      string
		want    Signal
		wantErr bool
	}{
		{"BULL", SignalBullish, false},
		{"bear", SignalBearish, false},
		{" neutral ", SignalNeutral, false},
		{"", SignalNeutral, false},
		{"SIDEWAYS", "", true},
	}

	for _, tt := range tests {
		got, err := ParseSignal(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSignal(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSignal(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSignal(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNearestStrikeIndex(t *testing.T) {
	strikes := []OptionStrike{
		{Strike: 23300}, {Strike: 23400}, {Strike: 23500}, {Strike: 23600},
	}

	tests := []struct {
		target float64
		want   int
	}{
		{23517, 2},
		{23560, 3},
		{22000, 0},
		{25000, 3},
	}
	for _, tt := range tests {
		if got := NearestStrikeIndex(strikes, tt.target); got != tt.want {
			t.Errorf("NearestStrikeIndex(%.0f) = %d, want %d", tt.target, got, tt.want)
		}
	}

	if got := NearestStrikeIndex(nil, 23500); got != -1 {
		t.Errorf("NearestStrikeIndex(empty) = %d, want -1", got)
	}
}

func TestStrikeSide(t *testing.T) {
	row := OptionStrike{
		Strike: 23500,
		Call:   &OptionData{LTP: 120},
	}

	if side := row.Side(CallOption); side == nil || side.LTP != 120 {
		t.Errorf("Side(CE) = %+v, want call data", side)
	}
	if side := row.Side(PutOption); side != nil {
		t.Errorf("Side(PE) = %+v, want nil on a missing side", side)
	}
	if side := row.Side(Underlying); side != nil {
		t.Errorf("Side(STOCK) = %+v, want nil", side)
	}
}
