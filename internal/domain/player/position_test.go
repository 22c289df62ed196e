package player

import "testing"

func TestParsePosition(t *testing.T) {
	tests := []struct {
		raw     string
		want    Position
		wantErr bool
	}{
		{raw: "C", want: PositionCenter},
		{raw: " lw ", want: PositionLeftWing},
		{raw: "Right Wing", want: PositionRightWing},
		{raw: "defence", want: PositionDefense},
		{raw: "Goalie", want: PositionGoaltender},
		{raw: "F", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParsePosition(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parse %q: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: got=%s want=%s", tc.raw, got, tc.want)
		}
	}
}

func TestPositionValid(t *testing.T) {
	if PositionNone.Valid() {
		t.Fatalf("None must not be assignable")
	}
	if Position(0x3).Valid() || Position(0x20).Valid() {
		t.Fatalf("combined or unknown values must not be assignable")
	}
	for _, pos := range AllPositions {
		if !pos.Valid() {
			t.Fatalf("%s should be valid", pos)
		}
	}
}

func TestPositionSet(t *testing.T) {
	set := NewPositionSet(PositionRightWing, PositionCenter, PositionNone, PositionRightWing)

	if set.Len() != 2 {
		t.Fatalf("unexpected set size: %d", set.Len())
	}
	if !set.Has(PositionCenter) || set.Has(PositionDefense) || set.Has(PositionNone) {
		t.Fatalf("unexpected membership for %s", set)
	}
	if got := set.String(); got != "C, RW" {
		t.Fatalf("unexpected set string: %s", got)
	}

	parsed, err := ParsePositionSet("rw", "c")
	if err != nil || parsed != set {
		t.Fatalf("parse set: got=%s err=%v", parsed, err)
	}
}

func TestPlayer(t *testing.T) {
	p := New("p1", "Sidney Crosby", "Penguins", PositionCenter)

	pos, single := p.SinglePosition()
	if !single || pos != PositionCenter {
		t.Fatalf("expected single center, got %s %v", pos, single)
	}
	if got := p.String(); got != "Sidney Crosby; Penguins; C" {
		t.Fatalf("unexpected player string: %s", got)
	}

	utility := New("p2", "Utility", "", AllPositions...)
	if _, single := utility.SinglePosition(); single {
		t.Fatalf("multi-position player reported single position")
	}
	if utility.EligibleCount() != 5 {
		t.Fatalf("unexpected eligible count: %d", utility.EligibleCount())
	}

	var missing *Player
	if missing.Eligible(PositionCenter) || missing.String() != "<nil>" {
		t.Fatalf("nil player should be ineligible")
	}
}
