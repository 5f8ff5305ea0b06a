package competitiondomain

import "testing"

func TestParseGrade(t *testing.T) {
	tests := []struct {
		name       string
		blockType  BlockType
		grade      string
		wantOK     bool
		wantNumber int
		wantSuffix int
	}{
		{name: "route with suffix", blockType: BlockTypeRuta, grade: "5.10a", wantOK: true, wantNumber: 10, wantSuffix: 1},
		{name: "route d suffix", blockType: BlockTypeRuta, grade: "5.12d", wantOK: true, wantNumber: 12, wantSuffix: 4},
		{name: "route without suffix", blockType: BlockTypeRuta, grade: "5.9", wantOK: true, wantNumber: 9, wantSuffix: 5},
		{name: "route bad suffix", blockType: BlockTypeRuta, grade: "5.10e", wantOK: false},
		{name: "route missing prefix", blockType: BlockTypeRuta, grade: "10a", wantOK: false},
		{name: "boulder", blockType: BlockTypeBoulder, grade: "V10", wantOK: true, wantNumber: 10},
		{name: "boulder lowercase", blockType: BlockTypeBoulder, grade: "v3", wantOK: false},
		{name: "boulder grade as route", blockType: BlockTypeRuta, grade: "V3", wantOK: false},
		{name: "unknown type", blockType: "traverse", grade: "V3", wantOK: false},
		{name: "empty", blockType: BlockTypeBoulder, grade: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ok := ParseGrade(tt.blockType, tt.grade)
			if ok != tt.wantOK {
				t.Fatalf("ParseGrade(%q) ok = %v, want %v", tt.grade, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if g.Number != tt.wantNumber || g.Suffix != tt.wantSuffix {
				t.Errorf("ParseGrade(%q) = (%d, %d), want (%d, %d)", tt.grade, g.Number, g.Suffix, tt.wantNumber, tt.wantSuffix)
			}
		})
	}
}

func TestGrade_Compare(t *testing.T) {
	mustParse := func(bt BlockType, s string) Grade {
		g, ok := ParseGrade(bt, s)
		if !ok {
			t.Fatalf("ParseGrade(%q) failed", s)
		}
		return g
	}

	tests := []struct {
		a, b string
		bt   BlockType
		want int
	}{
		{a: "5.10a", b: "5.10b", bt: BlockTypeRuta, want: -1},
		{a: "5.10d", b: "5.10", bt: BlockTypeRuta, want: -1},
		{a: "5.9", b: "5.10a", bt: BlockTypeRuta, want: -1},
		{a: "5.11a", b: "5.10", bt: BlockTypeRuta, want: 1},
		{a: "5.12c", b: "5.12c", bt: BlockTypeRuta, want: 0},
		{a: "V2", b: "V10", bt: BlockTypeBoulder, want: -1},
		{a: "V7", b: "V7", bt: BlockTypeBoulder, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			if got := mustParse(tt.bt, tt.a).Compare(mustParse(tt.bt, tt.b)); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCategory_Known(t *testing.T) {
	for _, c := range Categories {
		if !c.Known() {
			t.Errorf("%s should be known", c)
		}
	}
	if Category("veteranos").Known() {
		t.Error("veteranos should not be known")
	}
}
