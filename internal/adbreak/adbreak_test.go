package adbreak

import "testing"

func twoBreakPlaylist() Playlist {
	// Preroll at content time 0 and a midroll 8:05 into content, 92s each.
	return BuildPlaylist([]BreakDescriptor{
		{BreakID: "preroll", Duration: "92", TimeOffset: "0"},
		{BreakID: "midroll-1", Duration: "92", TimeOffset: "8:05"},
	})
}

func TestBuildPlaylist_nil(t *testing.T) {
	if p := BuildPlaylist(nil); len(p) != 0 {
		t.Errorf("expected empty playlist, got %d breaks", len(p))
	}
}

func TestBuildPlaylist_boundaries(t *testing.T) {
	p := twoBreakPlaylist()
	if len(p) != 2 {
		t.Fatalf("expected 2 breaks, got %d", len(p))
	}

	pre, mid := p[0], p[1]
	if pre.StartTime != 0 || pre.EndTime != 92 {
		t.Errorf("preroll bounds: got [%v, %v], want [0, 92]", pre.StartTime, pre.EndTime)
	}
	// Midroll content offset 485 shifts by the preroll's 92s.
	if mid.StartTime != 577 || mid.EndTime != 669 {
		t.Errorf("midroll bounds: got [%v, %v], want [577, 669]", mid.StartTime, mid.EndTime)
	}
}

func TestBuildPlaylist_intervals_ordered(t *testing.T) {
	p := BuildPlaylist([]BreakDescriptor{
		{BreakID: "a", Duration: "30", TimeOffset: "0"},
		{BreakID: "b", Duration: "15", TimeOffset: "2:00"},
		{BreakID: "c", Duration: "45", TimeOffset: "10:00"},
	})
	for i := 0; i < len(p)-1; i++ {
		if p[i].EndTime > p[i+1].StartTime {
			t.Errorf("breaks %d and %d overlap: end %v > start %v",
				i, i+1, p[i].EndTime, p[i+1].StartTime)
		}
	}
}

func TestBuildPlaylist_lenient_descriptor(t *testing.T) {
	p := BuildPlaylist([]BreakDescriptor{
		{BreakID: "junk", Duration: "not-a-number", TimeOffset: "bogus"},
	})
	if len(p) != 1 {
		t.Fatalf("expected 1 break, got %d", len(p))
	}
	if p[0].Duration != 0 || p[0].ContentTime != 0 {
		t.Errorf("malformed fields should parse to 0, got duration=%v offset=%v",
			p[0].Duration, p[0].ContentTime)
	}
}

func TestBreakAt_inclusive_bounds(t *testing.T) {
	p := twoBreakPlaylist()

	if i, ok := p.BreakAt(0); !ok || i != 0 {
		t.Errorf("BreakAt(0): got (%d, %v), want (0, true)", i, ok)
	}
	if i, ok := p.BreakAt(92); !ok || i != 0 {
		t.Errorf("BreakAt(92) boundary second belongs to the break: got (%d, %v)", i, ok)
	}
	if _, ok := p.BreakAt(300); ok {
		t.Error("BreakAt(300): expected no break in content")
	}
	if i, ok := p.BreakAt(600); !ok || i != 1 {
		t.Errorf("BreakAt(600): got (%d, %v), want (1, true)", i, ok)
	}
}

func TestNextBreakAfter(t *testing.T) {
	p := twoBreakPlaylist()

	if i, ok := p.NextBreakAfter(0); !ok || i != 0 {
		t.Errorf("NextBreakAfter(0): got (%d, %v), want (0, true)", i, ok)
	}
	if i, ok := p.NextBreakAfter(100); !ok || i != 1 {
		t.Errorf("NextBreakAfter(100): got (%d, %v), want (1, true)", i, ok)
	}
	if _, ok := p.NextBreakAfter(700); ok {
		t.Error("NextBreakAfter(700): expected no upcoming break")
	}
}

func TestBreakAt_empty_playlist(t *testing.T) {
	var p Playlist
	if p.HasBreakAt(123) {
		t.Error("empty playlist should contain no breaks")
	}
	if _, ok := p.NextBreakAfter(0); ok {
		t.Error("empty playlist should have no upcoming break")
	}
}
