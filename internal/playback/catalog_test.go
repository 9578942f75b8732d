package playback

import (
	"path/filepath"
	"testing"

	"csai-playback/internal/adbreak"
)

func TestLoadCatalog(t *testing.T) {
	catalog, err := LoadCatalog(filepath.Join("testdata", "content.yaml"))
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(catalog.Contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(catalog.Contents))
	}

	movie, ok := catalog.ContentByID("movie-1")
	if !ok {
		t.Fatal("movie-1 not found")
	}
	if movie.Type != TypeCSAI || len(movie.AdBreaks) != 1 {
		t.Fatalf("unexpected movie-1: %+v", movie)
	}
	preroll := movie.AdBreaks[0]
	if len(preroll.Ads) != 2 {
		t.Fatalf("expected 2 ads in preroll, got %d", len(preroll.Ads))
	}
	if !preroll.Ads[0].Interactive() || preroll.Ads[1].Interactive() {
		t.Errorf("ad kinds wrong: %+v", preroll.Ads)
	}
	if params := preroll.Ads[0].ParseParameters(); params["vast_config_url"] == "" {
		t.Errorf("expected parsed ad parameters, got %v", params)
	}

	stitched, ok := catalog.ContentByID("movie-2")
	if !ok {
		t.Fatal("movie-2 not found")
	}
	playlist := adbreak.BuildPlaylist(stitched.StitchedBreaks)
	if len(playlist) != 2 {
		t.Fatalf("expected 2 resolved breaks, got %d", len(playlist))
	}
	if playlist[1].StartTime != 577 || playlist[1].EndTime != 669 {
		t.Errorf("midroll bounds = [%v, %v], want [577, 669]", playlist[1].StartTime, playlist[1].EndTime)
	}
}

func TestLoadCatalog_missing_file(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join("testdata", "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExampleCatalog(t *testing.T) {
	catalog := ExampleCatalog()

	csai, ok := catalog.ContentByID("csai-example-1")
	if !ok || csai.Type != TypeCSAI {
		t.Fatalf("csai-example-1 wrong: ok=%v %+v", ok, csai)
	}
	if len(csai.AdBreaks) != 2 || csai.AdBreaks[0].StartTime != 0 || csai.AdBreaks[1].StartTime != 485 {
		t.Errorf("unexpected csai pods: %+v", csai.AdBreaks)
	}

	stitched, ok := catalog.ContentByID("stitched-example-1")
	if !ok || stitched.Type != TypeStitched {
		t.Fatalf("stitched-example-1 wrong: ok=%v %+v", ok, stitched)
	}
	if len(stitched.StitchedBreaks) != 2 {
		t.Errorf("expected 2 stitched breaks, got %d", len(stitched.StitchedBreaks))
	}

	if _, ok := catalog.ContentByID("nope"); ok {
		t.Error("expected lookup miss for unknown id")
	}
}
