package detector

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ccollicutt/roslog/pkg/decoder"
	"github.com/ccollicutt/roslog/pkg/parser"
	"github.com/ccollicutt/roslog/pkg/series"
)

var sessionLines = []string{
	"ROS logger v2 started",
	"Time=100;Dir = 001;x;Balance = 10",
	"FineB = 015; Integral = 3; Morion = 1000; Corr = 1",
	"Frame2  :1:100.5, 10000000000:45,2:101325:22,5",
	"Time=105;Dir = 004;x;Balance = 0",
	"10:00:00 " + decoder.UTCMarker,
	"T: 101,5000000000000 end",
	"FineB = 000; Integral = 4; Morion = 1010",
	"Time=103;Dir = 003;x;Balance = 0",
	"Frame2  :2:99.0, 20000000000:46,0:101300:22,4",
}

func TestDetector_DetectFromLines_Session(t *testing.T) {
	result := New().DetectFromLines(sessionLines)

	if !result.HasMatch() {
		t.Fatal("Expected to detect record kinds")
	}
	if result.SampledLines != 10 {
		t.Errorf("SampledLines = %d, want 10", result.SampledLines)
	}
	if result.ClassifiedLines != 8 {
		t.Errorf("ClassifiedLines = %d, want 8", result.ClassifiedLines)
	}

	wantOrder := []string{"Direction/Offset", "Fine balance", "Frame2 environment", "UTC time sync"}
	wantCounts := []int{3, 2, 2, 1}
	if len(result.Matches) != len(wantOrder) {
		t.Fatalf("got %d matches, want %d", len(result.Matches), len(wantOrder))
	}
	for i, m := range result.Matches {
		if m.Format.Name != wantOrder[i] {
			t.Errorf("Matches[%d] = %s, want %s", i, m.Format.Name, wantOrder[i])
		}
		if m.MatchCount != wantCounts[i] {
			t.Errorf("Matches[%d].MatchCount = %d, want %d", i, m.MatchCount, wantCounts[i])
		}
	}

	best := result.BestMatch()
	if best.SampleNum != 2 || best.SampleLine != sessionLines[1] {
		t.Errorf("BestMatch sample = %d %q", best.SampleNum, best.SampleLine)
	}
	if best.Confidence != 0.3 {
		t.Errorf("BestMatch confidence = %v, want 0.3", best.Confidence)
	}
	if result.Note != "" {
		t.Errorf("unexpected note %q", result.Note)
	}
}

func TestDetector_DetectFromLines_NoMatch(t *testing.T) {
	lines := []string{
		"This is a log line without markers",
		"Another line",
	}

	result := New().DetectFromLines(lines)

	if result.HasMatch() {
		t.Errorf("Expected no match, got %s", result.BestMatch().Format.Name)
	}
	if result.BestMatch() != nil {
		t.Error("BestMatch() should be nil")
	}
	if !strings.Contains(result.Note, "--sample") || strings.Contains(result.Note, "--sample-size") {
		t.Errorf("Note = %q, want a pointer to --sample", result.Note)
	}
	if len(result.Missing) != len(DefaultFormats()) {
		t.Errorf("Missing = %d formats, want all %d", len(result.Missing), len(DefaultFormats()))
	}
}

func TestDetector_MissingKinds(t *testing.T) {
	lines := []string{
		"Time=1;Dir = 001;x;Balance = 1",
		"FineB = 015; Integral = 3; Morion = 1000; Corr = 1",
	}

	result := New().DetectFromLines(lines)

	var names []string
	for _, f := range result.Missing {
		names = append(names, f.Name)
	}
	want := []string{"Frame2 environment", "UTC time sync"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("Missing = %v, want %v", names, want)
	}
}

func TestDetector_DetectFromLines_EmptyInput(t *testing.T) {
	result := New().DetectFromLines(nil)

	if result.HasMatch() {
		t.Error("Expected no match for empty input")
	}
	if result.SampledLines != 0 {
		t.Errorf("SampledLines = %d, want 0", result.SampledLines)
	}
}

func TestDetector_DetectFromLines_SkipsBlankLines(t *testing.T) {
	lines := []string{"", "   ", "Time=1;Dir = 001;x;Balance = 1"}

	result := New().DetectFromLines(lines)

	if result.SampledLines != 1 {
		t.Errorf("SampledLines = %d, want 1", result.SampledLines)
	}
	if best := result.BestMatch(); best == nil || best.SampleNum != 3 {
		t.Errorf("BestMatch = %+v, want sample at line 3", best)
	}
}

func TestDetector_LineWithSeveralKinds(t *testing.T) {
	result := New().DetectFromLines([]string{"Dir FineB"})

	if result.ClassifiedLines != 1 {
		t.Errorf("ClassifiedLines = %d, want 1", result.ClassifiedLines)
	}
	if len(result.Matches) != 2 {
		t.Errorf("got %d matches, want 2", len(result.Matches))
	}
}

func TestDetector_WithSampleSize(t *testing.T) {
	d := New(WithSampleSize(4))
	if d.sampleSize != 4 {
		t.Errorf("sampleSize = %d, want 4", d.sampleSize)
	}

	result, err := d.Detect(context.Background(), parser.NewStringSource(strings.Join(sessionLines, "\n")))
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if result.SampledLines != 4 {
		t.Errorf("SampledLines = %d, want 4", result.SampledLines)
	}
	if len(result.Matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(result.Matches))
	}
	if result.Matches[0].Format.Kind != decoder.KindDirection {
		t.Errorf("first match = %s, want direction", result.Matches[0].Format.Name)
	}
}

func TestDetector_WithSampleSize_Invalid(t *testing.T) {
	d := New(WithSampleSize(-1))
	if d.sampleSize != DefaultSampleSize {
		t.Errorf("sampleSize = %d, want %d", d.sampleSize, DefaultSampleSize)
	}
}

func TestDetector_DetectFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ros.log")
	if err := os.WriteFile(path, []byte(strings.Join(sessionLines, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := New().DetectFromFile(context.Background(), path)
	if err != nil {
		t.Fatalf("DetectFromFile() error = %v", err)
	}
	if result.ClassifiedLines != 8 {
		t.Errorf("ClassifiedLines = %d, want 8", result.ClassifiedLines)
	}
}

func TestDetector_DetectFromFile_NotFound(t *testing.T) {
	_, err := New().DetectFromFile(context.Background(), "/nonexistent/ros.log")
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestDetector_DetectCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Detect(ctx, parser.NewStringSource("Time=1;Dir = 001"))
	if err == nil {
		t.Error("Expected error for cancelled context")
	}
}

func TestDetectionResult_SuggestSettings(t *testing.T) {
	result := New().DetectFromLines([]string{
		"Time=1;Dir = 003;x;Balance = 1",
		"Time=2;Dir = 001;x;Balance = 1",
	})

	channels := result.Channels()
	if len(channels) != 2 || channels[0] != series.ROS || channels[1] != series.Dir36 {
		t.Errorf("Channels() = %v, want [ROS Dir3/6]", channels)
	}

	settings := result.SuggestSettings()
	if !settings.ROS.Show || !settings.Dir3.Show {
		t.Error("ROS and Dir3 should stay visible")
	}
	if settings.FineB.Show || settings.Frame2.Show || settings.UTC.Show {
		t.Error("channels without records should be hidden")
	}
}

func TestDefaultFormats(t *testing.T) {
	formats := DefaultFormats()
	if len(formats) != 4 {
		t.Fatalf("got %d formats, want 4", len(formats))
	}

	for _, f := range formats {
		if len(f.Channels) == 0 {
			t.Errorf("format %s feeds no channel", f.Name)
		}
		for _, ex := range f.Examples {
			if !decoder.Classify(ex).Has(f.Kind) {
				t.Errorf("format %s example %q does not classify as %s", f.Name, ex, f.Kind)
			}
		}
	}
}
