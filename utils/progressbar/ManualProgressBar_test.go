package progressbar

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestManualProgressBar(t *testing.T) {
	var buf bytes.Buffer
	p := NewManualProgressBar(&buf, 10, 4)

	for i := 0; i < 6; i++ {
		p.Increment()
	}
	if p.Progress() != 4 {
		t.Errorf("increment: expected progress capped at 4, got %v",
			p.Progress())
	}

	p.Describe("episodes: %v", 3)
	if err := p.Display(); err != nil {
		t.Fatal(err)
	}

	line := buf.String()
	if !strings.Contains(line, "100.00%") {
		t.Errorf("display: expected 100%% progress in %q", line)
	}
	if strings.Count(line, "█") != 10 {
		t.Errorf("display: expected a full bar in %q", line)
	}
	if !strings.HasSuffix(line, "episodes: 3\n") {
		t.Errorf("display: expected description at end of %q", line)
	}
}

func TestManualProgressBarUnbounded(t *testing.T) {
	var buf bytes.Buffer
	p := NewManualProgressBar(&buf, 10, 0)
	for i := 0; i < 7; i++ {
		p.Increment()
	}
	if err := p.Display(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "[7 |") {
		t.Errorf("display: expected progress count, got %q", buf.String())
	}
}

func TestManualProgressBarWidth(t *testing.T) {
	p := NewManualProgressBar(&bytes.Buffer{}, 10, 3)

	for i := 1; i <= 3; i++ {
		p.Increment()
		line := p.String()
		end := strings.Index(line, "| [")
		if !strings.HasPrefix(line, "|") || end < 0 {
			t.Fatalf("string: malformed bar %q", line)
		}

		bar := line[1:end]
		if n := utf8.RuneCountInString(bar); n != 10 {
			t.Errorf("string: expected bar of width 10, got %v in %q", n,
				line)
		}
		if want := i * 10 / 3; strings.Count(bar, "█") != want {
			t.Errorf("string: expected %v filled blocks, got %q", want, bar)
		}
	}
}
