package sse

import (
	"math/rand"
	"strings"
	"testing"
)

func TestLineDecoderSplitBoundaries(t *testing.T) {
	var d LineDecoder
	var got []string

	got = append(got, d.Write([]byte("first li"))...)
	got = append(got, d.Write([]byte("ne\nsecond line\nthi"))...)
	got = append(got, d.Write([]byte("rd\n"))...)

	want := []string{"first line", "second line", "third"}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLineDecoderMultiByteRuneSplit(t *testing.T) {
	var d LineDecoder
	// "✉ Email drafted\n" with the three-byte envelope glyph split across
	// chunks one byte at a time.
	raw := []byte("✉ Email drafted\n")
	var got []string
	for i := range raw {
		got = append(got, d.Write(raw[i:i+1])...)
	}
	if len(got) != 1 {
		t.Fatalf("got %d lines, want 1", len(got))
	}
	if got[0] != "✉ Email drafted" {
		t.Errorf("line = %q, want %q", got[0], "✉ Email drafted")
	}
}

func TestLineDecoderCRLF(t *testing.T) {
	var d LineDecoder
	got := d.Write([]byte("data: one\r\ndata: two\r\n"))
	if len(got) != 2 || got[0] != "data: one" || got[1] != "data: two" {
		t.Fatalf("got %v, want stripped CRLF lines", got)
	}
}

func TestLineDecoderDiscardsUnterminatedTail(t *testing.T) {
	var d LineDecoder
	lines := d.Write([]byte("complete\nincomplete"))
	if len(lines) != 1 || lines[0] != "complete" {
		t.Fatalf("got %v, want [complete]", lines)
	}
	if !d.Pending() {
		t.Fatal("expected pending fragment before Reset")
	}
	d.Reset()
	if d.Pending() {
		t.Fatal("Reset did not discard the fragment")
	}
}

// TestLineDecoderChunkingInvariance verifies that for any split of the same
// byte stream into chunks, the decoder emits exactly the newline-terminated
// lines, in order, and drops the unterminated remainder.
func TestLineDecoderChunkingInvariance(t *testing.T) {
	doc := "alpha\n⚠ Delay detected — Weather in Memphis hub\nβγδ line\n\n✓ done\ntrailing fragment with ✉"
	want := []string{
		"alpha",
		"⚠ Delay detected — Weather in Memphis hub",
		"βγδ line",
		"",
		"✓ done",
	}

	rng := rand.New(rand.NewSource(42))
	raw := []byte(doc)
	for trial := 0; trial < 200; trial++ {
		var d LineDecoder
		var got []string
		for pos := 0; pos < len(raw); {
			n := 1 + rng.Intn(7)
			if pos+n > len(raw) {
				n = len(raw) - pos
			}
			got = append(got, d.Write(raw[pos:pos+n])...)
			pos += n
		}
		d.Reset()

		if len(got) != len(want) {
			t.Fatalf("trial %d: got %d lines, want %d: %v", trial, len(got), len(want), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("trial %d: line[%d] = %q, want %q", trial, i, got[i], want[i])
			}
		}
	}
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		line     string
		wantType EventType
		wantData string
		wantOK   bool
	}{
		{`data: {"type":"step","data":"A"}`, TypeStep, "A", true},
		{`data: {"type":"result","data":"B"}`, TypeResult, "B", true},
		{`  data: {"type":"step","data":"padded"}  `, TypeStep, "padded", true},
		{``, "", "", false},
		{`: keep-alive`, "", "", false},
		{`event: something`, "", "", false},
		{`data: not json`, "", "", false},
		{`data: {"type":"unknown","data":"x"}`, "", "", false},
	}
	for _, tt := range tests {
		ev, ok := ParseEvent(tt.line)
		if ok != tt.wantOK {
			t.Errorf("ParseEvent(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if ev.Type != tt.wantType || ev.Data != tt.wantData {
			t.Errorf("ParseEvent(%q) = %+v, want type %q data %q", tt.line, ev, tt.wantType, tt.wantData)
		}
	}
}

func TestStreamLastResultWins(t *testing.T) {
	body := strings.Join([]string{
		`data: {"type":"step","data":"one"}`,
		``,
		`data: {"type":"result","data":"first"}`,
		`data: {"type":"result","data":"second"}`,
		``,
	}, "\n")

	var steps []string
	final, ok, err := Stream(strings.NewReader(body+"\n"), func(s string) { steps = append(steps, s) })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a result event")
	}
	if final != "second" {
		t.Errorf("final = %q, want %q", final, "second")
	}
	if len(steps) != 1 || steps[0] != "one" {
		t.Errorf("steps = %v, want [one]", steps)
	}
}

func TestStreamNoResult(t *testing.T) {
	final, ok, err := Stream(strings.NewReader("data: {\"type\":\"step\",\"data\":\"x\"}\n"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Errorf("ok = true with no result event, final = %q", final)
	}
}
