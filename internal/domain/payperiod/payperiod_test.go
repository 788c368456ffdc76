package payperiod

import (
	"testing"
	"time"
)

func TestFromDateFirstHalf(t *testing.T) {
	p := FromDate(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	if p.Year != 2024 || p.Month != 2 || p.Half != 1 {
		t.Fatalf("expected 2024/2/1, got %+v", p)
	}
	if got := p.Start().Day(); got != 1 {
		t.Fatalf("expected start day 1, got %d", got)
	}
	if got := p.End().Day(); got != 15 {
		t.Fatalf("expected end day 15, got %d", got)
	}
}

func TestFromDateSecondHalf(t *testing.T) {
	p := FromDate(time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC))
	if p.Half != 2 {
		t.Fatalf("expected half 2, got %d", p.Half)
	}
	if got := p.Start().Day(); got != 16 {
		t.Fatalf("expected start day 16, got %d", got)
	}
	if got := p.End().Day(); got != 31 {
		t.Fatalf("expected end day 31, got %d", got)
	}
}

func TestLeapFebruaryRange(t *testing.T) {
	p := FromDate(time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC))
	if p.Half != 2 {
		t.Fatalf("expected half 2, got %d", p.Half)
	}
	if got := p.End().Day(); got != 29 {
		t.Fatalf("expected leap February to end on 29, got %d", got)
	}
	if got := p.Label(); got != "Feb 16-29, 2024" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	dates := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC),
		time.Date(1999, 7, 15, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		p := FromDate(d)
		parsed, err := ParseKey(p.Key())
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", p.Key(), err)
		}
		if parsed != p {
			t.Fatalf("round trip mismatch for %v: %+v != %+v", d, parsed, p)
		}
	}
}

func TestKeyFormat(t *testing.T) {
	p := Period{Year: 2024, Month: 2, Half: 2}
	if got := p.Key(); got != "2024-03-2" {
		t.Fatalf("expected key 2024-03-2, got %q", got)
	}
}

func TestParseKeyRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"2024-03",
		"2024-03-2-1",
		"abcd-03-1",
		"2024-xx-1",
		"2024-03-x",
		"2024-03-3",
		"2024-00-1",
		"2024-13-1",
	}
	for _, key := range bad {
		if _, err := ParseKey(key); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}

func TestLabelFirstHalf(t *testing.T) {
	p := Period{Year: 2024, Month: 2, Half: 1}
	if got := p.Label(); got != "Mar 1-15, 2024" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestContains(t *testing.T) {
	p := Period{Year: 2024, Month: 2, Half: 1}
	if !p.Contains(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("expected March 15 inside first half")
	}
	if p.Contains(time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("expected March 16 outside first half")
	}
}
