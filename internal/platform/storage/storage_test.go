package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveWritesUnderTicketDir(t *testing.T) {
	base := t.TempDir()
	store := New(base, "/storage")

	url, err := store.Save("ticket-1", "report final.pdf", strings.NewReader("content"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(url, "/storage/documents/ticket-1/") {
		t.Fatalf("unexpected url: %s", url)
	}
	if strings.Contains(url, " ") {
		t.Fatalf("url must not contain spaces: %s", url)
	}

	entries, err := os.ReadDir(filepath.Join(base, "documents", "ticket-1"))
	if err != nil {
		t.Fatalf("read dir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one file, got %d", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(base, "documents", "ticket-1", entries[0].Name()))
	if err != nil {
		t.Fatalf("read file failed: %v", err)
	}
	if string(data) != "content" {
		t.Fatalf("unexpected file content: %q", data)
	}
}

func TestSaveRejectsPathTraversal(t *testing.T) {
	base := t.TempDir()
	store := New(base, "/storage")

	url, err := store.Save("ticket-2", "../../etc/passwd", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if strings.Contains(url, "..") {
		t.Fatalf("url must not escape the ticket dir: %s", url)
	}
	if _, err := os.Stat(filepath.Join(base, "documents", "ticket-2")); err != nil {
		t.Fatalf("expected file inside ticket dir: %v", err)
	}
}
