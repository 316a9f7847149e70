package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	full := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewFS_MissingRoot(t *testing.T) {
	_, err := NewFS(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestNewFS_RootIsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "file.md", "x")
	_, err := NewFS(filepath.Join(dir, "file.md"))
	if err == nil {
		t.Fatal("expected error for non-directory root")
	}
}

func TestList_ArticleFilesOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "post.md", "a")
	writeFile(t, dir, "page.html", "b")
	writeFile(t, dir, "image.png", "c")
	writeFile(t, dir, "notes.txt", "d")
	writeFile(t, dir, "sub/deep.md", "e")

	f, err := NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	files, err := f.List("")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("got %d files, want 3", len(files))
	}
	// Sorted by path, forward slashes.
	want := []string{"page.html", "post.md", "sub/deep.md"}
	for i, w := range want {
		if files[i].Path != w {
			t.Errorf("files[%d] = %q, want %q", i, files[i].Path, w)
		}
	}
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "post.md", "hello")

	f, err := NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	data, err := f.Read("post.md")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("data = %q", data)
	}
}

func TestRead_TraversalRejected(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{"../outside.md", "sub/../../outside.md", "/etc/passwd"} {
		if _, err := f.Read(p); err == nil {
			t.Errorf("Read(%q) should be rejected", p)
		} else if !strings.Contains(err.Error(), "storage:") {
			t.Errorf("Read(%q) error = %v", p, err)
		}
	}
}

func TestIsArticleFile(t *testing.T) {
	cases := map[string]bool{
		"a.md":    true,
		"b.html":  true,
		"c.txt":   false,
		"d.png":   false,
		"e.md.go": false,
	}
	for name, want := range cases {
		if got := IsArticleFile(name); got != want {
			t.Errorf("IsArticleFile(%q) = %v, want %v", name, got, want)
		}
	}
}
