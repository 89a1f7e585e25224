package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// TestExpandFileRefs_InlinesFileContents verifies {path} placeholders become
// fenced file contents.
func TestExpandFileRefs_InlinesFileContents(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "test.txt")
	second := filepath.Join(dir, "test2.txt")
	if err := os.WriteFile(first, []byte("test"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("test2"), 0o644); err != nil {
		t.Fatal(err)
	}

	message := "review following code, {" + first + "} and {" + second + "}"
	got := expandFileRefs(message)

	want := "review following code, ```test``` and ```test2```"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

// TestExpandFileRefs_MissingFile_LeftUntouched verifies unreadable paths stay
// as written.
func TestExpandFileRefs_MissingFile_LeftUntouched(t *testing.T) {
	message := "look at {/no/such/file}"
	if got := expandFileRefs(message); got != message {
		t.Fatalf("expected unchanged message, got %q", got)
	}
}

// TestExpandRemoteRefs_InlinesFetchedBody verifies [url] placeholders become
// the fetched page body.
func TestExpandRemoteRefs_InlinesFetchedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("remote content"))
	}))
	defer server.Close()

	got := expandRemoteRefs("summarize [" + server.URL + "]")
	if got != "summarize remote content" {
		t.Fatalf("expected inlined body, got %q", got)
	}
}

// TestExpandRemoteRefs_FetchFailure_LeftUntouched verifies failing URLs stay
// as written.
func TestExpandRemoteRefs_FetchFailure_LeftUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	message := "summarize [" + server.URL + "]"
	if got := expandRemoteRefs(message); got != message {
		t.Fatalf("expected unchanged message, got %q", got)
	}
}
