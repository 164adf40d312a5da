package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestClient_DownloadFile(t *testing.T) {
	body := []byte("<?xml version=\"1.0\"?><score-partwise/>")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.Write(body)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "song.xml")
	client := NewClient(Config{UserAgent: "scorefetch-test"})

	written, err := client.DownloadFile(context.Background(), server.URL+"/song.xml", dest, nil)
	if err != nil {
		t.Fatalf("DownloadFile() error = %v", err)
	}
	if written != int64(len(body)) {
		t.Errorf("written = %d, want %d", written, len(body))
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if !bytes.Equal(got, body) {
		t.Error("downloaded content does not match served content")
	}
}

func TestClient_DownloadFile_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "missing.mxl")
	client := NewClient(Config{})

	_, err := client.DownloadFile(context.Background(), server.URL+"/missing.mxl", dest, nil)
	if err == nil {
		t.Fatal("DownloadFile() should fail on HTTP 404")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error = %v, want mention of the status code", err)
	}
	if !strings.Contains(err.Error(), "fetch") {
		t.Errorf("error = %v, want fetch error kind", err)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("no file should be written on a failed fetch")
	}
}

func TestClient_DownloadFile_WriteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data"))
	}))
	defer server.Close()

	client := NewClient(Config{})

	// Destination directory does not exist.
	dest := filepath.Join(t.TempDir(), "no-such-dir", "song.xml")
	_, err := client.DownloadFile(context.Background(), server.URL, dest, nil)
	if err == nil {
		t.Fatal("DownloadFile() should fail when the destination cannot be created")
	}
	if !strings.Contains(err.Error(), "write") {
		t.Errorf("error = %v, want write error kind", err)
	}
}

func TestClient_DownloadFile_Overwrites(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fresh content"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "song.xml")
	if err := os.WriteFile(dest, []byte("stale and much longer content"), 0644); err != nil {
		t.Fatal(err)
	}

	client := NewClient(Config{})
	if _, err := client.DownloadFile(context.Background(), server.URL, dest, nil); err != nil {
		t.Fatalf("DownloadFile() error = %v", err)
	}

	got, _ := os.ReadFile(dest)
	if string(got) != "fresh content" {
		t.Errorf("file content = %q, want %q", got, "fresh content")
	}
}

func TestProgressWriter(t *testing.T) {
	var buf bytes.Buffer
	var lastWritten, lastTotal int64

	pw := &ProgressWriter{
		Writer: &buf,
		Total:  10,
		OnUpdate: func(written, total int64) {
			lastWritten = written
			lastTotal = total
		},
	}

	pw.Write([]byte("hello"))
	pw.Write([]byte("world"))

	if buf.String() != "helloworld" {
		t.Errorf("underlying writer got %q", buf.String())
	}
	if lastWritten != 10 || lastTotal != 10 {
		t.Errorf("OnUpdate got (%d, %d), want (10, 10)", lastWritten, lastTotal)
	}
}
