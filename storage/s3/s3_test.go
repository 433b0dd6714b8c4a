package s3

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/kbukum/contentgen/logger"
	"github.com/kbukum/contentgen/storage"
)

// fakeS3 is a minimal path-style S3 endpoint keeping objects in memory.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	methods []string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.methods = append(f.methods, r.Method+" "+r.URL.Path)

	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = body
		w.WriteHeader(http.StatusOK)
	case http.MethodHead:
		if _, ok := f.objects[r.URL.Path]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		body, ok := f.objects[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `<Error><Code>NoSuchKey</Code></Error>`)
			return
		}
		w.Write(body)
	case http.MethodDelete:
		delete(f.objects, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestStorage(t *testing.T) (*Storage, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: map[string][]byte{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	s, err := NewStorage(context.Background(), storage.Config{
		Provider:  storage.ProviderS3,
		Bucket:    "content",
		Prefix:    "/drafts/",
		Region:    "us-east-1",
		Endpoint:  srv.URL,
		AccessKey: "test",
		SecretKey: "test",
	}, logger.Nop())
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	return s, fake
}

func TestStorage_UploadUsesPathStyleAndPrefix(t *testing.T) {
	s, fake := newTestStorage(t)
	ctx := context.Background()

	if err := s.Upload(ctx, "2024-10-01/a.md", strings.NewReader("# hi")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if _, ok := fake.objects["/content/drafts/2024-10-01/a.md"]; !ok {
		t.Fatalf("objects = %v, methods = %v", fake.objects, fake.methods)
	}

	ok, err := s.Exists(ctx, "2024-10-01/a.md")
	if err != nil || !ok {
		t.Errorf("Exists = %v, %v", ok, err)
	}
	ok, err = s.Exists(ctx, "missing.md")
	if err != nil || ok {
		t.Errorf("Exists(missing) = %v, %v; want false, nil", ok, err)
	}
}

func TestStorage_DownloadAndDelete(t *testing.T) {
	s, fake := newTestStorage(t)
	ctx := context.Background()
	fake.objects["/content/drafts/x.json"] = []byte(`{"a":1}`)

	data, err := storage.NewByteClient(s).Get(ctx, "x.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("data = %q", data)
	}

	if err := s.Delete(ctx, "x.json"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := fake.objects["/content/drafts/x.json"]; ok {
		t.Error("object still present after Delete")
	}
	if _, err := s.Download(ctx, "x.json"); err == nil {
		t.Error("expected error downloading a deleted object")
	}
}

func TestStorage_URL(t *testing.T) {
	s, _ := newTestStorage(t)
	u, err := s.URL(context.Background(), "2024-10-01/a.md")
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if !strings.HasSuffix(u, "/content/drafts/2024-10-01/a.md") {
		t.Errorf("URL = %q", u)
	}
}

func TestContentType(t *testing.T) {
	cases := map[string]string{
		"a.md":         "text/markdown; charset=utf-8",
		"a.video.json": "application/json",
		"a.bin":        "application/octet-stream",
	}
	for path, want := range cases {
		if got := contentType(path); got != want {
			t.Errorf("contentType(%q) = %q, want %q", path, got, want)
		}
	}
}
