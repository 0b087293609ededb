package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html><head><title>willhaben</title></head>
<body>
<div id="app"></div>
<script id="__NEXT_DATA__" type="application/json">{"props":{"pageProps":{"searchResult":{"rowsFound":3}}}}</script>
</body></html>`

func TestDocumentExtractsNextData(t *testing.T) {
	var gotCookie, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(samplePage))
	}))
	defer server.Close()

	f := New(Options{CookieHeader: "sid=abc"})
	doc, err := f.Document(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Document returned error: %v", err)
	}
	want := `{"props":{"pageProps":{"searchResult":{"rowsFound":3}}}}`
	if string(doc) != want {
		t.Errorf("doc = %q, want %q", doc, want)
	}
	if gotCookie != "sid=abc" {
		t.Errorf("Cookie header = %q, want sid=abc", gotCookie)
	}
	if gotUA == "" {
		t.Error("User-Agent header missing")
	}
}

func TestDocumentWithoutPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>Checking your browser...</body></html>`))
	}))
	defer server.Close()

	f := New(Options{})
	_, err := f.Document(context.Background(), server.URL)
	if !errors.Is(err, ErrNoDocument) {
		t.Fatalf("err = %v, want ErrNoDocument", err)
	}
}

func TestDocumentHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	f := New(Options{})
	if _, err := f.Document(context.Background(), server.URL); err == nil {
		t.Fatal("Document returned nil error for 403 response")
	}
}

func TestBytes(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	f := New(Options{})
	data, err := f.Bytes(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Bytes returned error: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("data = %v, want %v", data, payload)
	}
}
