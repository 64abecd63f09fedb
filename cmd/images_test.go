// ABOUTME: Tests for the images commands
// ABOUTME: Verifies listing filters, bulk delete isolation, and formatting

package cmd

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jothyanandanch/ssnapify/internal/client"
)

const imagesFixture = `[
  {"id":1,"title":"Beach","transformation_type":"","secure_url":"https://cdn.example/1.jpg","created_at":"2026-08-01T10:00:00Z"},
  {"id":2,"title":"Beach enhanced","transformation_type":"enhance","secure_url":"https://cdn.example/2.jpg","created_at":"2026-08-02T10:00:00Z"},
  {"id":3,"title":"Mountain","transformation_type":"remove_bg","secure_url":"https://cdn.example/3.jpg","created_at":"2026-08-03T10:00:00Z"}
]`

func TestImagesList(t *testing.T) {
	var gotQuery string
	setupCommandTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(imagesFixture))
	}))
	seedToken(t, "abc123")

	var buf bytes.Buffer
	exitCode := runImagesList(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d\n%s", exitCode, buf.String())
	}
	if strings.Contains(gotQuery, "transformation_type") {
		t.Errorf("default 'all' filter must not send a type param, got %q", gotQuery)
	}
	for _, want := range []string{"Beach", "Mountain", "3 image(s)"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("expected %q in output\n%s", want, buf.String())
		}
	}
}

func TestImagesList_TypeFilterParam(t *testing.T) {
	var gotQuery string
	setupCommandTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	seedToken(t, "abc123")

	imagesType = "enhance"
	defer func() { imagesType = "all" }()

	var buf bytes.Buffer
	runImagesList(context.Background(), &buf)

	if !strings.Contains(gotQuery, "transformation_type=enhance") {
		t.Errorf("expected type param in query, got %q", gotQuery)
	}
}

func TestImagesList_SearchFilter(t *testing.T) {
	setupCommandTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(imagesFixture))
	}))
	seedToken(t, "abc123")

	imagesSearch = "beach"
	defer func() { imagesSearch = "" }()

	var buf bytes.Buffer
	runImagesList(context.Background(), &buf)

	if !bytes.Contains(buf.Bytes(), []byte("2 image(s)")) {
		t.Errorf("case-insensitive search should match 2 images\n%s", buf.String())
	}
	if bytes.Contains(buf.Bytes(), []byte("Mountain")) {
		t.Error("search should exclude non-matching titles")
	}
}

func TestImagesDelete_FailureIsolation(t *testing.T) {
	setupCommandTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/2") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail":"Image not found"}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	seedToken(t, "abc123")

	var buf bytes.Buffer
	exitCode := runImagesDelete(context.Background(), &buf, []string{"1", "2", "3"})

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d\n%s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("✓ 1 deleted")) {
		t.Error("expected id 1 to delete")
	}
	if !bytes.Contains(buf.Bytes(), []byte("✓ 3 deleted")) {
		t.Error("failure on id 2 must not stop id 3")
	}
	if !bytes.Contains(buf.Bytes(), []byte("Image not found")) {
		t.Error("expected server detail for the failed deletion")
	}
}

func TestImagesDelete_InvalidID(t *testing.T) {
	requests := 0
	setupCommandTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	seedToken(t, "abc123")

	var buf bytes.Buffer
	exitCode := runImagesDelete(context.Background(), &buf, []string{"1", "nope"})

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if requests != 0 {
		t.Errorf("invalid input must fail before any deletion, saw %d requests", requests)
	}
}

func TestFormatImagesHuman_Empty(t *testing.T) {
	out := formatImagesHuman(nil)
	if out != "No images found." {
		t.Errorf("unexpected empty output: %q", out)
	}
}

func TestFormatImageHuman_UntitledOriginal(t *testing.T) {
	img := &client.ImageAsset{
		ID:        7,
		SecureURL: "https://cdn.example/7.jpg",
		CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
	out := formatImageHuman(img)

	if !strings.Contains(out, "(untitled)") {
		t.Error("expected untitled placeholder")
	}
	if !strings.Contains(out, "Original") {
		t.Error("expected empty transformation to render as Original")
	}
}
