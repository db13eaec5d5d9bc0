package resumes

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"resumerank/internal/candidate"
	"resumerank/internal/extract"
)

func docxBytes(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	doc := `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>` + body + `</w:t></w:r></w:p></w:body></w:document>`
	if _, err := w.Write([]byte(doc)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newTestService() (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	svc := &Service{
		Repo:       repo,
		Candidates: candidate.NewExtractor(nil),
	}
	return svc, repo
}

func TestUploadDocx(t *testing.T) {
	svc, repo := newTestService()
	data := docxBytes(t, "Jane Doe jane@example.com experienced engineer")

	res, err := svc.Upload(context.Background(), "user-1", "resume.docx", "", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if res.CandidateName == "" {
		t.Error("expected candidate name")
	}
	if res.FileType != "docx" {
		t.Errorf("fileType = %q, want docx", res.FileType)
	}
	if res.Source != SourceUpload {
		t.Errorf("source = %q", res.Source)
	}
	if !strings.Contains(res.ExtractedText, "Jane Doe") {
		t.Errorf("extracted text = %q", res.ExtractedText)
	}

	stored, err := repo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored %d resumes, want 1", len(stored))
	}
}

func TestUploadUnsupportedType(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Upload(context.Background(), "user-1", "resume.png", "image/png", strings.NewReader("binary"))
	if !errors.Is(err, extract.ErrUnsupportedType) {
		t.Fatalf("err = %v, want ErrUnsupportedType", err)
	}

	stored, _ := repo.ListByUser(context.Background(), "user-1")
	if len(stored) != 0 {
		t.Errorf("rejected upload was stored: %d", len(stored))
	}
}

func TestUploadEmptyDocument(t *testing.T) {
	svc, repo := newTestService()
	data := docxBytes(t, "   ")

	_, err := svc.Upload(context.Background(), "user-1", "empty.docx", "", bytes.NewReader(data))
	if !errors.Is(err, ErrEmptyText) {
		t.Fatalf("err = %v, want ErrEmptyText", err)
	}

	stored, _ := repo.ListByUser(context.Background(), "user-1")
	if len(stored) != 0 {
		t.Errorf("empty upload was stored: %d", len(stored))
	}
}

func TestAddText(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.AddText(context.Background(), "user-1", "", "John Smith\njohn@example.com\nskilled developer")
	if err != nil {
		t.Fatalf("AddText: %v", err)
	}
	if res.CandidateName != "John Smith" {
		t.Errorf("candidateName = %q", res.CandidateName)
	}
	if res.Email != "john@example.com" {
		t.Errorf("email = %q", res.Email)
	}
	if res.Source != SourceText {
		t.Errorf("source = %q", res.Source)
	}
	if res.OriginalFileName != "pasted-resume.txt" {
		t.Errorf("fileName = %q", res.OriginalFileName)
	}
}

func TestAddTextEmpty(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.AddText(context.Background(), "user-1", "", "   \n  "); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("err = %v, want ErrEmptyText", err)
	}
}

func TestClear(t *testing.T) {
	svc, _ := newTestService()
	for i := 0; i < 3; i++ {
		if _, err := svc.AddText(context.Background(), "user-1", "", "Some Person\ncontent"); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.AddText(context.Background(), "user-2", "", "Other Person\ncontent"); err != nil {
		t.Fatal(err)
	}

	removed, err := svc.Clear(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}

	left, _ := svc.List(context.Background(), "user-2")
	if len(left) != 1 {
		t.Errorf("user-2 resumes = %d, want 1", len(left))
	}
}

type memStore struct {
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (m *memStore) Save(_ context.Context, userId, fileName string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	key := userId + "/" + fileName
	m.objects[key] = data
	return key, nil
}

func (m *memStore) Open(_ context.Context, storageKey string) (io.ReadCloser, error) {
	data, ok := m.objects[storageKey]
	if !ok {
		return nil, errors.New("no such object")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func TestOpenFileRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	svc.Store = newMemStore()
	data := docxBytes(t, "Jane Doe jane@example.com experienced engineer")

	res, err := svc.Upload(context.Background(), "user-1", "resume.docx", "", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if res.StorageKey == "" {
		t.Fatal("expected storage key on uploaded resume")
	}

	rc, got, err := svc.OpenFile(context.Background(), "user-1", res.ID)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer rc.Close()
	if got.OriginalFileName != "resume.docx" {
		t.Errorf("fileName = %q", got.OriginalFileName)
	}
	body, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(body, data) {
		t.Error("archived bytes differ from uploaded bytes")
	}
}

func TestOpenFileUnknownResume(t *testing.T) {
	svc, _ := newTestService()
	svc.Store = newMemStore()

	if _, _, err := svc.OpenFile(context.Background(), "user-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestOpenFileTextResumeHasNoFile(t *testing.T) {
	svc, _ := newTestService()
	svc.Store = newMemStore()

	res, err := svc.AddText(context.Background(), "user-1", "", "Jane Doe\ncontent")
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := svc.OpenFile(context.Background(), "user-1", res.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
