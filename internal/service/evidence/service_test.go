package evidence

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"motionforge/internal/domain"
	"motionforge/internal/domain/models"
	"motionforge/internal/domain/repositories"
	"motionforge/internal/domain/services"
)

// fakeTxManager runs the function without a real transaction.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// fakeEvidenceRepo is an in-memory EvidenceRepository.
type fakeEvidenceRepo struct {
	mu    sync.Mutex
	items map[string]*models.Evidence
}

func newFakeEvidenceRepo() *fakeEvidenceRepo {
	return &fakeEvidenceRepo{items: make(map[string]*models.Evidence)}
}

func (f *fakeEvidenceRepo) Save(ctx context.Context, ev *models.Evidence) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[ev.ID] = ev
	return nil
}

func (f *fakeEvidenceRepo) GetByID(ctx context.Context, id string) (*models.Evidence, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (f *fakeEvidenceRepo) ListForCase(ctx context.Context, caseID string) ([]models.Evidence, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Evidence
	for _, ev := range f.items {
		if ev.CaseID == caseID {
			out = append(out, *ev)
		}
	}
	return out, nil
}

func (f *fakeEvidenceRepo) SetOCRText(ctx context.Context, id, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	ev.OCRText = &text
	return nil
}

func (f *fakeEvidenceRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

// fakeCaseRepo serves a single case.
type fakeCaseRepo struct {
	c *models.CaseProfile
}

func (f *fakeCaseRepo) Save(ctx context.Context, c *models.CaseProfile) error { return nil }

func (f *fakeCaseRepo) GetByID(ctx context.Context, id string) (*models.CaseProfile, error) {
	if f.c == nil || f.c.ID != id {
		return nil, domain.ErrNotFound
	}
	return f.c, nil
}

func (f *fakeCaseRepo) List(ctx context.Context) ([]models.CaseProfile, error) { return nil, nil }
func (f *fakeCaseRepo) Delete(ctx context.Context, id string) error            { return nil }
func (f *fakeCaseRepo) AddEvent(ctx context.Context, e *models.CaseEvent) error {
	return nil
}

// ocrProvider counts OCR calls.
type ocrProvider struct {
	mu       sync.Mutex
	ocrText  string
	ocrErr   error
	ocrCalls int
}

func (p *ocrProvider) Name() string { return "ocr-stub" }

func (p *ocrProvider) GenerateSection(ctx context.Context, prompt string) (string, error) {
	return "", nil
}

func (p *ocrProvider) ExtractCase(ctx context.Context, data []byte, mimeType string) (*models.ExtractedCase, error) {
	return nil, nil
}

func (p *ocrProvider) PerformOCR(ctx context.Context, data []byte, mimeType string) (string, error) {
	p.mu.Lock()
	p.ocrCalls++
	p.mu.Unlock()
	return p.ocrText, p.ocrErr
}

func (p *ocrProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ocrCalls
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCaseProfile() *models.CaseProfile {
	return &models.CaseProfile{
		ID:           "case-1",
		Nickname:     "Acme v. Beta",
		Plaintiff:    "Acme Inc",
		Defendant:    "Beta LLC",
		GlobalFacts:  "Contract dispute.",
		LastModified: time.Now(),
	}
}

func TestEvidenceService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores upload against the case", func(t *testing.T) {
		repo := newFakeEvidenceRepo()
		svc := NewEvidenceService(repo, &fakeCaseRepo{c: testCaseProfile()}, fakeTxManager{}, &ocrProvider{}, testLogger())

		ev, err := svc.Upload(ctx, "case-1", &services.UploadEvidenceRequest{
			Filename: "contract.pdf",
			MimeType: "application/pdf",
			Data:     []byte("%PDF-1.4 fake"),
		})
		if err != nil {
			t.Fatalf("Upload failed: %v", err)
		}
		if ev.Size != int64(len("%PDF-1.4 fake")) {
			t.Errorf("size mismatch: %d", ev.Size)
		}
		if _, err := repo.GetByID(ctx, ev.ID); err != nil {
			t.Error("evidence not persisted")
		}
	})

	t.Run("unknown case refused", func(t *testing.T) {
		svc := NewEvidenceService(newFakeEvidenceRepo(), &fakeCaseRepo{}, fakeTxManager{}, &ocrProvider{}, testLogger())
		_, err := svc.Upload(ctx, "ghost", &services.UploadEvidenceRequest{
			Filename: "x.txt", MimeType: "text/plain", Data: []byte("hi"),
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("empty upload refused", func(t *testing.T) {
		svc := NewEvidenceService(newFakeEvidenceRepo(), &fakeCaseRepo{c: testCaseProfile()}, fakeTxManager{}, &ocrProvider{}, testLogger())
		_, err := svc.Upload(ctx, "case-1", &services.UploadEvidenceRequest{
			Filename: "x.txt", MimeType: "text/plain",
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})
}

func TestEvidenceService_ExtractText(t *testing.T) {
	ctx := context.Background()

	upload := func(t *testing.T, svc services.EvidenceService, mime string, data []byte) *models.Evidence {
		t.Helper()
		ev, err := svc.Upload(ctx, "case-1", &services.UploadEvidenceRequest{
			Filename: "doc", MimeType: mime, Data: data,
		})
		if err != nil {
			t.Fatal(err)
		}
		return ev
	}

	t.Run("plain text handled locally", func(t *testing.T) {
		repo := newFakeEvidenceRepo()
		provider := &ocrProvider{}
		svc := NewEvidenceService(repo, &fakeCaseRepo{c: testCaseProfile()}, fakeTxManager{}, provider, testLogger())

		ev := upload(t, svc, "text/plain", []byte("deposition transcript"))
		text, err := svc.ExtractText(ctx, ev.ID)
		if err != nil {
			t.Fatalf("ExtractText failed: %v", err)
		}
		if text != "deposition transcript" {
			t.Errorf("got %q", text)
		}
		if provider.calls() != 0 {
			t.Error("plain text must not hit provider OCR")
		}

		stored, _ := repo.GetByID(ctx, ev.ID)
		if stored.OCRText == nil || *stored.OCRText != text {
			t.Error("extracted text not stored")
		}
	})

	t.Run("html converted to markdown locally", func(t *testing.T) {
		provider := &ocrProvider{}
		svc := NewEvidenceService(newFakeEvidenceRepo(), &fakeCaseRepo{c: testCaseProfile()}, fakeTxManager{}, provider, testLogger())

		ev := upload(t, svc, "text/html", []byte("<h1>Exhibit A</h1><p>The <strong>contract</strong>.</p>"))
		text, err := svc.ExtractText(ctx, ev.ID)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(text, "# Exhibit A") || !strings.Contains(text, "**contract**") {
			t.Errorf("unexpected markdown: %q", text)
		}
		if provider.calls() != 0 {
			t.Error("html must not hit provider OCR")
		}
	})

	t.Run("images fall back to provider OCR", func(t *testing.T) {
		provider := &ocrProvider{ocrText: "scanned receipt text"}
		svc := NewEvidenceService(newFakeEvidenceRepo(), &fakeCaseRepo{c: testCaseProfile()}, fakeTxManager{}, provider, testLogger())

		ev := upload(t, svc, "image/png", []byte{0x89, 0x50, 0x4e, 0x47})
		text, err := svc.ExtractText(ctx, ev.ID)
		if err != nil {
			t.Fatal(err)
		}
		if text != "scanned receipt text" {
			t.Errorf("got %q", text)
		}
		if provider.calls() != 1 {
			t.Errorf("expected 1 OCR call, got %d", provider.calls())
		}
	})

	t.Run("empty ocr result stores the fallback message", func(t *testing.T) {
		repo := newFakeEvidenceRepo()
		provider := &ocrProvider{ocrText: "   \n"}
		svc := NewEvidenceService(repo, &fakeCaseRepo{c: testCaseProfile()}, fakeTxManager{}, provider, testLogger())

		ev := upload(t, svc, "image/png", []byte{0x89, 0x50, 0x4e, 0x47})
		text, err := svc.ExtractText(ctx, ev.ID)
		if err != nil {
			t.Fatal(err)
		}
		if text != NoTextExtracted {
			t.Errorf("got %q, want %q", text, NoTextExtracted)
		}

		stored, _ := repo.GetByID(ctx, ev.ID)
		if stored.OCRText == nil || *stored.OCRText != NoTextExtracted {
			t.Error("fallback message not stored")
		}
	})

	t.Run("ocr failure surfaces", func(t *testing.T) {
		provider := &ocrProvider{ocrErr: errors.New("provider down")}
		svc := NewEvidenceService(newFakeEvidenceRepo(), &fakeCaseRepo{c: testCaseProfile()}, fakeTxManager{}, provider, testLogger())

		ev := upload(t, svc, "image/png", []byte{0x89})
		if _, err := svc.ExtractText(ctx, ev.ID); err == nil {
			t.Error("expected OCR error to surface")
		}
	})

	t.Run("re-running overwrites previous text", func(t *testing.T) {
		repo := newFakeEvidenceRepo()
		provider := &ocrProvider{ocrText: "first pass"}
		svc := NewEvidenceService(repo, &fakeCaseRepo{c: testCaseProfile()}, fakeTxManager{}, provider, testLogger())

		ev := upload(t, svc, "image/png", []byte{0x89})
		if _, err := svc.ExtractText(ctx, ev.ID); err != nil {
			t.Fatal(err)
		}
		provider.ocrText = "second pass"
		text, err := svc.ExtractText(ctx, ev.ID)
		if err != nil {
			t.Fatal(err)
		}
		if text != "second pass" {
			t.Errorf("got %q", text)
		}
		stored, _ := repo.GetByID(ctx, ev.ID)
		if *stored.OCRText != "second pass" {
			t.Error("stored text not overwritten")
		}
	})
}

func TestLocalExtractor(t *testing.T) {
	extractor := newLocalExtractor()

	t.Run("binary text mime rejected", func(t *testing.T) {
		_, ok, err := extractor.Extract([]byte{0xff, 0xfe, 0x00}, "text/plain")
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Error("invalid utf-8 should defer to OCR")
		}
	})

	t.Run("unknown mime defers to OCR", func(t *testing.T) {
		_, ok, err := extractor.Extract([]byte("anything"), "application/octet-stream")
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Error("unknown formats should defer to OCR")
		}
	})
}
