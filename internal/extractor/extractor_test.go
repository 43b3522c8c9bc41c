package extractor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/deckcast/internal/logger"
	"github.com/nguyentantai21042004/deckcast/internal/model"
	"github.com/nguyentantai21042004/deckcast/internal/renderer"
)

type fakeSession struct {
	texts      []string
	textErr    map[int]error
	exportErr  map[int]error
	exported   []string
	exportSize []model.Resolution
	closed     int
}

func (s *fakeSession) SlideCount() int { return len(s.texts) }

func (s *fakeSession) ExportSlideImage(ctx context.Context, index int, size model.Resolution, dest string) error {
	if err := s.exportErr[index]; err != nil {
		return err
	}
	s.exported = append(s.exported, dest)
	s.exportSize = append(s.exportSize, size)
	return nil
}

func (s *fakeSession) SlideText(index int) (string, error) {
	if err := s.textErr[index]; err != nil {
		return "", err
	}
	return s.texts[index-1], nil
}

func (s *fakeSession) Close() error {
	s.closed++
	return nil
}

type fakeRenderer struct {
	session *fakeSession
	openErr error
}

func (r *fakeRenderer) Open(ctx context.Context, path string) (renderer.Session, error) {
	if r.openErr != nil {
		return nil, r.openErr
	}
	return r.session, nil
}

func newRequest(dir string) Request {
	return Request{SourcePath: "/decks/deck.pptx", ScratchDir: dir, RunID: "run1"}
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	session := &fakeSession{texts: []string{" Hello world ", "", "Bye"}}
	ex := New(&fakeRenderer{session: session}, model.Res1080p, logger.New("error"))

	slides, err := ex.Extract(context.Background(), newRequest(dir))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(slides) != 3 {
		t.Fatalf("len(slides) = %d, want 3", len(slides))
	}
	wantText := []string{"Hello world", "", "Bye"}
	for i, s := range slides {
		if s.Index != i+1 {
			t.Errorf("slides[%d].Index = %d, want %d", i, s.Index, i+1)
		}
		if s.Text != wantText[i] {
			t.Errorf("slides[%d].Text = %q, want %q", i, s.Text, wantText[i])
		}
		wantPath := filepath.Join(dir, fmt.Sprintf("run1_deck_slide_%d.png", i+1))
		if s.ImagePath != wantPath {
			t.Errorf("slides[%d].ImagePath = %q, want %q", i, s.ImagePath, wantPath)
		}
	}
	for _, size := range session.exportSize {
		if size != model.Res1080p {
			t.Errorf("export size = %v, want %v", size, model.Res1080p)
		}
	}
	if session.closed != 1 {
		t.Errorf("Close() called %d times, want 1", session.closed)
	}
}

func TestExtractClosesSessionOnExportFailure(t *testing.T) {
	session := &fakeSession{
		texts:     []string{"a", "b", "c"},
		exportErr: map[int]error{2: errors.New("disk full")},
	}
	ex := New(&fakeRenderer{session: session}, model.Res1080p, logger.New("error"))

	_, err := ex.Extract(context.Background(), newRequest(t.TempDir()))

	var rErr *model.RendererError
	if !errors.As(err, &rErr) {
		t.Fatalf("Extract() error = %v, want RendererError", err)
	}
	if rErr.Slide != 2 {
		t.Errorf("RendererError.Slide = %d, want 2", rErr.Slide)
	}
	if session.closed != 1 {
		t.Errorf("Close() called %d times, want 1", session.closed)
	}
}

func TestExtractUnreadableTextIsEmpty(t *testing.T) {
	session := &fakeSession{
		texts:   []string{"a", "b"},
		textErr: map[int]error{1: errors.New("bad xml")},
	}
	ex := New(&fakeRenderer{session: session}, model.Res1080p, logger.New("error"))

	slides, err := ex.Extract(context.Background(), newRequest(t.TempDir()))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if slides[0].Text != "" || slides[1].Text != "b" {
		t.Errorf("texts = %q, %q", slides[0].Text, slides[1].Text)
	}
}

func TestExtractRendererUnavailable(t *testing.T) {
	cause := errors.New("soffice not found")
	ex := New(&fakeRenderer{openErr: cause}, model.Res1080p, logger.New("error"))

	_, err := ex.Extract(context.Background(), newRequest(t.TempDir()))

	var rErr *model.RendererError
	if !errors.As(err, &rErr) || rErr.Op != "open" {
		t.Fatalf("Extract() error = %v, want RendererError(open)", err)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not wrapped")
	}
}

func TestExtractEmptyPresentation(t *testing.T) {
	session := &fakeSession{}
	ex := New(&fakeRenderer{session: session}, model.Res1080p, logger.New("error"))

	_, err := ex.Extract(context.Background(), newRequest(t.TempDir()))
	if !errors.Is(err, model.ErrNoSlides) {
		t.Errorf("Extract() error = %v, want ErrNoSlides", err)
	}
	if session.closed != 1 {
		t.Errorf("Close() called %d times, want 1", session.closed)
	}
}

func TestExtractCanceled(t *testing.T) {
	session := &fakeSession{texts: []string{"a"}}
	ex := New(&fakeRenderer{session: session}, model.Res1080p, logger.New("error"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ex.Extract(ctx, newRequest(t.TempDir()))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Extract() error = %v, want context.Canceled", err)
	}
	if model.FailedSlide(err) != 1 {
		t.Errorf("FailedSlide() = %d, want 1", model.FailedSlide(err))
	}
}
