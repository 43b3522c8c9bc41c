package script

import (
	"context"
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/nguyentantai21042004/deckcast/internal/model"
	"github.com/shopspring/decimal"
)

const (
	fontName    = "Times New Roman"
	fontSize    = 13
	titleSize   = 16
	headingSize = 14
	textColor   = "000000"
	mutedColor  = "666666"
)

// Write lists every slide with its place on the video timeline and the text
// that was narrated for it.
func (w *implWriter) Write(ctx context.Context, title string, slides []model.SlideRecord, segments []model.Segment, outputPath string) error {
	if len(slides) != len(segments) {
		return fmt.Errorf("got %d segments for %d slides", len(segments), len(slides))
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addRun(doc.AddParagraph(""), title, titleSize, textColor, true)
	addRun(doc.AddParagraph(""), "Total length "+formatTimestamp(model.TotalDuration(segments)), fontSize, mutedColor, false)

	for i, seg := range segments {
		heading := fmt.Sprintf("Slide %d  [%s - %s]", seg.Slide, formatTimestamp(seg.Start), formatTimestamp(seg.End))
		addRun(doc.AddParagraph(""), heading, headingSize, textColor, true)

		if !seg.HasAudio() {
			addRun(doc.AddParagraph(""), "(no narration)", fontSize, mutedColor, false)
			continue
		}
		for _, line := range strings.Split(slides[i].Text, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				addRun(doc.AddParagraph(""), line, fontSize, textColor, false)
			}
		}
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save %s: %w", outputPath, err)
	}

	w.logger.Info(ctx, "Narration script written to %s", outputPath)
	return nil
}

func addRun(p *docx.Paragraph, text string, size uint64, color string, bold bool) {
	run := p.AddText(text).Font(fontName).Size(size).Color(color)
	if bold {
		run.Bold(true)
	}
}

// formatTimestamp renders seconds as mm:ss.t
func formatTimestamp(seconds decimal.Decimal) string {
	tenths := seconds.Mul(decimal.NewFromInt(10)).Round(0).IntPart()
	minutes := tenths / 600
	rest := tenths % 600
	return fmt.Sprintf("%02d:%02d.%d", minutes, rest/10, rest%10)
}
