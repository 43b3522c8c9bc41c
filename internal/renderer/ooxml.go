package renderer

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/net/html/charset"
)

const (
	nsPresentation  = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawing       = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	presentationPart = "ppt/presentation.xml"
	presentationRels = "ppt/_rels/presentation.xml.rels"
)

type presentationXML struct {
	SlideIDs []struct {
		RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type relationshipsXML struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// ooxmlPackage gives access to the slide parts of a .pptx in presentation order
type ooxmlPackage struct {
	zr     *zip.ReadCloser
	files  map[string]*zip.File
	slides []string
}

func openPackage(pptxPath string) (*ooxmlPackage, error) {
	zr, err := zip.OpenReader(pptxPath)
	if err != nil {
		return nil, fmt.Errorf("open pptx: %w", err)
	}

	pkg := &ooxmlPackage{zr: zr, files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		pkg.files[f.Name] = f
	}

	slides, err := pkg.slideOrder()
	if err != nil {
		zr.Close()
		return nil, err
	}
	pkg.slides = slides

	return pkg, nil
}

func (p *ooxmlPackage) Close() error {
	return p.zr.Close()
}

func (p *ooxmlPackage) read(name string) ([]byte, error) {
	f, ok := p.files[name]
	if !ok {
		return nil, fmt.Errorf("part %s not found in package", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

func decodeXML(data []byte, v interface{}) error {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel
	return decoder.Decode(v)
}

// slideOrder follows sldIdLst through the presentation relationships,
// which is the order slides are shown in, not the order of part names.
func (p *ooxmlPackage) slideOrder() ([]string, error) {
	presData, err := p.read(presentationPart)
	if err != nil {
		return nil, err
	}
	var pres presentationXML
	if err := decodeXML(presData, &pres); err != nil {
		return nil, fmt.Errorf("parse %s: %w", presentationPart, err)
	}

	relsData, err := p.read(presentationRels)
	if err != nil {
		return nil, err
	}
	var rels relationshipsXML
	if err := decodeXML(relsData, &rels); err != nil {
		return nil, fmt.Errorf("parse %s: %w", presentationRels, err)
	}

	targets := make(map[string]string, len(rels.Relationships))
	for _, r := range rels.Relationships {
		targets[r.ID] = r.Target
	}

	slides := make([]string, 0, len(pres.SlideIDs))
	for i, s := range pres.SlideIDs {
		target, ok := targets[s.RelID]
		if !ok {
			return nil, fmt.Errorf("slide %d: relationship %q not found", i+1, s.RelID)
		}
		slides = append(slides, resolvePart("ppt", target))
	}

	return slides, nil
}

func resolvePart(base, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(base, target)
}

// SlideCount returns the number of slides listed by the presentation
func (p *ooxmlPackage) SlideCount() int {
	return len(p.slides)
}

// SlideText returns the text of slide index (1-based)
func (p *ooxmlPackage) SlideText(index int) (string, error) {
	if index < 1 || index > len(p.slides) {
		return "", fmt.Errorf("slide %d out of range (1-%d)", index, len(p.slides))
	}
	data, err := p.read(p.slides[index-1])
	if err != nil {
		return "", err
	}
	return extractSlideText(data)
}

// extractSlideText joins, in shape order, the text of every shape that has a
// text body with non-blank text. Shapes are separated by a single space and
// paragraphs within a shape by a newline.
func extractSlideText(slideData []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(slideData))
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		shapes     []string
		inShape    bool
		hasText    bool
		inTextRun  bool
		paragraphs []string
		current    strings.Builder
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse slide xml: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch {
			case el.Name.Space == nsPresentation && el.Name.Local == "sp":
				inShape, hasText = true, false
				paragraphs = paragraphs[:0]
			case !inShape:
			case el.Name.Space == nsPresentation && el.Name.Local == "txBody":
				hasText = true
			case el.Name.Space == nsDrawing && el.Name.Local == "p":
				current.Reset()
			case el.Name.Space == nsDrawing && el.Name.Local == "t":
				inTextRun = true
			case el.Name.Space == nsDrawing && el.Name.Local == "br":
				current.WriteString("\n")
			}

		case xml.EndElement:
			switch {
			case !inShape:
			case el.Name.Space == nsDrawing && el.Name.Local == "t":
				inTextRun = false
			case el.Name.Space == nsDrawing && el.Name.Local == "p":
				paragraphs = append(paragraphs, current.String())
			case el.Name.Space == nsPresentation && el.Name.Local == "sp":
				text := strings.Join(paragraphs, "\n")
				if hasText && strings.TrimSpace(text) != "" {
					shapes = append(shapes, text)
				}
				inShape = false
			}

		case xml.CharData:
			if inShape && inTextRun {
				current.Write(el)
			}
		}
	}

	return strings.TrimSpace(strings.Join(shapes, " ")), nil
}
