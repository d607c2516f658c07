// Package document renders lyrics into a paginated PDF.
package document

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
)

var (
	// ErrNothingToExport is returned when the lyrics text is empty.
	ErrNothingToExport = errors.New("nothing to export")
	// ErrUnsupportedText is returned when the text has characters the
	// selected font cannot encode.
	ErrUnsupportedText = errors.New("text has characters the PDF font cannot show")
	// ErrBadFont is returned for font data fpdf cannot load.
	ErrBadFont = errors.New("not a usable TrueType font")
)

const (
	DefaultTitle = "Lyrics"

	marginMM   = 20.0
	lineHeight = 6.0
	bodySize   = 12.0
	titleSize  = 16.0

	coreFamily = "Helvetica"
	utf8Family = "lyrics"
)

type Options struct {
	Title string
	// Font is a UTF-8 TrueType font. Without it only Windows-1252 text can
	// be rendered.
	Font []byte
}

// Stats describes a rendered document.
type Stats struct {
	Pages int
}

// Render writes text as an A4 PDF to w. Each input line is word-wrapped to the
// printable width and pages break automatically. Nothing is written when text
// is empty or cannot be encoded.
func Render(w io.Writer, text string, opts Options) (Stats, error) {
	if strings.TrimSpace(text) == "" {
		return Stats{}, ErrNothingToExport
	}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = DefaultTitle
	}

	pdf := fpdf.New("P", "mm", "A4", "")

	family := coreFamily
	tr := func(s string) string { return s }
	if len(opts.Font) > 0 {
		if err := addFont(pdf, opts.Font); err != nil {
			return Stats{}, err
		}
		family = utf8Family
		if err := checkUTF8(title + text); err != nil {
			return Stats{}, err
		}
	} else {
		tr = pdf.UnicodeTranslatorFromDescriptor("")
		if err := checkEncodable(tr, title+text); err != nil {
			return Stats{}, err
		}
	}

	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(true, marginMM)
	pdf.SetTitle(title, true)
	pdf.SetCreator("lyricstudio", true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(coreFamily, "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont(family, "B", titleSize)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont(family, "", bodySize)

	pageW, _ := pdf.GetPageSize()
	width := pageW - 2*marginMM

	for _, raw := range strings.Split(normalizeNewlines(text), "\n") {
		if strings.TrimSpace(raw) == "" {
			pdf.Ln(lineHeight)
			continue
		}
		pdf.MultiCell(width, lineHeight, tr(raw), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return Stats{}, fmt.Errorf("write pdf: %w", err)
	}

	return Stats{Pages: pdf.PageCount()}, nil
}

// ParseFont reports whether font can be used as Options.Font.
func ParseFont(font []byte) error {
	if len(font) == 0 {
		return ErrBadFont
	}
	return addFont(fpdf.New("P", "mm", "A4", ""), font)
}

// addFont registers font in regular and bold style. fpdf panics or skips the
// font silently on malformed data; both end up as ErrBadFont.
func addFont(pdf *fpdf.Fpdf, font []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrBadFont, r)
		}
	}()

	pdf.AddUTF8FontFromBytes(utf8Family, "", font)
	pdf.AddUTF8FontFromBytes(utf8Family, "B", font)
	pdf.SetFont(utf8Family, "B", bodySize)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrBadFont, err)
	}
	return nil
}

// checkEncodable reports the first rune tr turns into the '.' placeholder.
func checkEncodable(tr func(string) string, text string) error {
	for _, r := range text {
		if r < utf8.RuneSelf || r == '.' {
			continue
		}
		if tr(string(r)) == "." {
			return fmt.Errorf("%w: %q", ErrUnsupportedText, r)
		}
	}
	return nil
}

// checkUTF8 rejects runes outside the Basic Multilingual Plane, which fpdf's
// UTF-8 fonts cannot address.
func checkUTF8(text string) error {
	for _, r := range text {
		if r > 0xFFFF || r == utf8.RuneError {
			return fmt.Errorf("%w: %q", ErrUnsupportedText, r)
		}
	}
	return nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
