// Package studio is the front-end core of the lyrics form: the generation
// client, its result type and the session state that UI handlers act on.
package studio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/makeasinger/lyricstudio/internal/document"
	"github.com/makeasinger/lyricstudio/internal/form"
	"github.com/makeasinger/lyricstudio/internal/logging"
)

// User-facing notices.
const (
	NoticeCopied       = "Lyrics copied to clipboard"
	NoticeCopyFailed   = "Could not copy lyrics"
	NoticeNothingCopy  = "Nothing to copy"
	NoticeNothingPrint = "Nothing to export"
	NoticeExported     = "Lyrics exported to PDF"
	NoticeUnsupported  = "Lyrics contain characters the PDF font cannot show"
)

var (
	ErrNothingToCopy = errors.New("nothing to copy")
	ErrNoClipboard   = errors.New("no clipboard available")
)

// Clipboard accepts text for the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(msg string)
}

type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// Session holds everything one user works with: the form, the latest result
// and the editable lyrics text. A second Generate while one is pending is a
// no-op.
type Session struct {
	mu        sync.Mutex
	form      *form.Form
	gen       Generator
	result    Result
	lyrics    string
	clipboard Clipboard
	notifier  Notifier
	font      []byte
	observers []func(Result)
	log       logging.Logger
}

type SessionOption func(*Session)

// WithInput starts the session with a filled-in form.
func WithInput(in form.Input) SessionOption {
	return func(s *Session) { s.form = form.New(in) }
}

// WithExportFont sets the UTF-8 TrueType font used by ExportPDF.
func WithExportFont(font []byte) SessionOption {
	return func(s *Session) { s.font = font }
}

func WithClipboard(c Clipboard) SessionOption {
	return func(s *Session) { s.clipboard = c }
}

func WithNotifier(n Notifier) SessionOption {
	return func(s *Session) { s.notifier = n }
}

func WithSessionLogger(l logging.Logger) SessionOption {
	return func(s *Session) { s.log = l }
}

// OnChange registers fn to run after every result transition.
func OnChange(fn func(Result)) SessionOption {
	return func(s *Session) { s.observers = append(s.observers, fn) }
}

func NewSession(gen Generator, opts ...SessionOption) *Session {
	s := &Session{
		form:     &form.Form{},
		gen:      gen,
		result:   Idle(),
		notifier: NotifierFunc(func(string) {}),
		log:      logging.NewLogger(context.Background()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EditForm runs fn with the form while holding the session lock, so edits
// never interleave with the request snapshot taken by Generate.
func (s *Session) EditForm(fn func(f *form.Form)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.form)
}

// FormInput returns a copy of the current field values.
func (s *Session) FormInput() form.Input {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Input()
}

func (s *Session) Result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Lyrics returns the current, possibly user-edited, text.
func (s *Session) Lyrics() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lyrics
}

func (s *Session) SetLyrics(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lyrics = text
}

func (s *Session) WordCount() int {
	return WordCount(s.Lyrics())
}

// Busy reports whether a generation is in flight.
func (s *Session) Busy() bool {
	return s.Result().State() == StatePending
}

// Generate runs one generation for the current form. It returns started=false
// without contacting the endpoint when a generation is already pending. On
// Success the lyrics text is replaced; on Failure it is left as it was.
func (s *Session) Generate(ctx context.Context) (res Result, started bool) {
	s.mu.Lock()
	if s.result.State() == StatePending {
		res = s.result
		s.mu.Unlock()
		return res, false
	}
	req := s.form.Request()
	s.result = Pending()
	s.mu.Unlock()
	s.emit(Pending())

	res = s.gen.Generate(ctx, req)

	s.mu.Lock()
	s.result = res
	if text, ok := res.Lyrics(); ok {
		s.lyrics = text
	}
	s.mu.Unlock()
	s.emit(res)

	return res, true
}

func (s *Session) emit(r Result) {
	for _, fn := range s.observers {
		fn(r)
	}
}

// Copy writes the current lyrics to the clipboard and reports the outcome
// through the notifier.
func (s *Session) Copy() error {
	text := s.Lyrics()
	if strings.TrimSpace(text) == "" {
		s.notifier.Notify(NoticeNothingCopy)
		return ErrNothingToCopy
	}

	err := ErrNoClipboard
	if s.clipboard != nil {
		err = s.clipboard.WriteAll(text)
	}
	if err != nil {
		s.log.Errorf("could not copy text: %v", err)
		s.notifier.Notify(NoticeCopyFailed)
		return fmt.Errorf("copy lyrics: %w", err)
	}

	s.notifier.Notify(NoticeCopied)
	return nil
}

// ExportPDF renders the current lyrics to w. With empty lyrics nothing is
// written and document.ErrNothingToExport is returned.
func (s *Session) ExportPDF(w io.Writer) (document.Stats, error) {
	text := s.Lyrics()
	stats, err := document.Render(w, text, document.Options{Title: ExtractTitle(text), Font: s.font})
	if errors.Is(err, document.ErrNothingToExport) {
		s.notifier.Notify(NoticeNothingPrint)
		return stats, err
	}
	if errors.Is(err, document.ErrUnsupportedText) {
		s.notifier.Notify(NoticeUnsupported)
		return stats, err
	}
	if err != nil {
		return stats, fmt.Errorf("export pdf: %w", err)
	}
	s.notifier.Notify(NoticeExported)
	return stats, nil
}

// WordCount counts whitespace-delimited tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ExtractTitle returns the value of a leading "Title:" line, the format the
// lyrics prompt asks for, or "" when there is none.
func ExtractTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > len("title:") && strings.EqualFold(line[:len("title:")], "title:") {
			title := strings.TrimSpace(line[len("title:"):])
			return strings.Trim(title, "[]\"")
		}
		return ""
	}
	return ""
}
