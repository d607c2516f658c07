// Package cli runs the lyrics form from a terminal.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"

	"github.com/makeasinger/lyricstudio/internal/document"
	"github.com/makeasinger/lyricstudio/internal/form"
	"github.com/makeasinger/lyricstudio/internal/logging"
	"github.com/makeasinger/lyricstudio/internal/studio"
)

// ErrGenerationFailed is returned after the failure message was printed.
var ErrGenerationFailed = errors.New("generation failed")

type Config struct {
	Server string
	Token  string
	Input  form.Input
	Copy   bool
	PDF    string
	// Font is a UTF-8 TrueType file used for the PDF export.
	Font string
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return studio.ErrNoClipboard
	}
	return clipboard.WriteAll(text)
}

// Run fills a session from cfg, generates once and prints the lyrics with
// their word count. Notices go to out as they happen.
func Run(ctx context.Context, cfg *Config, out io.Writer, cb studio.Clipboard) error {
	if cfg.Server == "" {
		return errors.New("missing server")
	}
	log := logging.NewLogger(ctx)

	font, err := loadFont(cfg.Font)
	if err != nil {
		return err
	}

	var opts []studio.ClientOption
	opts = append(opts, studio.WithLogger(log))
	if cfg.Token != "" {
		opts = append(opts, studio.WithToken(cfg.Token))
	}

	s := studio.NewSession(studio.NewClient(cfg.Server, opts...),
		studio.WithInput(cfg.Input),
		studio.WithExportFont(font),
		studio.WithClipboard(cb),
		studio.WithSessionLogger(log),
		studio.WithNotifier(studio.NotifierFunc(func(msg string) {
			fmt.Fprintln(out, msg)
		})),
		studio.OnChange(func(r studio.Result) {
			if r.State() == studio.StatePending {
				fmt.Fprintln(out, "Generating...")
			}
		}),
	)
	res, _ := s.Generate(ctx)
	if msg, ok := res.Message(); ok {
		fmt.Fprintln(out, msg)
		return ErrGenerationFailed
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, s.Lyrics())
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d words\n", s.WordCount())

	if cfg.Copy {
		// The notifier already told the user.
		_ = s.Copy()
	}
	if cfg.PDF != "" {
		if err := exportPDF(s, cfg.PDF); err != nil {
			return err
		}
	}
	return nil
}

func loadFont(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	font, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cli: couldn't read font: %w", err)
	}
	if err := document.ParseFont(font); err != nil {
		return nil, fmt.Errorf("cli: %s: %w", path, err)
	}
	return font, nil
}

func exportPDF(s *studio.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cli: couldn't create %s: %w", path, err)
	}
	_, err = s.ExportPDF(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}
