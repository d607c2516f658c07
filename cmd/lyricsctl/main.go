package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/makeasinger/lyricstudio/internal/cli"
	"github.com/makeasinger/lyricstudio/internal/logging"
)

// Build flags
var version = ""
var commit = ""
var date = ""

func main() {
	// Create signal based context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Launch command
	cmd := newCommand()
	if err := cmd.ParseAndRun(ctx, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func newCommand() *ffcli.Command {
	fs := flag.NewFlagSet("lyricsctl", flag.ExitOnError)

	return &ffcli.Command{
		ShortUsage: "lyricsctl [flags] <subcommand>",
		FlagSet:    fs,
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
		Subcommands: []*ffcli.Command{
			newVersionCommand(),
			newGenerateCommand(),
		},
	}
}

func newVersionCommand() *ffcli.Command {
	return &ffcli.Command{
		Name:       "version",
		ShortUsage: "lyricsctl version",
		ShortHelp:  "print version",
		Exec: func(ctx context.Context, args []string) error {
			v := version
			if v == "" {
				if buildInfo, ok := debug.ReadBuildInfo(); ok {
					v = buildInfo.Main.Version
				}
			}
			if v == "" {
				v = "dev"
			}
			versionFields := []string{v}
			if commit != "" {
				versionFields = append(versionFields, commit)
			}
			if date != "" {
				versionFields = append(versionFields, date)
			}
			fmt.Println(strings.Join(versionFields, " "))
			return nil
		},
	}
}

func newGenerateCommand() *ffcli.Command {
	cmd := "generate"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &cli.Config{}
	fs.StringVar(&cfg.Server, "server", "http://localhost:8000", "lyrics server base URL")
	fs.StringVar(&cfg.Token, "token", "", "bearer token for servers with auth enabled")
	fs.StringVar(&cfg.Input.Style, "style", "", "music style, e.g. pop, rock, jazz")
	fs.StringVar(&cfg.Input.Theme, "theme", "", "theme, e.g. love, journey")
	fs.StringVar(&cfg.Input.Emotion, "emotion", "", "emotional tone, e.g. happy, nostalgic")
	fs.StringVar(&cfg.Input.Structure, "structure", "", "structure, e.g. verse-chorus-verse, AABA")
	fs.StringVar(&cfg.Input.Length, "length", "", "approximate number of words")
	fs.BoolVar(&cfg.Copy, "copy", false, "copy the lyrics to the clipboard")
	fs.StringVar(&cfg.PDF, "pdf", "", "export the lyrics to this PDF file")
	fs.StringVar(&cfg.Font, "font", "", "UTF-8 TrueType font for the PDF export (optional)")
	logLevel := fs.String("log-level", "warn", "log level")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("lyricsctl %s [flags]", cmd),
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ff.PlainParser),
			ff.WithEnvVarPrefix("lyricsctl"),
		},
		ShortHelp: "generate lyrics from the form fields",
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			logging.Configure(os.Stderr, *logLevel)
			return cli.Run(ctx, cfg, os.Stdout, cli.SystemClipboard{})
		},
	}
}
