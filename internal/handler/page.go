package handler

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/makeasinger/lyricstudio/internal/form"
	"github.com/makeasinger/lyricstudio/internal/logging"
	"github.com/makeasinger/lyricstudio/internal/model"
	"github.com/makeasinger/lyricstudio/internal/service"
	"github.com/makeasinger/lyricstudio/internal/studio"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// fieldLyrics is the page's lyrics textarea.
const fieldLyrics = "lyrics"

// pageData is what templates/index.html renders.
type pageData struct {
	Input     form.Input
	Defaults  model.GenerationRequest
	Generated bool
	Lyrics    string
	Words     int
	Error     string
}

// PageHandler serves the lyrics form and handles its plain form submits.
type PageHandler struct {
	gen studio.Generator
}

func NewPageHandler(svc service.LyricsGenerator) *PageHandler {
	return &PageHandler{gen: serviceGenerator{svc: svc}}
}

// serviceGenerator runs the lyrics service in-process for the page's session.
type serviceGenerator struct {
	svc service.LyricsGenerator
}

func (g serviceGenerator) Generate(ctx context.Context, req model.GenerationRequest) studio.Result {
	res, err := g.svc.Generate(ctx, &req)
	if err != nil {
		logging.NewLogger(ctx).Errorf("lyrics generation failed: %v", err)
		return studio.Failure(studio.FailureMessage)
	}
	return studio.Success(res.Lyrics)
}

// Index handles GET /
func (h *PageHandler) Index(c *fiber.Ctx) error {
	return h.render(c, pageData{})
}

// Submit handles POST /. The posted form and lyrics text seed a session; new
// lyrics replace the text on success, and on failure the posted text is shown
// again with the generic failure message.
func (h *PageHandler) Submit(c *fiber.Ctx) error {
	values := url.Values{}
	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		values.Add(string(k), string(v))
	})

	s := studio.NewSession(h.gen,
		studio.WithInput(form.FromValues(values).Input()),
		studio.WithSessionLogger(logging.NewLogger(c.UserContext())),
	)
	s.SetLyrics(values.Get(fieldLyrics))

	res, _ := s.Generate(c.UserContext())

	data := pageData{
		Input:  s.FormInput(),
		Lyrics: s.Lyrics(),
		Words:  s.WordCount(),
	}
	data.Generated = res.State() == studio.StateSuccess || data.Lyrics != ""
	if msg, ok := res.Message(); ok {
		data.Error = msg
	}
	return h.render(c, data)
}

func (h *PageHandler) render(c *fiber.Ctx, data pageData) error {
	data.Defaults = model.GenerationRequest{
		MusicStyle: model.DefaultMusicStyle,
		Theme:      model.DefaultTheme,
		Emotion:    model.DefaultEmotion,
		Structure:  model.DefaultStructure,
		Length:     model.DefaultLength,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
