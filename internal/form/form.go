// Package form holds the five songwriting fields a user fills in and turns
// them into a generation request.
package form

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/makeasinger/lyricstudio/internal/model"
)

// Field names as they appear in the page form.
const (
	FieldStyle     = "style"
	FieldTheme     = "theme"
	FieldEmotion   = "emotion"
	FieldStructure = "structure"
	FieldLength    = "length"
)

// Input is the raw, unvalidated form content.
type Input struct {
	Style     string
	Theme     string
	Emotion   string
	Structure string
	Length    string
}

// Form owns the user-entered fields. The zero value is an empty form.
type Form struct {
	in Input
}

func New(in Input) *Form {
	return &Form{in: in}
}

// FromValues reads the fields of a submitted page form.
func FromValues(v url.Values) *Form {
	return New(Input{
		Style:     v.Get(FieldStyle),
		Theme:     v.Get(FieldTheme),
		Emotion:   v.Get(FieldEmotion),
		Structure: v.Get(FieldStructure),
		Length:    v.Get(FieldLength),
	})
}

func (f *Form) Style() string     { return f.in.Style }
func (f *Form) Theme() string     { return f.in.Theme }
func (f *Form) Emotion() string   { return f.in.Emotion }
func (f *Form) Structure() string { return f.in.Structure }
func (f *Form) Length() string    { return f.in.Length }

func (f *Form) SetStyle(s string)     { f.in.Style = s }
func (f *Form) SetTheme(s string)     { f.in.Theme = s }
func (f *Form) SetEmotion(s string)   { f.in.Emotion = s }
func (f *Form) SetStructure(s string) { f.in.Structure = s }
func (f *Form) SetLength(s string)    { f.in.Length = s }

// Input returns a copy of the current field values.
func (f *Form) Input() Input {
	return f.in
}

// Request snapshots the form into a generation request. Blank fields take
// their defaults and a length that is not a positive integer becomes
// model.DefaultLength. It never fails.
func (f *Form) Request() model.GenerationRequest {
	req := model.GenerationRequest{
		MusicStyle: f.in.Style,
		Theme:      f.in.Theme,
		Emotion:    f.in.Emotion,
		Structure:  f.in.Structure,
		Length:     ParseLength(f.in.Length),
	}
	req.ApplyDefaults()
	return req
}

// ParseLength returns the integer in s, or model.DefaultLength when s is not
// a positive base-10 integer.
func ParseLength(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return model.DefaultLength
	}
	return n
}
