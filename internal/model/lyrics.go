package model

import "strings"

// Defaults applied to empty generation fields.
const (
	DefaultMusicStyle = "pop"
	DefaultTheme      = "love"
	DefaultEmotion    = "happy"
	DefaultStructure  = "verse-chorus-verse"
	DefaultLength     = 350
)

// GenerationRequest is the body of POST /generate-lyrics
type GenerationRequest struct {
	MusicStyle string `json:"music_style" form:"music_style" validate:"required,max=200"`
	Theme      string `json:"theme" form:"theme" validate:"required,max=500"`
	Emotion    string `json:"emotion" form:"emotion" validate:"required,max=200"`
	Structure  string `json:"structure" form:"structure" validate:"required,max=200"`
	Length     int    `json:"length" form:"length" validate:"required,min=1,max=5000"`
}

// ApplyDefaults fills blank text fields and a non-positive length.
func (r *GenerationRequest) ApplyDefaults() {
	r.MusicStyle = orDefault(r.MusicStyle, DefaultMusicStyle)
	r.Theme = orDefault(r.Theme, DefaultTheme)
	r.Emotion = orDefault(r.Emotion, DefaultEmotion)
	r.Structure = orDefault(r.Structure, DefaultStructure)
	if r.Length <= 0 {
		r.Length = DefaultLength
	}
}

func orDefault(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

// GenerateLyricsResponse is the success body of POST /generate-lyrics
type GenerateLyricsResponse struct {
	Lyrics string `json:"lyrics"`
	Status string `json:"status"`
}

const StatusSuccess = "success"
