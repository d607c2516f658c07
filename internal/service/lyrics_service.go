package service

import (
	"context"
	"fmt"

	"github.com/makeasinger/lyricstudio/internal/model"
)

// NoLyricsText is returned when the chat reply carries no text.
const NoLyricsText = "No lyrics generated"

// LyricsGenerator defines the interface for lyrics generation
type LyricsGenerator interface {
	Generate(ctx context.Context, req *model.GenerationRequest) (*model.GenerateLyricsResponse, error)
}

// Chatter sends a prompt to a chat model
type Chatter interface {
	Chat(ctx context.Context, message string) (text string, ok bool, err error)
	IsConfigured() bool
}

// LyricsService turns a generation request into a prompt and asks the chat
// workspace for lyrics
type LyricsService struct {
	chat Chatter
}

// NewLyricsService creates a new lyrics service. A nil or unconfigured chat
// client makes Generate return mock lyrics.
func NewLyricsService(chat Chatter) *LyricsService {
	return &LyricsService{chat: chat}
}

// Generate creates new lyrics based on the given parameters
func (s *LyricsService) Generate(ctx context.Context, req *model.GenerationRequest) (*model.GenerateLyricsResponse, error) {
	req.ApplyDefaults()

	if s.chat == nil || !s.chat.IsConfigured() {
		return s.generateMock(req), nil
	}

	text, ok, err := s.chat.Chat(ctx, BuildPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("error in calling chat API: %w", err)
	}
	if !ok {
		text = NoLyricsText
	}

	return &model.GenerateLyricsResponse{
		Lyrics: text,
		Status: model.StatusSuccess,
	}, nil
}

// BuildPrompt renders the songwriting instructions for req
func BuildPrompt(req *model.GenerationRequest) string {
	return fmt.Sprintf(`
Write a %s %s song about this topic:%s.
Important: The number of lyric words should be around %d!

Use the structure of %s. Below is the reference output format:

Title: [Title of the song]

Lyrics:

[Verse 1]
...[Lyrics]...

[Chorus]
...

[Verse 2]
...

You can now modify the structure and content of the song.
`, req.Emotion, req.MusicStyle, req.Theme, req.Length, req.Structure)
}

// generateMock is used for development/testing when no chat API is configured
func (s *LyricsService) generateMock(req *model.GenerationRequest) *model.GenerateLyricsResponse {
	lyrics := fmt.Sprintf(`Title: City Lights

Lyrics:

[Verse 1]
Walking through the city lights
Feeling like we own the night

[Chorus]
A %s %s song about %s
Nothing's gonna bring us down

[Verse 2]
Stars are shining up above
This is what we're dreaming of`, req.Emotion, req.MusicStyle, req.Theme)

	return &model.GenerateLyricsResponse{
		Lyrics: lyrics,
		Status: model.StatusSuccess,
	}
}
