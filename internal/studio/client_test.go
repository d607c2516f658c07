package studio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/makeasinger/lyricstudio/internal/logging"
	"github.com/makeasinger/lyricstudio/internal/model"
)

type ClientSuite struct {
	suite.Suite
	req model.GenerationRequest
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.req = model.GenerationRequest{
		MusicStyle: "rock",
		Theme:      "friendship",
		Emotion:    "hopeful",
		Structure:  "AABA",
		Length:     200,
	}
}

func (s *ClientSuite) newClient(url string, opts ...ClientOption) *Client {
	return NewClient(url, append([]ClientOption{WithLogger(logging.Discard())}, opts...)...)
}

func (s *ClientSuite) TestSuccess() {
	var got model.GenerationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal(GenerateLyricsPath, r.URL.Path)
		s.Equal("application/json", r.Header.Get("Content-Type"))
		s.Empty(r.Header.Get("Authorization"))
		s.NoError(json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"lyrics":"X","status":"success"}`))
	}))
	defer srv.Close()

	res := s.newClient(srv.URL).Generate(context.Background(), s.req)

	s.Equal(StateSuccess, res.State())
	text, ok := res.Lyrics()
	s.True(ok)
	s.Equal("X", text)
	s.Equal(s.req, got)
}

func (s *ClientSuite) TestWireFieldNames() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		s.NoError(json.NewDecoder(r.Body).Decode(&raw))
		s.Equal("rock", raw["music_style"])
		s.Equal(float64(200), raw["length"])
		_, _ = w.Write([]byte(`{"lyrics":"ok"}`))
	}))
	defer srv.Close()

	res := s.newClient(srv.URL + "/").Generate(context.Background(), s.req)
	s.Equal(StateSuccess, res.State())
}

func (s *ClientSuite) TestBearerToken() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"lyrics":"ok"}`))
	}))
	defer srv.Close()

	res := s.newClient(srv.URL, WithToken("tok")).Generate(context.Background(), s.req)
	s.Equal(StateSuccess, res.State())
}

func (s *ClientSuite) TestNonSuccessStatus() {
	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError, http.StatusBadGateway} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"lyrics":"should be ignored"}`))
		}))

		res := s.newClient(srv.URL).Generate(context.Background(), s.req)
		srv.Close()

		s.Equal(StateFailure, res.State(), "status %d", status)
		msg, ok := res.Message()
		s.True(ok)
		s.Equal(FailureMessage, msg)
		_, ok = res.Lyrics()
		s.False(ok)
	}
}

func (s *ClientSuite) TestConnectionRefused() {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := s.newClient(url).Generate(context.Background(), s.req)

	s.Equal(StateFailure, res.State())
	msg, _ := res.Message()
	s.Equal(FailureMessage, msg)
}

func (s *ClientSuite) TestMalformedBody() {
	for _, body := range []string{`not json`, `{}`, `{"lyrics":42}`, ``} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		res := s.newClient(srv.URL).Generate(context.Background(), s.req)
		srv.Close()

		s.Equal(StateFailure, res.State(), "body %q", body)
		msg, _ := res.Message()
		s.Equal(FailureMessage, msg)
	}
}

func (s *ClientSuite) TestEmptyLyricsIsSuccess() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"lyrics":""}`))
	}))
	defer srv.Close()

	res := s.newClient(srv.URL).Generate(context.Background(), s.req)

	s.Equal(StateSuccess, res.State())
	text, _ := res.Lyrics()
	s.Equal("", text)
}
