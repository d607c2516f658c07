package model

import "time"

// ExportPDFRequest carries the lyrics text to render.
type ExportPDFRequest struct {
	Lyrics string `json:"lyrics" form:"lyrics" validate:"max=100000"`
	Title  string `json:"title" form:"title" validate:"omitempty,max=200"`
}

// ExportPDFShareResponse describes an uploaded PDF export
type ExportPDFShareResponse struct {
	FileURL   string    `json:"fileUrl"`
	Size      int64     `json:"size"`
	Format    string    `json:"format"`
	ExpiresAt time.Time `json:"expiresAt"`
}
