package model

import "time"

// VideoHistory records one completed download by an authenticated user.
type VideoHistory struct {
	ID           int64
	UserID       string
	VideoID      string
	VideoURL     string
	Title        string
	Thumbnail    string
	Duration     *int
	Uploader     *string
	DownloadType string
	Quality      string
	Format       string
	CreatedAt    time.Time
}
