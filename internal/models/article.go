package models

import "strings"

// Source identifies the news site an article was crawled from.
type Source string

const (
	SourceVnExpress Source = "VnExpress"
	SourceTienPhong Source = "Tien Phong"
)

// Article is produced once by the crawler and never modified afterwards.
type Article struct {
	Title       string
	Description string
	Content     string
	Source      Source
	URL         string
}

// Body returns description and content joined by a space, trimmed.
func (a Article) Body() string {
	return strings.TrimSpace(a.Description + " " + a.Content)
}
