package crawler

import "github.com/nguyentantai21042004/newscast/internal/models"

// Site describes where a news site keeps the parts of an article page.
type Site struct {
	Source models.Source
	// HostKey is matched as a substring of the lower-cased URL host.
	HostKey     string
	Title       string
	Description string
	Paragraphs  string
}

var (
	VnExpress = Site{
		Source:      models.SourceVnExpress,
		HostKey:     "vnexpress",
		Title:       "h1.title-detail",
		Description: "p.description",
		Paragraphs:  "article.fck_detail p.Normal",
	}
	TienPhong = Site{
		Source:      models.SourceTienPhong,
		HostKey:     "tienphong",
		Title:       "h1.article-title",
		Description: "h2.article-sapo",
		Paragraphs:  "div.article-body p",
	}
)

// Sites lists the supported sites in match order.
func Sites() []Site {
	return []Site{VnExpress, TienPhong}
}
