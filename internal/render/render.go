package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/petergeorgioutech/techpulse-news/internal/newsapi"
)

//go:embed page.tmpl
var pageFS embed.FS

var pageTmpl = template.Must(template.ParseFS(pageFS, "page.tmpl"))

const (
	excerptLimit = 150
	excerptCut   = 147

	headerDateLayout = "January 02, 2006"
	shortDateLayout  = "Jan 02"

	secondsPerDay = 24 * 60 * 60
)

// Input pairs a category label with its aggregated, already-sorted
// articles.
type Input struct {
	Label    string
	Articles []newsapi.Article
}

// Page is the computed view model for one document. All derived text is
// resolved here; the template only escapes and places it.
type Page struct {
	Date     string
	Sections []Section
}

type Section struct {
	Label string
	Cards []Card
}

type Card struct {
	Title    string
	Href     string
	Source   string
	When     string
	Excerpt  string
	Featured bool
}

// BuildPage computes the view model for the given render time. Categories
// with no articles are dropped entirely so no empty section markup is
// emitted. The first card of each section is featured.
func BuildPage(inputs []Input, now time.Time) Page {
	page := Page{Date: now.Format(headerDateLayout)}
	for _, in := range inputs {
		if len(in.Articles) == 0 {
			continue
		}
		sec := Section{Label: in.Label}
		for i, a := range in.Articles {
			sec.Cards = append(sec.Cards, Card{
				Title:    cleanTitle(a.Title),
				Href:     href(a.URL),
				Source:   sourceName(a.Source.Name),
				When:     relativeDate(a.PublishedAt, now),
				Excerpt:  excerpt(a.Description),
				Featured: i == 0,
			})
		}
		page.Sections = append(page.Sections, sec)
	}
	return page
}

// Render writes the complete self-contained HTML document. Output depends
// only on the page value, so equal inputs produce identical bytes.
func Render(w io.Writer, p Page) error {
	if err := pageTmpl.Execute(w, p); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

// cleanTitle strips a trailing " - Source Name" segment at the rightmost
// separator. Empty titles become "Untitled".
func cleanTitle(title string) string {
	if title == "" {
		title = "Untitled"
	}
	if i := strings.LastIndex(title, " - "); i >= 0 {
		title = title[:i]
	}
	return title
}

func href(u string) string {
	if u == "" {
		return "#"
	}
	return u
}

func sourceName(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}

// excerpt truncates long descriptions to 147 characters plus an ellipsis.
// Counts runes so multibyte text is never split mid-character.
func excerpt(desc string) string {
	runes := []rune(desc)
	if len(runes) <= excerptLimit {
		return desc
	}
	return string(runes[:excerptCut]) + "..."
}

// relativeDate renders publishedAt relative to now: "Just now" under an
// hour, "Nh ago" within the same day, "Yesterday", "N days ago" up to a
// week, then an absolute "Jan 02". Unparseable timestamps yield "".
func relativeDate(publishedAt string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, publishedAt)
	if err != nil {
		return ""
	}

	// Whole days via floor division; the remainder stays in [0, 24h),
	// so 25h back is one day plus an hour, not two calendar days.
	secs := int64(now.Sub(t) / time.Second)
	days := secs / secondsPerDay
	if secs%secondsPerDay < 0 {
		days--
	}
	hours := (secs - days*secondsPerDay) / 3600

	switch {
	case days == 0 && hours == 0:
		return "Just now"
	case days == 0:
		return fmt.Sprintf("%dh ago", hours)
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format(shortDateLayout)
	}
}
