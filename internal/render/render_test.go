package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/petergeorgioutech/techpulse-news/internal/newsapi"
)

var renderTime = time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Foo Bar - Example News", "Foo Bar"},
		{"No separator here", "No separator here"},
		{"A - B - C", "A - B"}, // rightmost split only
		{"", "Untitled"},
		{"Hyphen-ated words stay", "Hyphen-ated words stay"},
		{"Untitled", "Untitled"},
	}
	for _, tt := range tests {
		if got := cleanTitle(tt.input); got != tt.want {
			t.Errorf("cleanTitle(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestExcerpt(t *testing.T) {
	long := strings.Repeat("a", 151)
	exact := strings.Repeat("b", 150)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short unchanged", "short description", "short description"},
		{"exactly 150 unchanged", exact, exact},
		{"151 truncated to 147 plus ellipsis", long, strings.Repeat("a", 147) + "..."},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		if got := excerpt(tt.input); got != tt.want {
			t.Errorf("%s: excerpt = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestExcerptCountsRunes(t *testing.T) {
	input := strings.Repeat("日", 151)
	got := excerpt(input)
	want := strings.Repeat("日", 147) + "..."
	if got != want {
		t.Errorf("expected rune-based truncation, got %d bytes", len(got))
	}
}

func TestRelativeDate(t *testing.T) {
	now := renderTime
	tests := []struct {
		name        string
		publishedAt string
		want        string
	}{
		{"30 minutes ago", now.Add(-30 * time.Minute).Format(time.RFC3339), "Just now"},
		{"59 minutes ago", now.Add(-59 * time.Minute).Format(time.RFC3339), "Just now"},
		{"3 hours ago", now.Add(-3 * time.Hour).Format(time.RFC3339), "3h ago"},
		{"23 hours ago", now.Add(-23 * time.Hour).Format(time.RFC3339), "23h ago"},
		{"25 hours ago crosses one day", now.Add(-25 * time.Hour).Format(time.RFC3339), "Yesterday"},
		{"47 hours ago still yesterday", now.Add(-47 * time.Hour).Format(time.RFC3339), "Yesterday"},
		{"3 days ago", now.Add(-3 * 24 * time.Hour).Format(time.RFC3339), "3 days ago"},
		{"6 days ago", now.Add(-6*24*time.Hour - time.Hour).Format(time.RFC3339), "6 days ago"},
		{"7 days ago goes absolute", now.Add(-7 * 24 * time.Hour).Format(time.RFC3339), "Mar 07"},
		{"30 days ago", now.Add(-30 * 24 * time.Hour).Format(time.RFC3339), "Feb 13"},
		{"unparseable", "not-a-date", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		if got := relativeDate(tt.publishedAt, now); got != tt.want {
			t.Errorf("%s: relativeDate(%q) = %q, want %q", tt.name, tt.publishedAt, got, tt.want)
		}
	}
}

func sampleInputs() []Input {
	return []Input{
		{
			Label: "Artificial Intelligence",
			Articles: []newsapi.Article{
				{
					Title:       "Model launch - The Verge",
					URL:         "https://example.com/a",
					Source:      newsapi.Source{Name: "The Verge"},
					PublishedAt: renderTime.Add(-2 * time.Hour).Format(time.RFC3339),
					Description: "A big launch.",
				},
				{
					Title:       "Second story",
					URL:         "https://example.com/b",
					Source:      newsapi.Source{Name: "Wired"},
					PublishedAt: renderTime.Add(-26 * time.Hour).Format(time.RFC3339),
					Description: "Another one.",
				},
			},
		},
		{Label: "Developer Tools", Articles: nil},
		{
			Label: "Tech Industry",
			Articles: []newsapi.Article{
				{Title: "", URL: "", Source: newsapi.Source{}, PublishedAt: "", Description: ""},
			},
		},
	}
}

func TestBuildPageSkipsEmptyCategories(t *testing.T) {
	page := BuildPage(sampleInputs(), renderTime)
	if len(page.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(page.Sections))
	}
	if page.Sections[0].Label != "Artificial Intelligence" || page.Sections[1].Label != "Tech Industry" {
		t.Errorf("unexpected section order: %s, %s", page.Sections[0].Label, page.Sections[1].Label)
	}
}

func TestBuildPageFeaturedFirstCardOnly(t *testing.T) {
	page := BuildPage(sampleInputs(), renderTime)
	cards := page.Sections[0].Cards
	if !cards[0].Featured {
		t.Error("expected first card featured")
	}
	if cards[1].Featured {
		t.Error("expected second card not featured")
	}
}

func TestBuildPageCardFields(t *testing.T) {
	page := BuildPage(sampleInputs(), renderTime)

	got := page.Sections[0].Cards[0]
	if got.Title != "Model launch" {
		t.Errorf("expected suffix stripped, got %q", got.Title)
	}
	if got.When != "2h ago" {
		t.Errorf("expected 2h ago, got %q", got.When)
	}

	// Missing fields fall back to placeholders
	fallback := page.Sections[1].Cards[0]
	if fallback.Title != "Untitled" {
		t.Errorf("expected Untitled, got %q", fallback.Title)
	}
	if fallback.Source != "Unknown" {
		t.Errorf("expected Unknown, got %q", fallback.Source)
	}
	if fallback.Href != "#" {
		t.Errorf("expected # href, got %q", fallback.Href)
	}
	if fallback.When != "" {
		t.Errorf("expected empty date label, got %q", fallback.When)
	}
}

func renderToString(t *testing.T, page Page) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, page); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestRenderDocumentStructure(t *testing.T) {
	html := renderToString(t, BuildPage(sampleInputs(), renderTime))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing rendered page: %v", err)
	}

	if got := doc.Find("section.section").Length(); got != 2 {
		t.Errorf("expected 2 sections, got %d", got)
	}
	if got := doc.Find("a.story").Length(); got != 3 {
		t.Errorf("expected 3 story cards, got %d", got)
	}

	firstSection := doc.Find("section.section").First()
	if title := firstSection.Find("h2.section-title").Text(); title != "Artificial Intelligence" {
		t.Errorf("section title = %q", title)
	}

	stories := firstSection.Find("a.story")
	if !stories.First().HasClass("featured") {
		t.Error("expected first card to carry the featured class")
	}
	if stories.Eq(1).HasClass("featured") {
		t.Error("expected second card without the featured class")
	}

	if href, _ := stories.First().Attr("href"); href != "https://example.com/a" {
		t.Errorf("card href = %q", href)
	}
	if src := stories.First().Find("span.story-source").Text(); src != "The Verge" {
		t.Errorf("card source = %q", src)
	}

	wantDate := renderTime.Format("January 02, 2006")
	if got := doc.Find("header span.date").Text(); got != wantDate {
		t.Errorf("header date = %q, want %q", got, wantDate)
	}
	if footer := doc.Find("footer p").Text(); !strings.Contains(footer, wantDate) {
		t.Errorf("footer %q missing date %q", footer, wantDate)
	}
}

func TestRenderSelfContained(t *testing.T) {
	html := renderToString(t, BuildPage(sampleInputs(), renderTime))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing rendered page: %v", err)
	}
	if n := doc.Find("link[rel=stylesheet]").Length(); n != 0 {
		t.Errorf("expected no external stylesheets, found %d", n)
	}
	if n := doc.Find("script").Length(); n != 0 {
		t.Errorf("expected no scripts, found %d", n)
	}
	if n := doc.Find("style").Length(); n != 1 {
		t.Errorf("expected one inline style block, found %d", n)
	}
}

func TestRenderEscapesUntrustedText(t *testing.T) {
	inputs := []Input{{
		Label: "Artificial Intelligence",
		Articles: []newsapi.Article{{
			Title:       `<script>alert(1)</script>`,
			URL:         "https://example.com/x",
			Source:      newsapi.Source{Name: `B&W "News"`},
			PublishedAt: renderTime.Format(time.RFC3339),
			Description: `<img src=x onerror=alert(2)>`,
		}},
	}}
	html := renderToString(t, BuildPage(inputs, renderTime))

	if strings.Contains(html, "<script>alert(1)") {
		t.Error("title was not escaped")
	}
	if strings.Contains(html, "<img src=x") {
		t.Error("description was not escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("expected escaped title text in output")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing rendered page: %v", err)
	}
	// Escaped text round-trips through an HTML parser unharmed
	if got := doc.Find("h3.story-title").Text(); got != "<script>alert(1)</script>" {
		t.Errorf("parsed title = %q", got)
	}
	if got := doc.Find("span.story-source").Text(); got != `B&W "News"` {
		t.Errorf("parsed source = %q", got)
	}
	if n := doc.Find("a.story script, a.story img").Length(); n != 0 {
		t.Errorf("escaped text produced %d real elements", n)
	}
}

func TestRenderDeterministic(t *testing.T) {
	page := BuildPage(sampleInputs(), renderTime)

	first := renderToString(t, page)
	second := renderToString(t, page)
	if first != second {
		t.Error("expected byte-identical output for identical input")
	}
}

func TestRenderNoSectionsStillValidPage(t *testing.T) {
	page := BuildPage(nil, renderTime)
	html := renderToString(t, page)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing rendered page: %v", err)
	}
	if n := doc.Find("section").Length(); n != 0 {
		t.Errorf("expected no sections, got %d", n)
	}
	if doc.Find("header .logo").Text() != "TechPulse" {
		t.Errorf("logo text = %q", doc.Find("header .logo").Text())
	}
	if doc.Find("footer").Length() != 1 {
		t.Error("expected footer present")
	}
}
