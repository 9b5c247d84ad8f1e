package linkedin

import (
	"net/url"
	"strings"
	"testing"

	"go-jobpulse/internal/scraper"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const guestLayout = `<html><body>
<ul class="jobs-search__results-list">
  <li>
    <div class="base-card">
      <a class="base-card__full-link" href="https://in.linkedin.com/jobs/view/security-analyst-1">link</a>
      <h3 class="base-search-card__title">
          Security   Analyst
      </h3>
      <h4 class="base-search-card__subtitle"><a>Acme Corp</a></h4>
      <span class="job-search-card__location">Bengaluru, Karnataka, India</span>
    </div>
  </li>
  <li>
    <div class="base-card">
      <a class="base-card__full-link" href="/jobs/view/soc-engineer-2">link</a>
      <h3 class="base-search-card__title">SOC Engineer</h3>
      <h4 class="base-search-card__subtitle">Globex</h4>
      <span class="job-search-card__location">Pune, India</span>
    </div>
  </li>
  <li>
    <h3 class="base-search-card__title">Third Job</h3>
  </li>
</ul>
</body></html>`

const signedInLayout = `<html><body>
<ul class="jobs-search-results__list">
  <li>
    <a class="job-card-container__link" href="/jobs/view/42/?refId=abc">x</a>
    <h3 class="base-card__title">Pentester</h3>
    <div class="base-card__subtitle">Initech</div>
    <ul><li class="job-card-container__metadata-item">Remote</li></ul>
  </li>
</ul>
</body></html>`

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestExtractListings_GuestLayout(t *testing.T) {
	base := mustURL(t, "https://www.linkedin.com/jobs/search/?keywords=cybersecurity&location=India")

	listings := ExtractListings(parse(t, guestLayout), base, 2)

	require.Len(t, listings, 2)
	assert.Equal(t, scraper.Listing{
		Title:    "Security Analyst",
		Company:  "Acme Corp",
		Location: "Bengaluru, Karnataka, India",
		Link:     "https://in.linkedin.com/jobs/view/security-analyst-1",
	}, listings[0])
	assert.Equal(t, "SOC Engineer", listings[1].Title)
	assert.Equal(t, "https://www.linkedin.com/jobs/view/soc-engineer-2", listings[1].Link)
}

func TestExtractListings_SignedInLayoutUsesFallbacks(t *testing.T) {
	base := mustURL(t, "https://www.linkedin.com/jobs/search/")

	listings := ExtractListings(parse(t, signedInLayout), base, 2)

	require.Len(t, listings, 1)
	assert.Equal(t, scraper.Listing{
		Title:    "Pentester",
		Company:  "Initech",
		Location: "Remote",
		Link:     "https://www.linkedin.com/jobs/view/42/?refId=abc",
	}, listings[0])
}

func TestExtractListings_Sentinels(t *testing.T) {
	html := `<ul class="jobs-search__results-list"><li><span>nothing useful</span></li></ul>`

	listings := ExtractListings(parse(t, html), nil, 2)

	require.Len(t, listings, 1)
	assert.Equal(t, scraper.Listing{
		Title:    scraper.Unknown,
		Company:  scraper.Unknown,
		Location: scraper.Unknown,
		Link:     scraper.NotAvailable,
	}, listings[0])
}

func TestExtractListings_EmptyPrimaryFallsBack(t *testing.T) {
	html := `<ul class="jobs-search__results-list"><li>
		<h3 class="base-search-card__title">   </h3>
		<h3 class="base-card__title">Fallback Title</h3>
		<a class="base-card__full-link" href="  ">x</a>
		<a class="job-card-container__link" href="https://example.com/job">y</a>
	</li></ul>`

	listings := ExtractListings(parse(t, html), nil, 2)

	require.Len(t, listings, 1)
	assert.Equal(t, "Fallback Title", listings[0].Title)
	assert.Equal(t, "https://example.com/job", listings[0].Link)
}

func TestExtractListings_Bounds(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<ul class="jobs-search__results-list">`)
	for i := 0; i < 25; i++ {
		b.WriteString(`<li><h3 class="base-search-card__title">Job</h3></li>`)
	}
	b.WriteString(`</ul>`)
	doc := parse(t, b.String())

	tests := []struct {
		name string
		html *goquery.Document
		max  int
		want int
	}{
		{name: "many cards", html: doc, max: 2, want: 2},
		{name: "no cards", html: parse(t, `<html><body><p>No results</p></body></html>`), max: 2, want: 0},
		{name: "one card", html: parse(t, signedInLayout), max: 2, want: 1},
		{name: "zero max", html: doc, max: 0, want: 0},
		{name: "max above cap", html: doc, max: 5, want: 2},
		{name: "negative max", html: doc, max: -1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractListings(tt.html, nil, tt.max)
			assert.Len(t, got, tt.want)
			assert.NotNil(t, got)
		})
	}
}

func TestExtractListings_FieldsAreTrimmedOrSentinel(t *testing.T) {
	listings := ExtractListings(parse(t, guestLayout), nil, 2)
	listings = append(listings, ExtractListings(parse(t, `<ul class="jobs-search__results-list"><li></li></ul>`), nil, 2)...)

	for _, l := range listings {
		for _, field := range []string{l.Title, l.Company, l.Location} {
			assert.NotEmpty(t, field)
			assert.Equal(t, strings.TrimSpace(field), field)
		}
		assert.NotEmpty(t, l.Link)
	}
}

func TestExtractListings_IgnoresNestedListItems(t *testing.T) {
	// only direct children of the results list are cards
	listings := ExtractListings(parse(t, signedInLayout), nil, 5)
	assert.Len(t, listings, 1)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Caf\u00e9 Analyst", cleanText("  Cafe\u0301 \n\t Analyst  "))
	// card titles span lines in the guest layout markup
	assert.Equal(t, "Security Analyst", cleanText("\n          Security\n   Analyst\n      "))
	assert.Equal(t, "", cleanText(" \n "))
}
