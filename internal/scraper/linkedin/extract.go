package linkedin

import (
	"net/url"
	"strings"

	"go-jobpulse/internal/config"
	"go-jobpulse/internal/scraper"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

// selectorPair is a primary selector and the fallback used for the other
// known layout of the results page.
type selectorPair struct {
	primary  string
	fallback string
}

func (p selectorPair) each() []string {
	return []string{p.primary, p.fallback}
}

// ResultContainers are the results list of the guest layout and of the
// signed-in layout.
var ResultContainers = []string{
	".jobs-search__results-list",
	"ul.jobs-search-results__list",
}

const cardSelector = ".jobs-search__results-list > li, ul.jobs-search-results__list > li"

var (
	titleSelectors    = selectorPair{".base-search-card__title", "h3.base-card__title"}
	companySelectors  = selectorPair{".base-search-card__subtitle", ".base-card__subtitle"}
	locationSelectors = selectorPair{".job-search-card__location", ".job-card-container__metadata-item"}
	linkSelectors     = selectorPair{"a.base-card__full-link", "a.job-card-container__link"}
)

// ExtractListings reads at most limit cards from doc in document order,
// never more than config.ListingLimit. Relative links are resolved
// against base.
func ExtractListings(doc *goquery.Document, base *url.URL, limit int) []scraper.Listing {
	listings := []scraper.Listing{}
	limit = min(limit, config.ListingLimit)
	if limit <= 0 {
		return listings
	}

	doc.Find(cardSelector).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		listings = append(listings, parseCard(card, base))
		return len(listings) < limit
	})
	return listings
}

func parseCard(card *goquery.Selection, base *url.URL) scraper.Listing {
	return scraper.Listing{
		Title:    findText(card, titleSelectors),
		Company:  findText(card, companySelectors),
		Location: findText(card, locationSelectors),
		Link:     findLink(card, linkSelectors, base),
	}
}

func findText(card *goquery.Selection, sel selectorPair) string {
	for _, s := range sel.each() {
		if text := cleanText(card.Find(s).First().Text()); text != "" {
			return text
		}
	}
	return scraper.Unknown
}

func findLink(card *goquery.Selection, sel selectorPair, base *url.URL) string {
	for _, s := range sel.each() {
		href, ok := card.Find(s).First().Attr("href")
		if href = strings.TrimSpace(href); ok && href != "" {
			return resolve(base, href)
		}
	}
	return scraper.NotAvailable
}

// cleanText collapses whitespace runs and normalizes to NFC.
func cleanText(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil || base == nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
