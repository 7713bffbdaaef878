package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"go-jobstreet-crawler/internal/jobs"
)

// ListingExtractor parses a rendered listing page into summary cards.
type ListingExtractor struct {
	sel     SelectorSet
	baseURL string
}

func NewListingExtractor(sel SelectorSet, baseURL string) *ListingExtractor {
	return &ListingExtractor{sel: sel, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Cards returns every job card in page order. A missing field yields its
// sentinel instead of failing the card; an empty result means the page
// has no more content and the paginator should stop.
func (e *ListingExtractor) Cards(markup string) ([]jobs.ListingCard, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	var cards []jobs.ListingCard
	doc.Find(e.sel.Card).Each(func(_ int, s *goquery.Selection) {
		card := jobs.ListingCard{
			Title:     jobs.FieldMissing,
			DetailURL: jobs.FieldMissing,
		}

		title := s.Find(e.sel.CardTitle).First()
		if title.Length() > 0 {
			if text := strings.TrimSpace(title.Text()); text != "" {
				card.Title = text
			}
			if href, ok := title.Attr("href"); ok && href != "" {
				card.DetailURL = e.absolute(href)
			}
		}

		if posted := s.Find(e.sel.CardPosted).First(); posted.Length() > 0 {
			card.RawPostedText = strings.ToLower(strings.TrimSpace(posted.Text()))
		}

		cards = append(cards, card)
	})

	return cards, nil
}

func (e *ListingExtractor) absolute(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return e.baseURL + href
}
