package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"go-jobstreet-crawler/internal/jobs"
)

// boilerplate section headers stripped from descriptions, with optional
// trailing punctuation
var sectionHeaderRegex = regexp.MustCompile(`(?i)^\s*(responsibilities|requirements|qualifications)\s*[:.!\-]*\s*$`)

// NFC-normalize and drop control/format characters the site's rich-text
// editor leaves behind
var descriptionCleaner = transform.Chain(norm.NFC, runes.Remove(runes.In(unicode.Cc)), runes.Remove(runes.In(unicode.Cf)))

// DetailExtractor parses a rendered detail page into the full record
// fields. Every field falls back to a sentinel independently.
type DetailExtractor struct {
	sel SelectorSet
}

func NewDetailExtractor(sel SelectorSet) *DetailExtractor {
	return &DetailExtractor{sel: sel}
}

// Record extracts the detail-page fields. Role, Link and PostedDate are
// the caller's to fill in; everything else is taken from the markup or
// defaulted.
func (e *DetailExtractor) Record(markup string) (jobs.JobRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return jobs.JobRecord{}, err
	}

	record := jobs.JobRecord{
		Title:       text(doc, e.sel.DetailTitle, jobs.FieldMissing),
		Company:     text(doc, e.sel.Company, jobs.FieldMissing),
		Location:    text(doc, e.sel.Location, jobs.FieldMissing),
		Salary:      text(doc, e.sel.Salary, jobs.FieldMissing),
		JobType:     text(doc, e.sel.WorkType, jobs.FieldMissing),
		Description: e.description(doc),
	}
	return record, nil
}

func text(doc *goquery.Document, selector, fallback string) string {
	s := doc.Find(selector).First()
	if s.Length() == 0 {
		return fallback
	}
	value := strings.TrimSpace(s.Text())
	if value == "" {
		return fallback
	}
	return value
}

// description gathers the posting body as block text, one line per block
// element, then normalizes it.
func (e *DetailExtractor) description(doc *goquery.Document) string {
	body := doc.Find(e.sel.Description).First()
	if body.Length() == 0 {
		return jobs.NoDescription
	}

	var blocks []string
	body.Children().Each(func(_ int, s *goquery.Selection) {
		blocks = append(blocks, s.Text())
	})
	if len(blocks) == 0 {
		blocks = []string{body.Text()}
	}

	cleaned := CleanDescription(strings.Join(blocks, "\n"))
	if cleaned == "" {
		return jobs.NoDescription
	}
	return cleaned
}

// CleanDescription strips boilerplate section headers, collapses all
// whitespace runs to single spaces and removes non-printable characters.
func CleanDescription(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		if sectionHeaderRegex.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}

	collapsed := strings.Join(strings.Fields(strings.Join(kept, " ")), " ")
	cleaned, _, err := transform.String(descriptionCleaner, collapsed)
	if err != nil {
		return collapsed
	}
	return strings.TrimSpace(cleaned)
}
