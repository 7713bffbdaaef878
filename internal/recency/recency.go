// Parse JobStreet's Indonesian "posted X ago" strings
// "menit"/"jam" -> today, "N hari" -> N days, "N+ hari" -> ceiling

package recency

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Unknown marks a recency string that matched neither a minute/hour nor a
// day pattern. An unparseable day count also resolves to Unknown rather
// than a guessed value, so the filter stays fail-open on it.
const Unknown = -1

// DefaultCeiling is the day count assigned to "30+ hari yang lalu" style
// strings. It is one past the site's 30-day display limit so a "30+" card
// stays distinguishable from an exact "30".
const DefaultCeiling = 31

var dayCountRegex = regexp.MustCompile(`(\d+)(\+)?`)

// Recency is the normalized posting age of one card.
type Recency struct {
	DaysAgo int
}

func (r Recency) Known() bool {
	return r.DaysAgo >= 0
}

type Parser struct {
	ceiling int
}

// NewParser builds a parser with the given "beyond display limit" ceiling.
// Zero or negative means DefaultCeiling.
func NewParser(ceiling int) *Parser {
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	return &Parser{ceiling: ceiling}
}

func (p *Parser) Ceiling() int {
	return p.ceiling
}

// Parse normalizes a raw posted-text string. Minute/hour tokens win over
// day tokens, matching how the site phrases same-day postings.
func (p *Parser) Parse(text string) Recency {
	text = strings.ToLower(strings.TrimSpace(text))

	if strings.Contains(text, "menit") || strings.Contains(text, "jam") {
		return Recency{DaysAgo: 0}
	}

	if strings.Contains(text, "hari") {
		match := dayCountRegex.FindStringSubmatch(text)
		if match == nil {
			return Recency{DaysAgo: Unknown}
		}
		if match[2] == "+" {
			return Recency{DaysAgo: p.ceiling}
		}
		days, err := strconv.Atoi(match[1])
		if err != nil {
			return Recency{DaysAgo: Unknown}
		}
		return Recency{DaysAgo: days}
	}

	return Recency{DaysAgo: Unknown}
}

// AbsoluteDate derives the calendar date a recency maps to. Unknown and
// ceiling recencies never convert to a date.
func (p *Parser) AbsoluteDate(r Recency, today time.Time) string {
	if !r.Known() || r.DaysAgo == p.ceiling {
		return "Unknown"
	}
	return today.AddDate(0, 0, -r.DaysAgo).Format("2006-01-02")
}
