// Shared record types for the crawl pipeline
// Kept as a leaf package so every stage can import it

package jobs

import "strings"

// Sentinel values used when the site markup does not provide a field.
// A record is never dropped just because a field is missing.
const (
	FieldMissing  = "NaN"
	DateUnknown   = "Unknown"
	NoDescription = "No description available"
)

// ListingCard is one summary entry on a listing page. Ephemeral: produced
// by the listing extractor and consumed immediately by the filter and the
// detail extractor.
type ListingCard struct {
	Title         string
	DetailURL     string
	RawPostedText string
}

// JobRecord is the finished record for one posting. Immutable once built;
// one record is the unit of deduplication and persistence.
type JobRecord struct {
	Role        string
	Title       string
	Company     string
	Location    string
	Salary      string
	JobType     string
	Link        string
	Description string
	PostedDate  string
}

// RoleSlug turns a role keyword into its URL and filename form.
func RoleSlug(role string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(role)), " ", "-")
}

// Columns is the persisted column order, shared by the CSV and
// spreadsheet writers and the database archive.
func Columns() []string {
	return []string{"role", "title", "company", "location", "salary", "link", "description", "job_type", "posted_date"}
}

// Row returns the record's values in Columns order.
func (r JobRecord) Row() []string {
	return []string{r.Role, r.Title, r.Company, r.Location, r.Salary, r.Link, r.Description, r.JobType, r.PostedDate}
}
