package extract

// SelectorSet groups the site-markup selectors one revision of the site
// needs, so a markup change is a new set instead of a forked pipeline.
type SelectorSet struct {
	//listing page
	Card       string
	CardTitle  string
	CardPosted string

	//detail page
	DetailTitle string
	Company     string
	Location    string
	Salary      string
	WorkType    string
	Description string

	//sort control
	SortControl string
	SortByDate  string
}

// JobStreet matches the current JobStreet Indonesia markup, which keys
// every element of interest with a data-automation attribute.
func JobStreet() SelectorSet {
	return SelectorSet{
		Card:       "article[data-automation='normalJob']",
		CardTitle:  "a[data-automation='jobTitle']",
		CardPosted: "span[data-automation='jobListingDate']",

		DetailTitle: "h1[data-automation='job-detail-title']",
		Company:     "span[data-automation='advertiser-name']",
		Location:    "span[data-automation='job-detail-location']",
		Salary:      "span[data-automation='job-detail-salary']",
		WorkType:    "span[data-automation='job-detail-work-type']",
		Description: "div[data-automation='jobAdDetails']",

		SortControl: "button[data-automation='sortedBy']",
		SortByDate:  "a[data-automation='sortedByDate']",
	}
}
