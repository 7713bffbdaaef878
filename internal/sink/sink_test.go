package sink

import (
	"encoding/csv"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"go-jobstreet-crawler/internal/jobs"
)

func sampleRecords() []jobs.JobRecord {
	return []jobs.JobRecord{
		{Role: "Data Analyst", Title: "Data Analyst", Company: "PT Satu", Link: "https://id.jobstreet.com/id/job/1", PostedDate: "2025-06-13"},
		{Role: "Data Analyst", Title: "BI Analyst", Company: "PT Dua", Link: "https://id.jobstreet.com/id/job/2", PostedDate: "2025-06-14"},
		{Role: "Data Analyst", Title: "Junior Analyst", Company: "PT Tiga", Link: "https://id.jobstreet.com/id/job/3", PostedDate: "2025-06-15"},
	}
}

func TestDedup_ExactRowEquality(t *testing.T) {
	records := sampleRecords()
	//feed the same batch twice: still three unique rows
	doubled := append(append([]jobs.JobRecord{}, records...), records...)

	unique := Dedup(doubled)

	assert.Len(t, unique, 3)
	assert.Equal(t, records, unique)
}

func TestDedup_DifferingFieldIsNotADuplicate(t *testing.T) {
	a := jobs.JobRecord{Title: "Data Analyst", Company: "PT Satu", Salary: "NaN"}
	b := jobs.JobRecord{Title: "Data Analyst", Company: "PT Satu", Salary: "Rp 10.000.000"}

	assert.Len(t, Dedup([]jobs.JobRecord{a, b}), 2)
}

func TestPersist(t *testing.T) {
	s := New(t.TempDir(), "jobstreet")
	records := append(sampleRecords(), sampleRecords()...)

	out, err := s.Persist("Data Analyst", records)

	assert.NoError(t, err)
	assert.Equal(t, 3, out.Rows)
	assert.Contains(t, out.CSVPath, "jobstreet_data-analyst_details_")

	//CSV: header plus three unique rows
	file, err := os.Open(out.CSVPath)
	assert.NoError(t, err)
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 4)
	assert.Equal(t, jobs.Columns(), rows[0])

	//XLSX mirrors the CSV
	book, err := excelize.OpenFile(out.XLSXPath)
	assert.NoError(t, err)
	defer book.Close()
	sheetRows, err := book.GetRows("Jobs")
	assert.NoError(t, err)
	assert.Len(t, sheetRows, 4)
}

func TestPersist_EmptyBatchWritesNothing(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, "jobstreet")

	out, err := s.Persist("Data Analyst", nil)

	assert.NoError(t, err)
	assert.Equal(t, 0, out.Rows)
	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}
