// Persist one role's finished batch as CSV and XLSX with exact-row dedup

package sink

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/xuri/excelize/v2"

	"go-jobstreet-crawler/internal/jobs"
)

const sheetName = "Jobs"

// Output describes what one Persist call wrote.
type Output struct {
	Rows     int
	CSVPath  string
	XLSXPath string
}

type Sink struct {
	folder string
	source string
	now    func() time.Time
}

func New(folder, source string) *Sink {
	return &Sink{folder: folder, source: source, now: time.Now}
}

// Persist deduplicates a role's batch on full-row equality and writes the
// unique rows to a timestamped CSV and XLSX pair. An empty batch writes
// nothing. Each call produces fresh files, so re-running a role never
// corrupts earlier output.
func (s *Sink) Persist(role string, records []jobs.JobRecord) (*Output, error) {
	unique := Dedup(records)
	if len(unique) == 0 {
		log.Printf("🚫 No jobs found for role %q.", role)
		return &Output{}, nil
	}

	if err := os.MkdirAll(s.folder, 0755); err != nil {
		return nil, fmt.Errorf("could not create output folder: %w", err)
	}

	stem := fmt.Sprintf("%s_%s_details_%s", s.source, jobs.RoleSlug(role), s.now().Format("20060102_150405"))
	out := &Output{
		Rows:     len(unique),
		CSVPath:  filepath.Join(s.folder, stem+".csv"),
		XLSXPath: filepath.Join(s.folder, stem+".xlsx"),
	}

	if err := writeCSV(out.CSVPath, unique); err != nil {
		return nil, err
	}
	if err := writeXLSX(out.XLSXPath, unique); err != nil {
		return nil, err
	}

	log.Printf("📁 Saved %d jobs for %q to '%s' and '%s'.", out.Rows, role, out.CSVPath, out.XLSXPath)
	return out, nil
}

// Dedup keeps the first occurrence of each fully identical row.
func Dedup(records []jobs.JobRecord) []jobs.JobRecord {
	seen := mapset.NewSet[string]()
	unique := make([]jobs.JobRecord, 0, len(records))
	for _, record := range records {
		if seen.Add(strings.Join(record.Row(), "\x1f")) {
			unique = append(unique, record)
		}
	}
	return unique
}

func writeCSV(path string, records []jobs.JobRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(jobs.Columns()); err != nil {
		return err
	}
	for _, record := range records {
		if err := w.Write(record.Row()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeXLSX(path string, records []jobs.JobRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	for col, header := range jobs.Columns() {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	for row, record := range records {
		for col, value := range record.Row() {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
