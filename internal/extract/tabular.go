package extract

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// csvLoader renders each record as one comma-joined segment.
type csvLoader struct{}

func (l *csvLoader) Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	segments := make([]string, 0, len(records))
	for _, rec := range records {
		segments = append(segments, strings.Join(rec, ", "))
	}
	return segments, nil
}

// spreadsheetToCSV converts the first sheet of an Excel workbook to a CSV
// file next to the source (`<path>.csv`) and returns the new path. The
// caller owns removal of the intermediate file.
func spreadsheetToCSV(path string) (string, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return "", err
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return "", excelize.ErrSheetNotExist{SheetName: "0"}
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return "", err
	}

	csvPath := path + ".csv"
	out, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return csvPath, nil
}
