package validator

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/extrame/xls"
	"github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingBody       = errors.New("docx: word/document.xml not found")
	ErrMissingWorkbook   = errors.New("xls: workbook stream not found")
)

// Extractor converts a raw document into plain text.
type Extractor interface {
	Extract(filename string, content []byte) (string, error)
}

type extractFunc func(content []byte) (string, error)

// ContentExtractor dispatches on the lower-cased file extension.
// It is safe for concurrent use.
type ContentExtractor struct {
	byExt map[string]extractFunc
}

// NewContentExtractor returns an extractor covering every allowed extension.
func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{
		byExt: map[string]extractFunc{
			".pdf":  extractPDF,
			".docx": extractDOCX,
			".doc":  extractDOCX,
			".xlsx": extractSpreadsheet,
			".xls":  extractXLS,
			".csv":  extractCSV,
			".txt":  extractTXT,
		},
	}
}

// Extract returns the text of the document. Parser panics are converted to errors.
func (e *ContentExtractor) Extract(filename string, content []byte) (text string, err error) {
	ext := strings.ToLower(filepath.Ext(filename))
	fn, ok := e.byExt[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("extract %s: %v", ext, r)
		}
	}()

	return fn(content)
}

func extractPDF(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		txt, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("pdf page %d: %w", i, err)
		}
		b.WriteString(txt)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// extractDOCX joins the body paragraphs and tables of a Word document.
// Legacy binary .doc files are not zip archives and fail here.
func extractDOCX(content []byte) (string, error) {
	if err := checkDocumentBody(content); err != nil {
		return "", err
	}

	doc, err := docx.Parse(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}

	var b strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			b.WriteString(it.String())
		case *docx.Table:
			b.WriteString(it.String())
		default:
			continue
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// checkDocumentBody rejects archives without word/document.xml before the
// docx parser sees them.
func checkDocumentBody(content []byte) error {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return fmt.Errorf("open docx: %w", err)
	}
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			return nil
		}
	}
	return ErrMissingBody
}

func extractSpreadsheet(content []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		writeSheet(&b, sheet, rows)
	}
	return b.String(), nil
}

// extractXLS reads legacy BIFF workbooks, which excelize cannot open.
// A file without a Workbook or Book stream yields ErrMissingWorkbook.
func extractXLS(content []byte) (string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(content), "utf-8")
	if err != nil {
		return "", fmt.Errorf("open xls: %w", err)
	}
	if wb == nil {
		return "", ErrMissingWorkbook
	}

	var b strings.Builder
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		writeSheet(&b, sheet.Name, xlsRows(sheet))
	}
	return b.String(), nil
}

// xlsMaxColumns is the BIFF8 column limit.
const xlsMaxColumns = 256

func xlsRows(sheet *xls.WorkSheet) [][]string {
	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheetRow(sheet, i)
		if row == nil {
			continue
		}
		// ROW records carry an exclusive last column; rows built only from
		// cells report zero and are scanned to the format limit.
		last := row.LastCol()
		if last == 0 {
			last = xlsMaxColumns - 1
		}
		cells := make([]string, 0, last+1)
		for j := 0; j <= last; j++ {
			cells = append(cells, row.Col(j))
		}
		for len(cells) > 0 && cells[len(cells)-1] == "" {
			cells = cells[:len(cells)-1]
		}
		rows = append(rows, cells)
	}
	return rows
}

// sheetRow returns nil for rows absent from the sheet, where WorkSheet.Row
// dereferences a nil entry.
func sheetRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

func writeSheet(b *strings.Builder, name string, rows [][]string) {
	b.WriteString("Sheet: " + name + "\n")
	b.WriteString(renderTable(rows))
	b.WriteString("\n\n")
}

func extractCSV(content []byte) (string, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read csv: %w", err)
	}
	return renderTable(rows), nil
}

func extractTXT(content []byte) (string, error) {
	return strings.ToValidUTF8(string(content), ""), nil
}

// renderTable aligns rows into space-padded columns.
func renderTable(rows [][]string) string {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
	return strings.TrimRight(buf.String(), "\n")
}
