package analysis

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	theadPattern = regexp.MustCompile(`(?is)<thead[^>]*>.*?</thead>`)
	tbodyPattern = regexp.MustCompile(`(?is)<tbody[^>]*>(.*?)</tbody>`)
	trPattern    = regexp.MustCompile(`(?is)<tr[^>]*>(.*?)</tr>`)
	thPattern    = regexp.MustCompile(`(?is)<th[^>]*>(.*?)</th>`)
	tdPattern    = regexp.MustCompile(`(?is)<td[^>]*>(.*?)</td>`)
	classPattern = regexp.MustCompile(`(?i)class\s*=\s*["']([^"']*)["']`)

	// numericNoise strips currency symbols, percent signs, thousands
	// separators, and sign/space characters before a number parse.
	numericNoise = strings.NewReplacer(
		"$", "", "€", "", "£", "", "¥", "",
		"%", "", ",", "", "+", "", " ", "", " ", "",
	)
)

// TableMetadata describes the shape of a generated HTML table. Rows counts
// body rows only; DataPoints is rows times columns with the header row
// excluded.
type TableMetadata struct {
	Rows           int      `json:"rows"`
	Columns        int      `json:"columns"`
	DataPoints     int      `json:"data_points"`
	HasHeader      bool     `json:"has_header"`
	NumericColumns int      `json:"numeric_columns"`
	TableClasses   []string `json:"table_classes"`
}

// AnalyzeTable reconstructs the structure of an HTML table on a best-effort
// basis. It never fails: fields that cannot be determined from the markup
// come back as zero or false.
func AnalyzeTable(html string) TableMetadata {
	meta := TableMetadata{TableClasses: extractClasses(html)}

	headerCells := headerCellCount(html)
	meta.HasHeader = headerCells > 0

	bodyRows := extractBodyRows(html, meta.HasHeader)
	meta.Rows = len(bodyRows)

	// Column count comes from the header when present, otherwise from the
	// widest body row.
	meta.Columns = headerCells
	cells := make([][]string, len(bodyRows))
	for i, row := range bodyRows {
		cells[i] = cellTexts(row)
		if len(cells[i]) > meta.Columns {
			meta.Columns = len(cells[i])
		}
	}

	meta.DataPoints = meta.Rows * meta.Columns
	meta.NumericColumns = countNumericColumns(cells, meta.Columns)
	return meta
}

// headerCellCount returns the number of cells in the header row construct:
// the first row inside <thead> when one exists, otherwise the first row
// carrying <th> cells.
func headerCellCount(html string) int {
	if thead := theadPattern.FindString(html); thead != "" {
		if row := trPattern.FindStringSubmatch(thead); row != nil {
			return len(thPattern.FindAllString(row[1], -1))
		}
		return 0
	}

	if row := trPattern.FindStringSubmatch(html); row != nil {
		return len(thPattern.FindAllString(row[1], -1))
	}
	return 0
}

// extractBodyRows returns the inner markup of each data row. Rows inside
// <tbody> win when the element exists; otherwise all <tr> elements count,
// minus a leading header row when one was detected.
func extractBodyRows(html string, hasHeader bool) []string {
	section := html
	inTbody := false
	if m := tbodyPattern.FindStringSubmatch(html); m != nil {
		section = m[1]
		inTbody = true
	}

	var rows []string
	for _, m := range trPattern.FindAllStringSubmatch(section, -1) {
		rows = append(rows, m[1])
	}

	if !inTbody && hasHeader && len(rows) > 0 {
		rows = rows[1:]
	}
	return rows
}

// cellTexts extracts the text of each <td> cell in a row, tags stripped.
func cellTexts(rowHTML string) []string {
	var texts []string
	for _, m := range tdPattern.FindAllStringSubmatch(rowHTML, -1) {
		texts = append(texts, strings.TrimSpace(stripTagPattern.ReplaceAllString(m[1], "")))
	}
	return texts
}

// countNumericColumns counts columns whose data cells all parse as numbers
// once currency and percent symbols and thousands separators are removed.
// A column with no cells at all is not numeric.
func countNumericColumns(cells [][]string, columns int) int {
	if len(cells) == 0 || columns == 0 {
		return 0
	}

	count := 0
	for col := 0; col < columns; col++ {
		numeric := true
		populated := 0
		for _, row := range cells {
			if col >= len(row) {
				continue
			}
			populated++
			if !isNumericCell(row[col]) {
				numeric = false
				break
			}
		}
		if numeric && populated > 0 {
			count++
		}
	}
	return count
}

func isNumericCell(text string) bool {
	cleaned := numericNoise.Replace(strings.TrimSpace(text))
	if cleaned == "" {
		return false
	}
	_, err := strconv.ParseFloat(cleaned, 64)
	return err == nil
}

// extractClasses returns the distinct CSS class tokens found on any element.
func extractClasses(html string) []string {
	seen := make(map[string]bool)
	for _, m := range classPattern.FindAllStringSubmatch(html, -1) {
		for _, token := range strings.Fields(m[1]) {
			seen[token] = true
		}
	}

	classes := make([]string, 0, len(seen))
	for c := range seen {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	return classes
}
