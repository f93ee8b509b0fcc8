package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"tabadul/internal/domain/entity"
	"tabadul/internal/infrastructure/metrics"
	"tabadul/pkg/errors"
	"tabadul/pkg/logger"
)

type TableFormat string

const (
	FormatCSV  TableFormat = "csv"
	FormatXLSX TableFormat = "xlsx"
)

func ParseTableFormat(s string) (TableFormat, error) {
	switch TableFormat(strings.ToLower(s)) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", errors.BadRequest("unsupported format: "+s, nil)
}

func (f TableFormat) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

const (
	ColumnTitle         = "title"
	ColumnCategory      = "category"
	ColumnPrice         = "price"
	ColumnDescription   = "description"
	ColumnTags          = "tags"
	ColumnModelYear     = "modelYear"
	ColumnContactNumber = "contactNumber"
	ColumnIsFeatured    = "isFeatured"
	ColumnUserID        = "userId"
	ColumnLatitude      = "latitude"
	ColumnLongitude     = "longitude"
)

var (
	MinimalColumns = []string{ColumnTitle, ColumnCategory, ColumnPrice, ColumnDescription}
	FullColumns    = []string{
		ColumnTitle, ColumnCategory, ColumnPrice, ColumnDescription,
		ColumnTags, ColumnModelYear, ColumnContactNumber, ColumnIsFeatured,
		ColumnUserID, ColumnLatitude, ColumnLongitude,
	}
)

// ColumnsForProfile maps an export profile name to its column set.
func ColumnsForProfile(profile string) ([]string, error) {
	switch profile {
	case "", "minimal":
		return MinimalColumns, nil
	case "full":
		return FullColumns, nil
	}
	return nil, errors.BadRequest("unsupported export profile: "+profile, nil)
}

const xlsxSheet = "Sheet1"

type BulkUseCase struct {
	catalog        *CatalogUseCase
	defaultOwnerID string
	concurrency    int
	metrics        *metrics.Manager
}

func NewBulkUseCase(catalog *CatalogUseCase, defaultOwnerID string, concurrency int, m *metrics.Manager) *BulkUseCase {
	if concurrency < 1 {
		concurrency = 1
	}
	return &BulkUseCase{
		catalog:        catalog,
		defaultOwnerID: defaultOwnerID,
		concurrency:    concurrency,
		metrics:        m,
	}
}

// Export projects listings onto columns. No validation is performed.
func (uc *BulkUseCase) Export(listings []*entity.Listing, columns []string, format TableFormat) ([]byte, error) {
	for _, c := range columns {
		if _, ok := headerKey(c); !ok {
			return nil, errors.BadRequest("unsupported export column: "+c, nil)
		}
	}

	switch format {
	case FormatXLSX:
		return exportXLSX(listings, columns)
	case FormatCSV:
		return exportCSV(listings, columns)
	}
	return nil, errors.BadRequest("unsupported format: "+string(format), nil)
}

func exportCSV(listings []*entity.Listing, columns []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, errors.Internal("Failed to write export header", err)
	}
	for _, l := range listings {
		record := make([]string, len(columns))
		for i, c := range columns {
			record[i] = cellValue(l, c)
		}
		if err := w.Write(record); err != nil {
			return nil, errors.Internal("Failed to write export row", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Internal("Failed to flush export", err)
	}
	return buf.Bytes(), nil
}

func exportXLSX(listings []*entity.Listing, columns []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return nil, errors.Internal("Failed to write export header", err)
	}

	for r, l := range listings {
		row := make([]interface{}, len(columns))
		for i, c := range columns {
			if c == ColumnPrice {
				row[i] = l.Price
				continue
			}
			row[i] = cellValue(l, c)
		}

		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, errors.Internal("Failed to address export row", err)
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return nil, errors.Internal("Failed to write export row", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Internal("Failed to encode workbook", err)
	}
	return buf.Bytes(), nil
}

func cellValue(l *entity.Listing, column string) string {
	switch column {
	case ColumnTitle:
		return l.Title
	case ColumnCategory:
		return l.Category
	case ColumnPrice:
		return strconv.FormatFloat(l.Price, 'f', -1, 64)
	case ColumnDescription:
		return l.Description
	case ColumnTags:
		return strings.Join(l.Tags, "|")
	case ColumnModelYear:
		if l.ModelYear == nil {
			return ""
		}
		return strconv.Itoa(*l.ModelYear)
	case ColumnContactNumber:
		return l.ContactNumber
	case ColumnIsFeatured:
		return strconv.FormatBool(l.IsFeatured)
	case ColumnUserID:
		return l.OwnerID
	case ColumnLatitude:
		if l.Location == nil {
			return ""
		}
		return strconv.FormatFloat(l.Location.Latitude, 'f', -1, 64)
	case ColumnLongitude:
		if l.Location == nil {
			return ""
		}
		return strconv.FormatFloat(l.Location.Longitude, 'f', -1, 64)
	}
	return ""
}

var headerNormalizer = strings.NewReplacer(" ", "", "_", "", "-", "")

// headerKey maps a header label to its canonical column, ignoring case,
// spaces, dashes and underscores.
func headerKey(label string) (string, bool) {
	label = strings.TrimPrefix(strings.TrimSpace(label), "\ufeff")
	norm := strings.ToLower(headerNormalizer.Replace(label))
	switch norm {
	case "ownerid", "owner":
		return ColumnUserID, true
	}
	for _, c := range FullColumns {
		if strings.ToLower(c) == norm {
			return c, true
		}
	}
	return "", false
}

// ParseRows decodes a tabular blob into rows keyed by canonical column.
// Unknown columns are dropped and blank lines skipped. Row indexes are 1-based
// over data rows.
func ParseRows(blob []byte, format TableFormat) ([]entity.ImportRow, error) {
	var records [][]string
	switch format {
	case FormatXLSX:
		f, err := excelize.OpenReader(bytes.NewReader(blob))
		if err != nil {
			return nil, errors.BadRequest("invalid spreadsheet", err)
		}
		defer f.Close()

		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.BadRequest("spreadsheet has no sheets", nil)
		}
		if records, err = f.GetRows(sheets[0]); err != nil {
			return nil, errors.BadRequest("unreadable spreadsheet", err)
		}
	case FormatCSV:
		r := csv.NewReader(bytes.NewReader(blob))
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
		var err error
		if records, err = r.ReadAll(); err != nil {
			return nil, errors.BadRequest("invalid CSV", err)
		}
	default:
		return nil, errors.BadRequest("unsupported format: "+string(format), nil)
	}

	if len(records) == 0 {
		return nil, errors.BadRequest("import file has no header row", nil)
	}

	columns := make([]string, len(records[0]))
	for i, label := range records[0] {
		if key, ok := headerKey(label); ok {
			columns[i] = key
		}
	}

	rows := make([]entity.ImportRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if isBlankRecord(record) {
			continue
		}
		fields := make(map[string]string, len(columns))
		for i, value := range record {
			if i < len(columns) && columns[i] != "" {
				fields[columns[i]] = strings.TrimSpace(value)
			}
		}
		rows = append(rows, entity.ImportRow{Index: len(rows) + 1, Fields: fields})
	}

	return rows, nil
}

func isBlankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// RowToDraft converts an import row into a listing draft. Missing or
// unparseable values stay at their zero value; images are never imported.
func RowToDraft(row entity.ImportRow, defaultOwnerID string) entity.ListingDraft {
	f := row.Fields
	draft := entity.ListingDraft{
		Title:         f[ColumnTitle],
		Description:   f[ColumnDescription],
		Category:      f[ColumnCategory],
		Tags:          splitList(f[ColumnTags]),
		ContactNumber: f[ColumnContactNumber],
		OwnerID:       f[ColumnUserID],
		ImageURLs:     []string{},
	}
	if draft.OwnerID == "" {
		draft.OwnerID = defaultOwnerID
	}

	if p, err := strconv.ParseFloat(f[ColumnPrice], 64); err == nil {
		draft.Price = p
	}
	if y, err := strconv.Atoi(f[ColumnModelYear]); err == nil {
		draft.ModelYear = &y
	}
	switch strings.ToLower(f[ColumnIsFeatured]) {
	case "true", "yes", "y", "1":
		draft.IsFeatured = true
	}

	lat, latErr := strconv.ParseFloat(f[ColumnLatitude], 64)
	lng, lngErr := strconv.ParseFloat(f[ColumnLongitude], 64)
	if latErr == nil && lngErr == nil {
		draft.Location = &entity.Location{Latitude: lat, Longitude: lng}
	}

	return draft
}

func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type rowOutcome struct {
	id  string
	err error
}

// Import creates one listing per row. Rows fail independently; the report
// lists failures in input order. Only an unreadable blob fails the call.
func (uc *BulkUseCase) Import(ctx context.Context, blob []byte, format TableFormat) (report *entity.ImportReport, err error) {
	start := time.Now()
	defer func() { uc.metrics.ObserveOperation("import", start, err) }()

	rows, err := ParseRows(blob, format)
	if err != nil {
		return nil, err
	}

	refs, err := uc.catalog.refs.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	outcomes := make([]rowOutcome, len(rows))

	var g errgroup.Group
	g.SetLimit(uc.concurrency)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			listing, err := uc.catalog.create(ctx, refs, RowToDraft(row, uc.defaultOwnerID), nil)
			uc.metrics.ObserveImportRow(err)
			if err != nil {
				outcomes[i] = rowOutcome{err: err}
				return nil
			}
			outcomes[i] = rowOutcome{id: listing.ID}
			return nil
		})
	}
	_ = g.Wait()

	log := logger.With("format", string(format), "rows", len(rows))
	report = &entity.ImportReport{
		Failed:     []entity.ImportFailure{},
		CreatedIDs: []string{},
	}
	for i, o := range outcomes {
		if o.err != nil {
			reason := errors.Message(o.err)
			log.Warnf("Import row %d failed: %s", rows[i].Index, reason)
			report.Failed = append(report.Failed, entity.ImportFailure{RowIndex: rows[i].Index, Reason: reason})
			continue
		}
		report.Succeeded++
		report.CreatedIDs = append(report.CreatedIDs, o.id)
	}

	if report.Succeeded > 0 {
		uc.catalog.refs.Invalidate()
	}

	log.Infof("Import finished: %d succeeded, %d failed", report.Succeeded, len(report.Failed))
	return report, nil
}
