package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabadul/internal/domain/entity"
	"tabadul/pkg/errors"
)

const fiveRowCSV = `Title,Category,Price,Description
Camry,Cars,100,first
iPhone,Phones,200,second
Yacht,Boats,300,third
Galaxy,Phones,abc,fourth

Hilux,Cars,400,fifth
`

func seedListings(t *testing.T, f *catalogFixture) []*entity.Listing {
	t.Helper()

	drafts := []entity.ListingDraft{validDraft(), validDraft(), validDraft()}
	drafts[1].Title = "iPhone 13, \"mint\""
	drafts[1].Category = "Phones"
	drafts[1].Tags = []string{"new", "sale"}
	drafts[1].ModelYear = nil
	drafts[1].Price = 2999.5
	drafts[2].Title = "Hilux"
	drafts[2].Description = "line one\nline two"
	drafts[2].IsFeatured = true
	drafts[2].Location = &entity.Location{Latitude: 24.7136, Longitude: 46.6753}

	var out []*entity.Listing
	for _, d := range drafts {
		l, err := f.catalog.Create(context.Background(), d, nil)
		require.NoError(t, err)
		out = append(out, l)
	}
	return out
}

func TestImportPartialFailure(t *testing.T) {
	for _, concurrency := range []int{1, 4} {
		f := newCatalogFixture(t)
		bulk := NewBulkUseCase(f.catalog, "u1", concurrency, nil)

		report, err := bulk.Import(context.Background(), []byte(fiveRowCSV), FormatCSV)

		require.NoError(t, err)
		assert.Equal(t, 4, report.Succeeded)
		assert.Equal(t, []entity.ImportFailure{{RowIndex: 3, Reason: "unknown category"}}, report.Failed)
		assert.Len(t, report.CreatedIDs, 4)

		listings, err := f.catalog.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, listings, 4)
		for _, l := range listings {
			assert.Equal(t, "u1", l.OwnerID)
			assert.Empty(t, l.ImageURLs)
			if l.Title == "Galaxy" {
				assert.Zero(t, l.Price)
			}
		}
	}
}

func TestImportRejectsNonFinitePrices(t *testing.T) {
	f := newCatalogFixture(t)
	bulk := NewBulkUseCase(f.catalog, "u1", 1, nil)
	blob := "title,category,price\nCamry,Cars,NaN\nHilux,Cars,-Inf\nBoat,Cars,+Inf\nCivic,Cars,12.5\n"

	report, err := bulk.Import(context.Background(), []byte(blob), FormatCSV)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, []entity.ImportFailure{
		{RowIndex: 1, Reason: "price must be a finite number"},
		{RowIndex: 2, Reason: "price must be a finite number"},
		{RowIndex: 3, Reason: "price must be a finite number"},
	}, report.Failed)

	listings, err := f.catalog.List(context.Background())
	require.NoError(t, err)
	_, err = json.Marshal(listings)
	assert.NoError(t, err)
}

func TestImportSharesOneSnapshot(t *testing.T) {
	f := newCatalogFixture(t)
	bulk := NewBulkUseCase(f.catalog, "u1", 2, nil)

	_, err := bulk.Import(context.Background(), []byte(fiveRowCSV), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 1, f.categories.loads)

	_, err = f.refs.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, f.categories.loads)
}

func TestImportRejectsUnreadableBlob(t *testing.T) {
	f := newCatalogFixture(t)
	bulk := NewBulkUseCase(f.catalog, "u1", 1, nil)

	_, err := bulk.Import(context.Background(), nil, FormatCSV)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = bulk.Import(context.Background(), []byte("not a zip"), FormatXLSX)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = bulk.Import(context.Background(), []byte("a,\"b\nc"), FormatCSV)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
	assert.Zero(t, f.listings.creates)
}

func TestParseRowsNormalizesHeaders(t *testing.T) {
	blob := "\ufeffTITLE, Model Year ,owner_id,Unknown\nCamry,2018,uid-2,x\n,,,\n"

	rows, err := ParseRows([]byte(blob), FormatCSV)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, map[string]string{
		ColumnTitle:     "Camry",
		ColumnModelYear: "2018",
		ColumnUserID:    "uid-2",
	}, rows[0].Fields)
}

func TestRowToDraftDefaults(t *testing.T) {
	row := entity.ImportRow{Index: 1, Fields: map[string]string{
		ColumnTitle:      "Camry",
		ColumnPrice:      "twelve",
		ColumnModelYear:  "soon",
		ColumnTags:       "sale| new ,",
		ColumnIsFeatured: "Yes",
		ColumnLatitude:   "24.5",
	}}

	draft := RowToDraft(row, "u1")

	assert.Equal(t, "Camry", draft.Title)
	assert.Zero(t, draft.Price)
	assert.Nil(t, draft.ModelYear)
	assert.Equal(t, []string{"sale", "new"}, draft.Tags)
	assert.True(t, draft.IsFeatured)
	assert.Nil(t, draft.Location)
	assert.Equal(t, "u1", draft.OwnerID)
	assert.Empty(t, draft.ImageURLs)
}

func TestExportImportRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		format  TableFormat
		columns []string
	}{
		{"csv minimal", FormatCSV, MinimalColumns},
		{"csv full", FormatCSV, FullColumns},
		{"xlsx minimal", FormatXLSX, MinimalColumns},
		{"xlsx full", FormatXLSX, FullColumns},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newCatalogFixture(t)
			originals := seedListings(t, src)
			bulk := NewBulkUseCase(src.catalog, "u1", 1, nil)

			blob, err := bulk.Export(originals, tt.columns, tt.format)
			require.NoError(t, err)

			dst := newCatalogFixture(t)
			report, err := NewBulkUseCase(dst.catalog, "u1", 1, nil).Import(context.Background(), blob, tt.format)
			require.NoError(t, err)
			require.Empty(t, report.Failed)
			require.Equal(t, len(originals), report.Succeeded)

			for i, id := range report.CreatedIDs {
				got, err := dst.listings.GetByID(context.Background(), id)
				require.NoError(t, err)
				want := originals[i]

				assert.Equal(t, want.Title, got.Title)
				assert.Equal(t, want.Category, got.Category)
				assert.Equal(t, want.Price, got.Price)
				assert.Equal(t, want.Description, got.Description)
				if len(tt.columns) == len(FullColumns) {
					assert.Equal(t, want.Tags, got.Tags)
					assert.Equal(t, want.ModelYear, got.ModelYear)
					assert.Equal(t, want.ContactNumber, got.ContactNumber)
					assert.Equal(t, want.IsFeatured, got.IsFeatured)
					assert.Equal(t, want.OwnerID, got.OwnerID)
					assert.Equal(t, want.Location, got.Location)
				}
			}
		})
	}
}

func TestExportCSVShape(t *testing.T) {
	f := newCatalogFixture(t)
	bulk := NewBulkUseCase(f.catalog, "u1", 1, nil)
	listing := &entity.Listing{Title: "Camry", Category: "Cars", Price: 100, Description: "ok"}

	blob, err := bulk.Export([]*entity.Listing{listing}, MinimalColumns, FormatCSV)

	require.NoError(t, err)
	assert.Equal(t, "title,category,price,description\nCamry,Cars,100,ok\n", string(blob))
}

func TestExportRejectsUnknownColumn(t *testing.T) {
	f := newCatalogFixture(t)
	bulk := NewBulkUseCase(f.catalog, "u1", 1, nil)

	_, err := bulk.Export(nil, []string{"title", "secret"}, FormatCSV)

	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestColumnsForProfile(t *testing.T) {
	cols, err := ColumnsForProfile("")
	require.NoError(t, err)
	assert.Equal(t, MinimalColumns, cols)

	cols, err = ColumnsForProfile("full")
	require.NoError(t, err)
	assert.True(t, strings.Contains(strings.Join(cols, ","), ColumnLatitude))

	_, err = ColumnsForProfile("everything")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}
