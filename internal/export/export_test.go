package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/po-reader/internal/entity"
)

func sampleRecords() []entity.ExtractedRecord {
	withItems := entity.NewUnknownRecord("po-1.json")
	withItems.Customer = "Acme Corp"
	withItems.PONumber = "4521-A"
	withItems.OrderDate = "01/15/2024"
	withItems.DeliveryDate = "Mon Jan 22, 2024"
	withItems.Items = []entity.LineItem{
		{ProductName: "Widget A", Quantity: 2, Rate: 10, Price: 20},
		{ProductName: "Widget B", Quantity: 1.5, Rate: 4, Price: 6},
	}
	withItems.InvoiceAmount = 26

	empty := entity.NewUnknownRecord("po-2.txt")
	return []entity.ExtractedRecord{withItems, empty}
}

func newTestService() *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{raw: "2024-01-15", want: "2024-01-15", wantOK: true},
		{raw: "01/15/2024", want: "2024-01-15", wantOK: true},
		{raw: "1-5-2024", want: "2024-01-05", wantOK: true},
		{raw: "15/01/2024", want: "2024-01-15", wantOK: true},
		{raw: "3/4/24", want: "2024-03-04", wantOK: true},
		{raw: "2024/1/5", want: "2024-01-05", wantOK: true},
		{raw: "Mon Jan 15,  2024", want: "2024-01-15", wantOK: true},
		{raw: "Unknown", wantOK: false},
		{raw: "", wantOK: false},
		{raw: "13/13/2024", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := NormalizeDate(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteXLSX(t *testing.T) {
	data, err := newTestService().WriteXLSX(context.Background(), sampleRecords())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ordersSheet, itemsSheet}, f.GetSheetList())

	orders, err := f.GetRows(ordersSheet)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, orderHeaders, orders[0])
	assert.Equal(t, "Acme Corp", orders[1][1])
	assert.Equal(t, "4521-A", orders[1][3])
	assert.Equal(t, "2024-01-15", orders[1][5])
	assert.Equal(t, "2024-01-22", orders[1][7])
	assert.Equal(t, "2", orders[1][11])
	assert.Equal(t, "26", orders[1][12])
	assert.Equal(t, "Unknown", orders[2][1])
	assert.Equal(t, "", orders[2][5])

	items, err := f.GetRows(itemsSheet)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"po-1.json", "4521-A", "Widget B", "1.5", "4", "6"}, items[2])
}

func TestWriteXLSX_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestService().WriteXLSX(ctx, sampleRecords())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestService().WriteCSV(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, csvHeaders, rows[0])
	assert.Equal(t, []string{"Widget A", "2", "10.00", "20.00", "26.00"}, rows[1][9:])
	assert.Equal(t, []string{"Widget B", "1.5", "4.00", "6.00", "26.00"}, rows[2][9:])
	assert.Equal(t, "po-2.txt", rows[3][0])
	assert.Equal(t, []string{"", "", "", "", "0.00"}, rows[3][9:])
}
