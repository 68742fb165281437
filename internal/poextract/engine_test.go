package poextract

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/po-reader/constants"
	"github.com/joseph-ayodele/po-reader/internal/common"
	"github.com/joseph-ayodele/po-reader/internal/entity"
)

func newTestEngine(namer CustomerNamer) *Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEngine(Config{OwnDomain: "mycompany.com"}, namer, logger)
}

type fakeNamer struct {
	name  string
	err   error
	panic bool
	calls int
}

func (f *fakeNamer) CompanyNameForEmail(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.panic {
		panic("directory exploded")
	}
	return f.name, f.err
}

func TestExtract_EmptyInputIsAllUnknown(t *testing.T) {
	rec := newTestEngine(nil).Extract(context.Background(), entity.ExtractionInput{SourceFile: "po-001.json"})

	want := entity.NewUnknownRecord("po-001.json")
	assert.Equal(t, want, rec)
	assert.NotNil(t, rec.Items)
	assert.Empty(t, rec.Items)
}

func TestExtract_IsDeterministic(t *testing.T) {
	in := entity.ExtractionInput{
		SourceFile: "po-002.json",
		Text: "Acme Corp\nPO #: 4521-A\nOrder Date: 01/15/2024\n" +
			"Item Description Qty Rate Amount\nBlue Widget 2 10.00 20.00\nTotal 20.00\n" +
			"ap@acme.com",
	}
	e := newTestEngine(nil)

	first := e.Extract(context.Background(), in)
	second := e.Extract(context.Background(), in)
	assert.Equal(t, first, second)
}

func TestExtract_TableItem(t *testing.T) {
	in := entity.ExtractionInput{
		Tables: []entity.Table{{
			{"Description", "Qty", "Rate", "Amount"},
			{"Widget A", "2", "$10.00", "$20.00"},
		}},
	}

	rec := newTestEngine(nil).Extract(context.Background(), in)

	require.Len(t, rec.Items, 1)
	assert.Equal(t, entity.LineItem{ProductName: "Widget A", Quantity: 2, Rate: 10, Price: 20}, rec.Items[0])
	assert.InDelta(t, 20.0, rec.InvoiceAmount, 0.001)
}

func TestExtract_PONumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "labeled", text: "PO #: 4521-A", want: "4521-A"},
		{name: "order number", text: "Order Number: 77812", want: "77812"},
		{name: "bare token", text: "Reference\nPO_7781", want: "PO_7781"},
		{name: "below header prefers identifier", text: "Purchase Order\nPO Number  Date\n88123  A-88123  01/15/2024  Net 30", want: "A-88123"},
		{name: "label word only", text: "PO Number\nnothing here", want: constants.Unknown},
	}

	e := newTestEngine(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.Extract(context.Background(), entity.ExtractionInput{Text: tt.text})
			assert.Equal(t, tt.want, rec.PONumber)
		})
	}
}

func TestExtract_Dates(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantOrder    string
		wantDelivery string
	}{
		{
			name:         "labeled",
			text:         "Order Date: 01/15/2024\nDelivery Date: 01/22/2024",
			wantOrder:    "01/15/2024",
			wantDelivery: "01/22/2024",
		},
		{
			name:         "spelled out on next line",
			text:         "Date\nMon Jan 15, 2024",
			wantOrder:    "Mon Jan 15, 2024",
			wantDelivery: constants.Unknown,
		},
		{
			name:         "unlabeled pair",
			text:         "Received 2024-01-02 needed 2024-01-09",
			wantOrder:    "2024-01-02",
			wantDelivery: "2024-01-09",
		},
		{
			name:         "single unlabeled date fills both",
			text:         "Received 3/4/24",
			wantOrder:    "3/4/24",
			wantDelivery: "3/4/24",
		},
	}

	e := newTestEngine(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.Extract(context.Background(), entity.ExtractionInput{Text: tt.text})
			assert.Equal(t, tt.wantOrder, rec.OrderDate)
			assert.Equal(t, tt.wantDelivery, rec.DeliveryDate)
		})
	}
}

func TestExtract_OrderedBy(t *testing.T) {
	rec := newTestEngine(nil).Extract(context.Background(), entity.ExtractionInput{
		Text: "Buyer\nOrdered By: Jane Smith",
	})
	assert.Equal(t, "Jane Smith", rec.OrderedBy)
}

func TestExtract_ShipToRegion(t *testing.T) {
	in := entity.ExtractionInput{
		ShipToRegion: "Ship To:\nAcme Corp\n123 Main St\nSpringfield, IL 62701",
	}

	rec := newTestEngine(nil).Extract(context.Background(), in)

	assert.Equal(t, "Acme Corp", rec.Customer)
	assert.Equal(t, "123 Main St\nSpringfield, IL 62701", rec.DeliveryAddress)
	assert.Equal(t, rec.DeliveryAddress, rec.CustomerAddress)
}

func TestExtract_ShipToRegionStartingWithStreet(t *testing.T) {
	in := entity.ExtractionInput{
		Text:         "Bill To:\nBeta Foods LLC\n9 Elm Rd\nShip To:",
		ShipToRegion: "123 Main St\nSpringfield, IL 62701\nUnited States\nTerms: Net 30",
	}

	rec := newTestEngine(nil).Extract(context.Background(), in)

	assert.Equal(t, "123 Main St\nSpringfield, IL 62701\nUnited States", rec.DeliveryAddress)
	assert.Equal(t, "Beta Foods LLC\n9 Elm Rd", rec.CustomerAddress)
	assert.Equal(t, "Beta Foods LLC", rec.Customer)
}

func TestExtract_BillingAddress(t *testing.T) {
	tests := []struct {
		name string
		in   entity.ExtractionInput
		want string
	}{
		{
			name: "same line",
			in:   entity.ExtractionInput{Text: "Bill To: Acme Corp   Ship To: Beta LLC"},
			want: "Acme Corp",
		},
		{
			name: "between labels",
			in: entity.ExtractionInput{
				Text: "Bill To:\nAcme Corp\n\n123 Main St\nSpringfield, IL 62701\nShip To:\nWarehouse 9",
			},
			want: "Acme Corp\n123 Main St\nSpringfield, IL 62701",
		},
		{
			name: "attn region",
			in: entity.ExtractionInput{
				AttnRegion: "ATTN: Jane Doe\nAcme Corp\n55 Oak Ave\nDenver, CO 80202\nUSA\nVendor #12",
			},
			want: "Jane Doe\nAcme Corp\n55 Oak Ave\nDenver, CO 80202\nUSA",
		},
	}

	e := newTestEngine(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.Extract(context.Background(), tt.in)
			assert.Equal(t, tt.want, rec.CustomerAddress)
		})
	}
}

func TestExtract_DeliveryAddressBlock(t *testing.T) {
	rec := newTestEngine(nil).Extract(context.Background(), entity.ExtractionInput{
		Text: "Bill To:\nAcme Corp\nShip To:\nWarehouse 9\n400 Dock Rd\nItem Qty",
	})
	assert.Equal(t, "Warehouse 9\n400 Dock Rd", rec.DeliveryAddress)
	assert.Equal(t, "Acme Corp", rec.Customer)
}

func TestExtract_BillingAddressDoesNotFillDelivery(t *testing.T) {
	rec := newTestEngine(nil).Extract(context.Background(), entity.ExtractionInput{
		Text: "Bill To:\nAcme Corp\n1 Main St",
	})
	assert.Equal(t, "Acme Corp\n1 Main St", rec.CustomerAddress)
	assert.Equal(t, constants.Unknown, rec.DeliveryAddress)
}

func TestExtract_FreeTextItems(t *testing.T) {
	text := "Item Description Qty Rate Amount\n" +
		"Blue Widget 2 10.00 20.00\n" +
		"Red Gadget 3 $5.00 $15.00\n" +
		"Premium Olive Oil Case 45.00\n" +
		"Phone 555 1234 5678\n" +
		"Total 80.00\n" +
		"Late Line 1 1.00 1.00"

	rec := newTestEngine(nil).Extract(context.Background(), entity.ExtractionInput{Text: text})

	require.Len(t, rec.Items, 3)
	assert.Equal(t, entity.LineItem{ProductName: "Blue Widget", Quantity: 2, Rate: 10, Price: 20}, rec.Items[0])
	assert.Equal(t, entity.LineItem{ProductName: "Red Gadget", Quantity: 3, Rate: 5, Price: 15}, rec.Items[1])
	assert.Equal(t, entity.LineItem{ProductName: "Premium Olive Oil Case", Quantity: 1, Rate: 45, Price: 45}, rec.Items[2])
	assert.InDelta(t, 80.0, rec.InvoiceAmount, 0.001)
}

func TestExtract_FreeTextItemRules(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []entity.LineItem
	}{
		{
			name: "quantity and rate only",
			text: "Item Description Qty Rate\nWidget Box 4 2.5",
			want: []entity.LineItem{{ProductName: "Widget Box", Quantity: 4, Rate: 2.5, Price: 10}},
		},
		{
			name: "quantity over limit",
			text: "Item Description Qty Rate\nBulk Widget Pack 50000 1",
		},
		{
			name: "quantity at limit",
			text: "Item Description Qty Rate\nPallet Wrap Roll 10000 0.5",
		},
		{
			name: "rate over limit",
			text: "Item Description Qty Rate\nService Fee 2 5000",
		},
		{
			name: "lines before any header",
			text: "Blue Widget Set 2 10.00\nRed Gadget Set 3 5.00",
			want: []entity.LineItem{
				{ProductName: "Blue Widget Set", Quantity: 2, Rate: 10, Price: 20},
				{ProductName: "Red Gadget Set", Quantity: 3, Rate: 5, Price: 15},
			},
		},
		{
			name: "header items win over earlier lines",
			text: "Loose Widget 1 2.00\nItem Qty Rate\nBlue Widget 2 10.00",
			want: []entity.LineItem{{ProductName: "Blue Widget", Quantity: 2, Rate: 10, Price: 20}},
		},
		{
			name: "continuation lines are not bare priced items",
			text: "Item Description Amount\n" +
				"and matching lids set 4.00\n" +
				"with gift wrapping box 6.00\n" +
				"-- special handling fee 3.00\n" +
				"Premium Olive Oil Case 45.00",
			want: []entity.LineItem{{ProductName: "Premium Olive Oil Case", Quantity: 1, Rate: 45, Price: 45}},
		},
	}

	e := newTestEngine(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.Extract(context.Background(), entity.ExtractionInput{Text: tt.text})
			if tt.want == nil {
				assert.Empty(t, rec.Items)
				return
			}
			assert.Equal(t, tt.want, rec.Items)
		})
	}
}

func TestExtract_FixedLayoutItems(t *testing.T) {
	text := "Product Code  Item Name  Qty  Unit Cost  Extended Cost\n" +
		"AB-100   Tomato Sauce 12 EACH $2.50 $30.00\n" +
		"\n" +
		"CD-200 Basil 3 EACH (1oz) $1,000.00 $3,000.00\n" +
		"Total $3,030.00"

	rec := newTestEngine(nil).Extract(context.Background(), entity.ExtractionInput{Text: text})

	require.Len(t, rec.Items, 2)
	assert.Equal(t, entity.LineItem{ProductName: "AB-100 Tomato Sauce", Quantity: 12, Rate: 2.5, Price: 30}, rec.Items[0])
	assert.Equal(t, entity.LineItem{ProductName: "CD-200 Basil", Quantity: 3, Rate: 1000, Price: 3000}, rec.Items[1])
	assert.InDelta(t, 3030.0, rec.InvoiceAmount, 0.001)
}

func TestExtract_TotalWithoutItems(t *testing.T) {
	rec := newTestEngine(nil).Extract(context.Background(), entity.ExtractionInput{Text: "Total Amount: $1,250.00"})
	assert.Empty(t, rec.Items)
	assert.InDelta(t, 1250.0, rec.InvoiceAmount, 0.001)
}

func TestExtract_CustomerEmail(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "finance prefix wins", text: "jane@acme.com\norders@acme.com\nsales@mycompany.com", want: "orders@acme.com"},
		{name: "own domain skipped", text: "sales@mycompany.com\njane@acme.com", want: "jane@acme.com"},
		{name: "first otherwise", text: "jane@acme.com bob@acme.com", want: "jane@acme.com"},
		{name: "only own domain", text: "sales@mycompany.com", want: constants.Unknown},
	}

	e := newTestEngine(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.Extract(context.Background(), entity.ExtractionInput{Text: tt.text})
			assert.Equal(t, tt.want, rec.CustomerEmail)
		})
	}
}

func TestExtract_EnrichesUnknownCustomer(t *testing.T) {
	in := entity.ExtractionInput{Text: "Purchase Order\nInvoice: orders@acme.com"}

	t.Run("namer fills name", func(t *testing.T) {
		namer := &fakeNamer{name: "Acme Corp"}
		rec := newTestEngine(namer).Extract(context.Background(), in)
		assert.Equal(t, "Acme Corp", rec.Customer)
		assert.Equal(t, 1, namer.calls)
	})

	t.Run("namer error keeps sentinel", func(t *testing.T) {
		namer := &fakeNamer{err: errors.New("directory offline")}
		rec := newTestEngine(namer).Extract(context.Background(), in)
		assert.Equal(t, constants.Unknown, rec.Customer)
		assert.Equal(t, "orders@acme.com", rec.CustomerEmail)
	})

	t.Run("namer panic keeps sentinel", func(t *testing.T) {
		namer := &fakeNamer{panic: true}
		rec := newTestEngine(namer).Extract(context.Background(), in)
		assert.Equal(t, constants.Unknown, rec.Customer)
	})

	t.Run("known customer skips lookup", func(t *testing.T) {
		namer := &fakeNamer{name: "Other"}
		rec := newTestEngine(namer).Extract(context.Background(), entity.ExtractionInput{Text: "Beta LLC\norders@beta.com"})
		assert.Equal(t, "Beta LLC", rec.Customer)
		assert.Zero(t, namer.calls)
	})
}

func TestConfigFromExtraction_KeepsDefaultsForZeroValues(t *testing.T) {
	cfg := ConfigFromExtraction(common.ExtractionConfig{MaxBareItemPrice: 250})
	assert.Equal(t, DefaultItemThresholds().MaxQuantity, cfg.Items.MaxQuantity)
	assert.Equal(t, 250.0, cfg.Items.MaxBarePrice)
}
