package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/po-reader/internal/entity"
)

const (
	ordersSheet = "Orders"
	itemsSheet  = "Line Items"
)

var (
	orderHeaders = []string{
		"Source File",
		"Customer",
		"Customer Email",
		"PO Number",
		"Order Date",
		"Order Date (ISO)",
		"Delivery Date",
		"Delivery Date (ISO)",
		"Ordered By",
		"Billing Address",
		"Delivery Address",
		"Items",
		"Invoice Amount",
	}
	itemHeaders = []string{
		"Source File",
		"PO Number",
		"Product",
		"Quantity",
		"Rate",
		"Price",
	}
)

// Service renders extracted purchase orders as spreadsheets.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// WriteXLSX returns an XLSX workbook (as bytes) with one "Orders" row per
// record and one "Line Items" row per item.
func (s *Service) WriteXLSX(ctx context.Context, records []entity.ExtractedRecord) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}
	activeIndex, _ := f.GetSheetIndex(ordersSheet)
	f.SetActiveSheet(activeIndex)

	writeRow := func(sheet string, row int, values ...any) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		return f.SetSheetRow(sheet, cell, &values)
	}

	if err := writeRow(ordersSheet, 1, toAny(orderHeaders)...); err != nil {
		return nil, fmt.Errorf("xlsx header: %w", err)
	}
	if err := writeRow(itemsSheet, 1, toAny(itemHeaders)...); err != nil {
		return nil, fmt.Errorf("xlsx header: %w", err)
	}

	orderRow, itemRow := 2, 2
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		orderISO, _ := NormalizeDate(r.OrderDate)
		deliveryISO, _ := NormalizeDate(r.DeliveryDate)
		err := writeRow(ordersSheet, orderRow,
			r.SourceFile,
			r.Customer,
			r.CustomerEmail,
			r.PONumber,
			r.OrderDate,
			orderISO,
			r.DeliveryDate,
			deliveryISO,
			r.OrderedBy,
			r.CustomerAddress,
			r.DeliveryAddress,
			len(r.Items),
			r.InvoiceAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("xlsx order row: %w", err)
		}
		orderRow++

		for _, it := range r.Items {
			if err := writeRow(itemsSheet, itemRow, r.SourceFile, r.PONumber, it.ProductName, it.Quantity, it.Rate, it.Price); err != nil {
				return nil, fmt.Errorf("xlsx item row: %w", err)
			}
			itemRow++
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(ordersSheet, "A", "A", 28) // source
	_ = f.SetColWidth(ordersSheet, "B", "C", 28) // customer, email
	_ = f.SetColWidth(ordersSheet, "D", "I", 16) // po, dates, ordered by
	_ = f.SetColWidth(ordersSheet, "J", "K", 40) // addresses
	_ = f.SetColWidth(itemsSheet, "A", "B", 20)
	_ = f.SetColWidth(itemsSheet, "C", "C", 48) // product

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"orders", orderRow-2,
		"items", itemRow-2,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
