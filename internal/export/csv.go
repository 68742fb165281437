package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/joseph-ayodele/po-reader/internal/entity"
)

var csvHeaders = []string{
	"source_file",
	"customer",
	"customer_email",
	"po_number",
	"order_date",
	"delivery_date",
	"ordered_by",
	"customer_address",
	"delivery_address",
	"product_name",
	"quantity",
	"rate",
	"price",
	"invoice_amount",
}

// WriteCSV writes one row per line item; a record without items still gets
// one row with empty item columns.
func (s *Service) WriteCSV(w io.Writer, records []entity.ExtractedRecord) error {
	start := time.Now()
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}

	rows := 0
	for _, r := range records {
		base := []string{
			r.SourceFile,
			r.Customer,
			r.CustomerEmail,
			r.PONumber,
			r.OrderDate,
			r.DeliveryDate,
			r.OrderedBy,
			r.CustomerAddress,
			r.DeliveryAddress,
		}
		amount := formatMoney(r.InvoiceAmount)

		if len(r.Items) == 0 {
			if err := cw.Write(append(base, "", "", "", "", amount)); err != nil {
				return fmt.Errorf("csv row: %w", err)
			}
			rows++
			continue
		}
		for _, it := range r.Items {
			row := append(append([]string{}, base...),
				it.ProductName,
				strconv.FormatFloat(it.Quantity, 'f', -1, 64),
				formatMoney(it.Rate),
				formatMoney(it.Price),
				amount,
			)
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("csv row: %w", err)
			}
			rows++
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv flush: %w", err)
	}
	s.logger.Info("export.csv.ok", "rows", rows, "elapsed_ms", time.Since(start).Milliseconds())
	return nil
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
