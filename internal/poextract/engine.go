package poextract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/po-reader/internal/common"
	"github.com/joseph-ayodele/po-reader/internal/entity"
)

// CustomerNamer resolves a company name from a customer email address.
// Implementations may block on a directory lookup.
type CustomerNamer interface {
	CompanyNameForEmail(ctx context.Context, email string) (string, error)
}

// ItemThresholds bounds what the free-text item scanner accepts as a line item.
type ItemThresholds struct {
	MaxQuantity        float64
	MaxRate            float64
	MaxPrice           float64
	PriceTolerance     float64 // relative, qty*rate vs stated price
	MinPriceTolerance  float64 // absolute floor for PriceTolerance
	MinBarePrice       float64 // exclusive
	MaxBarePrice       float64 // exclusive
	MinBareDescription int     // runes, exclusive
}

// DefaultItemThresholds returns the thresholds the scanner was tuned with.
func DefaultItemThresholds() ItemThresholds {
	return ItemThresholds{
		MaxQuantity:        10000,
		MaxRate:            1000,
		MaxPrice:           100000,
		PriceTolerance:     0.01,
		MinPriceTolerance:  0.1,
		MinBarePrice:       0.01,
		MaxBarePrice:       500,
		MinBareDescription: 10,
	}
}

// Config configures an Engine.
type Config struct {
	// OwnDomain is the operator's mail domain; addresses containing it are
	// never picked as the customer email.
	OwnDomain     string
	LookupTimeout time.Duration
	Items         ItemThresholds
}

// ConfigFromExtraction maps the environment-driven settings onto an engine Config.
func ConfigFromExtraction(c common.ExtractionConfig) Config {
	items := DefaultItemThresholds()
	if c.MaxItemQuantity > 0 {
		items.MaxQuantity = c.MaxItemQuantity
	}
	if c.MaxItemRate > 0 {
		items.MaxRate = c.MaxItemRate
	}
	if c.MaxItemPrice > 0 {
		items.MaxPrice = c.MaxItemPrice
	}
	if c.PriceTolerance > 0 {
		items.PriceTolerance = c.PriceTolerance
	}
	if c.MaxBareItemPrice > 0 {
		items.MaxBarePrice = c.MaxBareItemPrice
	}
	if c.MinBareDescription > 0 {
		items.MinBareDescription = c.MinBareDescription
	}
	return Config{
		OwnDomain:     c.OwnDomain,
		LookupTimeout: c.LookupTimeout,
		Items:         items,
	}
}

// Engine turns a layout-analysis snapshot into an ExtractedRecord. It holds
// no per-document state and is safe for concurrent use.
type Engine struct {
	cfg    Config
	namer  CustomerNamer
	logger *slog.Logger
}

// NewEngine creates an engine. namer may be nil, in which case the customer
// name is never enriched from the email address.
func NewEngine(cfg Config, namer CustomerNamer, logger *slog.Logger) *Engine {
	if cfg.Items == (ItemThresholds{}) {
		cfg.Items = DefaultItemThresholds()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{cfg: cfg, namer: namer, logger: logger}
}

// ExtractFields implements extract.FieldExtractor.
func (e *Engine) ExtractFields(ctx context.Context, in entity.ExtractionInput) entity.ExtractedRecord {
	return e.Extract(ctx, in)
}

// Extract resolves every field of the record. It never fails: a field that
// cannot be found keeps its sentinel, and an unexpected fault returns the
// fields resolved so far.
func (e *Engine) Extract(ctx context.Context, in entity.ExtractionInput) (rec entity.ExtractedRecord) {
	start := time.Now()
	b := newRecordBuilder(in.SourceFile)
	logger := e.logger.With("source_file", in.SourceFile)
	if runID := common.RunIDFromContext(ctx); runID != "" {
		logger = logger.With("run_id", runID)
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("poextract.panic", "panic", fmt.Sprint(r))
			rec = b.build()
		}
	}()

	d := newDocument(in)

	resolveCustomer(d, b)
	b.resolve(&b.rec.PONumber, d, labeledPONumber, poNumberBelowHeader)
	b.resolve(&b.rec.OrderDate, d, labeledOrderDate, firstDateInText)
	b.resolve(&b.rec.DeliveryDate, d, labeledDeliveryDate, secondDateInText)
	b.resolve(&b.rec.OrderedBy, d, orderedBy)
	resolveAddresses(d, b)

	items, ok := firstOf[[]entity.LineItem](d, tableItems, fixedLayoutItems, e.freeTextItems)
	b.setItems(items, ok)
	amount, ok := firstOf[float64](d, sumOfItems(b.rec.Items), labeledTotal)
	b.setInvoiceAmount(amount, ok)
	b.resolve(&b.rec.CustomerEmail, d, e.customerEmail)

	e.enrichCustomer(ctx, logger, b)

	rec = b.build()
	logger.Debug("poextract.done",
		"customer", rec.Customer,
		"po_number", rec.PONumber,
		"items", len(rec.Items),
		"invoice_amount", rec.InvoiceAmount,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return rec
}

// enrichCustomer asks the namer for a company name when the document itself
// named no customer. Any failure leaves the sentinel in place.
func (e *Engine) enrichCustomer(ctx context.Context, logger *slog.Logger, b *recordBuilder) {
	if e.namer == nil || !isUnknown(b.rec.Customer) || isUnknown(b.rec.CustomerEmail) {
		return
	}
	lookupCtx, cancel := common.WithTimeout(ctx, e.cfg.LookupTimeout)
	defer cancel()

	name, err := e.lookupCompanyName(lookupCtx, b.rec.CustomerEmail)
	if err != nil {
		logger.Warn("poextract.enrich.failed", "email", b.rec.CustomerEmail, "err", err)
		return
	}
	if b.setString(&b.rec.Customer, name, true) {
		logger.Debug("poextract.enrich.ok", "email", b.rec.CustomerEmail, "customer", name)
	}
}

func (e *Engine) lookupCompanyName(ctx context.Context, email string) (name string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("customer lookup panicked: %v", r)
		}
	}()
	return e.namer.CompanyNameForEmail(ctx, email)
}
