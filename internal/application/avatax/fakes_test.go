package avatax_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/avatax-connector/internal/application/avatax"
	"github.com/jhoicas/avatax-connector/internal/domain/entity"
	"github.com/jhoicas/avatax-connector/internal/domain/tax"
	"github.com/jhoicas/avatax-connector/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de los puertos
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvoices map[string]*entity.Invoice

func (f fakeInvoices) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	return f[id], nil
}

type fakeCreditMemos map[string]*entity.CreditMemo

func (f fakeCreditMemos) GetByID(_ context.Context, id string) (*entity.CreditMemo, error) {
	return f[id], nil
}

type fakeOrders map[string]*entity.Order

func (f fakeOrders) GetByID(_ context.Context, id string) (*entity.Order, error) {
	return f[id], nil
}

type fakeConfigs map[string]*entity.StoreConfig

func (f fakeConfigs) GetByStoreID(_ context.Context, id string) (*entity.StoreConfig, error) {
	if c, ok := f[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f fakeConfigs) Upsert(_ context.Context, cfg *entity.StoreConfig) error {
	f[cfg.StoreID] = cfg
	return nil
}

type fakeProducts map[string]*entity.Product

func (f fakeProducts) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product)
	for _, id := range ids {
		if p, ok := f[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f fakeProducts) Upsert(_ context.Context, p *entity.Product) error {
	f[p.ID] = p
	return nil
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []*entity.AuditLog
	err     error
}

func (f *fakeAudit) Save(_ context.Context, e *entity.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeAudit) ListByStore(_ context.Context, storeID string, limit, offset int) ([]*entity.AuditLog, error) {
	var out []*entity.AuditLog
	for _, e := range f.entries {
		if e.StoreID == storeID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeFlags struct {
	raised  map[string]bool
	cleared int
}

func newFakeFlags() *fakeFlags { return &fakeFlags{raised: map[string]bool{}} }

func (f *fakeFlags) Raise(_ context.Context, storeID string) error {
	f.raised[storeID] = true
	return nil
}

func (f *fakeFlags) Clear(_ context.Context, storeID string) (bool, error) {
	was := f.raised[storeID]
	delete(f.raised, storeID)
	if was {
		f.cleared++
	}
	return was, nil
}

func (f *fakeFlags) IsRaised(_ context.Context, storeID string) (bool, error) {
	return f.raised[storeID], nil
}

type fakeHistoryRepo struct {
	rows []*entity.StatusHistory
	err  error
}

func (f *fakeHistoryRepo) Insert(_ context.Context, h *entity.StatusHistory) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, h)
	return nil
}

type fakeTransport struct {
	calls   int
	lastDoc *tax.Document
	result  *tax.SubmissionResult
	err     error
	ping    *tax.PingResponse
	pingErr error
}

func (f *fakeTransport) CreateTransaction(_ context.Context, _ tax.Credentials, doc *tax.Document) (*tax.SubmissionResult, error) {
	f.calls++
	f.lastDoc = doc
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeTransport) Ping(context.Context, tax.Credentials) (*tax.PingResponse, error) {
	return f.ping, f.pingErr
}

type fakeMetrics struct {
	submissions []string
	unbalanced  int
	pings       []bool
}

func (m *fakeMetrics) ObserveSubmission(kind, resultCode string, _ time.Duration) {
	m.submissions = append(m.submissions, kind+":"+resultCode)
}
func (m *fakeMetrics) IncUnbalanced(string)      { m.unbalanced++ }
func (m *fakeMetrics) IncPing(ok bool)           { m.pings = append(m.pings, ok) }
func (m *fakeMetrics) SetErrorFlag(string, bool) {}

var errConnRefused = errors.New("dial tcp 127.0.0.1:443: connect: connection refused")

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC)

type fixture struct {
	invoices  fakeInvoices
	memos     fakeCreditMemos
	orders    fakeOrders
	configs   fakeConfigs
	products  fakeProducts
	audit     *fakeAudit
	flags     *fakeFlags
	history   *fakeHistoryRepo
	transport *fakeTransport
	metrics   *fakeMetrics
	uc        *avatax.SubmissionUseCase
	status    *avatax.StatusUseCase
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture() *fixture {
	f := &fixture{
		invoices: fakeInvoices{},
		memos:    fakeCreditMemos{},
		orders: fakeOrders{
			"o1": {
				ID: "o1", IncrementID: "100000001", StoreID: "1", CustomerID: "42",
				Status: "processing", CurrencyCode: "USD",
				ShippingAddress: &entity.Address{Line1: "1 Main St", City: "Seattle", Region: "WA", PostalCode: "98101", Country: "US"},
				CreatedAt:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			},
		},
		configs: fakeConfigs{
			"1": {
				StoreID: "1", ServiceURL: "https://sandbox-rest.avatax.com", AccountID: "2000", LicenseKey: "KEY",
				CompanyCode: "DEFAULT", ShippingTaxCode: "FR020100", GiftTaxCode: "PG050000",
				Ref1Attribute: "upc", FullStopOnError: true, Timezone: "America/Los_Angeles", Locale: "en_US",
				Origin: entity.Address{Line1: "100 Ravine Ln", City: "Bainbridge Island", Region: "WA", PostalCode: "98110", Country: "US"},
			},
		},
		products: fakeProducts{
			"p1": {ID: "p1", SKU: "SHIRT", TaxCode: "PC040100", Attributes: []byte(`{"upc":"0001"}`)},
		},
		audit:     &fakeAudit{},
		flags:     newFakeFlags(),
		history:   &fakeHistoryRepo{},
		transport: &fakeTransport{},
		metrics:   &fakeMetrics{},
	}
	f.invoices["i1"] = &entity.Invoice{SalesDocument: entity.SalesDocument{
		ID: "i1", IncrementID: "100000021", OrderID: "o1", StoreID: "1",
		BaseShippingAmount: d("5.00"),
		BaseTaxAmount:      d("10.00"),
		CreatedAt:          fixedNow,
		Items: []*entity.DocumentItem{
			{ID: "ii1", OrderItemID: "oi1", ProductID: "p1", SKU: "SHIRT", Name: "Camiseta", Qty: d("2"), BaseRowTotal: d("40"), BaseDiscountAmount: d("4")},
		},
	}}

	log := logger.Nop()
	history, _ := avatax.NewHistoryAppender("", f.history)
	sender := avatax.NewSender(f.transport, f.audit, f.flags, f.metrics, log)
	resolver := avatax.NewConfigResolver(f.configs, avatax.Defaults{})
	f.uc = avatax.NewSubmissionUseCase(avatax.SubmissionDeps{
		Invoices:    f.invoices,
		CreditMemos: f.memos,
		Orders:      f.orders,
		Configs:     resolver,
		Assembler:   avatax.NewAssembler(f.products, func() time.Time { return fixedNow }),
		Sender:      sender,
		Reconciler:  avatax.NewReconciler(history, f.metrics, log),
		Log:         log,
	})
	f.status = avatax.NewStatusUseCase(resolver, f.transport, sender, f.flags, f.audit, f.metrics)
	return f
}

func success(totalTax string) *tax.SubmissionResult {
	return &tax.SubmissionResult{ResultCode: "Success", TotalTax: d(totalTax)}
}

func errorResult() *tax.SubmissionResult {
	return &tax.SubmissionResult{
		HasError:   true,
		ResultCode: "Error",
		Messages:   []tax.Message{{Summary: "Address not geocoded"}},
	}
}
