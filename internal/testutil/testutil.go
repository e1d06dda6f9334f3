package testutil

import (
	"bytes"
	"context"
	"mime/multipart"
	"testing"
	"time"

	"go-invoice-admin/internal/domain"
)

// MemInvoiceRepo in-memory InvoiceRepository for tests
type MemInvoiceRepo struct {
	Invoices map[string]domain.Invoice
	ListRows []domain.InvoiceRow
	Err      error // force a persistence fault
}

func NewMemInvoiceRepo() *MemInvoiceRepo {
	return &MemInvoiceRepo{Invoices: map[string]domain.Invoice{}}
}

func (m *MemInvoiceRepo) Create(_ context.Context, inv *domain.Invoice) error {
	if m.Err != nil {
		return m.Err
	}
	m.Invoices[inv.ID] = *inv
	return nil
}

func (m *MemInvoiceRepo) Update(_ context.Context, inv *domain.Invoice) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	cur, ok := m.Invoices[inv.ID]
	if !ok {
		return 0, nil
	}
	cur.CustomerID = inv.CustomerID
	cur.Amount = inv.Amount
	cur.Status = inv.Status
	m.Invoices[inv.ID] = cur
	return 1, nil
}

func (m *MemInvoiceRepo) Delete(_ context.Context, id string) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	if _, ok := m.Invoices[id]; !ok {
		return 0, nil
	}
	delete(m.Invoices, id)
	return 1, nil
}

func (m *MemInvoiceRepo) FindByID(_ context.Context, id string) (*domain.Invoice, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	inv, ok := m.Invoices[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (m *MemInvoiceRepo) List(_ context.Context, _ domain.ListQuery) ([]domain.InvoiceRow, int64, error) {
	if m.Err != nil {
		return nil, 0, m.Err
	}
	return m.ListRows, int64(len(m.ListRows)), nil
}

// MemCustomerRepo in-memory CustomerRepository for tests
type MemCustomerRepo struct {
	Customers map[string]domain.Customer
	Err       error
}

func NewMemCustomerRepo() *MemCustomerRepo {
	return &MemCustomerRepo{Customers: map[string]domain.Customer{}}
}

func (m *MemCustomerRepo) Create(_ context.Context, c *domain.Customer) error {
	if m.Err != nil {
		return m.Err
	}
	m.Customers[c.ID] = *c
	return nil
}

func (m *MemCustomerRepo) Update(_ context.Context, c *domain.Customer) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	cur, ok := m.Customers[c.ID]
	if !ok {
		return 0, nil
	}
	cur.Name = c.Name
	cur.Email = c.Email
	cur.ImageURL = c.ImageURL
	m.Customers[c.ID] = cur
	return 1, nil
}

func (m *MemCustomerRepo) SoftDelete(_ context.Context, id string) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	cur, ok := m.Customers[id]
	if !ok {
		return 0, nil
	}
	cur.IsDeleted = true
	m.Customers[id] = cur
	return 1, nil
}

func (m *MemCustomerRepo) Disable(_ context.Context, id string) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	cur, ok := m.Customers[id]
	if !ok {
		return 0, nil
	}
	cur.IsDisabled = true
	m.Customers[id] = cur
	return 1, nil
}

func (m *MemCustomerRepo) FindByID(_ context.Context, id string) (*domain.Customer, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	c, ok := m.Customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *MemCustomerRepo) List(_ context.Context, q domain.ListQuery) ([]domain.Customer, int64, error) {
	if m.Err != nil {
		return nil, 0, m.Err
	}
	out := []domain.Customer{}
	for _, c := range m.Customers {
		if c.IsDeleted && !q.WithDeleted {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

// RecInvalidator records which cache prefixes were invalidated
type RecInvalidator struct {
	Prefixes []string
}

func (r *RecInvalidator) InvalidatePrefix(_ context.Context, prefix string) error {
	r.Prefixes = append(r.Prefixes, prefix)
	return nil
}

// MemLoader cache.Loader backed by a map, for staleness tests
type MemLoader struct {
	Data  map[string][]byte
	Loads int
}

func NewMemLoader() *MemLoader { return &MemLoader{Data: map[string][]byte{}} }

func (m *MemLoader) GetOrLoad(ctx context.Context, key string, _ time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if b, ok := m.Data[key]; ok {
		return b, nil
	}
	m.Loads++
	b, err := load(ctx)
	if err != nil {
		return nil, err
	}
	m.Data[key] = b
	return b, nil
}

func (m *MemLoader) InvalidatePrefix(_ context.Context, prefix string) error {
	for k := range m.Data {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(m.Data, k)
		}
	}
	return nil
}

// MakeFileHeader builds a real *multipart.FileHeader by round-tripping a
// multipart body, so fh.Open works in tests
func MakeFileHeader(t *testing.T, field, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
	h["Content-Type"] = []string{contentType}
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	r := multipart.NewReader(&buf, w.Boundary())
	form, err := r.ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	files := form.File[field]
	if len(files) == 0 {
		t.Fatalf("no file parsed for field %q", field)
	}
	return files[0]
}
