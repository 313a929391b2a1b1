package store

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/salespulse/salespulse/internal/generator"
)

func testDataset(t *testing.T) *generator.Dataset {
	t.Helper()
	cfg := generator.DefaultConfig()
	cfg.Customers = 6
	cfg.Now = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	ds, err := generator.Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return ds
}

func customersCSVOf(rows ...string) string {
	lines := append([]string{strings.Join(customerHeader, ",")}, rows...)
	return strings.Join(lines, "\n") + "\n"
}

func ordersCSVOf(rows ...string) string {
	lines := append([]string{strings.Join(orderHeader, ",")}, rows...)
	return strings.Join(lines, "\n") + "\n"
}

const (
	goodCustomerRow = "CUST0001,Alice Chen,alice.chen1@example.com,vip,electronics|fitness,85,0.75,loyal,morning,budget_conscious,0.00,2025-01-10,2025-06-01"
	goodOrderRow    = "ORD00000001,CUST0001,1200.50,electronics,2025-06-10,web"
)

func TestReplaceAndLoadRoundTrip(t *testing.T) {
	ds := testDataset(t)

	dir := t.TempDir()
	s := New(dir)
	if err := s.Replace(ds.Customers, ds.Orders); err != nil {
		t.Fatalf("replace: %v", err)
	}

	fresh := New(dir)
	if err := fresh.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	customers, orders := fresh.Snapshot()
	if !reflect.DeepEqual(customers, ds.Customers) {
		t.Error("customers changed across a CSV round trip")
	}
	if !reflect.DeepEqual(orders, ds.Orders) {
		t.Error("orders changed across a CSV round trip")
	}
}

func TestEnsureGeneratesWhenMissing(t *testing.T) {
	cfg := generator.DefaultConfig()
	cfg.Customers = 5
	cfg.Now = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	s := New(t.TempDir())
	if err := s.Ensure(cfg); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	nc, no := s.Counts()
	if nc != 5 {
		t.Errorf("ensure produced %d customers, want 5", nc)
	}
	if no == 0 {
		t.Error("ensure produced no orders")
	}

	// A second Ensure must load the existing files, not regenerate.
	before, _ := s.Snapshot()
	if err := s.Ensure(cfg); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	after, _ := s.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Error("second ensure changed the dataset")
	}
}

func TestUploadRejectsUnknownCustomer(t *testing.T) {
	s := New(t.TempDir())
	ds := testDataset(t)
	if err := s.Replace(ds.Customers, ds.Orders); err != nil {
		t.Fatalf("replace: %v", err)
	}

	customers := customersCSVOf(goodCustomerRow)
	orders := ordersCSVOf(
		goodOrderRow,
		"ORD00000002,CUST9999,50.00,books,2025-06-11,app",
	)

	err := s.Upload(strings.NewReader(customers), strings.NewReader(orders))
	if err == nil {
		t.Fatal("upload with an unknown customer_id was accepted")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error %v is not a ValidationError", err)
	}

	found := false
	for _, re := range verr.Errors {
		if re.File == ordersFile && re.Row == 2 && re.Field == "customer_id" {
			found = true
		}
	}
	if !found {
		t.Errorf("row errors %+v do not identify orders row 2 customer_id", verr.Errors)
	}

	// The active dataset must be untouched.
	nc, no := s.Counts()
	if nc != len(ds.Customers) || no != len(ds.Orders) {
		t.Errorf("dataset changed after rejected upload: %d customers, %d orders", nc, no)
	}
}

func TestUploadIdentifiesBadCell(t *testing.T) {
	s := New(t.TempDir())

	customers := customersCSVOf(
		goodCustomerRow,
		"CUST0002,Ben Weber,not-an-email,new,books,40,0.30,researcher,evening,price_sensitive,0.00,2025-02-01,2025-06-05",
	)
	orders := ordersCSVOf(goodOrderRow)

	err := s.Upload(strings.NewReader(customers), strings.NewReader(orders))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a ValidationError, got %v", err)
	}

	found := false
	for _, re := range verr.Errors {
		if re.File == customersFile && re.Row == 2 && re.Field == "email" {
			found = true
		}
	}
	if !found {
		t.Errorf("row errors %+v do not identify customers row 2 email", verr.Errors)
	}
}

func TestUploadRecomputesLifetimeValue(t *testing.T) {
	s := New(t.TempDir())

	customers := customersCSVOf(
		"CUST0001,Alice Chen,alice.chen1@example.com,vip,electronics|fitness,85,0.75,loyal,morning,budget_conscious,999999.00,2025-01-10,2025-06-01",
	)
	orders := ordersCSVOf(
		"ORD00000001,CUST0001,1200.50,electronics,2025-06-10,web",
		"ORD00000002,CUST0001,99.50,fitness,2025-06-12,app",
	)

	if err := s.Upload(strings.NewReader(customers), strings.NewReader(orders)); err != nil {
		t.Fatalf("upload: %v", err)
	}

	got, _ := s.Snapshot()
	if len(got) != 1 {
		t.Fatalf("got %d customers, want 1", len(got))
	}
	if math.Abs(got[0].LifetimeValue-1300.00) > 0.005 {
		t.Errorf("lifetime_value %.2f, want 1300.00", got[0].LifetimeValue)
	}
}

func TestUploadRejectsWrongHeader(t *testing.T) {
	s := New(t.TempDir())

	customers := "id,name\nCUST0001,Alice\n"
	orders := ordersCSVOf(goodOrderRow)

	err := s.Upload(strings.NewReader(customers), strings.NewReader(orders))
	if err == nil {
		t.Fatal("upload with a wrong header was accepted")
	}
	if !errors.Is(err, ErrMalformedCSV) {
		t.Errorf("wrong header should wrap ErrMalformedCSV, got %v", err)
	}
}

func TestUploadReportsParseErrorsWithRow(t *testing.T) {
	s := New(t.TempDir())

	customers := customersCSVOf(
		goodCustomerRow,
		"CUST0002,Ben Weber,ben.weber2@example.com,new,books,not-a-number,0.30,researcher,evening,price_sensitive,0.00,2025-02-01,2025-06-05",
	)
	orders := ordersCSVOf(goodOrderRow)

	err := s.Upload(strings.NewReader(customers), strings.NewReader(orders))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a ValidationError, got %v", err)
	}

	found := false
	for _, re := range verr.Errors {
		if re.File == customersFile && re.Row == 2 && re.Field == "engagement_score" {
			found = true
		}
	}
	if !found {
		t.Errorf("row errors %+v do not identify customers row 2 engagement_score", verr.Errors)
	}
}
