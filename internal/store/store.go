// Package store owns the active dataset and its CSV files. All mutation is
// serialized through one mutex, replacement is atomic at the file level,
// and uploads are validated row by row before anything is committed.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/salespulse/salespulse/internal/generator"
	"github.com/salespulse/salespulse/internal/models"
)

const (
	customersFile = "customers.csv"
	ordersFile    = "orders.csv"
)

// RowError describes one invalid cell or row in an uploaded CSV pair. Row
// numbers are 1-based data rows, counted after the header.
type RowError struct {
	File    string `json:"file"`
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationError rejects a dataset upload. The active dataset is left
// untouched when it is returned.
type ValidationError struct {
	Errors []RowError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "dataset validation failed"
	}
	first := e.Errors[0]
	return fmt.Sprintf("dataset validation failed with %d row error(s); first: %s row %d, %s: %s",
		len(e.Errors), first.File, first.Row, first.Field, first.Message)
}

// Store holds the active in-memory dataset and keeps it in sync with the
// CSV pair in dir. Readers get stable snapshots; writers are serialized.
type Store struct {
	mu        sync.RWMutex
	dir       string
	customers []models.Customer
	orders    []models.Order
	validate  *validator.Validate
}

func New(dir string) *Store {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Store{dir: dir, validate: v}
}

func (s *Store) CustomersPath() string { return filepath.Join(s.dir, customersFile) }
func (s *Store) OrdersPath() string    { return filepath.Join(s.dir, ordersFile) }

// Snapshot returns the active dataset. The returned slices are shared and
// must be treated as read-only; Replace swaps whole slices, so holders of
// an old snapshot are unaffected by later replacements.
func (s *Store) Snapshot() ([]models.Customer, []models.Order) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customers, s.orders
}

// Counts reports the size of the active dataset.
func (s *Store) Counts() (customers, orders int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers), len(s.orders)
}

// Ensure makes a dataset available: it loads the CSV pair when both files
// exist, and generates a fresh dataset with cfg otherwise.
func (s *Store) Ensure(cfg generator.Config) error {
	if s.filesExist() {
		return s.Load()
	}
	ds, err := generator.Generate(cfg)
	if err != nil {
		return err
	}
	return s.Replace(ds.Customers, ds.Orders)
}

func (s *Store) filesExist() bool {
	for _, p := range []string{s.CustomersPath(), s.OrdersPath()} {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}

// Load reads the CSV pair from disk into memory, running the same
// validation as an upload so a hand-edited bad file cannot become active.
func (s *Store) Load() error {
	cf, err := os.Open(s.CustomersPath())
	if err != nil {
		return fmt.Errorf("failed to open customers file: %w", err)
	}
	defer cf.Close()

	of, err := os.Open(s.OrdersPath())
	if err != nil {
		return fmt.Errorf("failed to open orders file: %w", err)
	}
	defer of.Close()

	customers, orders, err := s.DecodeAndValidate(cf, of)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers, s.orders = customers, orders
	return nil
}

// Replace writes both CSV files atomically (temp files, then renames) and
// swaps the in-memory dataset. On any error the previous dataset and its
// files stay active.
func (s *Store) Replace(customers []models.Customer, orders []models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceLocked(customers, orders)
}

func (s *Store) replaceLocked(customers []models.Customer, orders []models.Order) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	tmpCustomers, err := writeTemp(s.dir, customersFile, func(w io.Writer) error {
		return WriteCustomersCSV(w, customers)
	})
	if err != nil {
		return fmt.Errorf("failed to write customers file: %w", err)
	}
	tmpOrders, err := writeTemp(s.dir, ordersFile, func(w io.Writer) error {
		return WriteOrdersCSV(w, orders)
	})
	if err != nil {
		os.Remove(tmpCustomers)
		return fmt.Errorf("failed to write orders file: %w", err)
	}

	if err := os.Rename(tmpCustomers, s.CustomersPath()); err != nil {
		os.Remove(tmpCustomers)
		os.Remove(tmpOrders)
		return fmt.Errorf("failed to commit customers file: %w", err)
	}
	if err := os.Rename(tmpOrders, s.OrdersPath()); err != nil {
		os.Remove(tmpOrders)
		return fmt.Errorf("failed to commit orders file: %w", err)
	}

	s.customers, s.orders = customers, orders
	return nil
}

func writeTemp(dir, base string, write func(io.Writer) error) (string, error) {
	f, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return "", err
	}
	path := f.Name()
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// Upload validates an external CSV pair and, only if every row passes,
// commits it as the active dataset. The whole operation holds the write
// lock so at most one regeneration or upload is in flight.
func (s *Store) Upload(customersCSV, ordersCSV io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, orders, err := s.DecodeAndValidate(customersCSV, ordersCSV)
	if err != nil {
		return err
	}
	return s.replaceLocked(customers, orders)
}

// DecodeAndValidate parses both CSV streams and checks every row: field
// formats, enum membership, id uniqueness and referential integrity. On
// success it returns the dataset with lifetime values recomputed from the
// orders. It performs no writes, so it doubles as a dry run.
func (s *Store) DecodeAndValidate(customersCSV, ordersCSV io.Reader) ([]models.Customer, []models.Order, error) {
	customers, customerRows, rowErrs, err := readCustomers(customersCSV)
	if err != nil {
		return nil, nil, fmt.Errorf("customers csv: %w", err)
	}
	stampFile(rowErrs, customersFile)

	orders, orderRows, orderErrs, err := readOrders(ordersCSV)
	if err != nil {
		return nil, nil, fmt.Errorf("orders csv: %w", err)
	}
	stampFile(orderErrs, ordersFile)
	rowErrs = append(rowErrs, orderErrs...)

	knownCustomers := make(map[string]bool, len(customers))
	for i, c := range customers {
		row := customerRows[i]
		rowErrs = append(rowErrs, s.structErrors(customersFile, row, c)...)
		if knownCustomers[c.CustomerID] {
			rowErrs = append(rowErrs, RowError{File: customersFile, Row: row, Field: "customer_id", Message: "duplicate id"})
		}
		knownCustomers[c.CustomerID] = true
	}

	knownOrders := make(map[string]bool, len(orders))
	for i, o := range orders {
		row := orderRows[i]
		rowErrs = append(rowErrs, s.structErrors(ordersFile, row, o)...)
		if knownOrders[o.OrderID] {
			rowErrs = append(rowErrs, RowError{File: ordersFile, Row: row, Field: "order_id", Message: "duplicate id"})
		}
		knownOrders[o.OrderID] = true
		if o.CustomerID != "" && !knownCustomers[o.CustomerID] {
			rowErrs = append(rowErrs, RowError{File: ordersFile, Row: row, Field: "customer_id", Message: fmt.Sprintf("no such customer %q", o.CustomerID)})
		}
	}

	if len(rowErrs) > 0 {
		sort.Slice(rowErrs, func(i, j int) bool {
			if rowErrs[i].File != rowErrs[j].File {
				return rowErrs[i].File < rowErrs[j].File
			}
			if rowErrs[i].Row != rowErrs[j].Row {
				return rowErrs[i].Row < rowErrs[j].Row
			}
			return rowErrs[i].Field < rowErrs[j].Field
		})
		return nil, nil, &ValidationError{Errors: rowErrs}
	}

	generator.ApplyLifetimeValue(customers, orders)
	return customers, orders, nil
}

func stampFile(errs []RowError, file string) {
	for i := range errs {
		errs[i].File = file
	}
}

func (s *Store) structErrors(file string, row int, v any) []RowError {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []RowError{{File: file, Row: row, Message: err.Error()}}
	}
	out := make([]RowError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, RowError{File: file, Row: row, Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "is not a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "min":
		return "needs at least " + fe.Param() + " entries"
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "startswith":
		return "must start with " + fe.Param()
	case "gtefield":
		return "must not precede created_at"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}
