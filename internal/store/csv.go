package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/salespulse/salespulse/internal/models"
)

const dateLayout = "2006-01-02"

// listSep joins list-valued cells (interests, pain_points) inside a single
// CSV column.
const listSep = "|"

var customerHeader = []string{
	"customer_id", "name", "email", "segment", "interests",
	"engagement_score", "response_rate", "buying_behavior",
	"preferred_contact_time", "pain_points", "lifetime_value",
	"created_at", "last_contact_date",
}

var orderHeader = []string{
	"order_id", "customer_id", "amount", "product_category",
	"order_date", "channel",
}

// ErrMalformedCSV marks input that cannot be decoded at all: an unreadable
// stream or a header that does not match the expected schema. Row-level
// problems are reported through ValidationError instead.
var ErrMalformedCSV = errors.New("malformed csv")

// WriteCustomersCSV renders customers in the canonical CSV shape: stable
// header order, pipe-delimited list cells, YYYY-MM-DD dates, two-decimal
// amounts.
func WriteCustomersCSV(w io.Writer, customers []models.Customer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(customerHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, c := range customers {
		row := []string{
			c.CustomerID,
			c.Name,
			c.Email,
			c.Segment,
			joinList(c.Interests),
			strconv.Itoa(c.EngagementScore),
			strconv.FormatFloat(c.ResponseRate, 'f', 2, 64),
			c.BuyingBehavior,
			c.PreferredContactTime,
			joinList(c.PainPoints),
			strconv.FormatFloat(c.LifetimeValue, 'f', 2, 64),
			c.CreatedAt.Format(dateLayout),
			formatDate(c.LastContactDate),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteOrdersCSV renders orders in the canonical CSV shape.
func WriteOrdersCSV(w io.Writer, orders []models.Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(orderHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, o := range orders {
		row := []string{
			o.OrderID,
			o.CustomerID,
			strconv.FormatFloat(o.Amount, 'f', 2, 64),
			o.ProductCategory,
			o.OrderDate.Format(dateLayout),
			o.Channel,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// readCustomers parses a customers CSV stream. Cell-level problems come
// back as RowErrors (1-based data rows); only unreadable input or a wrong
// header is a hard error. rows holds the data-row number of each parsed
// customer, since rows with parse errors are skipped.
func readCustomers(r io.Reader) (customers []models.Customer, rows []int, rowErrs []RowError, err error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	if err := readHeader(reader, customerHeader); err != nil {
		return nil, nil, nil, err
	}

	row := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			rowErrs = append(rowErrs, readError(row, err))
			continue
		}

		c, errs := parseCustomer(row, rec)
		if len(errs) > 0 {
			rowErrs = append(rowErrs, errs...)
			continue
		}
		customers = append(customers, c)
		rows = append(rows, row)
	}
	return customers, rows, rowErrs, nil
}

func readOrders(r io.Reader) (orders []models.Order, rows []int, rowErrs []RowError, err error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	if err := readHeader(reader, orderHeader); err != nil {
		return nil, nil, nil, err
	}

	row := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			rowErrs = append(rowErrs, readError(row, err))
			continue
		}

		o, errs := parseOrder(row, rec)
		if len(errs) > 0 {
			rowErrs = append(rowErrs, errs...)
			continue
		}
		orders = append(orders, o)
		rows = append(rows, row)
	}
	return orders, rows, rowErrs, nil
}

func readHeader(reader *csv.Reader, want []string) error {
	got, err := reader.Read()
	if err != nil {
		return fmt.Errorf("%w: failed to read header: %v", ErrMalformedCSV, err)
	}
	if len(got) != len(want) {
		return fmt.Errorf("%w: header has %d columns, want %d", ErrMalformedCSV, len(got), len(want))
	}
	for i := range want {
		if strings.ToLower(strings.TrimSpace(got[i])) != want[i] {
			return fmt.Errorf("%w: unexpected column %d: got %q, want %q", ErrMalformedCSV, i+1, got[i], want[i])
		}
	}
	return nil
}

func readError(row int, err error) RowError {
	if errors.Is(err, csv.ErrFieldCount) {
		return RowError{Row: row, Message: "wrong number of columns"}
	}
	return RowError{Row: row, Message: err.Error()}
}

func parseCustomer(row int, rec []string) (models.Customer, []RowError) {
	var errs []RowError
	fail := func(field, msg string) {
		errs = append(errs, RowError{Row: row, Field: field, Message: msg})
	}

	c := models.Customer{
		CustomerID:           strings.TrimSpace(rec[0]),
		Name:                 strings.TrimSpace(rec[1]),
		Email:                strings.TrimSpace(rec[2]),
		Segment:              strings.TrimSpace(rec[3]),
		Interests:            splitList(rec[4]),
		BuyingBehavior:       strings.TrimSpace(rec[7]),
		PreferredContactTime: strings.TrimSpace(rec[8]),
		PainPoints:           splitList(rec[9]),
	}

	if v, err := strconv.Atoi(strings.TrimSpace(rec[5])); err != nil {
		fail("engagement_score", "not an integer")
	} else {
		c.EngagementScore = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(rec[6]), 64); err != nil {
		fail("response_rate", "not a number")
	} else {
		c.ResponseRate = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(rec[10]), 64); err != nil {
		fail("lifetime_value", "not a number")
	} else {
		c.LifetimeValue = v
	}
	if v, err := parseDate(rec[11]); err != nil {
		fail("created_at", "not a date (want YYYY-MM-DD)")
	} else {
		c.CreatedAt = v
	}
	if s := strings.TrimSpace(rec[12]); s != "" {
		if v, err := parseDate(s); err != nil {
			fail("last_contact_date", "not a date (want YYYY-MM-DD)")
		} else {
			c.LastContactDate = v
		}
	}
	return c, errs
}

func parseOrder(row int, rec []string) (models.Order, []RowError) {
	var errs []RowError
	fail := func(field, msg string) {
		errs = append(errs, RowError{Row: row, Field: field, Message: msg})
	}

	o := models.Order{
		OrderID:         strings.TrimSpace(rec[0]),
		CustomerID:      strings.TrimSpace(rec[1]),
		ProductCategory: strings.TrimSpace(rec[3]),
		Channel:         strings.TrimSpace(rec[5]),
	}

	if v, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64); err != nil {
		fail("amount", "not a number")
	} else {
		o.Amount = v
	}
	if v, err := parseDate(rec[4]); err != nil {
		fail("order_date", "not a date (want YYYY-MM-DD)")
	} else {
		o.OrderDate = v
	}
	return o, errs
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, listSep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func joinList(items []string) string {
	return strings.Join(items, listSep)
}
