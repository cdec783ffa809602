// Package export encodes the product inventory as flat files and reads them
// back. Three formats are supported:
//
//	txt   one product per line, tab separated id, name, quantity, price; no header
//	      and no quoting, so names may not contain tabs or line breaks
//	json  an array of {"id","name","quantity","price"} objects
//	csv   comma separated with the header id,name,quantity,price
//
// Products are written in the order given, which callers keep as insertion
// (id) order.
package export

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/solidarias/internal/common"
	"github.com/dmitrijs2005/solidarias/internal/models"
)

type Format string

const (
	FormatTXT  Format = "txt"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// Formats lists every supported format.
var Formats = []Format{FormatTXT, FormatJSON, FormatCSV}

var csvHeader = []string{"id", "name", "quantity", "price"}

// ParseFormat validates s as a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTXT, FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("%w: unsupported export format %q", common.ErrorValidation, s)
}

// FileName returns the file the format is saved under.
func (f Format) FileName() string {
	return "products." + string(f)
}

// ContentType returns the media type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Encode renders products in format f.
func Encode(f Format, products []*models.Product) ([]byte, error) {
	var buf bytes.Buffer

	switch f {
	case FormatJSON:
		if products == nil {
			products = []*models.Product{}
		}
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(products); err != nil {
			return nil, fmt.Errorf("json encode error: %w", err)
		}
	case FormatCSV:
		if err := writeRecords(&buf, ',', csvHeader, products); err != nil {
			return nil, err
		}
	case FormatTXT:
		if err := writeLines(&buf, products); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q", common.ErrorValidation, f)
	}

	return buf.Bytes(), nil
}

// Decode parses data written by Encode in format f.
func Decode(f Format, data []byte) ([]*models.Product, error) {
	switch f {
	case FormatJSON:
		products := make([]*models.Product, 0)
		if err := json.Unmarshal(data, &products); err != nil {
			return nil, fmt.Errorf("json decode error: %w", err)
		}
		return products, nil
	case FormatCSV:
		return readRecords(bytes.NewReader(data), ',', true)
	case FormatTXT:
		return readLines(bytes.NewReader(data))
	}
	return nil, fmt.Errorf("%w: unsupported export format %q", common.ErrorValidation, f)
}

func writeLines(w io.Writer, products []*models.Product) error {
	for _, p := range products {
		if strings.ContainsAny(p.Name, "\t\r\n") {
			return fmt.Errorf("%w: product %d: name contains a tab or line break", common.ErrorValidation, p.ID)
		}
		_, err := fmt.Fprintf(w, "%d\t%s\t%d\t%s\n",
			p.ID, p.Name, p.Quantity, strconv.FormatFloat(p.Price, 'f', -1, 64))
		if err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}
	return nil
}

func readLines(r io.Reader) ([]*models.Product, error) {
	products := make([]*models.Product, 0)
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			continue
		}
		rec := strings.Split(line, "\t")
		if len(rec) != len(csvHeader) {
			return nil, fmt.Errorf("%w: line %d: want %d fields, got %d", common.ErrorValidation, n, len(csvHeader), len(rec))
		}
		p, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", common.ErrorValidation, n, err)
		}
		products = append(products, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}
	return products, nil
}

func writeRecords(w io.Writer, comma rune, header []string, products []*models.Product) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	if header != nil {
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}
	for _, p := range products {
		record := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			strconv.Itoa(p.Quantity),
			strconv.FormatFloat(p.Price, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}

func readRecords(r io.Reader, comma rune, hasHeader bool) ([]*models.Product, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	if hasHeader && len(records) > 0 {
		records = records[1:]
	}

	products := make([]*models.Product, 0, len(records))
	for i, rec := range records {
		p, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", common.ErrorValidation, i+1, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func parseRecord(rec []string) (*models.Product, error) {
	id, err := strconv.ParseInt(rec[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	quantity, err := strconv.Atoi(rec[2])
	if err != nil {
		return nil, fmt.Errorf("quantity: %w", err)
	}
	price, err := strconv.ParseFloat(rec[3], 64)
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	return &models.Product{ID: id, Name: rec[1], Quantity: quantity, Price: price}, nil
}
