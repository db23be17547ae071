// Package importer bulk-loads products and categories from CSV files.
package importer

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bdshop/internal/domain"
	"github.com/shopspring/decimal"
)

type ProductWriter interface {
	Save(ctx context.Context, p domain.Product) (*domain.Product, error)
}

type CategoryWriter interface {
	GetByKey(ctx context.Context, key string) (*domain.Category, error)
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}

// Kind tells which entity a CSV file holds.
type Kind string

const (
	KindProducts   Kind = "products"
	KindCategories Kind = "categories"
)

// DetectKind inspects the header line.
func DetectKind(r io.Reader) (Kind, error) {
	headers, err := csv.NewReader(bufio.NewReader(r)).Read()
	if err != nil {
		return "", fmt.Errorf("read headers: %w", err)
	}
	idx := headerIndex(headers)
	if _, ok := idx["price"]; ok {
		return KindProducts, nil
	}
	if _, ok := idx["key"]; ok {
		return KindCategories, nil
	}
	return "", errors.New("unrecognized csv: expected a price or key column")
}

// CSVImporter reads product or category rows and upserts them.
type CSVImporter struct {
	reader     *csv.Reader
	products   ProductWriter
	categories CategoryWriter
	known      map[string]bool
}

func NewCSVImporter(r io.Reader, products ProductWriter, categories CategoryWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{reader: csvr, products: products, categories: categories, known: map[string]bool{}}
}

// Run imports every row and returns the number of entities written.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["price"]; ok {
		return i.runProducts(ctx, index)
	}
	if _, ok := index["key"]; ok {
		return i.runCategories(ctx, index)
	}
	return 0, errors.New("unrecognized csv: expected a price or key column")
}

func (i *CSVImporter) runProducts(ctx context.Context, index map[string]int) (int, error) {
	if i.products == nil {
		return 0, errors.New("product writer required")
	}
	var current *domain.Product
	imported, line := 0, 1
	flush := func() error {
		if current == nil {
			return nil
		}
		if err := i.saveProduct(ctx, current); err != nil {
			return err
		}
		imported++
		return nil
	}

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		name := pick(record, index, "name")
		imageURL := pick(record, index, "image_url")
		if name == "" {
			// Continuation rows (images) belong to the current product.
			if current != nil && imageURL != "" {
				current.Images = append(current.Images, imageURL)
			}
			continue
		}

		if err := flush(); err != nil {
			return imported, err
		}
		p, err := parseProduct(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		current = p
	}
	if err := flush(); err != nil {
		return imported, err
	}
	return imported, nil
}

func (i *CSVImporter) saveProduct(ctx context.Context, p *domain.Product) error {
	if len(p.Images) > domain.MaxExtraImages {
		return fmt.Errorf("product %q has %d extra images, at most %d allowed", p.Name, len(p.Images), domain.MaxExtraImages)
	}
	if err := i.ensureCategory(ctx, p.Category); err != nil {
		return err
	}
	if _, err := i.products.Save(ctx, *p); err != nil {
		return fmt.Errorf("save product %q: %w", p.Name, err)
	}
	return nil
}

// ensureCategory creates a placeholder category for unknown keys and leaves
// existing ones untouched.
func (i *CSVImporter) ensureCategory(ctx context.Context, key string) error {
	if i.categories == nil || i.known[key] {
		return nil
	}
	_, err := i.categories.GetByKey(ctx, key)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		if _, err := i.categories.Upsert(ctx, domain.Category{Key: key, Name: titleCase(key)}); err != nil {
			return fmt.Errorf("create category %q: %w", key, err)
		}
	default:
		return fmt.Errorf("lookup category %q: %w", key, err)
	}
	i.known[key] = true
	return nil
}

func parseProduct(record []string, index map[string]int) (*domain.Product, error) {
	name := pick(record, index, "name")
	price, err := decimal.NewFromString(pick(record, index, "price"))
	if err != nil || price.IsNegative() {
		return nil, fmt.Errorf("invalid price for %q", name)
	}
	category := strings.ToLower(pick(record, index, "category"))
	if category == "" {
		return nil, fmt.Errorf("missing category for %q", name)
	}
	if !domain.ValidCategoryKey(category) {
		return nil, fmt.Errorf("category %q for %q is not a lowercase slug", category, name)
	}
	discount, err := intField(record, index, "discount")
	if err != nil || discount < 0 || discount > 100 {
		return nil, fmt.Errorf("invalid discount for %q", name)
	}
	stock, err := intField(record, index, "stock")
	if err != nil || stock < 0 {
		return nil, fmt.Errorf("invalid stock for %q", name)
	}
	id := pick(record, index, "id")
	if id != "" && len(id) != 36 {
		return nil, fmt.Errorf("invalid id for %q: %s", name, id)
	}
	status := domain.ProductActive
	if pick(record, index, "status") == string(domain.ProductHidden) {
		status = domain.ProductHidden
	}
	return &domain.Product{
		ID:              id,
		Name:            name,
		PricePoisha:     domain.PoishaFromTaka(price),
		ImageURL:        pick(record, index, "image_url"),
		Category:        category,
		Discount:        discount,
		StockCount:      stock,
		Description:     pick(record, index, "description"),
		LongDescription: pick(record, index, "long_description"),
		SEODescription:  pick(record, index, "seo_description"),
		Status:          status,
	}, nil
}

func (i *CSVImporter) runCategories(ctx context.Context, index map[string]int) (int, error) {
	if i.categories == nil {
		return 0, errors.New("category writer required")
	}
	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		key := strings.ToLower(pick(record, index, "key"))
		if key == "" {
			continue
		}
		if !domain.ValidCategoryKey(key) {
			return imported, fmt.Errorf("category key %q is not a lowercase slug", key)
		}
		name := pick(record, index, "name")
		if name == "" {
			name = titleCase(key)
		}
		order, _ := intField(record, index, "sort_order")
		c := domain.Category{Key: key, Name: name, NameBn: pick(record, index, "name_bn"), SortOrder: order}
		if _, err := i.categories.Upsert(ctx, c); err != nil {
			return imported, fmt.Errorf("upsert category %q: %w", key, err)
		}
		imported++
	}
	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func intField(record []string, index map[string]int, key string) (int, error) {
	raw := pick(record, index, key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func titleCase(key string) string {
	parts := strings.FieldsFunc(key, func(r rune) bool { return r == '-' || r == '_' })
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
