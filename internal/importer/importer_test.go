package importer

import (
	"context"
	"strings"
	"testing"

	"bdshop/internal/domain"
)

type stubProductRepo struct {
	items []domain.Product
}

type stubCategoryRepo struct {
	items []domain.Category
}

func (s *stubProductRepo) Save(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.items = append(s.items, p)
	return &p, nil
}

func (s *stubCategoryRepo) GetByKey(_ context.Context, key string) (*domain.Category, error) {
	for _, c := range s.items {
		if c.Key == key {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCategoryRepo) Upsert(_ context.Context, c domain.Category) (*domain.Category, error) {
	s.items = append(s.items, c)
	return &c, nil
}

func TestCSVImporter_RunProducts(t *testing.T) {
	csvData := `id,name,price,category,discount,stock,image_url,description
00000000-0000-0000-0000-000000000001,Premium Baby Stroller,12500,baby,20,12,https://example.com/s1.jpg,Foldable
,,,,,,https://example.com/s2.jpg,
,,,,,,https://example.com/s3.jpg,
,Wireless Earbuds,3500.50,electronics,25,30,,
`
	repo := &stubProductRepo{}
	catRepo := &stubCategoryRepo{items: []domain.Category{{Key: "baby", Name: "Baby Items", NameBn: "বেবি আইটেম"}}}
	imp := NewCSVImporter(strings.NewReader(csvData), repo, catRepo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 || len(repo.items) != 2 {
		t.Fatalf("expected 2 products imported, got %d (%d saved)", count, len(repo.items))
	}

	first := repo.items[0]
	if first.ID != "00000000-0000-0000-0000-000000000001" {
		t.Fatalf("expected id to be preserved, got %s", first.ID)
	}
	if first.PricePoisha != 1250000 || first.Discount != 20 || first.StockCount != 12 || first.Category != "baby" {
		t.Fatalf("unexpected product data: %+v", first)
	}
	if first.ImageURL != "https://example.com/s1.jpg" || len(first.Images) != 2 {
		t.Fatalf("expected primary plus 2 extra images, got %q %v", first.ImageURL, first.Images)
	}
	if repo.items[1].PricePoisha != 350050 || repo.items[1].ID != "" {
		t.Fatalf("unexpected second product %+v", repo.items[1])
	}
	if len(catRepo.items) != 2 || catRepo.items[1].Name != "Electronics" {
		t.Fatalf("expected missing category created, got %+v", catRepo.items)
	}
	if catRepo.items[0].NameBn != "বেবি আইটেম" {
		t.Fatalf("existing category must be left untouched, got %+v", catRepo.items[0])
	}
}

func TestCSVImporter_RejectsBadRows(t *testing.T) {
	cases := map[string]string{
		"price":    "name,price,category\nShirt,abc,men\n",
		"discount": "name,price,category,discount\nShirt,100,men,120\n",
		"category": "name,price,category\nShirt,100,\n",
		"slug":     "name,price,category\nRattle,100,kids & baby\n",
		"images":   "name,price,category,image_url\nShirt,100,men,a\n,,,b\n,,,c\n,,,d\n,,,e\n,,,f\n",
	}
	for name, data := range cases {
		imp := NewCSVImporter(strings.NewReader(data), &stubProductRepo{}, nil)
		if _, err := imp.Run(context.Background()); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestCSVImporter_RunCategories(t *testing.T) {
	csvData := `key,name,name_bn,sort_order
baby,Baby Items,বেবি আইটেম,1
home-decor,,,6
,Orphan,,
`
	catRepo := &stubCategoryRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), nil, catRepo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 categories imported, got %d", count)
	}
	if catRepo.items[0].NameBn != "বেবি আইটেম" || catRepo.items[0].SortOrder != 1 {
		t.Fatalf("unexpected first category %+v", catRepo.items[0])
	}
	if catRepo.items[1].Name != "Home Decor" {
		t.Fatalf("expected title-cased fallback name, got %q", catRepo.items[1].Name)
	}
}

func TestCSVImporter_RejectsInvalidCategoryKey(t *testing.T) {
	catRepo := &stubCategoryRepo{}
	imp := NewCSVImporter(strings.NewReader("key,name\nKids & Baby,Kids\n"), nil, catRepo)
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected error for non-slug key")
	}
	if len(catRepo.items) != 0 {
		t.Fatalf("invalid category must not be written, got %+v", catRepo.items)
	}
}

func TestDetectKind(t *testing.T) {
	kind, err := DetectKind(strings.NewReader("name,price,category\nShirt,100,men"))
	if err != nil || kind != KindProducts {
		t.Fatalf("expected product kind, got %s %v", kind, err)
	}
	kind, err = DetectKind(strings.NewReader("key,name,name_bn\nbaby,Baby,"))
	if err != nil || kind != KindCategories {
		t.Fatalf("expected category kind, got %s %v", kind, err)
	}
	if _, err := DetectKind(strings.NewReader("foo,bar\n1,2")); err == nil {
		t.Fatalf("expected error for unknown header")
	}
}
