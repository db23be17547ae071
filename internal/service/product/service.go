package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"bdshop/internal/domain"
	"bdshop/internal/logging"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// exportPageSize is the batch size ListAll reads with.
const exportPageSize = 500

// ErrImagesUnavailable is returned when no image store is configured.
var ErrImagesUnavailable = errors.New("image uploads unavailable")

type productRepo interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Save(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, delta int) (*domain.Product, error)
}

type categoryLookup interface {
	GetByKey(ctx context.Context, key string) (*domain.Category, error)
}

// ImageStore uploads a product image and returns its public URL.
type ImageStore interface {
	Upload(ctx context.Context, productID, filename, contentType string, body io.Reader) (string, error)
}

type Service struct {
	repo       productRepo
	categories categoryLookup
	images     ImageStore
	logger     zerolog.Logger
}

func New(repo productRepo, categories categoryLookup, images ImageStore, logger *zerolog.Logger) *Service {
	return &Service{repo: repo, categories: categories, images: images, logger: logging.OrNop(logger)}
}

// Input is the editable part of a product as the admin form submits it.
type Input struct {
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	ImageURL        string          `json:"imageUrl"`
	Images          []string        `json:"images"`
	Category        string          `json:"category"`
	Discount        int             `json:"discount"`
	StockCount      int             `json:"stockCount"`
	Description     string          `json:"description"`
	LongDescription string          `json:"longDescription"`
	SEODescription  string          `json:"seoDescription"`
	Status          string          `json:"status"`
}

// List returns a page of products for the admin, hidden ones included.
func (s *Service) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int, error) {
	return s.repo.List(ctx, normalizeFilter(f))
}

// ListPublic returns a page of storefront-visible products.
func (s *Service) ListPublic(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int, error) {
	f.Status = domain.ProductActive
	return s.repo.List(ctx, normalizeFilter(f))
}

// ListAll returns every product matching f for exports, reading the catalog
// in batches.
func (s *Service) ListAll(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	f.Limit = exportPageSize
	all := []domain.Product{}
	for f.Offset = 0; ; f.Offset += exportPageSize {
		batch, total, err := s.repo.List(ctx, f)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < exportPageSize || len(all) >= total {
			return all, nil
		}
	}
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// GetPublic hides products that are not visible on the storefront.
func (s *Service) GetPublic(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Visible() {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Product, error) {
	p, err := s.fromInput(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, p)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Product, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	p, err := s.fromInput(ctx, in)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return s.repo.Save(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// AdjustStock adds delta (which may be negative) to the stock count.
func (s *Service) AdjustStock(ctx context.Context, id string, delta int) (*domain.Product, error) {
	if delta == 0 {
		return nil, domain.Invalid("delta must not be zero")
	}
	return s.repo.AdjustStock(ctx, id, delta)
}

// Upload is one image file posted by the admin.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// AddImages uploads files and attaches their URLs to the product. The first
// image fills the primary slot when it is empty; the rest go to the gallery.
// Files that fail to upload are reported by name and skipped.
func (s *Service) AddImages(ctx context.Context, id string, uploads []Upload) (*domain.Product, []string, error) {
	if s.images == nil {
		return nil, nil, ErrImagesUnavailable
	}
	if len(uploads) == 0 {
		return nil, nil, domain.Invalid("no files uploaded")
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	free := domain.MaxExtraImages - len(p.Images)
	if p.ImageURL == "" {
		free++
	}
	if len(uploads) > free {
		return nil, nil, domain.Invalid(fmt.Sprintf("at most %d more images allowed", free))
	}

	var failed []string
	for _, u := range uploads {
		url, err := s.images.Upload(ctx, p.ID, u.Filename, u.ContentType, u.Body)
		if err != nil {
			s.logger.Warn().Err(err).Str("product_id", p.ID).Str("file", u.Filename).Msg("product service: image upload failed")
			failed = append(failed, u.Filename)
			continue
		}
		if p.ImageURL == "" {
			p.ImageURL = url
		} else {
			p.Images = append(p.Images, url)
		}
	}
	if len(failed) == len(uploads) {
		return nil, failed, errors.New("all uploads failed")
	}

	saved, err := s.repo.Save(ctx, *p)
	if err != nil {
		return nil, failed, err
	}
	return saved, failed, nil
}

func (s *Service) fromInput(ctx context.Context, in Input) (domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Product{}, domain.Invalid("name required")
	}
	if in.Price.IsNegative() {
		return domain.Product{}, domain.Invalid("price must not be negative")
	}
	if in.Discount < 0 || in.Discount > 100 {
		return domain.Product{}, domain.Invalid("discount must be between 0 and 100")
	}
	if in.StockCount < 0 {
		return domain.Product{}, domain.Invalid("stock count must not be negative")
	}
	images := cleanImages(in.Images)
	if len(images) > domain.MaxExtraImages {
		return domain.Product{}, domain.Invalid(fmt.Sprintf("at most %d additional images allowed", domain.MaxExtraImages))
	}
	status := domain.ProductActive
	if st := strings.ToLower(strings.TrimSpace(in.Status)); st != "" {
		switch domain.ProductStatus(st) {
		case domain.ProductActive, domain.ProductHidden:
			status = domain.ProductStatus(st)
		default:
			return domain.Product{}, domain.Invalid("status must be active or hidden")
		}
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return domain.Product{}, domain.Invalid("category required")
	}
	if s.categories != nil {
		if _, err := s.categories.GetByKey(ctx, category); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.Product{}, domain.Invalid(fmt.Sprintf("unknown category %q", category))
			}
			return domain.Product{}, err
		}
	}

	return domain.Product{
		Name:            name,
		PricePoisha:     domain.PoishaFromTaka(in.Price),
		ImageURL:        strings.TrimSpace(in.ImageURL),
		Images:          images,
		Category:        category,
		Discount:        in.Discount,
		StockCount:      in.StockCount,
		Description:     strings.TrimSpace(in.Description),
		LongDescription: strings.TrimSpace(in.LongDescription),
		SEODescription:  strings.TrimSpace(in.SEODescription),
		Status:          status,
	}, nil
}

func cleanImages(in []string) []string {
	out := make([]string, 0, len(in))
	for _, u := range in {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func normalizeFilter(f domain.ProductFilter) domain.ProductFilter {
	f.Limit, f.Offset = domain.PageBounds(f.Limit, f.Offset)
	switch f.Sort {
	case domain.SortNewest, domain.SortPriceAsc, domain.SortPriceDesc, domain.SortDiscount, domain.SortName:
	default:
		f.Sort = domain.SortNewest
	}
	f.Category = strings.TrimSpace(f.Category)
	f.Query = strings.TrimSpace(f.Query)
	return f
}
