// Package catalog is the normalization boundary between the backend's
// loosely shaped JSON records and the strict domain types the rest of the
// app consumes. Every product or category coming off the wire passes
// through here exactly once; nothing downstream ever sees a raw record.
package catalog

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/smartg5/storefront/internal/domain"
)

// Fallback values for records missing required display fields. A malformed
// record renders with placeholders; it never crashes a screen.
const (
	FallbackProductName  = "Product"
	FallbackCategoryName = "Category"
)

// RawProduct is the single wire shape for product records. Field pairs
// (name/title, image/main_image, ...) reflect endpoints that disagree on
// field names.
type RawProduct struct {
	ID            FlexString `json:"id"`
	Name          string     `json:"name"`
	Title         string     `json:"title"`
	Price         FlexNumber `json:"price"`
	OfferPrice    FlexNumber `json:"offer_price"`
	MainImage     string     `json:"main_image"`
	Image         string     `json:"image"`
	GalleryImages string     `json:"gallery_images"`
	Category      string     `json:"category"`
	CategoryName  string     `json:"category_name"`
	CategoryID    FlexString `json:"category_id"`
	Slug          string     `json:"slug"`
	SKU           string     `json:"sku"`
	Description   string     `json:"description"`
	Desc          string     `json:"desc"`
	Brand         string     `json:"brand"`
	Model         string     `json:"model"`
	Rating        FlexNumber `json:"rating"`
	ReviewRating  FlexNumber `json:"review_rating"`
	FastDelivery  *FlexBool  `json:"fast_delivery"`
	InStock       *FlexBool  `json:"in_stock"`
	StockQuantity FlexNumber `json:"stock_quantity"`
	IsNew         *FlexBool  `json:"is_new"`
	IsSale        *FlexBool  `json:"is_sale"`
}

// RawCategory is the single wire shape for category records. Products may
// be nested (some endpoints embed them) or absent.
type RawCategory struct {
	ID           FlexString   `json:"id"`
	Name         string       `json:"name"`
	Title        string       `json:"title"`
	Slug         string       `json:"slug"`
	Image        string       `json:"image"`
	Description  string       `json:"description"`
	ProductCount int          `json:"product_count"`
	Products     []RawProduct `json:"products"`
}

// Normalizer converts raw API records into domain types. It carries the
// asset origin used to absolutize the relative image paths the API returns.
type Normalizer struct {
	assetBaseURL string
}

// NewNormalizer creates a Normalizer. assetBaseURL is the origin prefixed
// to relative image paths (e.g., "https://smartg5.com").
func NewNormalizer(assetBaseURL string) *Normalizer {
	return &Normalizer{assetBaseURL: strings.TrimRight(assetBaseURL, "/")}
}

// Product normalizes one raw record into a domain.Product.
//
// Defensive defaults per the storefront contract: missing name falls back
// to "Product", missing price to 0, missing image to empty (placeholder),
// missing identity to a generated ID so list rendering stays keyed. An
// offer price at or above the base price is cleared: it is not a discount,
// and keeping it would make the effective price exceed the list price.
func (n *Normalizer) Product(raw RawProduct) domain.Product {
	priceCents := Cents(float64(raw.Price))
	offerCents := Cents(float64(raw.OfferPrice))
	if offerCents >= priceCents {
		offerCents = 0
	}

	mainImage := n.ImageURL(firstNonEmpty(raw.MainImage, raw.Image))
	images := n.GalleryImages(raw.GalleryImages)
	if len(images) == 0 && mainImage != "" {
		images = []string{mainImage}
	}

	rating := float64(raw.Rating)
	if rating == 0 {
		rating = float64(raw.ReviewRating)
	}

	id := strings.TrimSpace(string(raw.ID))
	if id == "" {
		id = uuid.NewString()
	}

	return domain.Product{
		ID:              id,
		Name:            firstNonEmpty(raw.Name, raw.Title, FallbackProductName),
		Description:     firstNonEmpty(raw.Description, raw.Desc),
		Slug:            raw.Slug,
		SKU:             raw.SKU,
		Brand:           raw.Brand,
		Model:           raw.Model,
		Category:        firstNonEmpty(raw.Category, raw.CategoryName),
		CategoryID:      string(raw.CategoryID),
		PriceCents:      priceCents,
		OfferPriceCents: offerCents,
		Image:           mainImage,
		Images:          images,
		Rating:          rating,
		FastDelivery:    boolOr(raw.FastDelivery, true),
		InStock:         boolOr(raw.InStock, true),
		StockQuantity:   int64(raw.StockQuantity),
		IsNew:           boolOr(raw.IsNew, false),
		IsSale:          boolOr(raw.IsSale, false),
	}
}

// Products normalizes a slice of raw records, preserving order.
func (n *Normalizer) Products(raws []RawProduct) []domain.Product {
	out := make([]domain.Product, 0, len(raws))
	for _, raw := range raws {
		out = append(out, n.Product(raw))
	}
	return out
}

// Category normalizes one raw category, including any nested products.
func (n *Normalizer) Category(raw RawCategory) domain.Category {
	id := strings.TrimSpace(string(raw.ID))
	if id == "" {
		id = uuid.NewString()
	}

	products := n.Products(raw.Products)

	count := raw.ProductCount
	if len(products) > 0 {
		count = len(products)
	}

	return domain.Category{
		ID:           id,
		Name:         firstNonEmpty(raw.Name, raw.Title, FallbackCategoryName),
		Slug:         raw.Slug,
		Image:        n.ImageURL(raw.Image),
		Description:  raw.Description,
		ProductCount: count,
		Products:     products,
	}
}

// Categories normalizes a slice of raw categories, preserving order.
func (n *Normalizer) Categories(raws []RawCategory) []domain.Category {
	out := make([]domain.Category, 0, len(raws))
	for _, raw := range raws {
		out = append(out, n.Category(raw))
	}
	return out
}

// ImageURL turns an API image path into an absolute URL. Already-absolute
// URLs pass through unchanged; embedded-JSON escapes (`\/`) are unescaped;
// empty and literal "null"/"undefined" placeholders yield "".
func (n *Normalizer) ImageURL(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == "null" || path == "undefined" {
		return ""
	}
	path = strings.ReplaceAll(path, `\/`, "/")
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return n.assetBaseURL + "/" + strings.TrimLeft(path, "/")
}

// GalleryImages parses the string-encoded gallery field: a JSON array of
// image paths serialized into a string, often with escaped slashes. Any
// parse failure yields an empty list, never an error.
func (n *Normalizer) GalleryImages(gallery string) []string {
	gallery = strings.TrimSpace(gallery)
	if gallery == "" {
		return nil
	}

	cleaned := strings.ReplaceAll(gallery, `\/`, "/")
	var paths []string
	if err := json.Unmarshal([]byte(cleaned), &paths); err != nil {
		return nil
	}

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if u := n.ImageURL(p); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// Cents converts a float price in major units to integer cents.
func Cents(v float64) int64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int64(math.Round(v * 100))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func boolOr(b *FlexBool, def bool) bool {
	if b == nil {
		return def
	}
	return bool(*b)
}
