package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lunchlokaal/catering-api/internal/domain/entity"
	"github.com/lunchlokaal/catering-api/internal/domain/enum"
	"github.com/lunchlokaal/catering-api/pkg/utils"
)

// Client reads the product and drink catalogs from the headless CMS. It is
// strictly read-only.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// NewClient creates a new CMS client with a bounded request timeout.
func NewClient(baseURL, apiToken string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:  baseURL,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// cmsProduct mirrors the CMS product document.
type cmsProduct struct {
	ID              string      `json:"_id"`
	Name            string      `json:"name"`
	Price           float64     `json:"price"` // VAT-inclusive
	Category        string      `json:"category"`
	Position        int         `json:"position"`
	HasSauceOptions bool        `json:"hasSauceOptions"`
	SauceOptions    []cmsOption `json:"sauceOptions"`
	HasToppings     bool        `json:"hasToppings"`
	ToppingOptions  []cmsOption `json:"toppingOptions"`
}

type cmsOption struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// cmsDrink mirrors the CMS drink document.
type cmsDrink struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Price       float64 `json:"price"` // VAT-exclusive
	Description string  `json:"description"`
	Position    int     `json:"position"`
}

// FetchProducts retrieves the full product catalog. The product kind is
// resolved from the raw category string here, once, so the rest of the
// application never compares category strings.
func (c *Client) FetchProducts(ctx context.Context) ([]entity.Product, error) {
	var docs []cmsProduct
	if err := c.get(ctx, "/products", &docs); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	products := make([]entity.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, entity.Product{
			ID:              doc.ID,
			Name:            doc.Name,
			Kind:            enum.ResolveProductKind(doc.Category),
			Category:        doc.Category,
			PriceInclVAT:    doc.Price,
			Position:        doc.Position,
			HasSauceOptions: doc.HasSauceOptions,
			SauceOptions:    toPriceOptions(doc.SauceOptions),
			HasToppings:     doc.HasToppings,
			ToppingOptions:  toPriceOptions(doc.ToppingOptions),
		})
	}
	return products, nil
}

// FetchDrinks retrieves the drink catalog. Drinks without a slug get one
// derived from their name so order payloads can always reference them.
func (c *Client) FetchDrinks(ctx context.Context) ([]entity.Drink, error) {
	var docs []cmsDrink
	if err := c.get(ctx, "/drinks", &docs); err != nil {
		return nil, fmt.Errorf("fetch drinks: %w", err)
	}

	drinks := make([]entity.Drink, 0, len(docs))
	for _, doc := range docs {
		slug := doc.Slug
		if slug == "" {
			slug = utils.Slugify(doc.Name)
		}
		drinks = append(drinks, entity.Drink{
			ID:           doc.ID,
			Name:         doc.Name,
			Slug:         slug,
			PriceExclVAT: doc.Price,
			Description:  doc.Description,
			Position:     doc.Position,
		})
	}
	return drinks, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cms returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func toPriceOptions(options []cmsOption) []entity.PriceOption {
	if len(options) == 0 {
		return nil
	}
	result := make([]entity.PriceOption, 0, len(options))
	for _, o := range options {
		result = append(result, entity.PriceOption{Name: o.Name, Price: o.Price})
	}
	return result
}
