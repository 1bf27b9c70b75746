package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// ProductKind classifies a catalog product. Resolved once at catalog load so
// callers never have to compare category strings again.
type ProductKind int

const (
	ProductKindSandwich ProductKind = 0
	ProductKindDrink    ProductKind = 1
)

func (k ProductKind) String() string {
	names := [...]string{"sandwich", "drink"}
	if int(k) < 0 || int(k) >= len(names) {
		return "sandwich"
	}
	return names[k]
}

// ResolveProductKind maps a raw CMS category string to a ProductKind.
func ResolveProductKind(category string) ProductKind {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "drink", "drinks", "dranken":
		return ProductKindDrink
	}
	return ProductKindSandwich
}

func (k ProductKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *ProductKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = ProductKind(i)
		return nil
	}
	switch str {
	case "sandwich":
		*k = ProductKindSandwich
	case "drink":
		*k = ProductKindDrink
	}
	return nil
}

func (k ProductKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *ProductKind) Scan(value interface{}) error {
	if value == nil {
		*k = ProductKindSandwich
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = ProductKind(v)
	case int:
		*k = ProductKind(v)
	}
	return nil
}
