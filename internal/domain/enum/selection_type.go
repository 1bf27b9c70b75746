package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SelectionType represents how the customer composed the order
type SelectionType int

const (
	SelectionTypeCustom  SelectionType = 0
	SelectionTypeVariety SelectionType = 1
)

func (t SelectionType) String() string {
	names := [...]string{"custom", "variety"}
	if int(t) < 0 || int(t) >= len(names) {
		return "custom"
	}
	return names[t]
}

func (t SelectionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *SelectionType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = SelectionType(i)
		return nil
	}
	switch str {
	case "custom":
		*t = SelectionTypeCustom
	case "variety":
		*t = SelectionTypeVariety
	}
	return nil
}

func (t SelectionType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *SelectionType) Scan(value interface{}) error {
	if value == nil {
		*t = SelectionTypeCustom
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = SelectionType(v)
	case int:
		*t = SelectionType(v)
	}
	return nil
}
