package types

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Money số tiền dạng decimal. Khi đọc JSON chấp nhận số, chuỗi số
// hoặc {"$numberDecimal": "..."} (Decimal128 của Mongo), luôn parse từ text.
// Khi ghi JSON là số với 2 chữ số thập phân.
type Money struct {
	decimal.Decimal
}

// NewMoney bọc một decimal
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// ParseMoney parse số tiền từ chuỗi
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{Decimal: d}, nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		m.Decimal = decimal.Zero
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseMoney(s)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case data[0] == '{':
		var wrapped struct {
			Value *string `json:"$numberDecimal"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return err
		}
		if wrapped.Value == nil {
			return fmt.Errorf("invalid amount %s", data)
		}
		parsed, err := ParseMoney(*wrapped.Value)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}
	parsed, err := ParseMoney(string(data))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
