package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// OrderStatus represents the lifecycle of a table order
type OrderStatus int

const (
	OrderStatusOpen      OrderStatus = 0
	OrderStatusBilled    OrderStatus = 1
	OrderStatusPaid      OrderStatus = 2
	OrderStatusCancelled OrderStatus = 3
)

func (s OrderStatus) String() string {
	names := [...]string{"Open", "Billed", "Paid", "Cancelled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Open"
	}
	return names[s]
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	switch str {
	case "Open":
		*s = OrderStatusOpen
	case "Billed":
		*s = OrderStatusBilled
	case "Paid":
		*s = OrderStatusPaid
	case "Cancelled":
		*s = OrderStatusCancelled
	}
	return nil
}

// ParseOrderStatus converts a query string value to an OrderStatus
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch strings.ToLower(s) {
	case "open":
		return OrderStatusOpen, nil
	case "billed":
		return OrderStatusBilled, nil
	case "paid":
		return OrderStatusPaid, nil
	case "cancelled":
		return OrderStatusCancelled, nil
	}
	return OrderStatusOpen, fmt.Errorf("unknown order status %q", s)
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
