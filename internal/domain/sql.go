package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderReasoning is stored as a JSONB column.

func (r OrderReasoning) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *OrderReasoning) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	case nil:
		*r = OrderReasoning{}
		return nil
	default:
		return fmt.Errorf("unsupported type for OrderReasoning: %T", src)
	}
}
