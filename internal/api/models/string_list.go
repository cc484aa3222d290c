package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a JSON-serialized list column, usable on both postgres and
// sqlite.
type StringList []string

func (slf StringList) Value() (driver.Value, error) {
	if slf == nil {
		slf = StringList{}
	}
	data, err := json.Marshal(slf)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (slf *StringList) Scan(value interface{}) error {
	if value == nil {
		*slf = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, slf)
	case string:
		return json.Unmarshal([]byte(v), slf)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
}
