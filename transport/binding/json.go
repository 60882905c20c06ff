package binding

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

type JsonBinding struct{}

// Bind 空参数或 null 不修改 obj
func (j JsonBinding) Bind(data []byte, obj any) error {
	if obj == nil {
		return errors.New("bind json error: obj is nil")
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if err := json.Unmarshal(data, obj); err != nil {
		return fmt.Errorf("bind json error: %w", err)
	}

	return nil
}

func (j JsonBinding) Name() string {
	return "json"
}
