// Package serialize 负责将上游响应格式化后返回给客户端
package serialize

import (
	"bytes"
	"encoding/json"
)

const indent = "  "

// Indent 以两个空格缩进JSON, 保留字段顺序和数字原文
func Indent(data []byte) (string, error) {
	var buf bytes.Buffer
	buf.Grow(len(data) + len(data)/4)
	if err := json.Indent(&buf, bytes.TrimSpace(data), "", indent); err != nil {
		return "", err
	}

	return buf.String(), nil
}
