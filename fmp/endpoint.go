package fmp

import (
	"net/url"
	"strconv"
	"strings"
)

// endpoint 按添加顺序拼接查询参数, 保证同一调用生成的路径固定
type endpoint struct {
	b      strings.Builder
	hasArg bool
}

func newEndpoint(path string, segments ...string) *endpoint {
	e := &endpoint{}
	e.b.WriteString(path)
	for _, seg := range segments {
		e.b.WriteByte('/')
		e.b.WriteString(url.PathEscape(seg))
	}

	return e
}

func (e *endpoint) set(key, value string) *endpoint {
	if e.hasArg {
		e.b.WriteByte('&')
	} else {
		e.b.WriteByte('?')
		e.hasArg = true
	}
	e.b.WriteString(key)
	e.b.WriteByte('=')
	e.b.WriteString(escapeQuery(value))

	return e
}

// setOptional 空值不生成参数
func (e *endpoint) setOptional(key, value string) *endpoint {
	if value == "" {
		return e
	}

	return e.set(key, value)
}

func (e *endpoint) setNumber(key string, value float64) *endpoint {
	return e.set(key, formatNumber(value))
}

func (e *endpoint) String() string {
	return e.b.String()
}

// escapeQuery 空格编码为 %20, 与 encodeURIComponent 一致
func escapeQuery(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}

// formatNumber 最短十进制表示, 5 而不是 5.000000
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// normalizeSymbol 股票代码统一大写
func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
