package fmp

import (
	"github.com/google/jsonschema-go/jsonschema"
)

var (
	periods    = []any{"annual", "quarter"}
	timeframes = []any{"1min", "5min", "15min", "30min", "1hour", "4hour", "1day"}
	intervals  = []any{"1min", "5min", "15min", "30min", "1hour", "4hour"}
)

type property struct {
	name   string
	schema *jsonschema.Schema
}

func objectSchema(required []string, props ...property) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(props)),
		Required:   required,
	}
	for _, p := range props {
		s.Properties[p.name] = p.schema
	}

	// 必填字符串不能为空, 否则会拼出 symbol= 这样的请求
	for _, name := range required {
		if p, ok := s.Properties[name]; ok && p.Type == "string" {
			one := 1
			p.MinLength = &one
		}
	}

	return s
}

func stringProp(name, description string) property {
	return property{name: name, schema: &jsonschema.Schema{Type: "string", Description: description}}
}

func numberProp(name, description string) property {
	return property{name: name, schema: &jsonschema.Schema{Type: "number", Description: description}}
}

func enumProp(name, description string, values []any) property {
	return property{name: name, schema: &jsonschema.Schema{Type: "string", Description: description, Enum: values}}
}

func symbolProp(description string) property {
	return stringProp("symbol", description)
}

func periodProp() property {
	return enumProp("period", "Period type (annual or quarter)", periods)
}

func fromProp() property {
	return stringProp("from", "Start date in YYYY-MM-DD format (optional)")
}

func toProp() property {
	return stringProp("to", "End date in YYYY-MM-DD format (optional)")
}

func timeframeProp() property {
	return enumProp("timeframe", "Timeframe (1min, 5min, 15min, 30min, 1hour, 4hour, 1day)", timeframes)
}
