package serialize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndent(t *testing.T) {
	out, err := Indent([]byte(`[{"symbol":"AAPL","price":189.84}]`))
	require.NoError(t, err)

	assert.Equal(t, "[\n  {\n    \"symbol\": \"AAPL\",\n    \"price\": 189.84\n  }\n]", out)
}

func TestIndentRoundTrip(t *testing.T) {
	body := []byte(`{"b":[1,2.50,{"c":null}],"a":"x","big":12345678901234567890,"empty":[]}`)

	out, err := Indent(body)
	require.NoError(t, err)

	var want, got any
	require.NoError(t, json.Unmarshal(body, &want))
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, want, got)
	assert.Contains(t, out, "12345678901234567890")
}

func TestIndentInvalid(t *testing.T) {
	_, err := Indent([]byte(`<html>rate limited</html>`))
	assert.Error(t, err)

	_, err = Indent(nil)
	assert.Error(t, err)
}
