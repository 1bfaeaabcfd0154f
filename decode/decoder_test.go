// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package decode

import (
	"net/http"
	"testing"

	"github.com/gogama/queryx/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResult(contentType string, body string) *Result {
	h := make(http.Header)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return NewResult(&transport.Response{
		StatusCode: 200,
		Header:     h,
		Body:       []byte(body),
	})
}

func TestDecodeEmptyBody(t *testing.T) {
	r := testResult("text/xml", "")
	require.NoError(t, r.Decode("ListDomains"))
	assert.Equal(t, KindNone, r.Payload.Kind)
}

func TestDecodeXML(t *testing.T) {
	body := `<?xml version="1.0"?>
<ListDomainsResponse>
  <ListDomainsResult>
    <DomainName>foo</DomainName>
    <DomainName>bar</DomainName>
  </ListDomainsResult>
  <ResponseMetadata><RequestId>abc-123</RequestId></ResponseMetadata>
</ListDomainsResponse>`
	r := testResult("text/xml", body)
	require.NoError(t, r.Decode("ListDomains"))
	require.Equal(t, KindXML, r.Payload.Kind)

	doc := r.Payload.XML
	assert.Equal(t, "ListDomainsResponse", doc.Name)
	result := doc.Child("ListDomainsResult")
	require.NotNil(t, result)
	names := result.All("DomainName")
	require.Len(t, names, 2)
	assert.Equal(t, "foo", names[0].Text)
	assert.Equal(t, "bar", names[1].Text)
	meta := doc.Child("ResponseMetadata")
	require.NotNil(t, meta)
	assert.Equal(t, "abc-123", meta.Child("RequestId").Text)
}

func TestDecodeXMLCharset(t *testing.T) {
	body := `<?xml version="1.0" encoding="ISO-8859-1"?><Doc><Name>caf` + "\xe9" + `</Name></Doc>`
	r := testResult("application/xml", body)
	require.NoError(t, r.Decode(""))
	require.Equal(t, KindXML, r.Payload.Kind)
	assert.Equal(t, "café", r.Payload.XML.Child("Name").Text)
}

func TestDecodeAmzJSON(t *testing.T) {
	// x-amz-json-1.0 is never unwrapped, even when the envelope keys
	// happen to be present.
	r := testResult("application/x-amz-json-1.0", `{"a":1}`)
	require.NoError(t, r.Decode("ListDomains"))
	require.Equal(t, KindJSON, r.Payload.Kind)
	assert.Equal(t, map[string]interface{}{"a": float64(1)}, r.Payload.JSON)
}

func TestDecodeJSONUnwrap(t *testing.T) {
	body := `{"ListDomainsResponse":{"ListDomainsResult":{"DomainNames":["foo"]},"ResponseMetadata":{"RequestId":"abc"}}}`
	r := testResult("application/json", body)
	require.NoError(t, r.Decode("ListDomains"))
	require.Equal(t, KindJSON, r.Payload.Kind)
	assert.Equal(t, map[string]interface{}{"DomainNames": []interface{}{"foo"}}, r.Payload.JSON)
}

func TestDecodeJSONNoEnvelope(t *testing.T) {
	t.Run("Missing response key", func(t *testing.T) {
		r := testResult("application/json", `{"Other":{"a":1}}`)
		require.NoError(t, r.Decode("ListDomains"))
		assert.Equal(t, map[string]interface{}{"Other": map[string]interface{}{"a": float64(1)}}, r.Payload.JSON)
	})
	t.Run("Missing result key", func(t *testing.T) {
		r := testResult("application/json", `{"ListDomainsResponse":{"ResponseMetadata":{}}}`)
		require.NoError(t, r.Decode("ListDomains"))
		assert.Equal(t, map[string]interface{}{"ListDomainsResponse": map[string]interface{}{"ResponseMetadata": map[string]interface{}{}}}, r.Payload.JSON)
	})
	t.Run("No action", func(t *testing.T) {
		r := testResult("application/json", `{"a":1}`)
		require.NoError(t, r.Decode(""))
		assert.Equal(t, map[string]interface{}{"a": float64(1)}, r.Payload.JSON)
	})
}

func TestDecodeRaw(t *testing.T) {
	r := testResult("application/octet-stream", "\x00\x01\x02")
	require.NoError(t, r.Decode("GetObject"))
	require.Equal(t, KindRaw, r.Payload.Kind)
	assert.Equal(t, []byte{0, 1, 2}, r.Payload.Raw)
}

func TestDecodeNoContentType(t *testing.T) {
	r := testResult("", "hello")
	require.NoError(t, r.Decode(""))
	assert.Equal(t, KindRaw, r.Payload.Kind)
}

func TestDecodeCaseSensitive(t *testing.T) {
	// Suffix matching is case-sensitive, so an upper-cased type falls
	// through to raw.
	r := testResult("TEXT/XML", "<a/>")
	require.NoError(t, r.Decode(""))
	assert.Equal(t, KindRaw, r.Payload.Kind)
}

func TestDecodeIdempotent(t *testing.T) {
	r := testResult("application/json", `{"a":1}`)
	require.NoError(t, r.Decode(""))
	first := r.Payload
	require.NoError(t, r.Decode("Other"))
	assert.Equal(t, first, r.Payload)
}

func TestDecodeMalformed(t *testing.T) {
	t.Run("XML", func(t *testing.T) {
		r := testResult("text/xml", "<a><b></a>")
		err := r.Decode("")
		var m *MalformedError
		require.ErrorAs(t, err, &m)
		assert.Equal(t, "text/xml", m.ContentType)
		assert.Equal(t, KindNone, r.Payload.Kind)
	})
	t.Run("JSON", func(t *testing.T) {
		r := testResult("application/json", "{")
		err := r.Decode("")
		var m *MalformedError
		require.ErrorAs(t, err, &m)
		assert.NotNil(t, m.Cause)
	})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "None", KindNone.String())
	assert.Equal(t, "Raw", KindRaw.String())
	assert.Equal(t, "XML", KindXML.String())
	assert.Equal(t, "JSON", KindJSON.String())
	assert.Equal(t, "Unknown", Kind(99).String())
}
