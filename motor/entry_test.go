package motor

import (
	"testing"

	"github.com/pb33f/harhar"
	"github.com/pb33f/harlua/lua"
	"github.com/stretchr/testify/assert"
)

func TestNewCall_TextWinsOverParams(t *testing.T) {
	e := testEntry("", 0, "POST", "http://a/form")
	e.Request.PostData = &PostData{
		MimeType: "application/x-www-form-urlencoded",
		Text:     "x=1",
		Params:   []harhar.NameValuePair{{Name: "y", Value: "2"}},
	}
	call := NewCall(e)
	assert.True(t, call.HasBody)
	assert.Equal(t, "x=1", call.Body)
	assert.False(t, call.Base64)
}

func TestNewCall_ParamsJoined(t *testing.T) {
	e := testEntry("", 0, "POST", "http://a/form")
	e.Request.PostData = &PostData{
		Params: []harhar.NameValuePair{{Name: "a", Value: "1"}, {Name: "b", Value: ""}, {Name: "c", Value: "3"}},
	}
	call := NewCall(e)
	assert.True(t, call.HasBody)
	assert.Equal(t, "a=1&b=&c=3", call.Body)
}

func TestNewCall_NoBody(t *testing.T) {
	call := NewCall(testEntry("", 0, "GET", "http://a/"))
	assert.False(t, call.HasBody)
	assert.Empty(t, call.Body)

	e := testEntry("", 0, "POST", "http://a/")
	e.Request.PostData = &PostData{MimeType: "text/plain"}
	call = NewCall(e)
	assert.False(t, call.HasBody)
}

func TestNewCall_Base64(t *testing.T) {
	e := testEntry("", 0, "PUT", "http://a/blob")
	e.Request.PostData = &PostData{MimeType: "application/octet-stream;base64", Text: "AAEC"}
	call := NewCall(e)
	assert.True(t, call.Base64)
	assert.Contains(t, call.Render(), "0, true, nil )")
}

func TestNewCall_MergesHeaders(t *testing.T) {
	e := testEntry("", 0, "GET", "http://a/")
	e.Request.Headers = []harhar.NameValuePair{
		{Name: "Accept", Value: "*/*"},
		{Name: "Host", Value: "a"},
		{Name: "Accept", Value: "text/html"},
		{Name: "accept", Value: "kept"},
	}
	call := NewCall(e)
	assert.Equal(t, []lua.Header{
		{Name: "Accept", Value: "text/html"},
		{Name: "Host", Value: "a"},
		{Name: "accept", Value: "kept"},
	}, call.Headers)
}

func TestCall_Render(t *testing.T) {
	e := testEntry("", 0, "POST", "http://a/api")
	e.ServerIP = "1.2.3.4"
	e.ResponseBytes = 99
	e.Request.Headers = []harhar.NameValuePair{{Name: "Host", Value: "a"}}
	e.Request.PostData = &PostData{Text: `{"k":"v"}`}

	call := NewCall(e)
	assert.Equal(t, "http.request( \"POST\",\n"+
		"    \"http://a/api\",\n"+
		"    \"1.2.3.4\",\n"+
		"    {[\"Host\"]=\"a\"},\n"+
		"    [[{\"k\":\"v\"}]],\n"+
		"    nil, nil, 99, false, nil )", call.Render())

	assert.Equal(t, "    { \"POST\",\n"+
		"       \"http://a/api\",\n"+
		"       \"1.2.3.4\",\n"+
		"       {[\"Host\"]=\"a\"},\n"+
		"       [[{\"k\":\"v\"}]],\n"+
		"       nil, nil, 99, false, nil }", call.RenderBatch())
}
