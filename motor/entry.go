package motor

import (
	"strings"

	"github.com/pb33f/harlua/lua"
)

// Call is the normalized form of one entry, ready to be rendered as an http.request.
type Call struct {
	Method        string
	URL           string
	ServerIP      string
	Headers       []lua.Header
	Body          string
	HasBody       bool
	Base64        bool
	ResponseBytes int
}

// NewCall extracts the request call from an entry.
func NewCall(e Entry) Call {
	call := Call{
		Method:        e.Request.Method,
		URL:           e.Request.URL,
		ServerIP:      e.ServerIP,
		Headers:       mergeHeaders(e.Request),
		ResponseBytes: max(e.ResponseBytes, 0),
	}

	if pd := e.Request.PostData; pd != nil {
		// the mime type is the only hint a HAR gives about body encoding
		call.Base64 = strings.Contains(pd.MimeType, "base64")
		call.Body, call.HasBody = requestBody(pd)
	}
	return call
}

// requestBody prefers the raw text; browsers that fill both text and params duplicate the data.
func requestBody(pd *PostData) (string, bool) {
	if pd.Text != "" {
		return pd.Text, true
	}
	if len(pd.Params) == 0 {
		return "", false
	}
	pairs := make([]string, 0, len(pd.Params))
	for _, p := range pd.Params {
		pairs = append(pairs, p.Name+"="+p.Value)
	}
	return strings.Join(pairs, "&"), true
}

// mergeHeaders collapses repeated header names: the first occurrence keeps its position
// and the last value wins.
func mergeHeaders(r Request) []lua.Header {
	if len(r.Headers) == 0 {
		return nil
	}
	merged := make([]lua.Header, 0, len(r.Headers))
	seen := make(map[string]int, len(r.Headers))
	for _, h := range r.Headers {
		if i, ok := seen[h.Name]; ok {
			merged[i].Value = h.Value
			continue
		}
		seen[h.Name] = len(merged)
		merged = append(merged, lua.Header{Name: h.Name, Value: h.Value})
	}
	return merged
}

// Params converts the call into fragment parameters.
func (c Call) Params() lua.CallParams {
	return lua.CallParams{
		Method:        c.Method,
		URL:           c.URL,
		ServerIP:      c.ServerIP,
		Headers:       c.Headers,
		Body:          c.Body,
		ResponseBytes: c.ResponseBytes,
		Base64Body:    c.Base64,
	}
}

// Render renders the call as a standalone request.
func (c Call) Render() string {
	return lua.RequestCall(c.Params())
}

// RenderBatch renders the call as one tuple of a page batch.
func (c Call) RenderBatch() string {
	return lua.BatchArg(c.Params())
}
