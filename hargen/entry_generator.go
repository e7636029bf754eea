package hargen

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/pb33f/harhar"
)

// BodyKind selects how a generated request carries its body.
type BodyKind int

const (
	NoBody BodyKind = iota
	FormParams
	TextBody
	JSONBody
	DuplicatedBody // text and params both filled, as some browsers do
)

func (k BodyKind) String() string {
	switch k {
	case FormParams:
		return "params"
	case TextBody:
		return "text"
	case JSONBody:
		return "json"
	case DuplicatedBody:
		return "text+params"
	default:
		return "none"
	}
}

// EntryGenerator creates HAR entries for a single host.
type EntryGenerator struct {
	dict      *Dictionary
	rng       *rand.Rand
	host      string
	userAgent string
}

// NewEntryGenerator creates an entry generator. An empty userAgent leaves the
// User-Agent header out of every request.
func NewEntryGenerator(dict *Dictionary, rng *rand.Rand, host, userAgent string) *EntryGenerator {
	return &EntryGenerator{
		dict:      dict,
		rng:       rng,
		host:      host,
		userAgent: userAgent,
	}
}

// GenerateEntry creates one entry started at the given time.
func (eg *EntryGenerator) GenerateEntry(started time.Time, pageRef string) harhar.Entry {
	kind := eg.randomBodyKind()
	method := "GET"
	if kind != NoBody {
		method = eg.pick("POST", "PUT", "PATCH")
	}

	return harhar.Entry{
		PageRef:  pageRef,
		Start:    started.Format(time.RFC3339Nano),
		Time:     eg.elapsed(),
		Request:  eg.generateRequest(method, kind),
		Response: eg.generateResponse(),
		ServerIP: fmt.Sprintf("10.%d.%d.%d", eg.rng.Intn(256), eg.rng.Intn(256), eg.rng.Intn(254)+1),
	}
}

// elapsed returns a request duration in ms; roughly one in ten is unknown (-1).
func (eg *EntryGenerator) elapsed() float64 {
	if eg.rng.Intn(10) == 0 {
		return -1
	}
	return float64(eg.rng.Intn(400)+5) + float64(eg.rng.Intn(1000))/1000
}

func (eg *EntryGenerator) randomBodyKind() BodyKind {
	switch n := eg.rng.Intn(10); {
	case n < 6:
		return NoBody
	case n < 7:
		return FormParams
	case n < 8:
		return TextBody
	case n < 9:
		return JSONBody
	default:
		return DuplicatedBody
	}
}

func (eg *EntryGenerator) pick(options ...string) string {
	return options[eg.rng.Intn(len(options))]
}

func (eg *EntryGenerator) generateRequest(method string, kind BodyKind) harhar.Request {
	url := "https://" + eg.host + eg.dict.Path(eg.rng, eg.rng.Intn(3)+1)
	headers := []harhar.NameValuePair{
		{Name: "Host", Value: eg.host},
		{Name: "Accept", Value: eg.pick("*/*", "text/html,application/xhtml+xml", "application/json")},
		{Name: "Accept-Encoding", Value: "gzip, deflate"},
	}
	if eg.userAgent != "" {
		headers = append(headers, harhar.NameValuePair{Name: "User-Agent", Value: eg.userAgent})
	}

	req := harhar.Request{
		Method:      method,
		URL:         url,
		HTTPVersion: "HTTP/1.1",
		Headers:     headers,
		Cookies:     []harhar.Cookie{},
		QueryParams: []harhar.NameValuePair{},
		HeadersSize: -1,
		BodySize:    0,
	}

	body := eg.generateBody(kind)
	if kind != NoBody {
		req.Headers = append(req.Headers, harhar.NameValuePair{Name: "Content-Type", Value: body.MIMEType})
		req.Body = body
		req.BodySize = len(body.Content)
	}
	return req
}

func (eg *EntryGenerator) generateBody(kind BodyKind) harhar.BodyType {
	switch kind {
	case FormParams:
		return harhar.BodyType{
			MIMEType: "application/x-www-form-urlencoded",
			Params:   eg.formParams(),
		}
	case TextBody:
		return harhar.BodyType{
			MIMEType: "text/plain",
			Content:  eg.dict.Word(eg.rng) + "\n" + eg.dict.Word(eg.rng) + " [[" + eg.dict.Word(eg.rng) + "]]",
		}
	case JSONBody:
		payload := map[string]string{}
		for i := 0; i < eg.rng.Intn(4)+1; i++ {
			payload[eg.dict.Word(eg.rng)] = eg.dict.Word(eg.rng)
		}
		content, _ := json.Marshal(payload)
		return harhar.BodyType{MIMEType: "application/json", Content: string(content)}
	case DuplicatedBody:
		params := eg.formParams()
		text := ""
		for i, p := range params {
			if i > 0 {
				text += "&"
			}
			text += p.Name + "=" + p.Value
		}
		return harhar.BodyType{
			MIMEType: "application/x-www-form-urlencoded",
			Params:   params,
			Content:  text,
		}
	default:
		return harhar.BodyType{}
	}
}

func (eg *EntryGenerator) formParams() []harhar.PostNameValuePair {
	params := make([]harhar.PostNameValuePair, eg.rng.Intn(3)+1)
	for i := range params {
		params[i] = harhar.PostNameValuePair{
			Name:  eg.dict.Word(eg.rng),
			Value: eg.dict.Word(eg.rng),
		}
	}
	return params
}

func (eg *EntryGenerator) generateResponse() harhar.Response {
	bodySize := eg.rng.Intn(50000) + 100
	if eg.rng.Intn(8) == 0 {
		bodySize = -1
	}
	return harhar.Response{
		StatusCode:  200,
		StatusText:  "OK",
		HTTPVersion: "HTTP/1.1",
		Headers: []harhar.NameValuePair{
			{Name: "Content-Type", Value: "text/html; charset=utf-8"},
		},
		Cookies: []harhar.Cookie{},
		Body: harhar.BodyResponseType{
			Size:     max(bodySize, 0),
			MIMEType: "text/html",
		},
		HeadersSize: -1,
		BodySize:    bodySize,
	}
}
