package motor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pb33f/harhar"
)

const (
	minVersion = 1.0
	maxVersion = 2.0
)

// FormatError reports a HAR document that cannot be converted: malformed JSON, a missing or
// unsupported log version, or an unreadable timestamp.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid HAR document: %s: %v", e.Reason, e.Err)
	}
	return "invalid HAR document: " + e.Reason
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// IsFormatError reports whether err is, or wraps, a *FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// Archive is a validated, normalized HAR log. Every optional field has been resolved,
// so downstream code never checks for presence.
type Archive struct {
	Version string
	Creator Creator
	Browser *Creator
	Pages   []Page
	Entries []Entry
}

// Creator describes the tool or browser that produced the archive.
type Creator struct {
	Name    string
	Version string
	Comment string
}

// Page is a browser page load.
type Page struct {
	ID             string
	Title          string
	Started        time.Time
	Comment        string
	OnLoad         float64 // milliseconds, 0 when unknown
	TimingsComment string
}

// Entry is one captured request/response pair.
type Entry struct {
	Index         int // position in log.entries
	PageRef       string
	Started       time.Time
	Time          float64 // milliseconds, 0 when unknown
	ServerIP      string
	Comment       string
	Request       Request
	ResponseBytes int // 0 when unknown
}

// Request is the request half of an entry.
type Request struct {
	Method   string
	URL      string
	Headers  []harhar.NameValuePair
	PostData *PostData
}

// PostData is the request body as captured.
type PostData struct {
	MimeType string
	Text     string
	Params   []harhar.NameValuePair
}

// document mirrors the HAR root. The version is a json.Number so that both "1.2" and 1.2 decode.
type document struct {
	Log *logDocument `json:"log"`
}

type logDocument struct {
	Version json.Number     `json:"version"`
	Creator harhar.Creator  `json:"creator"`
	Browser *harhar.Creator `json:"browser,omitempty"`
	Pages   []harhar.Page   `json:"pages,omitempty"`
	Entries []harhar.Entry  `json:"entries"`
}

// LoadArchive parses raw HAR text into an Archive. Any failure is a *FormatError.
func LoadArchive(raw []byte) (*Archive, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &FormatError{Reason: "malformed JSON", Err: err}
	}
	if doc.Log == nil {
		return nil, &FormatError{Reason: "missing log object"}
	}
	if err := ValidateVersion(doc.Log.Version.String()); err != nil {
		return nil, err
	}

	archive := &Archive{
		Version: doc.Log.Version.String(),
		Creator: newCreator(doc.Log.Creator),
		Pages:   make([]Page, 0, len(doc.Log.Pages)),
		Entries: make([]Entry, 0, len(doc.Log.Entries)),
	}
	if doc.Log.Browser != nil {
		browser := newCreator(*doc.Log.Browser)
		archive.Browser = &browser
	}

	for i, p := range doc.Log.Pages {
		started, err := ParseTimestamp(p.Start)
		if err != nil {
			return nil, &FormatError{Reason: fmt.Sprintf("page %d (%s) startedDateTime", i, p.ID), Err: err}
		}
		archive.Pages = append(archive.Pages, Page{
			ID:             p.ID,
			Title:          p.Title,
			Started:        started,
			Comment:        p.Comment,
			OnLoad:         nonNegative(p.PageTimings.OnLoad),
			TimingsComment: p.PageTimings.Comment,
		})
	}

	for i := range doc.Log.Entries {
		e := &doc.Log.Entries[i]
		started, err := ParseTimestamp(e.Start)
		if err != nil {
			return nil, &FormatError{Reason: fmt.Sprintf("entry %d startedDateTime", i), Err: err}
		}
		archive.Entries = append(archive.Entries, Entry{
			Index:         i,
			PageRef:       e.PageRef,
			Started:       started,
			Time:          nonNegative(e.Time),
			ServerIP:      e.ServerIP,
			Comment:       e.Comment,
			Request:       newRequest(&e.Request),
			ResponseBytes: max(e.Response.BodySize, 0),
		})
	}

	return archive, nil
}

// ValidateVersion checks that a declared HAR version is numeric and within [1, 2).
func ValidateVersion(version string) error {
	if strings.TrimSpace(version) == "" {
		return &FormatError{Reason: "missing log.version"}
	}
	trimmed := strings.TrimSpace(version)
	if !isDecimal(trimmed) {
		return &FormatError{Reason: fmt.Sprintf("log.version %q is not a number", version)}
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return &FormatError{Reason: fmt.Sprintf("log.version %q is not a number", version), Err: err}
	}
	if v < minVersion || v >= maxVersion {
		return &FormatError{Reason: fmt.Sprintf("HAR version %s is not supported", version)}
	}
	return nil
}

// isDecimal reports whether s is a number in JSON notation. ParseFloat alone also takes
// NaN, Inf and hex floats.
func isDecimal(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	digits := func() int {
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		return i - start
	}
	if digits() == 0 {
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		if digits() == 0 {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if digits() == 0 {
			return false
		}
	}
	return i == len(s)
}

// layouts accepted for startedDateTime, most common first
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
}

// ParseTimestamp parses an ISO 8601 startedDateTime.
func ParseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	var firstErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func newCreator(c harhar.Creator) Creator {
	return Creator{Name: c.Name, Version: c.Version, Comment: c.Comment}
}

func newRequest(r *harhar.Request) Request {
	req := Request{
		Method:  r.Method,
		URL:     r.URL,
		Headers: r.Headers,
	}
	if r.Body.MIMEType != "" || r.Body.Content != "" || len(r.Body.Params) > 0 {
		pd := &PostData{MimeType: r.Body.MIMEType, Text: r.Body.Content}
		for _, p := range r.Body.Params {
			pd.Params = append(pd.Params, harhar.NameValuePair{Name: p.Name, Value: p.Value})
		}
		req.PostData = pd
	}
	return req
}

func nonNegative(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}
