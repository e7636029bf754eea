package lua

import (
	"fmt"
	"strings"
)

// Header is one request header as it should appear in the generated headers table.
type Header struct {
	Name  string
	Value string
}

// CallParams holds the positional arguments of a LoadImpact http.request call.
// The same arguments are used for a standalone request and for a batch tuple.
type CallParams struct {
	Method        string
	URL           string
	ServerIP      string // empty renders nil
	Headers       []Header
	Body          string // empty renders nil
	ResponseBytes int
	Base64Body    bool
}

// PageParams describes one page load rendered as an http.request_batch block.
type PageParams struct {
	Comment string
	PageRef string
	Batch   []string // rendered BatchArg fragments
}

// SingleParams describes a commented, standalone statement.
type SingleParams struct {
	Comment string
	Body    string
}

// SleepParams describes a pause between two page loads.
type SleepParams struct {
	Comment      string // optional, appended to the pause comment
	Milliseconds int64
}

// ScriptParams describes the whole user scenario.
type ScriptParams struct {
	OutputName  string
	InputName   string
	ToolName    string
	ToolVersion string
	Creator     string
	Body        string
	IdleMin     int
	IdleMax     int
}

// RequestCall renders a standalone http.request invocation.
func RequestCall(p CallParams) string {
	a := p.arguments()
	return fmt.Sprintf("http.request( %s,\n    %s,\n    %s,\n    %s,\n    %s,\n    %s )",
		a[0], a[1], a[2], a[3], a[4], a[5])
}

// BatchArg renders one tuple of an http.request_batch argument list.
func BatchArg(p CallParams) string {
	a := p.arguments()
	return fmt.Sprintf("    { %s,\n       %s,\n       %s,\n       %s,\n       %s,\n       %s }",
		a[0], a[1], a[2], a[3], a[4], a[5])
}

// arguments returns method, url, ip, headers, data and the trailing option list.
func (p CallParams) arguments() [6]string {
	data := Nil
	if p.Body != "" {
		data = Block(p.Body)
	}
	// auto_redirect, auto_decompress, response_body_bytes, base64_encoded_body, report_results
	options := fmt.Sprintf("%s, %s, %d, %t, %s", Nil, Nil, p.ResponseBytes, p.Base64Body, Nil)

	return [6]string{
		Quote(p.Method),
		Quote(p.URL),
		Optional(p.ServerIP),
		HeaderTable(p.Headers),
		data,
		options,
	}
}

// HeaderTable renders headers as a lua table keyed by header name.
func HeaderTable(headers []Header) string {
	if len(headers) == 0 {
		return "{nil}"
	}
	pairs := make([]string, 0, len(headers))
	for _, h := range headers {
		pairs = append(pairs, "["+Quote(h.Name)+"]="+Quote(h.Value))
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

// PageBlock renders a page load wrapped in page_start / page_end markers.
func PageBlock(p PageParams) string {
	var b strings.Builder
	b.WriteString("\n-- Page ")
	b.WriteString(Comment(p.Comment))
	b.WriteString("\n\nhttp.page_start(")
	b.WriteString(Quote(p.PageRef))
	b.WriteString(")\n\nresponses = http.request_batch({\n")
	b.WriteString(strings.Join(p.Batch, ",\n\n"))
	b.WriteString("\n})\n\nhttp.page_end(")
	b.WriteString(Quote(p.PageRef))
	b.WriteString(")\n")
	return b.String()
}

// Single renders a comment line followed by a statement. An empty body leaves only the comment.
func Single(p SingleParams) string {
	return "\n-- " + Comment(p.Comment) + "\n\n" + p.Body + "\n"
}

// Sleep renders the pause emitted between page loads.
func Sleep(p SleepParams) string {
	suffix := ""
	if p.Comment != "" {
		suffix = " (Comment: " + Comment(p.Comment) + ")"
	}
	return fmt.Sprintf("-- pause until next page%s.\nclient.sleep(%d, 1000)", suffix, p.Milliseconds)
}

// UserAgent renders the user agent directive.
func UserAgent(value string) string {
	return "http.set_user_agent_string(" + Quote(value) + ")"
}

// Script wraps the body with the header comment and the trailing client sleep.
func Script(p ScriptParams) string {
	var b strings.Builder
	fmt.Fprintf(&b, "-- LoadImpact user scenario script %s\n", Comment(p.OutputName))
	fmt.Fprintf(&b, "-- converted by %s %s from %s (created by %s).\n",
		Comment(p.ToolName), Comment(p.ToolVersion), Comment(p.InputName), Comment(p.Creator))
	b.WriteString(p.Body)
	b.WriteString("\n\n-- Sleep client\n")
	fmt.Fprintf(&b, "client.sleep(math.random(%d, %d))\n", p.IdleMin, p.IdleMax)
	return b.String()
}

// Comment flattens s onto a single line so it cannot escape a -- comment.
func Comment(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Join(strings.Fields(strings.NewReplacer("\r", " ", "\n", " ").Replace(s)), " ")
}
