package motor

import (
	"fmt"
	"strings"
)

// UserAgentSource tells where a resolved user agent came from.
type UserAgentSource int

const (
	UserAgentNone UserAgentSource = iota
	UserAgentFromHeaders
	UserAgentFromBrowser
)

func (s UserAgentSource) String() string {
	switch s {
	case UserAgentFromHeaders:
		return "headers"
	case UserAgentFromBrowser:
		return "browser"
	default:
		return "none"
	}
}

// UserAgent is the outcome of user agent resolution. Value is empty when nothing could be
// resolved; Comment always explains the outcome.
type UserAgent struct {
	Value   string
	Comment string
	Source  UserAgentSource
}

const (
	headerUAComment     = "User-agent string based on request headers."
	unresolvedUAComment = "Could not resolve User-agent string; relying on LoadImpact default."
)

// header names treated as carrying a user agent, compared lower-case
var userAgentHeaders = map[string]struct{}{
	"user-agent": {},
	"useragent":  {},
	"ua":         {},
}

var browserUserAgents = map[string]string{
	"firefox":   "Mozilla/5.0 Gecko Firefox",
	"iceweasel": "Mozilla/5.0 Gecko Firefox",
	"seamonkey": "Mozilla/5.0 Gecko Firefox",
	"chrome":    "Mozilla/5.0 AppleWebKit (KHTML, like Gecko) Chrome Safari",
	"chromium":  "Mozilla/5.0 AppleWebKit (KHTML, like Gecko) Chrome Safari",
	"safari":    "Mozilla/5.0 AppleWebKit (KHTML, like Gecko) Chrome Safari",
	"konqueror": "Mozilla/5.0 AppleWebKit (KHTML, like Gecko) Chrome Safari",
	"opera":     "Opera/9.80 Presto",
	"ie":        "Mozilla/5.0 (Windows NT 6.3; Trident/7.0; rv:11.0) like Gecko",
}

// BrowserUserAgent returns the canned user agent for a browser name, matched case-insensitively.
func BrowserUserAgent(name string) (string, bool) {
	ua, ok := browserUserAgents[strings.ToLower(strings.TrimSpace(name))]
	return ua, ok
}

// ResolveUserAgent picks the user agent the scenario should send. Request headers are
// authoritative; the browser declared in the log is only a fallback guess.
func ResolveUserAgent(a *Archive) UserAgent {
	for _, e := range a.Entries {
		for _, h := range e.Request.Headers {
			if _, ok := userAgentHeaders[strings.ToLower(h.Name)]; ok && h.Value != "" {
				return UserAgent{Value: h.Value, Comment: headerUAComment, Source: UserAgentFromHeaders}
			}
		}
	}

	if a.Browser != nil && a.Browser.Name != "" {
		comment := fmt.Sprintf("User-agent string based on browser name %s %s.%s",
			a.Browser.Name, a.Browser.Version, commentSuffix(a.Browser.Comment))
		if ua, ok := BrowserUserAgent(a.Browser.Name); ok {
			return UserAgent{Value: ua, Comment: comment, Source: UserAgentFromBrowser}
		}
		return UserAgent{
			Comment: fmt.Sprintf("Could not map browser name %s %s to a User-agent string; relying on LoadImpact default.",
				a.Browser.Name, a.Browser.Version),
		}
	}

	return UserAgent{Comment: unresolvedUAComment}
}

// CreatorString formats the creator of the archive for the script header.
func CreatorString(a *Archive) string {
	return fmt.Sprintf("%s %s%s", a.Creator.Name, a.Creator.Version, commentSuffix(a.Creator.Comment))
}

func commentSuffix(comment string) string {
	if comment == "" {
		return ""
	}
	return " (Comment: " + comment + ")"
}
