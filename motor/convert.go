package motor

import (
	"strings"
	"time"

	"github.com/pb33f/harlua/lua"
)

// ToolVersion is stamped into the header of every generated script.
// It can be overridden at build time with -ldflags.
var ToolVersion = "0.5"

const (
	DefaultToolName   = "harlua"
	DefaultInputName  = "test.har"
	DefaultScriptName = "test.lua"
	DefaultMinSleep   = 10 * time.Millisecond
	DefaultIdleMin    = 20
	DefaultIdleMax    = 40
)

// Options control naming and timing details of the generated script.
type Options struct {
	InputName   string        // input file name shown in the script header
	OutputName  string        // output file name shown in the script header
	ToolName    string        // converter name shown in the script header
	ToolVersion string        // converter version shown in the script header
	MinSleep    time.Duration // lower bound for pauses between pages
	IdleMin     int           // trailing client.sleep lower bound, seconds
	IdleMax     int           // trailing client.sleep upper bound, seconds
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		InputName:   DefaultInputName,
		OutputName:  DefaultScriptName,
		ToolName:    DefaultToolName,
		ToolVersion: ToolVersion,
		MinSleep:    DefaultMinSleep,
		IdleMin:     DefaultIdleMin,
		IdleMax:     DefaultIdleMax,
	}
}

// withDefaults fills zero values from DefaultOptions. A zero MinSleep keeps the default
// floor; pass a negative value to disable the floor.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.InputName == "" {
		o.InputName = d.InputName
	}
	if o.OutputName == "" {
		o.OutputName = d.OutputName
	}
	if o.ToolName == "" {
		o.ToolName = d.ToolName
	}
	if o.ToolVersion == "" {
		o.ToolVersion = d.ToolVersion
	}
	if o.MinSleep == 0 {
		o.MinSleep = d.MinSleep
	}
	if o.MinSleep < 0 {
		o.MinSleep = 0
	}
	if o.IdleMin == 0 && o.IdleMax == 0 {
		o.IdleMin, o.IdleMax = d.IdleMin, d.IdleMax
	}
	return o
}

// Stats summarizes what a conversion produced.
type Stats struct {
	Pages         int // pages declared in the archive
	PageBatches   int // pages rendered as a batch
	Requests      int // standalone requests
	Sleeps        int
	Entries       int // entries in the archive
	UnmatchedRefs int // entries whose pageref names no declared page
}

// Result is a generated script together with the schedule it was built from.
type Result struct {
	Script    string
	Units     []Unit
	UserAgent UserAgent
	Creator   string
	Version   string
	Stats     Stats
}

// Convert turns raw HAR text into a LoadImpact user scenario. The output depends only on
// raw and opts, so converting the same input twice yields identical scripts.
func Convert(raw []byte, opts Options) (*Result, error) {
	archive, err := LoadArchive(raw)
	if err != nil {
		return nil, err
	}
	return ConvertArchive(archive, opts), nil
}

// ConvertArchive renders an already loaded archive.
func ConvertArchive(a *Archive, opts Options) *Result {
	opts = opts.withDefaults()

	ua := ResolveUserAgent(a)
	uaBody := ""
	if ua.Value != "" {
		uaBody = lua.UserAgent(ua.Value)
	}

	units := Schedule(a, opts)

	fragments := make([]string, 0, len(units))
	for _, u := range units {
		fragments = append(fragments, u.Fragment)
	}
	body := lua.Single(lua.SingleParams{Comment: ua.Comment, Body: uaBody}) +
		strings.Join(fragments, "\n")

	creator := CreatorString(a)
	script := lua.Script(lua.ScriptParams{
		OutputName:  opts.OutputName,
		InputName:   opts.InputName,
		ToolName:    opts.ToolName,
		ToolVersion: opts.ToolVersion,
		Creator:     creator,
		Body:        body,
		IdleMin:     opts.IdleMin,
		IdleMax:     opts.IdleMax,
	})

	return &Result{
		Script:    script,
		Units:     units,
		UserAgent: ua,
		Creator:   creator,
		Version:   a.Version,
		Stats:     collectStats(a, units),
	}
}

func collectStats(a *Archive, units []Unit) Stats {
	stats := Stats{Pages: len(a.Pages), Entries: len(a.Entries)}
	for _, u := range units {
		switch u.Kind {
		case UnitPage:
			stats.PageBatches++
		case UnitRequest:
			stats.Requests++
			if u.PageRef != "" {
				stats.UnmatchedRefs++
			}
		case UnitSleep:
			stats.Sleeps++
		}
	}
	return stats
}
