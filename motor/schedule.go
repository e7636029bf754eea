package motor

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/pb33f/harlua/lua"
)

// TimelineItem is one position of the merged page/entry timeline. Exactly one of Page
// and Entry is set.
type TimelineItem struct {
	Started time.Time
	Page    *Page
	Entry   *Entry
}

// UnitKind identifies what a scheduled unit renders to.
type UnitKind int

const (
	UnitPage UnitKind = iota
	UnitRequest
	UnitSleep
)

func (k UnitKind) String() string {
	switch k {
	case UnitPage:
		return "page"
	case UnitRequest:
		return "request"
	case UnitSleep:
		return "sleep"
	default:
		return "unknown"
	}
}

// Unit is one element of the script body: a batched page load, a standalone request or
// a pause before the next page.
type Unit struct {
	Kind     UnitKind
	Started  time.Time
	Label    string
	PageRef  string
	Calls    []Call
	Elapsed  float64       // milliseconds of captured entry time covered by the unit
	Sleep    time.Duration // UnitSleep only
	Fragment string
}

// BuildTimeline merges pages and entries into one sequence ordered by start time. HAR does
// not guarantee any order; ties keep document order with pages ahead of entries.
func BuildTimeline(a *Archive) []TimelineItem {
	items := make([]TimelineItem, 0, len(a.Pages)+len(a.Entries))
	for i := range a.Pages {
		items = append(items, TimelineItem{Started: a.Pages[i].Started, Page: &a.Pages[i]})
	}
	for i := range a.Entries {
		items = append(items, TimelineItem{Started: a.Entries[i].Started, Entry: &a.Entries[i]})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Started.Before(items[j].Started)
	})
	return items
}

// Deltas returns, for every timeline position but the last, the time until the next position.
func Deltas(timeline []TimelineItem) []time.Duration {
	if len(timeline) < 2 {
		return nil
	}
	deltas := make([]time.Duration, len(timeline)-1)
	for i := range deltas {
		deltas[i] = timeline[i+1].Started.Sub(timeline[i].Started)
	}
	return deltas
}

// GroupEntries maps each declared page id to its entries in start order. Entries without a
// pageref, or whose pageref names no declared page, land in the "" bucket.
func GroupEntries(a *Archive) map[string][]*Entry {
	declared := make(map[string]struct{}, len(a.Pages))
	for _, p := range a.Pages {
		declared[p.ID] = struct{}{}
	}

	groups := make(map[string][]*Entry)
	for _, item := range BuildTimeline(a) {
		if item.Entry == nil {
			continue
		}
		ref := item.Entry.PageRef
		if _, ok := declared[ref]; !ok {
			ref = ""
		}
		groups[ref] = append(groups[ref], item.Entry)
	}
	return groups
}

// Schedule turns the archive into the ordered units of the script body.
func Schedule(a *Archive, opts Options) []Unit {
	opts = opts.withDefaults()

	timeline := BuildTimeline(a)
	deltas := Deltas(timeline)
	groups := GroupEntries(a)

	standalone := make(map[*Entry]struct{}, len(groups[""]))
	for _, e := range groups[""] {
		standalone[e] = struct{}{}
	}

	// the first page declaring an id owns its entries
	renders := make([]bool, len(timeline))
	claimed := make(map[string]bool)
	for i, item := range timeline {
		p := item.Page
		if p == nil || p.ID == "" || claimed[p.ID] || len(groups[p.ID]) == 0 {
			continue
		}
		claimed[p.ID] = true
		renders[i] = true
	}

	// a pause is only needed when another page load follows
	pageFollows := make([]bool, len(timeline))
	for i, seen := len(timeline)-1, false; i >= 0; i-- {
		pageFollows[i] = seen
		seen = seen || renders[i]
	}

	var units []Unit
	for i, item := range timeline {
		if item.Page != nil {
			if !renders[i] {
				continue
			}
			unit := pageUnit(item.Page, groups[item.Page.ID])
			units = append(units, unit)

			if i < len(deltas) && pageFollows[i] && deltas[i] > 0 {
				units = append(units, sleepUnit(item.Page, item.Started, deltas[i], unit.Elapsed, opts.MinSleep))
			}
			continue
		}
		if _, ok := standalone[item.Entry]; ok {
			units = append(units, requestUnit(item.Entry))
		}
	}
	return units
}

func pageUnit(page *Page, entries []*Entry) Unit {
	unit := Unit{
		Kind:    UnitPage,
		Started: page.Started,
		Label:   fmt.Sprintf("%s (HAR pageref '%s')%s", page.Title, page.ID, commentSuffix(page.Comment)),
		PageRef: page.ID,
		Calls:   make([]Call, 0, len(entries)),
	}

	batch := make([]string, 0, len(entries))
	for _, e := range entries {
		call := NewCall(*e)
		unit.Calls = append(unit.Calls, call)
		unit.Elapsed += e.Time
		batch = append(batch, call.RenderBatch())
	}

	unit.Fragment = lua.PageBlock(lua.PageParams{
		Comment: unit.Label,
		PageRef: page.ID,
		Batch:   batch,
	})
	return unit
}

// sleepUnit approximates the idle time the user spent after a page, net of the time the
// batch and the onLoad handler already account for.
func sleepUnit(page *Page, started time.Time, delta time.Duration, elapsed float64, minSleep time.Duration) Unit {
	gap := float64(delta)/float64(time.Millisecond) - elapsed - page.OnLoad
	ms := int64(math.Round(gap))
	if floor := minSleep.Milliseconds(); ms < floor {
		ms = floor
	}

	label := "pause until next page" + commentSuffix(page.TimingsComment)
	return Unit{
		Kind:     UnitSleep,
		Started:  started,
		Label:    label,
		PageRef:  page.ID,
		Sleep:    time.Duration(ms) * time.Millisecond,
		Fragment: lua.Sleep(lua.SleepParams{Comment: page.TimingsComment, Milliseconds: ms}),
	}
}

func requestUnit(e *Entry) Unit {
	label := "Request outside page" + commentSuffix(e.Comment)
	if e.PageRef != "" {
		label += fmt.Sprintf(" (HAR pageref '%s' not found)", e.PageRef)
	}
	call := NewCall(*e)
	return Unit{
		Kind:     UnitRequest,
		Started:  e.Started,
		Label:    label,
		PageRef:  e.PageRef,
		Calls:    []Call{call},
		Elapsed:  e.Time,
		Fragment: lua.Single(lua.SingleParams{Comment: label, Body: call.Render()}),
	}
}
