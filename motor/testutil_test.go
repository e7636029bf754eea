package motor

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pb33f/harhar"
	"github.com/pb33f/harlua/hargen"
)

// generateTestHAR builds a HAR document in memory and returns its JSON and layout.
func generateTestHAR(opts hargen.GenerateOptions) ([]byte, *hargen.Layout, error) {
	har, layout, err := hargen.GenerateInMemory(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate test HAR: %w", err)
	}
	raw, err := json.Marshal(har)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode test HAR: %w", err)
	}
	return raw, layout, nil
}

// generateSessionHAR generates a shuffled session with every kind of timeline item.
func generateSessionHAR(seed int64) ([]byte, *hargen.Layout, error) {
	opts := hargen.DefaultGenerateOptions
	opts.Seed = seed
	opts.Pages = 4
	opts.EntriesPerPage = 3
	opts.Orphans = 2
	opts.DanglingRefs = 1
	opts.EmptyPages = 2
	opts.Shuffle = true
	return generateTestHAR(opts)
}

var testEpoch = time.Date(2014, 5, 1, 10, 0, 0, 0, time.FixedZone("CEST", 2*60*60))

// at returns testEpoch shifted by ms milliseconds.
func at(ms int) time.Time {
	return testEpoch.Add(time.Duration(ms) * time.Millisecond)
}

func testEntry(pageRef string, started int, method, url string) Entry {
	return Entry{
		PageRef: pageRef,
		Started: at(started),
		Request: Request{Method: method, URL: url},
	}
}

// sessionArchive is a small hand-built archive, deliberately out of time order:
//
//	0ms     page_1 "Home" (onLoad 300, timings comment "slow")
//	100ms   GET /        page_1, carries the user agent
//	200ms   POST /form   page_1, form params
//	3000ms  GET /beacon  no pageref
//	5000ms  page_2 "Next" (onLoad 200)
//	5100ms  GET /two     page_2
//	7000ms  GET /ghost   pageref "ghost", never declared
//	9000ms  page_3 "Empty", no entries
func sessionArchive() *Archive {
	two := testEntry("page_2", 5100, "GET", "http://example.com/two")
	two.Time = 50

	root := testEntry("page_1", 100, "GET", "http://example.com/")
	root.Time = 20
	root.ServerIP = "10.0.0.1"
	root.Request.Headers = []harhar.NameValuePair{
		{Name: "Host", Value: "example.com"},
		{Name: "User-Agent", Value: "Mozilla/5.0 Test"},
	}
	root.ResponseBytes = 512

	form := testEntry("page_1", 200, "POST", "http://example.com/form")
	form.Request.PostData = &PostData{
		MimeType: "application/x-www-form-urlencoded",
		Params:   []harhar.NameValuePair{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}},
	}

	beacon := testEntry("", 3000, "GET", "http://example.com/beacon")
	ghost := testEntry("ghost", 7000, "GET", "http://example.com/ghost")
	ghost.Comment = "lost"

	entries := []Entry{two, root, form, beacon, ghost}
	for i := range entries {
		entries[i].Index = i
	}

	return &Archive{
		Version: "1.2",
		Creator: Creator{Name: "Firebug", Version: "1.12"},
		Pages: []Page{
			{ID: "page_2", Title: "Next", Started: at(5000), OnLoad: 200},
			{ID: "page_1", Title: "Home", Started: at(0), OnLoad: 300, TimingsComment: "slow"},
			{ID: "page_3", Title: "Empty", Started: at(9000)},
		},
		Entries: entries,
	}
}
