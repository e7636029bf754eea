package hargen

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/pb33f/harhar"
)

// GenerateOptions configures har generation
type GenerateOptions struct {
	Pages          int           // pages that own at least one entry
	EntriesPerPage int           // entries generated for every page
	Orphans        int           // entries without a pageref
	DanglingRefs   int           // entries whose pageref names no declared page
	EmptyPages     int           // declared pages without any entry
	PageGap        time.Duration // time between two page starts (default: 5s)
	Start          time.Time     // first page start (default: 2024-01-01T00:00:00Z)
	Host           string        // host used for every url (default: www.example.com)
	UserAgent      string        // User-Agent request header value; empty omits the header
	Browser        string        // log.browser name; empty omits the browser object
	DictionaryPath string        // path to word dictionary; empty uses the built-in list
	Seed           int64         // random seed for reproducibility (0 = use time)
	Shuffle        bool          // shuffle pages and entries so document order differs from time order
}

// DefaultGenerateOptions provides sensible defaults
var DefaultGenerateOptions = GenerateOptions{
	Pages:          3,
	EntriesPerPage: 4,
	Orphans:        2,
	PageGap:        5 * time.Second,
	Start:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	Host:           "www.example.com",
	UserAgent:      "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0",
	Browser:        "Firefox",
	Shuffle:        true,
}

// Layout records what a generated har contains, in chronological order.
type Layout struct {
	PageIDs       []string // pages with entries, by start time
	EmptyPageIDs  []string
	StandaloneURL []string // urls of orphan and dangling entries, by start time
	URLs          []string // every entry url, by start time
}

// GenerateResult contains the generated har path and its layout
type GenerateResult struct {
	HARFilePath  string
	TotalEntries int
	TotalPages   int
	Layout       Layout
}

// Generate creates a har file in the temp directory
func Generate(opts GenerateOptions) (*GenerateResult, error) {
	har, layout, err := GenerateInMemory(opts)
	if err != nil {
		return nil, err
	}

	tmpFile, err := os.CreateTemp("", "hargen-*.har")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tmpFile.Close()

	encoder := json.NewEncoder(tmpFile)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(har); err != nil {
		os.Remove(tmpFile.Name())
		return nil, fmt.Errorf("failed to write har: %w", err)
	}

	return &GenerateResult{
		HARFilePath:  tmpFile.Name(),
		TotalEntries: len(har.Log.Entries),
		TotalPages:   len(har.Log.Pages),
		Layout:       *layout,
	}, nil
}

// GenerateToFile generates a har and writes it to a specific file path
func GenerateToFile(path string, opts GenerateOptions) (*GenerateResult, error) {
	har, layout, err := GenerateInMemory(opts)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(har); err != nil {
		return nil, fmt.Errorf("failed to write har: %w", err)
	}

	return &GenerateResult{
		HARFilePath:  path,
		TotalEntries: len(har.Log.Entries),
		TotalPages:   len(har.Log.Pages),
		Layout:       *layout,
	}, nil
}

// GenerateInMemory creates a har structure without writing to disk.
//
// Page i starts at Start + i*PageGap and its entries follow it 10ms apart. Orphan and
// dangling entries sit half way between two page starts, empty pages three quarters of
// the way, so every timestamp is distinct.
func GenerateInMemory(opts GenerateOptions) (*harhar.HAR, *Layout, error) {
	if opts.PageGap <= 0 {
		opts.PageGap = DefaultGenerateOptions.PageGap
	}
	if opts.Start.IsZero() {
		opts.Start = DefaultGenerateOptions.Start
	}
	if opts.Host == "" {
		opts.Host = DefaultGenerateOptions.Host
	}
	if opts.EntriesPerPage <= 0 && opts.Pages > 0 {
		return nil, nil, fmt.Errorf("pages need at least one entry each, got %d entries per page", opts.EntriesPerPage)
	}
	if time.Duration(max(opts.EntriesPerPage, 1))*10*time.Millisecond >= opts.PageGap/2 {
		return nil, nil, fmt.Errorf("page gap %s is too small for %d entries per page", opts.PageGap, opts.EntriesPerPage)
	}

	// local rng (avoid mutating global rand)
	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	dict, err := LoadDictionary(opts.DictionaryPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load dictionary: %w", err)
	}
	entryGen := NewEntryGenerator(dict, rng, opts.Host, opts.UserAgent)

	var (
		pages   []harhar.Page
		entries []harhar.Entry
		layout  = &Layout{}
		slot    = func(i int, fraction float64) time.Time {
			return opts.Start.Add(time.Duration(i)*opts.PageGap + time.Duration(fraction*float64(opts.PageGap)))
		}
	)

	// number of page slots covers pages, orphans and empty pages alike
	slots := max(opts.Pages, opts.Orphans+opts.DanglingRefs, opts.EmptyPages, 1)
	for i := 0; i < slots; i++ {
		if i < opts.Pages {
			id := fmt.Sprintf("page_%d", i+1)
			started := slot(i, 0)
			pages = append(pages, newPage(id, dict.Title(rng), started, rng))
			layout.PageIDs = append(layout.PageIDs, id)
			for k := 0; k < opts.EntriesPerPage; k++ {
				e := entryGen.GenerateEntry(started.Add(time.Duration(k+1)*10*time.Millisecond), id)
				entries = append(entries, e)
				layout.URLs = append(layout.URLs, e.Request.URL)
			}
		}

		if i < opts.Orphans+opts.DanglingRefs {
			ref := ""
			if i >= opts.Orphans {
				ref = fmt.Sprintf("missing_%d", i+1)
			}
			e := entryGen.GenerateEntry(slot(i, 0.5), ref)
			entries = append(entries, e)
			layout.URLs = append(layout.URLs, e.Request.URL)
			layout.StandaloneURL = append(layout.StandaloneURL, e.Request.URL)
		}

		if i < opts.EmptyPages {
			id := fmt.Sprintf("empty_%d", i+1)
			pages = append(pages, newPage(id, dict.Title(rng), slot(i, 0.75), rng))
			layout.EmptyPageIDs = append(layout.EmptyPageIDs, id)
		}
	}

	if opts.Shuffle {
		rng.Shuffle(len(pages), func(i, j int) { pages[i], pages[j] = pages[j], pages[i] })
		rng.Shuffle(len(entries), func(i, j int) { entries[i], entries[j] = entries[j], entries[i] })
	}

	harLog := harhar.Log{
		Version: "1.2",
		Creator: harhar.Creator{
			Name:    "hargen",
			Version: "1.0.0",
		},
		Pages:   pages,
		Entries: entries,
	}
	if opts.Browser != "" {
		harLog.Browser = &harhar.Creator{Name: opts.Browser, Version: "128.0"}
	}
	if harLog.Entries == nil {
		harLog.Entries = []harhar.Entry{}
	}

	return &harhar.HAR{Log: harLog}, layout, nil
}

func newPage(id, title string, started time.Time, rng *rand.Rand) harhar.Page {
	onContentLoad := float64(rng.Intn(300) + 50)
	return harhar.Page{
		ID:    id,
		Title: title,
		Start: started.Format(time.RFC3339Nano),
		PageTimings: harhar.PageTiming{
			OnContentLoad: onContentLoad,
			OnLoad:        onContentLoad + float64(rng.Intn(500)),
		},
	}
}
