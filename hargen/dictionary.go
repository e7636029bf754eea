package hargen

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// fallback vocabulary for when /usr/share/dict/words doesn't exist (windows, containers)
var fallbackWords = []string{
	"account", "admin", "api", "article", "assets", "auth", "basket", "blog",
	"cart", "catalog", "checkout", "comment", "config", "content", "dashboard",
	"detail", "download", "event", "feed", "files", "help", "home", "images",
	"invoice", "item", "login", "logout", "media", "news", "order", "page",
	"payment", "product", "profile", "question", "report", "search", "session",
	"settings", "shop", "signup", "static", "store", "support", "tag", "team",
	"ticket", "upload", "user", "video", "widget",
}

// Dictionary is the vocabulary used for url paths, page titles and form fields.
type Dictionary struct {
	words []string
}

// LoadDictionary loads words from a dictionary file, falling back to a built-in
// vocabulary when the file is missing.
func LoadDictionary(path string) (*Dictionary, error) {
	if path == "" {
		return &Dictionary{words: fallbackWords}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Dictionary{words: fallbackWords}, nil
		}
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		// url-safe words only, so generated urls need no escaping
		if len(word) >= 3 && len(word) <= 12 && isLowerAlpha(word) {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no valid words found in dictionary %s", path)
	}

	return &Dictionary{words: words}, nil
}

func isLowerAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Word returns a random word.
func (d *Dictionary) Word(rng *rand.Rand) string {
	if len(d.words) == 0 {
		return "word"
	}
	return d.words[rng.Intn(len(d.words))]
}

// Path returns a url path of the given number of segments, e.g. "/shop/cart".
func (d *Dictionary) Path(rng *rand.Rand, segments int) string {
	var b strings.Builder
	for i := 0; i < segments; i++ {
		b.WriteByte('/')
		b.WriteString(d.Word(rng))
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// Title returns a capitalized page title of a few words.
func (d *Dictionary) Title(rng *rand.Rand) string {
	n := rng.Intn(3) + 1
	words := make([]string, n)
	for i := range words {
		w := d.Word(rng)
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Size returns the number of words in the dictionary.
func (d *Dictionary) Size() int {
	return len(d.words)
}
