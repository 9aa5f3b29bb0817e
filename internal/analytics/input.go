// Package analytics derives word frequencies and word clouds from exported
// scrape files.
package analytics

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/urs/internal/models"
	"github.com/tidwall/gjson"
)

// Scrape is a loaded scrape export.
type Scrape struct {
	Path  string
	Texts []string
}

var textFields = []string{"title", "selftext", "body"}

// Load reads a JSON scrape export. The file must live under scrapesDir and
// carry the scrape_settings/data envelope urs writes.
func Load(scrapesDir string, path string) (Scrape, error) {
	if _, err := relativeToScrapes(scrapesDir, path); err != nil {
		return Scrape{}, err
	}
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return Scrape{}, fmt.Errorf("%w: %s is not a JSON file", models.ErrInvalidFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Scrape{}, err
	}
	if !gjson.ValidBytes(data) {
		return Scrape{}, fmt.Errorf("%w: %s is not valid JSON", models.ErrInvalidFormat, path)
	}
	doc := gjson.ParseBytes(data)
	if !doc.Get("scrape_settings").Exists() || !doc.Get("data").Exists() {
		return Scrape{}, fmt.Errorf("%w: %s is not a urs scrape", models.ErrInvalidFormat, path)
	}

	scrape := Scrape{Path: path}
	collectTexts(doc.Get("data"), &scrape.Texts)
	return scrape, nil
}

// relativeToScrapes returns path relative to scrapesDir, failing with
// ErrInvalidTopDir when path lies outside it.
func relativeToScrapes(scrapesDir string, path string) (string, error) {
	root, err := filepath.Abs(scrapesDir)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", models.ErrInvalidTopDir, path)
	}
	return rel, nil
}

// collectTexts walks value and gathers post titles, self text and comment
// bodies, preferring the rendered *_html variant when present.
func collectTexts(value gjson.Result, out *[]string) {
	switch {
	case value.IsArray():
		value.ForEach(func(_, item gjson.Result) bool {
			collectTexts(item, out)
			return true
		})
	case value.IsObject():
		for _, field := range textFields {
			if text := fieldText(value, field); text != "" {
				*out = append(*out, text)
			}
		}
		value.ForEach(func(_, child gjson.Result) bool {
			if child.IsArray() || child.IsObject() {
				collectTexts(child, out)
			}
			return true
		})
	}
}

func fieldText(obj gjson.Result, field string) string {
	if rendered := obj.Get(field + "_html"); rendered.Type == gjson.String && rendered.String() != "" {
		if text, err := htmlText(rendered.String()); err == nil {
			return text
		}
	}
	plain := obj.Get(field)
	if plain.Type != gjson.String {
		return ""
	}
	return plain.String()
}

func htmlText(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(doc.Text()), " "), nil
}

// Tokenize lowercases text and splits it into words, dropping stop words,
// numbers and single characters.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		word := strings.Trim(field, "'")
		if len([]rune(word)) < 2 || isNumber(word) {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		words = append(words, word)
	}
	return words
}

func isNumber(word string) bool {
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// outputDir is <scrapesDir>/<date>/analytics/<tool> for an input inside a dated directory.
func outputDir(scrapesDir string, input string, tool string) (string, error) {
	rel, err := relativeToScrapes(scrapesDir, input)
	if err != nil {
		return "", err
	}
	date := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
	return filepath.Join(scrapesDir, date, "analytics", tool), nil
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

var stopWords = toSet(
	"a", "about", "after", "all", "also", "am", "an", "and", "any", "are", "as", "at",
	"be", "because", "been", "but", "by", "can", "could", "did", "do", "does", "don't",
	"for", "from", "get", "had", "has", "have", "he", "her", "him", "his", "how", "i'm",
	"if", "in", "into", "is", "it", "it's", "its", "just", "like", "me", "more", "my",
	"no", "not", "of", "on", "one", "or", "our", "out", "over", "she", "so", "some",
	"than", "that", "the", "their", "them", "then", "there", "these", "they", "this",
	"to", "up", "us", "was", "we", "were", "what", "when", "which", "who", "will",
	"with", "would", "you", "your",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}
