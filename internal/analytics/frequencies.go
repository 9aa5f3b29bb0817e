package analytics

import (
	"path/filepath"
	"sort"
	"strconv"

	"github.com/jimezsa/urs/internal/export"
)

const FrequenciesTool = "frequencies"

type Frequency struct {
	Word  string `json:"word"`
	Count int    `json:"frequency"`
}

// Count tallies words across texts, most frequent first and alphabetical on ties.
func Count(texts []string) []Frequency {
	counts := map[string]int{}
	for _, text := range texts {
		for _, word := range Tokenize(text) {
			counts[word]++
		}
	}

	out := make([]Frequency, 0, len(counts))
	for word, count := range counts {
		out = append(out, Frequency{Word: word, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	return out
}

// WriteFrequencies exports the word counts of scrape next to its dated
// scrapes directory and returns the file written.
func WriteFrequencies(scrapesDir string, scrape Scrape, format export.Format) (string, error) {
	dir, err := outputDir(scrapesDir, scrape.Path, FrequenciesTool)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, baseName(scrape.Path)+"-"+FrequenciesTool+format.Ext())
	return path, export.WriteFile(path, frequenciesDataset(scrape, Count(scrape.Texts)), format)
}

func frequenciesDataset(scrape Scrape, freqs []Frequency) export.Dataset {
	rows := make([][]string, 0, len(freqs))
	for _, freq := range freqs {
		rows = append(rows, []string{freq.Word, strconv.Itoa(freq.Count)})
	}
	return export.Dataset{
		Settings: map[string]any{"source": scrape.Path, "tool": FrequenciesTool},
		Header:   []string{"word", "frequency"},
		Rows:     rows,
		Data:     freqs,
	}
}
