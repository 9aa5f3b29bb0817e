package analytics

import (
	"fmt"
	"html"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jimezsa/urs/internal/export"
)

const WordcloudTool = "wordcloud"

const (
	cloudWidth   = 1200
	cloudHeight  = 800
	minFontSize  = 14.0
	maxFontSize  = 96.0
	charAspect   = 0.6
	spiralStep   = 0.35
	maxSpiralPos = 4000
)

var palette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#e377c2", "#17becf"}

// Word is one entry placed on a word cloud.
type Word struct {
	Text  string
	Count int
	Size  float64
	X, Y  float64
	Color string
}

// Layout sizes the top maxWords words by frequency and places them on an
// Archimedean spiral from the centre, skipping words that do not fit.
func Layout(freqs []Frequency, maxWords int) []Word {
	if maxWords > 0 && len(freqs) > maxWords {
		freqs = freqs[:maxWords]
	}
	if len(freqs) == 0 {
		return nil
	}

	top, bottom := float64(freqs[0].Count), float64(freqs[len(freqs)-1].Count)
	var placed []Word
	for i, freq := range freqs {
		size := maxFontSize
		if top > bottom {
			scale := (float64(freq.Count) - bottom) / (top - bottom)
			size = minFontSize + scale*(maxFontSize-minFontSize)
		}
		word := Word{Text: freq.Word, Count: freq.Count, Size: math.Round(size), Color: palette[i%len(palette)]}
		if place(&word, placed) {
			placed = append(placed, word)
		}
	}
	return placed
}

func place(word *Word, placed []Word) bool {
	w, h := extent(*word)
	for step := 0; step < maxSpiralPos; step++ {
		angle := float64(step) * spiralStep
		radius := 4 * angle
		x := cloudWidth/2 + radius*math.Cos(angle) - w/2
		y := cloudHeight/2 + radius*math.Sin(angle)
		if x < 0 || y-h < 0 || x+w > cloudWidth || y > cloudHeight {
			continue
		}
		word.X, word.Y = math.Round(x), math.Round(y)
		if !overlapsAny(*word, placed) {
			return true
		}
	}
	return false
}

func extent(word Word) (float64, float64) {
	return float64(len([]rune(word.Text))) * word.Size * charAspect, word.Size
}

func overlapsAny(word Word, placed []Word) bool {
	w, h := extent(word)
	for _, other := range placed {
		ow, oh := extent(other)
		if word.X < other.X+ow && other.X < word.X+w && word.Y-h < other.Y && other.Y-oh < word.Y {
			return true
		}
	}
	return false
}

// RenderSVG writes words as a standalone SVG document.
func RenderSVG(w io.Writer, words []Word) error {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n", cloudWidth, cloudHeight, cloudWidth, cloudHeight)
	fmt.Fprintf(&b, `  <rect width="100%%" height="100%%" fill="white"/>`+"\n")
	for _, word := range words {
		fmt.Fprintf(&b, `  <text x="%s" y="%s" font-family="Helvetica, Arial, sans-serif" font-size="%s" fill="%s">%s</text>`+"\n",
			num(word.X), num(word.Y), num(word.Size), word.Color, html.EscapeString(word.Text))
	}
	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// SaveWordcloud renders scrape to an SVG file and returns its path.
func SaveWordcloud(scrapesDir string, scrape Scrape, maxWords int) (string, error) {
	dir, err := outputDir(scrapesDir, scrape.Path, "wordclouds")
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, baseName(scrape.Path)+"-"+WordcloudTool+".svg")
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	if err := RenderSVG(file, Layout(Count(scrape.Texts), maxWords)); err != nil {
		return "", err
	}
	return path, file.Close()
}

// ShowWordcloud prints the weighted word list instead of saving an image.
func ShowWordcloud(w io.Writer, scrape Scrape, maxWords int, colorEnabled bool) error {
	words := Layout(Count(scrape.Texts), maxWords)
	rows := make([][]string, 0, len(words))
	for _, word := range words {
		rows = append(rows, []string{word.Text, strconv.Itoa(word.Count), num(word.Size)})
	}
	return export.WriteTable(w, []string{"word", "frequency", "size"}, rows, colorEnabled)
}

func num(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
