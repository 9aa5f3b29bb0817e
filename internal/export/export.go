package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jimezsa/urs/internal/models"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// DateLayout names the per-day directory scrapes and logs are written to.
const DateLayout = "01-02-2006"

// FormatFor picks CSV when the --csv flag is set and JSON otherwise.
func FormatFor(csvFlag bool) Format {
	if csvFlag {
		return FormatCSV
	}
	return FormatJSON
}

func (f Format) Ext() string {
	return "." + string(f)
}

// DateDir returns root/<MM-DD-YYYY> for t.
func DateDir(root string, t time.Time) string {
	return filepath.Join(root, t.Format(DateLayout))
}

// Envelope is the JSON document written for every scrape. Analytics tools
// refuse files without it.
type Envelope struct {
	ScrapeSettings any `json:"scrape_settings"`
	Data           any `json:"data"`
}

// Dataset is a scrape result ready to be written in either format.
type Dataset struct {
	Settings any
	Header   []string
	Rows     [][]string
	Data     any
}

func Write(w io.Writer, ds Dataset, format Format) error {
	switch format {
	case FormatCSV:
		if ds.Header == nil {
			return fmt.Errorf("csv export is not supported for this scrape")
		}
		return writeCSV(w, ds.Header, ds.Rows)
	case FormatJSON:
		return writeJSON(w, Envelope{ScrapeSettings: ds.Settings, Data: ds.Data})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteFile creates path, including missing parent directories, and writes ds to it.
func WriteFile(path string, ds Dataset, format Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := Write(file, ds, format); err != nil {
		return err
	}
	return file.Close()
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteTable renders a column-aligned table, bolding the header when color is enabled.
func WriteTable(w io.Writer, header []string, rows [][]string, colorEnabled bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	head := strings.Join(header, "\t")
	if colorEnabled {
		output := termenv.NewOutput(w)
		head = output.String(head).Bold().String()
	}
	fmt.Fprintln(tw, head)
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func PostsDataset(settings any, posts []models.Post) Dataset {
	out := make([][]string, 0, len(posts))
	for _, post := range posts {
		out = append(out, postRow(post))
	}
	return Dataset{
		Settings: settings,
		Header:   postHeader(),
		Rows:     out,
		Data:     nonNil(posts),
	}
}

func CommentsDataset(settings any, comments []models.Comment) Dataset {
	out := make([][]string, 0, len(comments))
	for _, comment := range comments {
		out = append(out, commentRow(comment))
	}
	return Dataset{
		Settings: settings,
		Header:   commentHeader(),
		Rows:     out,
		Data:     nonNil(comments),
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func postHeader() []string {
	return []string{
		"id",
		"subreddit",
		"title",
		"author",
		"selftext",
		"url",
		"permalink",
		"score",
		"upvote_ratio",
		"num_comments",
		"nsfw",
		"flair",
		"created_utc",
	}
}

func postRow(post models.Post) []string {
	return []string{
		post.ID,
		post.Subreddit,
		post.Title,
		post.Author,
		post.Selftext,
		post.URL,
		post.Permalink,
		strconv.Itoa(post.Score),
		strconv.FormatFloat(post.UpvoteRatio, 'f', -1, 64),
		strconv.Itoa(post.NumComments),
		strconv.FormatBool(post.NSFW),
		post.Flair,
		formatTime(post.CreatedUTC),
	}
}

func commentHeader() []string {
	return []string{
		"id",
		"parent_id",
		"author",
		"body",
		"score",
		"depth",
		"is_submitter",
		"edited",
		"created_utc",
	}
}

func commentRow(comment models.Comment) []string {
	return []string{
		comment.ID,
		comment.ParentID,
		comment.Author,
		comment.Body,
		strconv.Itoa(comment.Score),
		strconv.Itoa(comment.Depth),
		strconv.FormatBool(comment.IsSubmitter),
		strconv.FormatBool(comment.Edited),
		formatTime(comment.CreatedUTC),
	}
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}
