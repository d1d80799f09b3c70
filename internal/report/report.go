package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hamed0406/sitecheck/internal/domain"
)

// Row is the presentation form of one ProbeResult.
type Row struct {
	URL        string  `json:"url"`
	Status     string  `json:"status"` // "up" or "down"
	StatusCode int     `json:"status_code,omitempty"`
	Error      string  `json:"error,omitempty"`
	Attempts   int     `json:"attempts"`
	ElapsedMS  float64 `json:"elapsed_ms"`
}

func Rows(results []domain.ProbeResult) []Row {
	out := make([]Row, 0, len(results))
	for _, r := range results {
		row := Row{
			URL:       r.Target.URL,
			Attempts:  r.Attempts,
			ElapsedMS: float64(r.Elapsed) / float64(time.Millisecond),
		}
		if r.Outcome.Up() {
			row.Status = "up"
			row.StatusCode = r.Outcome.StatusCode()
		} else {
			row.Status = "down"
			row.Error = r.Outcome.Message()
		}
		out = append(out, row)
	}
	return out
}

// WriteText prints one line per target followed by a summary line.
func WriteText(w io.Writer, results []domain.ProbeResult) error {
	for _, r := range results {
		elapsed := r.Elapsed.Round(time.Millisecond)
		var err error
		if r.Outcome.Up() {
			_, err = fmt.Fprintf(w, "The website %s is up! Status code: %d, Response time: %v\n",
				r.Target.URL, r.Outcome.StatusCode(), elapsed)
		} else {
			_, err = fmt.Fprintf(w, "The website %s is down! Error: %s, Response time: %v\n",
				r.Target.URL, r.Outcome.Message(), elapsed)
		}
		if err != nil {
			return err
		}
	}
	s := domain.Summarize(results)
	_, err := fmt.Fprintf(w, "%d checked, %d up, %d down\n", s.Total, s.Up, s.Down)
	return err
}

type jsonReport struct {
	Summary domain.Summary `json:"summary"`
	Results []Row          `json:"results"`
}

func WriteJSON(w io.Writer, results []domain.ProbeResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		Summary: domain.Summarize(results),
		Results: Rows(results),
	})
}

func Write(w io.Writer, format string, results []domain.ProbeResult) error {
	switch format {
	case "", "text":
		return WriteText(w, results)
	case "json":
		return WriteJSON(w, results)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// DownSummary renders the down targets for a notification. ok is false
// when every target is up.
func DownSummary(results []domain.ProbeResult) (title, text string, ok bool) {
	s := domain.Summarize(results)
	if s.Down == 0 {
		return "", "", false
	}
	var b strings.Builder
	for _, r := range results {
		if r.Outcome.Up() {
			continue
		}
		fmt.Fprintf(&b, "URL: %s\nError: %s\nAttempts: %d\nElapsed: %v\n\n",
			r.Target.URL, r.Outcome.Message(), r.Attempts, r.Elapsed.Round(time.Millisecond))
	}
	title = fmt.Sprintf("🔴 %d of %d targets DOWN", s.Down, s.Total)
	return title, strings.TrimSpace(b.String()), true
}
