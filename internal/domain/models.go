package domain

import "time"

// Target is one URL to probe. Duplicates in a target list are probed
// independently.
type Target struct {
	URL string `json:"url"`
}

// Outcome is the result of one probe attempt: either Success with the HTTP
// status code or Failure with a human-readable message. Use Success and
// Failure to build one; the zero Outcome is a Failure.
type Outcome struct {
	up         bool
	statusCode int
	message    string
}

func Success(statusCode int) Outcome {
	return Outcome{up: true, statusCode: statusCode}
}

func Failure(message string) Outcome {
	if message == "" {
		message = "unknown error"
	}
	return Outcome{message: message}
}

// Up reports whether the attempt got any HTTP response.
func (o Outcome) Up() bool { return o.up }

// StatusCode is 0 for failures.
func (o Outcome) StatusCode() int { return o.statusCode }

// Message is empty for successes.
func (o Outcome) Message() string {
	if !o.up && o.message == "" {
		return "no attempt made"
	}
	return o.message
}

// ProbeResult is the retry-resolved verdict for one Target. Elapsed covers
// every attempt, failures included.
type ProbeResult struct {
	Target   Target
	Outcome  Outcome
	Elapsed  time.Duration
	Attempts int
}

type Summary struct {
	Total int `json:"total"`
	Up    int `json:"up"`
	Down  int `json:"down"`
}

func Summarize(results []ProbeResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Outcome.Up() {
			s.Up++
		} else {
			s.Down++
		}
	}
	return s
}
