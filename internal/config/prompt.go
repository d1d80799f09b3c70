package config

import (
	"bufio"
	"fmt"
	"io"
)

// Prompt asks for the three numeric settings on in, one line each. An empty
// line keeps the current value; anything that is not an integer aborts.
func Prompt(in io.Reader, out io.Writer, c *Config) error {
	sc := bufio.NewScanner(in)
	questions := []struct {
		name  string
		text  string
		unit  string
		field *int
	}{
		{"workers", "the number of concurrent workers", "workers", &c.Workers},
		{"timeout", "the timeout duration in seconds", "seconds", &c.TimeoutSeconds},
		{"retries", "the maximum retries per website", "retries", &c.Retries},
	}

	for _, q := range questions {
		fmt.Fprintf(out, "Please enter %s (press Enter to use default %d %s):\n", q.text, *q.field, q.unit)
		line := ""
		if sc.Scan() {
			line = sc.Text()
		} else if err := sc.Err(); err != nil {
			return fmt.Errorf("read %s: %w", q.name, err)
		}
		n, err := ParseCount(q.name, line, *q.field)
		if err != nil {
			return err
		}
		*q.field = n
	}
	return nil
}
