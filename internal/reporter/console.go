package reporter

import (
	"fmt"
	"io"
	"os"

	"go-jobpulse/internal/scraper"
)

// ConsoleReporter prints listings in a fixed human-readable layout.
type ConsoleReporter struct {
	out io.Writer
}

func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleReporter{out: out}
}

func (c *ConsoleReporter) PrintListings(listings []scraper.Listing) error {
	if _, err := fmt.Fprintf(c.out, "Found %d job(s)\n", len(listings)); err != nil {
		return err
	}
	for i, job := range listings {
		_, err := fmt.Fprintf(c.out,
			"\nJob %d:\n"+
				"- Title: %s\n"+
				"- Company: %s\n"+
				"- Location: %s\n"+
				"- URL: %s\n",
			i+1, job.Title, job.Company, job.Location, job.Link,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
