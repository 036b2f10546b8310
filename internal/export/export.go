// Package export writes a run's novel batch to a file or stream, for CI
// artifacts and local inspection.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/suhasramanand/intern-alert/internal/models"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
)

func WriteJobs(w io.Writer, jobs []models.Job, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, jobs)
	case FormatMarkdown:
		return writeMarkdown(w, jobs)
	default:
		return writeTable(w, jobs)
	}
}

func writeJSON(w io.Writer, jobs []models.Job) error {
	if jobs == nil {
		jobs = []models.Job{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jobs)
}

func writeTable(w io.Writer, jobs []models.Job) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tTITLE\tCOMPANY\tPOSTED\tURL")
	for _, job := range jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			job.Source, job.Title, job.Company, job.Display(), job.URL)
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, jobs []models.Job) error {
	if _, err := fmt.Fprintln(w, "| Source | Title | Company | Posted | Link |"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "| --- | --- | --- | --- | --- |"); err != nil {
		return err
	}
	for _, job := range jobs {
		_, err := fmt.Fprintf(w, "| %s | %s | %s | %s | [apply](%s) |\n",
			job.Source, escapePipes(job.Title), escapePipes(job.Company), job.Display(), job.URL)
		if err != nil {
			return err
		}
	}
	return nil
}

func escapePipes(value string) string {
	return strings.ReplaceAll(value, "|", `\|`)
}
