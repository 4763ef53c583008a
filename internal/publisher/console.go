package publisher

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// ConsolePublisher prints a report for the interactive user.
type ConsolePublisher struct {
	out     io.Writer
	heading *color.Color
	warn    *color.Color
}

// NewConsolePublisher writes to out, or stdout when out is nil. Colour is
// applied only when the terminal supports it.
func NewConsolePublisher(out io.Writer) *ConsolePublisher {
	if out == nil {
		out = os.Stdout
	}
	return &ConsolePublisher{
		out:     out,
		heading: color.New(color.FgCyan, color.Bold),
		warn:    color.New(color.FgYellow),
	}
}

func (p *ConsolePublisher) Publish(_ context.Context, report *Report) error {
	if report.FetchErr != nil {
		p.warn.Fprintf(p.out, "Error during API request: %v\n", report.FetchErr)
	}
	if len(report.Articles) == 0 {
		fmt.Fprintln(p.out, "No articles found.")
		return nil
	}

	fmt.Fprintln(p.out)
	p.heading.Fprintln(p.out, "Top Articles:")
	for i, a := range report.Articles {
		fmt.Fprintf(p.out, "%d. %s (%s)\n", i+1, a.Title, a.PublishedAt)
		fmt.Fprintf(p.out, "   URL: %s\n", a.URL)
	}

	if report.ExportPath != "" {
		fmt.Fprintf(p.out, "\nResults saved to %s\n", report.ExportPath)
	}

	fmt.Fprintln(p.out)
	p.heading.Fprintln(p.out, "Summary of Top Headlines:")
	fmt.Fprintln(p.out, report.Summary)

	fmt.Fprintln(p.out)
	p.heading.Fprintln(p.out, "Named Entities:")
	if len(report.Entities) == 0 {
		fmt.Fprintln(p.out, "No named entities found.")
		return nil
	}

	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"Entity", "Count"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for _, e := range report.Entities {
		table.Append([]string{e.Text, strconv.Itoa(e.Count)})
	}
	table.Render()

	return nil
}
