// Package output renders results on stdout, either as aligned text for
// people or as indented JSON (`--json`) for scripts.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/taskdb/taskdb/internal/health"
	"github.com/taskdb/taskdb/internal/model"
	"github.com/taskdb/taskdb/internal/repository"
)

type Printer struct {
	w    io.Writer
	json bool
}

func New(w io.Writer, asJSON bool) *Printer {
	return &Printer{w: w, json: asJSON}
}

// JSON reports whether the printer emits JSON.
func (p *Printer) JSON() bool {
	return p.json
}

// Writer returns the underlying destination.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// PrintJSON pretty-prints any value as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Errorf("marshalling JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// Println writes a plain status line. It is silent in JSON mode so
// stdout stays parseable.
func (p *Printer) Println(a ...any) {
	if p.json {
		return
	}
	fmt.Fprintln(p.w, a...)
}

func (p *Printer) Printf(format string, a ...any) {
	if p.json {
		return
	}
	fmt.Fprintf(p.w, format, a...)
}

// Value formats one column value; NULL stands for nil.
func Value(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// Table writes rows under a header, aligned with tabwriter.
func Table(w io.Writer, columns []string, rows [][]any) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if len(columns) > 0 {
		fmt.Fprintln(tw, strings.Join(columns, "\t"))
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = Value(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// Result prints what a catalog statement produced.
func (p *Printer) Result(r *repository.Result) error {
	if p.json {
		return PrintJSON(p.w, r)
	}

	if r.Kind == "read" {
		fmt.Fprintln(p.w, "--- RESULT ---")
		if err := Table(p.w, r.Columns, r.Rows); err != nil {
			return err
		}
		_, err := fmt.Fprintf(p.w, "(%d %s)\n", len(r.Rows), plural(len(r.Rows), "row", "rows"))
		return err
	}

	if r.ReturnedID != nil {
		_, err := fmt.Fprintf(p.w, "Done. New id: %d\n", *r.ReturnedID)
		return err
	}
	_, err := fmt.Fprintf(p.w, "Done. %d %s affected.\n", r.RowsAffected, plural(int(r.RowsAffected), "row", "rows"))
	return err
}

// CatLine renders "* _id: ... | name: barsik | age: 3 | features: [a b]".
func CatLine(c model.Cat) string {
	return fmt.Sprintf("* _id: %s | name: %s | age: %d | features: [%s]",
		c.ID.Hex(), c.Name, c.Age, strings.Join(c.Features, ", "))
}

func (p *Printer) Cats(cats []model.Cat) error {
	if p.json {
		return PrintJSON(p.w, cats)
	}
	for _, c := range cats {
		fmt.Fprintln(p.w, CatLine(c))
	}
	return nil
}

func (p *Printer) Cat(c *model.Cat) error {
	if p.json {
		return PrintJSON(p.w, c)
	}
	_, err := fmt.Fprintln(p.w, CatLine(*c))
	return err
}

// Strings prints one item per line, or a JSON array.
func (p *Printer) Strings(items []string) error {
	if p.json {
		return PrintJSON(p.w, items)
	}
	for _, s := range items {
		fmt.Fprintln(p.w, s)
	}
	return nil
}

func (p *Printer) Health(r health.Report) error {
	if p.json {
		return PrintJSON(p.w, r)
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CHECK\tSTATUS\tRESPONSE TIME\tERROR")
	for _, c := range r.Checks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Name, c.Status, c.ResponseTime.Round(time.Millisecond), c.Error)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(p.w, "overall: %s\n", r.Status)
	return err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
