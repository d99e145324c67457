package aggregate

import (
	"io"
	"strconv"

	"brc/radix"

	"github.com/olekukonko/tablewriter"
)

type Entry struct {
	Name string
	radix.Stats
}

// String renders the entry as name=min/mean/max.
func (e Entry) String() string {
	return string(e.appendTo(nil))
}

func (e Entry) appendTo(b []byte) []byte {
	b = append(b, e.Name...)
	b = append(b, '=')
	b = radix.AppendTenths(b, int64(e.Min))
	b = append(b, '/')
	b = radix.AppendTenths(b, e.Mean())
	b = append(b, '/')
	return radix.AppendTenths(b, int64(e.Max))
}

// Result is the merged aggregate, sorted by name.
type Result []Entry

func (r Result) String() string {
	b := make([]byte, 0, 2+len(r)*32)
	b = append(b, '{')
	for i, e := range r {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = e.appendTo(b)
	}
	b = append(b, '}')
	return string(b)
}

func (r Result) WriteTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Min", "Mean", "Max", "Count"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, e := range r {
		table.Append([]string{
			e.Name,
			formatTenths(int64(e.Min)),
			formatTenths(e.Mean()),
			formatTenths(int64(e.Max)),
			strconv.FormatInt(e.Count, 10),
		})
	}
	table.Render()
}

func formatTenths(v int64) string {
	return string(radix.AppendTenths(nil, v))
}
