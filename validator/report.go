package validator

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// Report renders r as a comparison table between the formatted grammar
// source and PackCC's generated C, the tabular presentation spec.md
// §4.4 asks the validator for. If validation failed, the table is
// followed by PackCC's captured stderr instead of generated-source
// stats, since there is no generated output to measure.
func (r *Result) Report(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"", "Bytes", "Lines", "Rules", "Terms"})
	table.Append([]string{"Input", fmt.Sprint(r.Input.Bytes), fmt.Sprint(r.Input.Lines), fmt.Sprint(r.Input.Rules), fmt.Sprint(r.Input.Terms)})
	if r.Err == nil {
		table.Append([]string{"Generated", fmt.Sprint(r.Generated.Bytes), fmt.Sprint(r.Generated.Lines), "-", "-"})
	}
	table.Render()

	if r.Err != nil {
		fmt.Fprintln(w, r.Err.Error())
	}
}
