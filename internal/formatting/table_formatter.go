package formatting

import (
	"fmt"
	"strings"

	"bundletest/pkg/container"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// maxTagsWidth caps the TAGS column so long tag lists do not wrap the table.
const maxTagsWidth = 60

// TableFormatter provides rich table output formatting
type TableFormatter struct {
	options Options
}

// FormatPaths renders the kernel paths as key-value pairs.
func (f *TableFormatter) FormatPaths(paths Paths) error {
	t := f.createTable()
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("KEY"),
		text.FgHiCyan.Sprint("VALUE"),
	})
	t.AppendRows([]table.Row{
		{"Kernel", paths.Kernel},
		{"Environment", paths.Environment},
		{"Namespace", paths.Namespace},
		{"Hash", paths.Hash},
		{"Cache dir", paths.CacheDir},
		{"Log dir", paths.LogDir},
	})
	t.Render()
	return nil
}

// FormatServices renders one row per service.
func (f *TableFormatter) FormatServices(services []container.ServiceInfo) error {
	if len(services) == 0 {
		f.formatEmptyMessage("📋", "No services found")
		return nil
	}

	t := f.createTable()
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("ID"),
		text.FgHiCyan.Sprint("KIND"),
		text.FgHiCyan.Sprint("PUBLIC"),
		text.FgHiCyan.Sprint("TARGET"),
		text.FgHiCyan.Sprint("TAGS"),
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, WidthMax: maxTagsWidth, WidthMaxEnforcer: text.Trim},
	})

	public := 0
	for _, service := range services {
		visibility := text.FgHiBlack.Sprint("no")
		if service.Public {
			visibility = text.FgGreen.Sprint("yes")
			public++
		}
		t.AppendRow(table.Row{
			text.FgHiWhite.Sprint(service.ID),
			string(service.Kind),
			visibility,
			service.Target,
			strings.Join(service.Tags, ", "),
		})
	}
	t.Render()

	if !f.options.Quiet {
		fmt.Fprintf(f.options.Output, "\n%s %s %s %s\n",
			text.FgHiBlue.Sprint("Total:"),
			text.FgHiWhite.Sprint(len(services)),
			text.FgHiBlue.Sprint("services, public:"),
			text.FgHiWhite.Sprint(public))
	}
	return nil
}

// FormatRegistry renders one row per registered module and kernel.
func (f *TableFormatter) FormatRegistry(registry Registry) error {
	if len(registry.Modules)+len(registry.Kernels) == 0 {
		f.formatEmptyMessage("📋", "Nothing registered")
		return nil
	}

	t := f.createTable()
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("KIND"),
		text.FgHiCyan.Sprint("NAME"),
	})
	for _, name := range registry.Modules {
		t.AppendRow(table.Row{"module", text.FgHiWhite.Sprint(name)})
	}
	for _, name := range registry.Kernels {
		t.AppendRow(table.Row{"kernel", text.FgHiWhite.Sprint(name)})
	}
	t.Render()
	return nil
}

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(f.options.Output)
	t.SetStyle(table.StyleRounded)
	return t
}

// formatEmptyMessage prints an empty result message
func (f *TableFormatter) formatEmptyMessage(icon, message string) {
	fmt.Fprintf(f.options.Output, "%s %s\n", text.FgYellow.Sprint(icon), text.FgYellow.Sprint(message))
}
