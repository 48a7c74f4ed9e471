package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cristianoliveira/toastbox/internal/colors"
	"github.com/cristianoliveira/toastbox/internal/history"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// HeaderColor is the color to use for headers.
	HeaderColor string

	// ColorSeverity paints the severity cell with its level color.
	ColorSeverity bool

	// ColumnWidths defines the width for each column.
	ColumnWidths map[string]int

	// ColumnAlignments defines the alignment for each column (left, right, center).
	ColumnAlignments map[string]string
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
		ColumnWidths: map[string]int{
			"Time":     19,
			"Event":    7,
			"Severity": 8,
			"Duration": 8,
			"Message":  40,
		},
		ColumnAlignments: map[string]string{
			"Time":     "left",
			"Event":    "left",
			"Severity": "left",
			"Duration": "right",
		},
	}
}

// TableColumn represents a column in a table.
type TableColumn struct {
	// Name is the column name displayed in the header.
	Name string

	// Width is the column width in characters.
	Width int

	// Alignment is the text alignment (left, right, center).
	Alignment string

	// Extractor extracts the value from an entry.
	Extractor func(*history.Entry) string
}

// TableFormatter renders history entries as an aligned table.
type TableFormatter struct {
	config  *TableConfig
	columns []TableColumn
}

// NewTableFormatter creates a new TableFormatter with default columns.
func NewTableFormatter() *TableFormatter {
	return NewTableFormatterWithConfig(DefaultTableConfig())
}

// NewTableFormatterWithConfig creates a TableFormatter using config.
func NewTableFormatterWithConfig(config *TableConfig) *TableFormatter {
	col := func(name string, value func(*history.Entry) string) TableColumn {
		width, align := config.ColumnWidths[name], config.ColumnAlignments[name]
		return TableColumn{
			Name:      name,
			Width:     width,
			Alignment: align,
			Extractor: func(e *history.Entry) string {
				return formatString(value(e), width, align)
			},
		}
	}
	columns := []TableColumn{
		col("Time", func(e *history.Entry) string { return e.At.Local().Format(entryTimeLayout) }),
		col("Event", func(e *history.Entry) string { return string(e.Event) }),
		col("Severity", func(e *history.Entry) string { return e.Severity.String() }),
		col("Duration", func(e *history.Entry) string { return formatDurationMs(e.DurationMs) }),
		{
			Name:  "Message",
			Width: config.ColumnWidths["Message"],
			Extractor: func(e *history.Entry) string {
				return truncateString(e.Message, config.ColumnWidths["Message"])
			},
		},
	}
	if config.ColorSeverity {
		plain := columns[2].Extractor
		columns[2].Extractor = func(e *history.Entry) string {
			c := colors.ForSeverity(e.Severity.String())
			if c == "" {
				return plain(e)
			}
			return c + plain(e) + colors.Reset
		}
	}
	return &TableFormatter{
		config:  config,
		columns: columns,
	}
}

// WithColumns adds custom columns to the formatter.
func (f *TableFormatter) WithColumns(columns ...TableColumn) *TableFormatter {
	f.columns = append(f.columns, columns...)
	return f
}

// FormatEntries formats entries in table format.
func (f *TableFormatter) FormatEntries(entries []history.Entry, writer io.Writer) error {
	if len(entries) == 0 {
		return nil
	}

	if f.config.ShowHeaders {
		if err := f.writeHeader(writer); err != nil {
			return err
		}
		if err := f.writeSeparator(writer); err != nil {
			return err
		}
	}

	for i := range entries {
		if err := f.writeRow(&entries[i], writer); err != nil {
			return err
		}
	}
	return nil
}

func (f *TableFormatter) writeHeader(writer io.Writer) error {
	cells := make([]string, len(f.columns))
	for i, col := range f.columns {
		cells[i] = formatString(col.Name, col.Width, "left")
	}
	return f.writeDecorated(writer, cells)
}

func (f *TableFormatter) writeSeparator(writer io.Writer) error {
	cells := make([]string, len(f.columns))
	for i, col := range f.columns {
		cells[i] = makeSeparator(col.Width)
	}
	return f.writeDecorated(writer, cells)
}

func (f *TableFormatter) writeDecorated(writer io.Writer, cells []string) error {
	line := strings.TrimRight(strings.Join(cells, "  "), " ")
	if f.config.HeaderColor != "" {
		line = f.config.HeaderColor + line + colors.Reset
	}
	_, err := fmt.Fprintln(writer, line)
	return err
}

func (f *TableFormatter) writeRow(entry *history.Entry, writer io.Writer) error {
	cells := make([]string, len(f.columns))
	for i, col := range f.columns {
		cells[i] = col.Extractor(entry)
	}
	_, err := fmt.Fprintln(writer, strings.TrimRight(strings.Join(cells, "  "), " "))
	return err
}

// formatDurationMs renders a lifetime in milliseconds; zero is sticky.
func formatDurationMs(ms int64) string {
	if ms <= 0 {
		return "sticky"
	}
	if ms%1000 == 0 {
		return strconv.FormatInt(ms/1000, 10) + "s"
	}
	return strconv.FormatInt(ms, 10) + "ms"
}

// formatString formats a string with the specified width and alignment.
func formatString(s string, width int, alignment string) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	pad := width - len(r)

	switch alignment {
	case "right":
		return strings.Repeat(" ", pad) + s
	case "center":
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}

// truncateString truncates a string to the specified width, adding "..." if truncated.
func truncateString(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s + strings.Repeat(" ", width-len(r))
	}
	return truncate(s, width)
}

// makeSeparator creates a separator line of the specified width.
func makeSeparator(width int) string {
	return strings.Repeat("-", width)
}
