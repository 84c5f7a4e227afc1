package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.mongodb.org/mongo-driver/bson"
)

// writeTableSection prints label and a table whose columns are the documents'
// field names in first-seen order. Fields a document lacks render empty.
func writeTableSection(w io.Writer, label string, docs []any) error {
	fmt.Fprintln(w, StyledText(label+":", labelStyle))
	if len(docs) == 0 {
		_, err := fmt.Fprintln(w, StyledText("(no results)", infoStyle))
		return err
	}

	headers, rows, err := tabulate(docs)
	if err != nil {
		return err
	}

	t := table.New().
		Headers(headers...).
		Rows(rows...)
	if ColorsEnabled() {
		t = t.Border(lipgloss.NormalBorder()).
			BorderStyle(borderStyle).
			StyleFunc(func(row, col int) lipgloss.Style {
				s := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
				if row == table.HeaderRow {
					return headerStyle.PaddingLeft(1).PaddingRight(1)
				}
				return s
			})
	} else {
		t = t.Border(lipgloss.ASCIIBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				return lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
			})
	}

	_, err = fmt.Fprintln(w, t.Render())
	return err
}

// tabulate flattens docs into a header row and string cells.
func tabulate(docs []any) ([]string, [][]string, error) {
	var headers []string
	index := make(map[string]int)
	records := make([]map[string]string, len(docs))

	for i, doc := range docs {
		raw, err := bson.Marshal(doc)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal document %d: %w", i, err)
		}
		elems, err := bson.Raw(raw).Elements()
		if err != nil {
			return nil, nil, fmt.Errorf("read document %d: %w", i, err)
		}

		rec := make(map[string]string, len(elems))
		for _, e := range elems {
			key := e.Key()
			if _, ok := index[key]; !ok {
				index[key] = len(headers)
				headers = append(headers, key)
			}
			rec[key] = cell(e.Value())
		}
		records[i] = rec
	}

	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(headers))
		for j, h := range headers {
			row[j] = rec[h]
		}
		rows[i] = row
	}
	return headers, rows, nil
}

func cell(v bson.RawValue) string {
	switch v.Type {
	case bson.TypeString:
		return v.StringValue()
	case bson.TypeInt32:
		return fmt.Sprint(v.Int32())
	case bson.TypeInt64:
		return fmt.Sprint(v.Int64())
	case bson.TypeBoolean:
		return fmt.Sprint(v.Boolean())
	case bson.TypeDateTime:
		return v.Time().UTC().Format(time.RFC3339)
	case bson.TypeNull:
		return ""
	case bson.TypeArray:
		vals, err := v.Array().Values()
		if err != nil {
			return v.String()
		}
		parts := make([]string, len(vals))
		for i, el := range vals {
			parts[i] = cell(el)
		}
		return strings.Join(parts, ", ")
	default:
		return v.String()
	}
}
