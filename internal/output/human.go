package output

import (
	"bytes"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
)

// writeHumanSection prints label and then docs as an indented array of
// relaxed Extended JSON documents, the way the mongo shell's printjson does.
func writeHumanSection(w io.Writer, label string, docs []any) error {
	body, err := extJSONArray(docs)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, StyledText(label+":", labelStyle))
	_, err = fmt.Fprintln(w, body)
	return err
}

func extJSONArray(docs []any) (string, error) {
	if len(docs) == 0 {
		return "[]", nil
	}

	var buf bytes.Buffer
	buf.WriteString("[\n")
	for i, doc := range docs {
		b, err := bson.MarshalExtJSONIndent(doc, false, false, "  ", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal document %d: %w", i, err)
		}
		buf.WriteString("  ")
		buf.Write(b)
		if i < len(docs)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte(']')
	return buf.String(), nil
}
