package commenter

import "strings"

// Document is the contents of one file as an ordered list of lines.
// Every line keeps its own terminator ("\n" or "\r\n"); only the final line
// may lack one. Joining the lines yields the original bytes.
type Document []string

// ParseDocument splits data after every newline.
func ParseDocument(data []byte) Document {
	if len(data) == 0 {
		return Document{}
	}

	text := string(data)
	doc := make(Document, 0, strings.Count(text, "\n")+1)

	for len(text) > 0 {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			doc = append(doc, text)
			break
		}
		doc = append(doc, text[:idx+1])
		text = text[idx+1:]
	}

	return doc
}

// Bytes joins the lines back into file contents.
func (d Document) Bytes() []byte {
	return []byte(d.String())
}

func (d Document) String() string {
	var buf strings.Builder
	size := 0
	for _, line := range d {
		size += len(line)
	}
	buf.Grow(size)
	for _, line := range d {
		buf.WriteString(line)
	}
	return buf.String()
}

// Text returns line i without its terminator.
func (d Document) Text(i int) string {
	body, _ := splitTerminator(d[i])
	return body
}

// Clone returns a copy that can be modified independently.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	copy(out, d)
	return out
}

// splitTerminator separates a line from its trailing line terminator.
func splitTerminator(line string) (body, terminator string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	default:
		return line, ""
	}
}
