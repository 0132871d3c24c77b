package text

import (
	"strings"
)

const (
	DocumentTitle     = "Document"
	IntroductionTitle = "Introduction"
)

type Chunk struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type header struct {
	start int // offset of the header line
	end   int // offset right after the header line

	marker string
	title  string
}

// ChunkByHeaders splits markdown into sections at level one and two ATX headers.
// Deeper headers stay inside the enclosing section.
func ChunkByHeaders(markdown string) []Chunk {
	headers := scanHeaders(markdown)

	if len(headers) == 0 {
		return []Chunk{
			{
				Title:   DocumentTitle,
				Content: strings.TrimSpace(markdown),
			},
		}
	}

	var chunks []Chunk

	if intro := strings.TrimSpace(markdown[:headers[0].start]); intro != "" {
		chunks = append(chunks, Chunk{
			Title:   IntroductionTitle,
			Content: intro,
		})
	}

	for i, h := range headers {
		stop := len(markdown)

		if i+1 < len(headers) {
			stop = headers[i+1].start
		}

		body := strings.TrimSpace(markdown[h.end:stop])

		content := h.marker + " " + h.title + "\n\n" + body

		chunks = append(chunks, Chunk{
			Title:   h.title,
			Content: strings.TrimSpace(content),
		})
	}

	return chunks
}

func scanHeaders(markdown string) []header {
	var result []header

	for offset := 0; offset < len(markdown); {
		end := strings.IndexByte(markdown[offset:], '\n')

		next := len(markdown)

		if end >= 0 {
			next = offset + end + 1
		}

		line := strings.TrimRight(markdown[offset:next], "\r\n")

		if marker, title, ok := parseHeader(line); ok {
			result = append(result, header{
				start: offset,
				end:   next,

				marker: marker,
				title:  title,
			})
		}

		offset = next
	}

	return result
}

// parseHeader matches "#" or "##", at least one space or tab, then a non-blank title.
func parseHeader(line string) (string, string, bool) {
	level := 0

	for level < len(line) && line[level] == '#' {
		level++
	}

	if level < 1 || level > 2 {
		return "", "", false
	}

	rest := line[level:]

	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", "", false
	}

	title := strings.TrimSpace(rest)

	if title == "" {
		return "", "", false
	}

	return line[:level], title, true
}
