package streamio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rawblock/graphprobe/internal/streamhash"
	"github.com/rawblock/graphprobe/pkg/models"
)

// ReadVertexList parses the vertex list file format (spec.md §6):
// "<vertex>[,<ignored>]" one per line. Used by IDEngine to pre-enumerate
// the vertex set.
func ReadVertexList(r io.Reader, idx *streamhash.VertexIndexer) ([]models.VertexId, error) {
	scanner := bufio.NewScanner(r)
	var out []models.VertexId
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tok := line
		if i := strings.IndexByte(line, ','); i >= 0 {
			tok = line[:i]
		}
		v, err := resolveVertex(tok, idx)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Err: err}
		}
		out = append(out, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("streamio: reading vertex list: %w", err)
	}
	return out, nil
}
