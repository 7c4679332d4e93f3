// Package streamio implements the external edge/vertex stream format
// (spec.md §6): parsing, the insertion-only to insertion-deletion
// transform, and a progress-logging consume loop. These are external
// collaborators per spec.md §1 — plumbing around the engines, not part of
// the hard algorithmic core.
package streamio

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/rawblock/graphprobe/internal/streamhash"
	"github.com/rawblock/graphprobe/pkg/models"
)

// ParseError reports a malformed stream line. It is recoverable: ReadEdges
// counts and skips the offending line rather than aborting the run
// (spec.md §7).
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("streamio: line %d malformed (%q): %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseEdgeLine parses one insertion-only record: "<u> <v>" with a single
// ASCII space. Non-integer tokens are resolved through idx.
func ParseEdgeLine(line string, idx *streamhash.VertexIndexer) (models.EdgeUpdate, error) {
	fields := strings.Split(line, " ")
	if len(fields) != 2 {
		return models.EdgeUpdate{}, fmt.Errorf("expected exactly one space-separated pair, got %d fields", len(fields))
	}
	u, err := resolveVertex(fields[0], idx)
	if err != nil {
		return models.EdgeUpdate{}, err
	}
	v, err := resolveVertex(fields[1], idx)
	if err != nil {
		return models.EdgeUpdate{}, err
	}
	if u == v {
		return models.EdgeUpdate{}, fmt.Errorf("self-loop u==v==%d is not permitted", u)
	}
	return models.EdgeUpdate{U: u, V: v, Sign: 1}, nil
}

// ParseIDLine parses one insertion-deletion record: "I <u> <v>" or
// "D <u> <v>".
func ParseIDLine(line string, idx *streamhash.VertexIndexer) (models.EdgeUpdate, error) {
	fields := strings.Split(line, " ")
	if len(fields) != 3 {
		return models.EdgeUpdate{}, fmt.Errorf("expected \"I u v\" or \"D u v\", got %d fields", len(fields))
	}
	var sign int8
	switch fields[0] {
	case "I":
		sign = 1
	case "D":
		sign = -1
	default:
		return models.EdgeUpdate{}, fmt.Errorf("unknown record prefix %q, want I or D", fields[0])
	}
	u, err := resolveVertex(fields[1], idx)
	if err != nil {
		return models.EdgeUpdate{}, err
	}
	v, err := resolveVertex(fields[2], idx)
	if err != nil {
		return models.EdgeUpdate{}, err
	}
	if u == v {
		return models.EdgeUpdate{}, fmt.Errorf("self-loop u==v==%d is not permitted", u)
	}
	return models.EdgeUpdate{U: u, V: v, Sign: sign}, nil
}

func resolveVertex(tok string, idx *streamhash.VertexIndexer) (models.VertexId, error) {
	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("vertex id %d must be non-negative", n)
		}
		return models.VertexId(n), nil
	}
	return idx.Index(tok), nil
}

// EdgeVisitor is called once per successfully parsed edge update. Returning
// false requests early termination of the scan (spec.md §5: "early
// termination is a clean return from the update loop").
type EdgeVisitor func(models.EdgeUpdate) bool

// ReadEdges streams r line by line, parsing each with ParseIDLine (idMode)
// or ParseEdgeLine, invoking
// visit for every successfully parsed edge, and logging+counting malformed
// lines instead of aborting (spec.md §7's ParseError recovery policy). It
// logs progress every progressEvery edges, matching the teacher's
// "[BlockScanner] Progress: ..." cadence in internal/scanner/block_scanner.go.
func ReadEdges(r io.Reader, idx *streamhash.VertexIndexer, idMode bool, progressEvery int, visit EdgeVisitor) (scanned, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		var edge models.EdgeUpdate
		var perr error
		if idMode {
			edge, perr = ParseIDLine(line, idx)
		} else {
			edge, perr = ParseEdgeLine(line, idx)
		}
		if perr != nil {
			skipped++
			log.Printf("[streamio] skipping malformed line %d: %v", lineNo, &ParseError{Line: lineNo, Text: line, Err: perr})
			continue
		}

		keepGoing := visit(edge)
		scanned++
		if progressEvery > 0 && scanned%progressEvery == 0 {
			log.Printf("[streamio] progress: %d edges scanned, %d skipped", scanned, skipped)
		}
		if !keepGoing {
			break
		}
	}
	if scanErr := scanner.Err(); scanErr != nil {
		return scanned, skipped, fmt.Errorf("streamio: reading stream: %w", scanErr)
	}
	return scanned, skipped, nil
}
