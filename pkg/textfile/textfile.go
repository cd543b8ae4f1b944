// Package textfile rewrites date tokens found in plain text content.
//
// The file's byte encoding is detected before decoding, candidates are
// collected with their byte spans, and only those spans are rewritten, so a
// date-like substring inside unrelated content is never touched.
package textfile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/quidome/timestamp-normalizer-go/pkg/normalize"
	"github.com/quidome/timestamp-normalizer-go/pkg/plan"
	"github.com/quidome/timestamp-normalizer-go/pkg/writeback"
)

// ErrDecode is returned when the file content cannot be decoded as text.
var ErrDecode = errors.New("cannot decode text content")

// Options configures Process.
type Options struct {
	// SourceTimezone is the IANA timezone candidates are assumed to be in.
	SourceTimezone string

	// TargetTimezone is the IANA timezone candidates are converted to.
	TargetTimezone string

	// DryRun reports staged replacements without writing.
	DryRun bool

	// Normalize configures timestamp parsing.
	Normalize normalize.Options
}

// candidate is one date token occurrence with its byte span in the decoded
// content.
type candidate struct {
	token      string
	start, end int
	line, col  int // 1-based, for reporting
}

// Process rewrites date tokens in the text file at path.
//
// All candidates are evaluated and staged first; the file is written at most
// once, in its originally detected encoding. Normalization failures skip the
// candidate; file-level failures return an error without writing.
func Process(logger *log.Logger, path string, opts Options) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	content, enc, err := decode(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("detected encoding", "path", path, "charset", enc.name)

	candidates := findCandidates(content)
	staged := plan.NewSet()
	normalized := make(map[string]string)
	spans := make([]candidate, 0, len(candidates))

	for _, c := range candidates {
		logger.Debug("considering token", "token", c.token, "line", c.line, "col", c.col)

		result, seen := normalized[c.token]
		if !seen {
			var normErr error
			result, normErr = normalize.Normalize(c.token, opts.SourceTimezone, opts.TargetTimezone, opts.Normalize)
			if normErr != nil {
				logger.Warn("failed to normalize token", "token", c.token, "err", normErr)
				normalized[c.token] = ""
				continue
			}
			normalized[c.token] = result
		}
		if result == "" {
			continue
		}

		key := fmt.Sprintf("%d:%d", c.line, c.col)
		if err := staged.Stage(key, c.token, result); err != nil {
			logger.Warn("skipping conflicting candidate", "key", key, "err", err)
			continue
		}
		spans = append(spans, c)
		logger.Info("normalized timestamp", "from", c.token, "to", result, "line", c.line, "col", c.col)
	}

	if staged.Empty() {
		logger.Info("no recognizable timestamps found", "path", path)
		return nil
	}

	if opts.DryRun {
		for _, r := range staged.Items() {
			logger.Info("dry run: would replace", "at", r.Key, "from", r.Original, "to", r.Normalized)
		}
		return nil
	}

	rewritten := applySpans(content, spans, normalized)

	out, err := enc.encode(rewritten)
	if err != nil {
		return fmt.Errorf("re-encode %s: %w", path, err)
	}
	if err := writeback.WriteFile(path, out); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	logger.Info("rewrote timestamps", "path", path, "replacements", staged.Len())
	return nil
}

// findCandidates returns every whitespace-delimited token that matches the
// shared date grammar, with its span. Each occurrence is its own candidate,
// so a token appearing twice yields two spans.
func findCandidates(content string) []candidate {
	var out []candidate

	offset := 0
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		start := -1
		for j := 0; j <= len(line); j++ {
			if j < len(line) && !isSpace(line[j]) {
				if start < 0 {
					start = j
				}
				continue
			}
			if start >= 0 {
				token := line[start:j]
				if normalize.IsDateToken(token) {
					out = append(out, candidate{
						token: token,
						start: offset + start,
						end:   offset + j,
						line:  i + 1,
						col:   start + 1,
					})
				}
				start = -1
			}
		}
		offset += len(line) + 1
	}

	return out
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}

// applySpans rewrites the staged spans, which are in ascending order.
func applySpans(content string, spans []candidate, normalized map[string]string) string {
	var b strings.Builder
	b.Grow(len(content))

	last := 0
	for _, c := range spans {
		b.WriteString(content[last:c.start])
		b.WriteString(normalized[c.token])
		last = c.end
	}
	b.WriteString(content[last:])

	return b.String()
}
