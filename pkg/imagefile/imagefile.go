package imagefile

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/quidome/timestamp-normalizer-go/pkg/normalize"
	"github.com/quidome/timestamp-normalizer-go/pkg/plan"
	"github.com/quidome/timestamp-normalizer-go/pkg/writeback"
)

var (
	// ErrNoMetadata is returned when a file carries no readable EXIF data.
	ErrNoMetadata = errors.New("no EXIF data found")

	// ErrRewriteUnsupported is returned when the image container cannot be
	// rewritten in place.
	ErrRewriteUnsupported = errors.New("EXIF rewrite not supported for container")
)

// datetimeTags are the EXIF tags considered for normalization, in evaluation
// order.
var datetimeTags = []string{"DateTime", "DateTimeOriginal", "DateTimeDigitized"}

// TagCodec reads and rewrites the datetime tags of an image byte stream.
//
// ReadDateTimeTags returns the current values of the datetime tags present
// in raw, keyed by tag name, or ErrNoMetadata. ApplyTags returns a copy of
// raw with the given tag values replaced and everything else preserved.
type TagCodec interface {
	ReadDateTimeTags(raw []byte) (map[string]string, error)
	ApplyTags(path string, raw []byte, updates map[string]string) ([]byte, error)
}

// Options configures Process.
type Options struct {
	// SourceTimezone is the IANA timezone EXIF timestamps are assumed to be
	// in; they rarely encode one themselves.
	SourceTimezone string

	// TargetTimezone is the IANA timezone timestamps are converted to.
	TargetTimezone string

	// DryRun reports staged replacements without writing.
	DryRun bool

	// Normalize configures timestamp parsing.
	Normalize normalize.Options

	// Codec optionally overrides EXIF access. If nil, the default
	// goexif-based codec is used.
	Codec TagCodec
}

// Process rewrites the EXIF datetime tags of the image at path.
//
// All tags are evaluated and staged first; the file is written at most once.
// Per-tag normalization failures are logged and skipped. A file with no EXIF
// data is a logged no-op.
func Process(logger *log.Logger, path string, opts Options) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	codec := opts.Codec
	if codec == nil {
		codec = exifCodec{}
	}

	tags, err := codec.ReadDateTimeTags(raw)
	if err != nil {
		if errors.Is(err, ErrNoMetadata) {
			logger.Warn("no EXIF data found", "path", path)
			return nil
		}
		return fmt.Errorf("read EXIF from %s: %w", path, err)
	}

	staged := plan.NewSet()
	for _, tag := range datetimeTags {
		value, ok := tags[tag]
		if !ok {
			continue
		}
		logger.Debug("considering tag", "tag", tag, "value", value)

		result, normErr := normalize.Normalize(value, opts.SourceTimezone, opts.TargetTimezone, opts.Normalize)
		if normErr != nil {
			logger.Warn("failed to normalize tag", "tag", tag, "value", value, "err", normErr)
			continue
		}
		if err := staged.Stage(tag, value, result); err != nil {
			return fmt.Errorf("stage %s: %w", tag, err)
		}
		logger.Info("normalized tag", "tag", tag, "from", value, "to", result)
	}

	if staged.Empty() {
		logger.Info("no datetime tags found or normalized", "path", path)
		return nil
	}

	if opts.DryRun {
		for _, r := range staged.Items() {
			logger.Info("dry run: would update", "tag", r.Key, "from", r.Original, "to", r.Normalized)
		}
		return nil
	}

	updates := make(map[string]string, staged.Len())
	for _, r := range staged.Items() {
		updates[r.Key] = r.Normalized
	}

	out, err := codec.ApplyTags(path, raw, updates)
	if err != nil {
		if errors.Is(err, ErrRewriteUnsupported) {
			logger.Warn("staged changes not written", "path", path, "err", err)
			return nil
		}
		return fmt.Errorf("rewrite EXIF in %s: %w", path, err)
	}

	if err := writeback.WriteFile(path, out); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	logger.Info("updated EXIF data", "path", path, "tags", staged.Len())
	return nil
}
