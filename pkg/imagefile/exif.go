package imagefile

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	exifrw "github.com/dsoprea/go-exif/v3"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
	"github.com/rwcarlsen/goexif/exif"
)

// exifCodec is the default TagCodec: goexif for reading (JPEG and TIFF
// streams), go-jpeg-image-structure for rewriting JPEG containers.
type exifCodec struct{}

func (exifCodec) ReadDateTimeTags(raw []byte) (map[string]string, error) {
	x, err := exif.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrNoMetadata
	}

	tags := make(map[string]string)
	for _, tag := range datetimeTags {
		if s, ok := exifTagString(x, exif.FieldName(tag)); ok {
			tags[tag] = s
		}
	}
	return tags, nil
}

func exifTagString(x *exif.Exif, tag exif.FieldName) (string, bool) {
	f, err := x.Get(tag)
	if err != nil {
		return "", false
	}

	s, err := f.StringVal()
	if err != nil {
		return "", false
	}

	return s, true
}

func (exifCodec) ApplyTags(path string, raw []byte, updates map[string]string) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg":
		return rewriteJPEG(raw, updates)
	default:
		return nil, fmt.Errorf("%w: %s", ErrRewriteUnsupported, ext)
	}
}

// ifdPathForTag maps a datetime tag to the IFD that holds it.
func ifdPathForTag(tag string) string {
	if tag == "DateTime" {
		return "IFD0"
	}
	return "IFD/Exif"
}

func rewriteJPEG(raw []byte, updates map[string]string) ([]byte, error) {
	jmp := jpegstructure.NewJpegMediaParser()
	intfc, err := jmp.ParseBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("parse jpeg: %w", err)
	}
	sl := intfc.(*jpegstructure.SegmentList)

	rootIb, err := sl.ConstructExifBuilder()
	if err != nil {
		return nil, fmt.Errorf("construct exif builder: %w", err)
	}

	for _, tag := range datetimeTags {
		value, ok := updates[tag]
		if !ok {
			continue
		}

		ib, err := exifrw.GetOrCreateIbFromRootIb(rootIb, ifdPathForTag(tag))
		if err != nil {
			return nil, fmt.Errorf("resolve ifd for %s: %w", tag, err)
		}
		if err := ib.SetStandardWithName(tag, value); err != nil {
			return nil, fmt.Errorf("set %s: %w", tag, err)
		}
	}

	if err := sl.SetExif(rootIb); err != nil {
		return nil, fmt.Errorf("set exif segment: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := sl.Write(buf); err != nil {
		return nil, fmt.Errorf("serialize jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
