// Package corpus loads training corpora from disk and feeds them to a classifier.
package corpus

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/samuel/lyric-classifier/classifier"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrCorpusUnavailable is wrapped by every error caused by a corpus that could not be read.
var ErrCorpusUnavailable = errors.New("corpus: unavailable")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Source names a corpus file and the class its text belongs to.
type Source struct {
	Path     string
	Class    classifier.Class
	Encoding string // see Decode; empty means utf8
}

// Decode converts data from the named encoding to a UTF-8 string.
// Supported encodings: "utf8", "iso-8859-1" (or "latin1"), "windows-1252", "cp437", "cp850".
// A UTF-8 BOM is stripped if present.
func Decode(data []byte, enc string) (string, error) {
	var decoder *encoding.Decoder

	switch strings.ToLower(enc) {
	case "", "utf8", "utf-8":
		return string(bytes.TrimPrefix(data, utf8BOM)), nil
	case "iso-8859-1", "latin1":
		decoder = charmap.ISO8859_1.NewDecoder()
	case "windows-1252", "cp1252":
		decoder = charmap.Windows1252.NewDecoder()
	case "cp437":
		decoder = charmap.CodePage437.NewDecoder()
	case "cp850":
		decoder = charmap.CodePage850.NewDecoder()
	default:
		return "", fmt.Errorf("corpus: unsupported encoding %q", enc)
	}

	utf8Data, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), decoder))
	if err != nil {
		return "", fmt.Errorf("corpus: decode %s: %w", enc, err)
	}
	return string(bytes.TrimPrefix(utf8Data, utf8BOM)), nil
}

// Load reads and decodes the corpus at src.Path.
func Load(src Source) (string, error) {
	data, err := os.ReadFile(src.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCorpusUnavailable, err)
	}
	return Decode(data, src.Encoding)
}

// Train loads every source and trains it into c, in order. It returns the number of
// corpora trained. When skipUnavailable is set, corpora that cannot be read are logged to
// logger (if not nil) and skipped; otherwise the first failure stops training.
func Train(c *classifier.Classifier, sources []Source, skipUnavailable bool, logger *log.Logger) (int, error) {
	trained := 0
	for _, src := range sources {
		text, err := Load(src)
		if err != nil {
			if skipUnavailable && errors.Is(err, ErrCorpusUnavailable) {
				if logger != nil {
					logger.Printf("skipping %s corpus: %v", src.Class, err)
				}
				continue
			}
			return trained, err
		}
		if err := c.Train(src.Class, text); err != nil {
			return trained, fmt.Errorf("train %s from %s: %w", src.Class, src.Path, err)
		}
		trained++
	}
	return trained, nil
}
