/*
Package mode13h is a library for converting true color bitmaps into packed
bitmaps restricted to the VGA mode 13h palette.

Conversion is a three stage pipeline: package bmp decodes the source pixels,
package palette maps every pixel to its nearest VGA color, and package pbm
writes the resulting indices. Each stage only depends on the image handed to
it so independent conversions can safely run in parallel.
*/
package mode13h

import (
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"io/ioutil"
	"log"

	"github.com/bodgit/mode13h/bmp"
	"github.com/bodgit/mode13h/palette"
	"github.com/bodgit/mode13h/pbm"
)

// Converter converts bitmaps, optionally remembering the results in a
// ConversionDB.
type Converter struct {
	db     *ConversionDB
	logger *log.Logger
}

// New returns a Converter. db may be nil to disable caching.
func New(db *ConversionDB, logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Converter{
		db:     db,
		logger: logger,
	}
}

// Convert decodes the bitmap in b and returns it encoded as a packed bitmap.
// Malformed input is reported as a bmp.FormatError.
func Convert(b []byte) ([]byte, error) {
	m, err := bmp.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	pm := palette.Quantize(m)

	out := bytes.NewBuffer(make([]byte, 0, pbm.HeaderSize+len(pm.Pix)))
	if err := pbm.Encode(out, pm); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

func checksum(b []byte) string {
	return fmt.Sprintf("%X", sha1.Sum(b))
}

// Convert is like the package level Convert but consults the cache first.
func (c *Converter) Convert(b []byte) ([]byte, error) {
	if c.db == nil {
		return Convert(b)
	}

	sum := checksum(b)

	out, err := c.db.Lookup(sum)
	if err != nil {
		return nil, err
	}
	if out != nil {
		c.logger.Printf("Using cached conversion %s\n", sum)
		return out, nil
	}

	if out, err = Convert(b); err != nil {
		return nil, err
	}

	config, err := pbm.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		return nil, err
	}

	if err := c.db.Store(sum, config.Width, config.Height, out); err != nil {
		return nil, err
	}

	return out, nil
}

// ConvertFile converts the bitmap in file in and writes the packed bitmap to
// file out. Nothing is written unless the conversion succeeds.
func (c *Converter) ConvertFile(in, out string) error {
	b, err := ioutil.ReadFile(in)
	if err != nil {
		return err
	}

	p, err := c.Convert(b)
	if err != nil {
		var fe bmp.FormatError
		if errors.As(err, &fe) {
			return fmt.Errorf("%s: %w", in, err)
		}
		return err
	}

	if err := ioutil.WriteFile(out, p, 0644); err != nil {
		return err
	}

	c.logger.Printf("Converted \"%s\" to \"%s\"\n", in, out)

	return nil
}
