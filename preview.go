package mode13h

import (
	"os"

	"github.com/bodgit/mode13h/pbm"
	"github.com/disintegration/imaging"
)

// Preview decodes the packed bitmap in file in and saves it to file out in
// whichever format the extension of out names, such as .png or .bmp.
func (c *Converter) Preview(in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := pbm.Decode(f)
	if err != nil {
		return err
	}

	if err := imaging.Save(m, out); err != nil {
		return err
	}

	c.logger.Printf("Saved preview of \"%s\" to \"%s\"\n", in, out)

	return nil
}
