package frame

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Serialize the buffer as a plain-text (P3) PPM image. Values are expected
// to be tone-mapped already.
func WritePPM(w io.Writer, buf *Buffer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", buf.Width, buf.Height); err != nil {
		return err
	}

	for _, col := range buf.Pix {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", Quantize(col[0]), Quantize(col[1]), Quantize(col[2])); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Convert the buffer to an 8-bit RGBA image.
func (b *Buffer) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(b.Width), int(b.Height)))
	for y := uint32(0); y < b.Height; y++ {
		for x := uint32(0); x < b.Width; x++ {
			col := b.At(x, y)
			img.SetRGBA(int(x), int(y), color.RGBA{
				R: Quantize(col[0]),
				G: Quantize(col[1]),
				B: Quantize(col[2]),
				A: 255,
			})
		}
	}
	return img
}

// Serialize the buffer as a PNG image.
func WritePNG(w io.Writer, buf *Buffer) error {
	return png.Encode(w, buf.RGBA())
}

// Write the buffer to a file. The image format is selected by the file
// extension; files without a recognized extension are written as PPM.
func WriteFile(path string, buf *Buffer) error {
	write := WritePPM
	if strings.ToLower(filepath.Ext(path)) == ".png" {
		write = WritePNG
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("frame: could not create %q: %w", path, err)
	}

	if err = write(f, buf); err != nil {
		f.Close()
		return fmt.Errorf("frame: could not write %q: %w", path, err)
	}
	return f.Close()
}
