package utils

import (
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// CreateThumb writes a resized JPEG next to the original under a thumb/
// subdirectory. Width is fixed, height keeps the aspect ratio.
func CreateThumb(id, dir, ext string, width int) error {
	src := filepath.Join(dir, id+ext)
	img, err := imaging.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}

	resized := imaging.Resize(img, width, 0, imaging.Lanczos)

	thumbDir := filepath.Join(dir, "thumb")
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", thumbDir, err)
	}

	name := strings.TrimSuffix(id, filepath.Ext(id)) + ".jpg"
	out, err := os.Create(filepath.Join(thumbDir, name))
	if err != nil {
		return fmt.Errorf("create thumbnail: %w", err)
	}
	defer out.Close()

	return jpeg.Encode(out, resized, &jpeg.Options{Quality: 85})
}
