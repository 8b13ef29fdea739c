package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

var SupportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

func ValidateImageFileType(header *multipart.FileHeader) bool {
	return SupportedImageTypes[header.Header.Get("Content-Type")]
}

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// SaveProductImage stores the uploaded image under static/productpic and
// writes a 300px-wide thumbnail next to it. Returns the public URLs of
// the image and its thumbnail.
func SaveProductImage(file multipart.File, header *multipart.FileHeader) (string, string, error) {
	if err := EnsureDir(filepath.Join("static", "productpic")); err != nil {
		return "", "", err
	}

	img, err := imaging.Decode(file)
	if err != nil {
		return "", "", fmt.Errorf("decode image: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	name := GenerateRandomString(16)

	fullPath := filepath.Join("static", "productpic", name+ext)
	if err := imaging.Save(img, fullPath); err != nil {
		return "", "", fmt.Errorf("save image: %w", err)
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	thumbPath := filepath.Join("static", "productpic", name+"_thumb"+ext)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		return "", "", fmt.Errorf("save thumbnail: %w", err)
	}

	return "/static/productpic/" + name + ext, "/static/productpic/" + name + "_thumb" + ext, nil
}

// DeleteStoredImage removes a previously saved image by its public URL.
// Missing files are not an error; the URL is the deletion handle.
func DeleteStoredImage(url string) error {
	if !strings.HasPrefix(url, "/static/") {
		return nil
	}
	path := filepath.Join(".", filepath.FromSlash(strings.TrimPrefix(url, "/")))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
