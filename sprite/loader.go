package sprite

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/troupo/invaders/assets"
)

var (
	imagesMu sync.Mutex
	images   = map[string]image.Image{}
)

// loadImage decodes an image from embedded assets or the filesystem and
// caches it by key, so sheets declared with the same path share one decode.
func loadImage(key string) (image.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("empty image key")
	}
	imagesMu.Lock()
	img, ok := images[key]
	imagesMu.Unlock()
	if ok {
		return img, nil
	}
	img, err := decodeImageFromAssetsOrFS(key)
	if err != nil {
		return nil, err
	}
	imagesMu.Lock()
	images[key] = img
	imagesMu.Unlock()
	return img, nil
}

// dropImage evicts a cached decode so the next loadImage re-reads the
// source. Used by the reload path.
func dropImage(key string) {
	imagesMu.Lock()
	delete(images, key)
	imagesMu.Unlock()
}

func decodeImageFromAssetsOrFS(path string) (image.Image, error) {
	if b, err := assets.LoadFile(path); err == nil {
		if img, _, err := image.Decode(bytes.NewReader(b)); err == nil {
			return img, nil
		}
	}
	tried := []string{path, filepath.Join("assets", path), filepath.Base(path)}
	for _, p := range tried {
		if b, err := os.ReadFile(p); err == nil {
			if img, _, err := image.Decode(bytes.NewReader(b)); err == nil {
				return img, nil
			}
		}
	}
	return nil, fmt.Errorf("failed to load image %s", path)
}

// loadFile reads a raw file, trying the filesystem before the embedded
// assets so dev-mode edits and the config watcher win over the baked-in
// copy.
func loadFile(path string) ([]byte, error) {
	tried := []string{path, filepath.Join("assets", path), filepath.Base(path)}
	for _, p := range tried {
		if b, err := os.ReadFile(p); err == nil {
			return b, nil
		}
	}
	if b, err := assets.LoadFile(path); err == nil {
		return b, nil
	}
	return nil, fmt.Errorf("failed to load file %s", path)
}
