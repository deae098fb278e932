package speech

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path"

	"github.com/spf13/afero"
)

// ClipCache keeps downloaded audio clips on disk, keyed by language and
// text.
type ClipCache struct {
	fs  afero.Fs
	dir string
}

func NewClipCache(fs afero.Fs, dir string) (*ClipCache, error) {
	c := &ClipCache{fs: fs, dir: dir}
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("ClipCache MkdirAll %s: %w", dir, err)
	}
	return c, nil
}

func (c *ClipCache) Key(lang, text string) string {
	sum := sha256.Sum256([]byte(lang + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

func (c *ClipCache) Path(key string) string {
	return path.Join(c.dir, key+".mp3")
}

func (c *ClipCache) Get(key string) ([]byte, bool, error) {
	file := c.Path(key)
	exist, err := afero.Exists(c.fs, file)
	if err != nil {
		return nil, false, fmt.Errorf("ClipCache Get %s: %w", file, err)
	}
	if !exist {
		return nil, false, nil
	}
	data, err := afero.ReadFile(c.fs, file)
	if err != nil {
		return nil, false, fmt.Errorf("ClipCache read file %s: %w", file, err)
	}
	return data, true, nil
}

func (c *ClipCache) Set(key string, data []byte) error {
	file := c.Path(key)
	if err := afero.WriteFile(c.fs, file, data, 0644); err != nil {
		return fmt.Errorf("ClipCache WriteFile %s: %w", file, err)
	}
	return nil
}
