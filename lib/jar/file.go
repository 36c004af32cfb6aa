package jar

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// IsJSON reports whether path selects the JSON format.
func IsJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Load reads a cookie file in the format selected by its extension.
func Load(path string) ([]Cookie, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if IsJSON(path) {
		return UnmarshalJSON(b)
	}
	return NewDecoder(bytes.NewReader(b)).Decode()
}

// Save truncates path and writes cookies to it. The file is readable only by
// the owner since it holds live session credentials.
func Save(path string, cookies []Cookie) error {
	var buf bytes.Buffer
	if IsJSON(path) {
		b, err := MarshalJSON(cookies)
		if err != nil {
			return err
		}
		buf.Write(b)
		buf.WriteByte('\n')
	} else if err := NewEncoder(&buf).Encode(cookies); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}
