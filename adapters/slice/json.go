package slice

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/magpierre/gridaccess/datatable"
)

// LoadJSON reads an array of objects, or a single object, from r.
func LoadJSON(r io.Reader) (*Source, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON: %w", err)
	}
	content = bytes.TrimSpace(content)
	if len(content) == 0 {
		return nil, datatable.ErrEmptyData
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(content, &records); err != nil {
		var single map[string]interface{}
		if err := json.Unmarshal(content, &single); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		records = []map[string]interface{}{single}
	}
	return NewFromMaps(records)
}

// LoadJSONFile reads a JSON file with LoadJSON.
func LoadJSONFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSON file: %w", err)
	}
	defer f.Close()

	src, err := LoadJSON(f)
	if err != nil {
		return nil, err
	}
	src.metadata["path"] = path
	return src, nil
}
