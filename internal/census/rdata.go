// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package census

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dataset-census/internal/httputil"
)

// RData is the R ecosystem: dataset names loaded from a list file,
// queried as data(<name>) calls, retrying on rate limits.
type RData struct {
	// ListPath is the file holding the dataset names: a JSON array of
	// strings, or a YAML sequence when the extension is .yaml/.yml.
	ListPath string

	// Policy governs rate-limit retries for each query.
	Policy httputil.RetryPolicy
}

// Name returns the ecosystem identifier.
func (r RData) Name() string { return "rdata" }

// Datasets reads the list file and drops names the code-search query
// syntax cannot express.
func (r RData) Datasets() ([]string, error) {
	names, err := LoadList(r.ListPath)
	if err != nil {
		return nil, err
	}
	return FilterQueryable(names), nil
}

// Query matches R files that load the dataset via data().
func (r RData) Query(dataset string) string {
	return fmt.Sprintf("data(%s) extension:r", dataset)
}

// Retry returns the configured rate-limit policy.
func (r RData) Retry() httputil.RetryPolicy { return r.Policy }

// FilterQueryable drops names containing a space or a period; they
// break the data(<name>) query syntax.
// TODO: quote such names so they can be queried instead of dropped.
func FilterQueryable(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if strings.ContainsAny(n, " .") {
			continue
		}
		out = append(out, n)
	}
	return out
}

// LoadList reads a dataset-name list from a JSON array or, when the
// path ends in .yaml/.yml, a YAML sequence.
func LoadList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset list: %w", err)
	}

	var names []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &names); err != nil {
			return nil, fmt.Errorf("parsing dataset list %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &names); err != nil {
			return nil, fmt.Errorf("parsing dataset list %s: %w", path, err)
		}
	}
	return names, nil
}
