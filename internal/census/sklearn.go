// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package census

import (
	"fmt"

	"github.com/pdiddy/dataset-census/internal/httputil"
)

// sklearnDatasets is the fixed list of scikit-learn toy dataset loaders.
var sklearnDatasets = []string{
	"load_iris",
	"load_diabetes",
	"load_digits",
	"load_linnerud",
	"load_wine",
	"load_breast_cancer",
}

// Sklearn is the scikit-learn ecosystem: a fixed loader list, one
// request per dataset, no retries. A rate-limited or otherwise failed
// query is simply skipped.
type Sklearn struct{}

// Name returns the ecosystem identifier.
func (Sklearn) Name() string { return "sklearn" }

// Datasets returns a copy of the fixed loader list.
func (Sklearn) Datasets() ([]string, error) {
	return append([]string(nil), sklearnDatasets...), nil
}

// Query matches Python files that reference sklearn.datasets and the
// loader by name.
func (Sklearn) Query(dataset string) string {
	return fmt.Sprintf("sklearn.datasets %s extension:py", dataset)
}

// Retry returns a single-attempt policy.
func (Sklearn) Retry() httputil.RetryPolicy {
	return httputil.RetryPolicy{MaxAttempts: 1}
}
