// Package testkit drives HTTP API tests from JSON scenario files and gives
// tests a migrated in-memory database.
//
// A scenario file holds a flow: an ordered array of steps run against the
// same handler. Values captured from one response can be referenced by
// later steps as {{name}} in the URL, headers and body.
//
//	testdata/
//	  catalog.json        ← flow
//	  car_create_req.json ← request body referenced by a step
//
//	func TestAPI(t *testing.T) {
//	    testkit.DB(t)
//	    testkit.RunDir(t, routes.Handler(), "testdata")
//	}
//
// Expected responses are matched as subsets: every key present in the
// expectation must match, extra keys in the actual body are ignored.
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Step is one request/response exchange of a flow.
type Step struct {
	Name string `json:"name"`

	Method          string            `json:"method"`
	URL             string            `json:"url"`
	Headers         map[string]string `json:"headers"`
	Body            json.RawMessage   `json:"body"`
	RequestFileName string            `json:"requestFileName"` // relative to the flow file

	ExpectedCode     int             `json:"expectedCode"`
	Response         json.RawMessage `json:"response"`
	ResponseFileName string          `json:"responseFileName"`

	// Save maps a variable name to a dotted path into the response body,
	// e.g. {"token": "data.access"} or {"first": "data.0.id"}.
	Save map[string]string `json:"save"`

	dir string
}

// Vars holds values captured by earlier steps.
type Vars map[string]string

// Expand replaces every {{name}} in s.
func (v Vars) Expand(s string) string {
	if !strings.Contains(s, "{{") {
		return s
	}
	for k, val := range v {
		s = strings.ReplaceAll(s, "{{"+k+"}}", val)
	}
	return s
}

// LoadFlow reads and validates the steps of a flow file.
func LoadFlow(path string) ([]*Step, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var steps []*Step
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("testkit: %q has no steps", abs)
	}

	for i, s := range steps {
		s.dir = filepath.Dir(abs)
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("testkit: %q step %d: %w", abs, i, err)
		}
	}
	return steps, nil
}

func (s *Step) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.URL == "" {
		return fmt.Errorf("url is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.Method == "" {
		s.Method = "GET"
	}
	if len(s.Body) > 0 && s.RequestFileName != "" {
		return fmt.Errorf("body and requestFileName are mutually exclusive")
	}
	return nil
}

// requestBody returns the raw body, reading RequestFileName when set.
func (s *Step) requestBody() ([]byte, error) {
	if s.RequestFileName != "" {
		return os.ReadFile(s.resolve(s.RequestFileName))
	}
	return s.Body, nil
}

// expectedBody returns the expected response, or nil when none is given.
func (s *Step) expectedBody() ([]byte, error) {
	if s.ResponseFileName != "" {
		return os.ReadFile(s.resolve(s.ResponseFileName))
	}
	return s.Response, nil
}

func (s *Step) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}
