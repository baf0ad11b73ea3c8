package testkit

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

// Run executes one flow file against handler as a subtest named after the
// file. Steps run in order and the flow stops at the first failing step.
// vars seeds the variables; captured values are added to it.
func Run(t *testing.T, handler http.Handler, path string, vars Vars) {
	t.Helper()

	steps, err := LoadFlow(path)
	if err != nil {
		t.Fatalf("%v", err)
	}
	if vars == nil {
		vars = Vars{}
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	t.Run(name, func(t *testing.T) {
		for _, s := range steps {
			if !t.Run(s.Name, func(t *testing.T) { runStep(t, handler, s, vars) }) {
				return
			}
		}
	})
}

// RunDir runs every *.json flow in dir, each with fresh variables.
// Helper files referenced by requestFileName/responseFileName must use
// another extension or live in a subdirectory.
func RunDir(t *testing.T, handler http.Handler, dir string) {
	t.Helper()

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(paths) == 0 {
		t.Fatalf("testkit: no flow files found in %q", dir)
	}
	for _, p := range paths {
		Run(t, handler, p, nil)
	}
}

// Do fires a single JSON request and returns the recorder. body may be nil,
// a []byte, or any value encodable as JSON.
func Do(t *testing.T, handler http.Handler, method, url string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var raw []byte
	switch b := body.(type) {
	case nil:
	case []byte:
		raw = b
	default:
		var err error
		if raw, err = json.Marshal(b); err != nil {
			t.Fatalf("testkit: encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(raw))
	if raw != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// Bearer returns the Authorization header for token.
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func runStep(t *testing.T, handler http.Handler, s *Step, vars Vars) {
	t.Helper()

	body, err := s.requestBody()
	if err != nil {
		t.Fatalf("read request body: %v", err)
	}
	if len(body) > 0 {
		body = []byte(vars.Expand(string(body)))
	} else {
		body = nil
	}

	headers := make(map[string]string, len(s.Headers))
	for k, v := range s.Headers {
		headers[k] = vars.Expand(v)
	}

	rec := Do(t, handler, strings.ToUpper(s.Method), vars.Expand(s.URL), body, headers)
	AssertStatusCode(t, s, rec.Code, rec.Body.Bytes())

	expected, err := s.expectedBody()
	if err != nil {
		t.Fatalf("read expected response: %v", err)
	}
	if len(expected) > 0 {
		AssertJSONSubset(t, s, []byte(vars.Expand(string(expected))), rec.Body.Bytes())
	}

	if len(s.Save) > 0 {
		var decoded any
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("save: response is not JSON: %v", err)
		}
		for name, path := range s.Save {
			v, ok := Lookup(decoded, path)
			if !ok {
				t.Fatalf("save %q: path %q not found in %s", name, path, rec.Body.String())
			}
			vars[name] = stringify(v)
		}
	}
}
