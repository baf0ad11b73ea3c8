package testkit

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/automart/pkg/database"
	"github.com/shashiranjanraj/automart/pkg/migration"
)

// echo issues a token on /login/ and requires it on /me/.
var echo = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/login/":
		var in struct{ Username string }
		_ = json.NewDecoder(r.Body).Decode(&in)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data":   map[string]any{"access": "tok-" + in.Username, "id": 7},
		})
	case "/me/":
		if r.Header.Get("Authorization") != "Bearer tok-ann" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status":false}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data":   map[string]any{"username": "ann", "id": 7, "extra": []int{1, 2}},
		})
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":false}`))
	}
})

func writeFlow(t *testing.T, steps string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "login_flow.json")
	require.NoError(t, os.WriteFile(p, []byte(steps), 0o644))
	return p
}

func TestRun_CapturesAndExpands(t *testing.T) {
	p := writeFlow(t, `[
		{"name": "login", "method": "POST", "url": "/login/", "body": {"username": "ann"},
		 "expectedCode": 200, "save": {"token": "data.access", "uid": "data.id"}},
		{"name": "me", "url": "/me/", "headers": {"Authorization": "Bearer {{token}}"},
		 "expectedCode": 200, "response": {"data": {"username": "ann", "id": "{{uid}}"}}},
		{"name": "missing", "url": "/nope/", "expectedCode": 404}
	]`)

	vars := Vars{}
	Run(t, echo, p, vars)
	assert.Equal(t, "tok-ann", vars["token"])
	assert.Equal(t, "7", vars["uid"])
}

func TestLoadFlow_Validation(t *testing.T) {
	_, err := LoadFlow(writeFlow(t, `[{"name": "x", "url": "/"}]`))
	assert.ErrorContains(t, err, "expectedCode is required")

	_, err = LoadFlow(writeFlow(t, `[]`))
	assert.ErrorContains(t, err, "no steps")

	steps, err := LoadFlow(writeFlow(t, `[{"name": "x", "url": "/", "expectedCode": 200}]`))
	require.NoError(t, err)
	assert.Equal(t, "GET", steps[0].Method)
}

func TestDiffJSON(t *testing.T) {
	var exp, act any
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1, "b": [{"c": "x"}]}`), &exp))
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1, "b": [{"c": "x", "d": 2}], "e": null}`), &act))
	assert.Empty(t, DiffJSON("", exp, act))

	require.NoError(t, json.Unmarshal([]byte(`{"a": 2, "b": []}`), &act))
	assert.Len(t, DiffJSON("", exp, act), 2)
}

func TestLookup(t *testing.T) {
	var v any
	require.NoError(t, json.Unmarshal([]byte(`{"data": [{"id": 3}]}`), &v))

	got, ok := Lookup(v, "data.0.id")
	require.True(t, ok)
	assert.Equal(t, "3", stringify(got))

	_, ok = Lookup(v, "data.1.id")
	assert.False(t, ok)
}

type note struct {
	ID   uint
	Body string
}

type createNotes struct{}

func (createNotes) Up(db *gorm.DB) error   { return db.AutoMigrate(&note{}) }
func (createNotes) Down(db *gorm.DB) error { return db.Migrator().DropTable(&note{}) }

func TestDB_MigratesAndInstalls(t *testing.T) {
	migration.Register("20990101000000_create_notes", createNotes{})

	db := DB(t)
	assert.Same(t, db, database.DB)
	require.NoError(t, db.Create(&note{Body: "hi"}).Error)

	var n int64
	require.NoError(t, database.DB.Model(&note{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}
