// Package bftest collects the small fixtures shared by binfield's package
// tests: loading golden files from testdata and comparing decoded records
// with a tolerance for floating point fields.
package bftest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/aldas/go-binfield"
	"github.com/stretchr/testify/assert"
)

// LoadJSON loads testdata/<name> relative to the caller and unmarshals it into target.
func LoadJSON(t *testing.T, name string, target interface{}) {
	b := loadBytes(t, fmt.Sprintf("testdata/%v", name), 2)
	if err := json.Unmarshal(b, target); err != nil {
		t.Fatalf("bftest.LoadJSON failure: %v", err)
	}
}

// LoadBytes loads the raw contents of testdata/<name> relative to the caller.
func LoadBytes(t *testing.T, name string) []byte {
	return loadBytes(t, fmt.Sprintf("testdata/%v", name), 2)
}

func loadBytes(t *testing.T, name string, callDepth int) []byte {
	_, file, _, _ := runtime.Caller(callDepth)
	path := filepath.Join(filepath.Dir(file), name)
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// AssertRecordValues compares two decoded records field by field, allowing
// float64 values to differ by delta (useful once a schema composes
// StructField float16/float32 scalars, which cannot always round-trip
// exactly).
func AssertRecordValues(t *testing.T, expect, actual map[string]binfield.Value, delta float64) {
	assert.Len(t, actual, len(expect))
	for name, av := range actual {
		ev, ok := expect[name]
		if !ok {
			t.Errorf("actual record has field %q that is not in expected record", name)
			continue
		}
		af, aok := av.(float64)
		ef, eok := ev.(float64)
		if aok && eok {
			assert.InDelta(t, ef, af, delta, "field %q: value %v differs from expected %v", name, av, ev)
			continue
		}
		assert.Equal(t, ev, av, "field %q", name)
	}
}
