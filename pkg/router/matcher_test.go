package router

import (
	"reflect"
	"testing"
)

func TestCompilePatternParamNames(t *testing.T) {
	m := CompilePattern("/api/users/:userId/meals/:mealId")

	names := m.ParamNames()
	expected := []string{"userId", "mealId"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("Expected parameter names %v in declaration order, got %v", expected, names)
	}
	if m.Pattern() != "/api/users/:userId/meals/:mealId" {
		t.Errorf("Expected original pattern to be preserved, got %q", m.Pattern())
	}
}

func TestMatcherExtractsParams(t *testing.T) {
	m := CompilePattern("/api/users/:userId/meals/:mealId")

	params, ok := m.Matches("/api/users/u1/meals/m2")
	if !ok {
		t.Fatal("Expected path to match")
	}

	expected := map[string]string{"userId": "u1", "mealId": "m2"}
	if !reflect.DeepEqual(params, expected) {
		t.Errorf("Expected params %v, got %v", expected, params)
	}
}

func TestMatcherRejections(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
	}{
		{"segment count differs", "/api/foods", "/api/foods/search"},
		{"fewer segments", "/api/users/:userId", "/api/users"},
		{"literal mismatch", "/api/meals/:mealId", "/api/foods/m1"},
		{"empty param segment", "/api/users/:userId/meals", "/api/users//meals"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := CompilePattern(tt.pattern)
			if _, ok := m.Matches(tt.path); ok {
				t.Errorf("Expected %q not to match pattern %q", tt.path, tt.pattern)
			}
		})
	}
}

func TestMatcherLiteralOnly(t *testing.T) {
	m := CompilePattern("/api/foods")

	params, ok := m.Matches("/api/foods")
	if !ok {
		t.Fatal("Expected literal path to match")
	}
	if len(params) != 0 {
		t.Errorf("Expected no params for a literal pattern, got %v", params)
	}
}

func TestMatcherTrailingSlashInsensitive(t *testing.T) {
	m := CompilePattern("/api/workouts")

	if _, ok := m.Matches("/api/workouts/"); !ok {
		t.Error("Expected a trailing slash not to change the path shape")
	}
}

func TestMatcherParamNeverSpansSegments(t *testing.T) {
	m := CompilePattern("/api/files/:name")

	if _, ok := m.Matches("/api/files/a/b"); ok {
		t.Error("Expected a parameter segment not to span multiple path segments")
	}
}

func TestMatcherRoot(t *testing.T) {
	m := CompilePattern("/")

	if _, ok := m.Matches("/"); !ok {
		t.Error("Expected root pattern to match root path")
	}
	if _, ok := m.Matches("/api"); ok {
		t.Error("Expected root pattern not to match a non-root path")
	}
}
