package relation

import (
	"testing"

	"relmap/src/models"

	"go.uber.org/zap"
)

type sliceSource struct {
	tuples []models.Tuple
}

func (s *sliceSource) Tuples() []models.Tuple {
	return s.tuples
}

func testSource() *sliceSource {
	return &sliceSource{tuples: []models.Tuple{
		{"id": "1", "name": "a", "active": true},
		{"id": "2", "name": "b", "active": false},
		{"id": "3", "name": "c", "active": true},
	}}
}

func TestRelationTuplesOrder(t *testing.T) {
	rel := New("users", "memory", testSource())

	tuples := rel.Tuples()
	if len(tuples) != 3 {
		t.Fatalf("Expected 3 tuples, got %d", len(tuples))
	}
	for i, want := range []string{"1", "2", "3"} {
		if tuples[i].ID() != want {
			t.Errorf("Tuple %d has id %q, want %q (source order must be kept)", i, tuples[i].ID(), want)
		}
	}
}

func TestRelationRestrictAndWhere(t *testing.T) {
	rel := New("users", "memory", testSource())

	active := rel.Where(models.Tuple{"active": true})
	if active.Count() != 2 {
		t.Errorf("Expected 2 active tuples, got %d", active.Count())
	}

	// Refinements chain and never touch the receiver.
	one := active.Restrict(func(tuple models.Tuple) bool {
		return tuple["name"] == "c"
	})
	if one.Count() != 1 {
		t.Errorf("Expected 1 tuple after chained refinement, got %d", one.Count())
	}
	if rel.Count() != 3 {
		t.Errorf("Receiver was modified: count = %d, want 3", rel.Count())
	}

	if first := one.First(); first == nil || first["name"] != "c" {
		t.Errorf("First() = %v, want tuple c", first)
	}
}

func TestRelationInvoke(t *testing.T) {
	factory := NewFactory(zap.NewNop().Sugar())
	rel := factory.NewRelation("users", "memory", testSource())

	tests := []struct {
		name         string
		view         string
		args         []interface{}
		wantSameType bool
		expectErr    bool
		check        func(t *testing.T, result interface{})
	}{
		{
			name:         "where returns a refined relation of the same kind",
			view:         "where",
			args:         []interface{}{models.Tuple{"active": true}},
			wantSameType: true,
			check: func(t *testing.T, result interface{}) {
				refined, ok := result.(*Relation)
				if !ok {
					t.Fatalf("Expected *Relation, got %T", result)
				}
				if refined.Count() != 2 {
					t.Errorf("Refined count = %d, want 2", refined.Count())
				}
			},
		},
		{
			name: "count is terminal",
			view: "count",
			check: func(t *testing.T, result interface{}) {
				if result != 3 {
					t.Errorf("count = %v, want 3", result)
				}
			},
		},
		{
			name: "first is terminal",
			view: "first",
			check: func(t *testing.T, result interface{}) {
				tuple, ok := result.(models.Tuple)
				if !ok || tuple.ID() != "1" {
					t.Errorf("first = %v, want tuple 1", result)
				}
			},
		},
		{
			name:      "unknown view fails",
			view:      "bogus",
			expectErr: true,
		},
		{
			name:      "where rejects bad arguments",
			view:      "where",
			args:      []interface{}{"not-a-map"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, sameType, err := rel.Invoke(tt.view, tt.args...)

			if tt.expectErr {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if sameType != tt.wantSameType {
				t.Errorf("sameType = %v, want %v", sameType, tt.wantSameType)
			}
			if tt.check != nil {
				tt.check(t, result)
			}
		})
	}
}

func TestRelationViewMethodNames(t *testing.T) {
	factory := NewFactory(zap.NewNop().Sugar())
	rel := factory.NewRelation("users", "memory", testSource())

	names := rel.ViewMethodNames()
	want := []string{"where", "count", "first"}
	if len(names) != len(want) {
		t.Fatalf("ViewMethodNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("View %d = %q, want %q (declaration order must be kept)", i, names[i], want[i])
		}
	}

	// Re-registering replaces the function but keeps the position.
	rel.RegisterView("count", func(r *Relation, args ...interface{}) (interface{}, error) {
		return -1, nil
	})
	if got := rel.ViewMethodNames(); len(got) != 3 {
		t.Errorf("Re-registration duplicated the view list: %v", got)
	}
}
