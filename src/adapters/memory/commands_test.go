package memory

import (
	"errors"
	"fmt"
	"testing"

	"relmap/src/commands"
	"relmap/src/models"
	"relmap/src/relation"
	"relmap/src/settings"
)

type commandFixture struct {
	gateway *Gateway
	dataset *Dataset
	rel     *relation.Relation
	def     *commands.Definition
}

func newCommandFixture(t *testing.T, typeName, verb string) *commandFixture {
	t.Helper()

	args := &settings.Arguments{DataDir: t.TempDir()}
	gateway := NewGateway(args, testLogger())
	dataset := gateway.Dataset("users")

	factory := relation.NewFactory(testLogger())
	rel := factory.NewRelation("users", AdapterID, dataset)

	return &commandFixture{
		gateway: gateway,
		dataset: dataset,
		rel:     rel,
		def:     commands.NewDefinition(typeName, verb, AdapterID).WithRelation("users"),
	}
}

func TestCreateCommandExecute(t *testing.T) {
	fixture := newCommandFixture(t, "CreateUser", commands.VerbCreate)

	cmd, err := NewCreateCommand(fixture.def, fixture.rel, commands.Options{}, testLogger())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	results, err := cmd.Execute([]models.Tuple{{"name": "a"}, {"name": "b"}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 result tuples, got %d", len(results))
	}
	if results[0]["name"] != "a" || results[1]["name"] != "b" {
		t.Error("Results are not in input order")
	}
	if results[0].ID() == "" {
		t.Error("Expected persisted tuples to carry identifiers")
	}

	tuples := fixture.dataset.Tuples()
	if len(tuples) != 2 || tuples[0]["name"] != "a" || tuples[1]["name"] != "b" {
		t.Errorf("Dataset contents wrong: %v", tuples)
	}
}

func TestCreateCommandSingleTuple(t *testing.T) {
	fixture := newCommandFixture(t, "CreateUser", commands.VerbCreate)
	cmd, _ := NewCreateCommand(fixture.def, fixture.rel, commands.Options{}, testLogger())

	results, err := cmd.Execute(models.Tuple{"name": "solo"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected 1 result tuple, got %d", len(results))
	}
}

func TestCreateCommandInputTransform(t *testing.T) {
	fixture := newCommandFixture(t, "CreateUser", commands.VerbCreate)

	opts := commands.Options{
		Input: func(tuple models.Tuple) (models.Tuple, error) {
			return tuple.Merge(models.Tuple{"source": "import"}), nil
		},
	}
	cmd, _ := NewCreateCommand(fixture.def, fixture.rel, opts, testLogger())

	results, err := cmd.Execute(models.Tuple{"name": "a"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if results[0]["source"] != "import" {
		t.Errorf("Input transform not applied: %v", results[0])
	}
}

func TestCreateCommandValidationFailFast(t *testing.T) {
	fixture := newCommandFixture(t, "CreateUser", commands.VerbCreate)

	opts := commands.Options{
		Validator: commands.Validator{
			func(tuple models.Tuple) error {
				if tuple["name"] == "" || tuple["name"] == nil {
					return fmt.Errorf("name must be present")
				}
				return nil
			},
		},
	}
	cmd, _ := NewCreateCommand(fixture.def, fixture.rel, opts, testLogger())

	_, err := cmd.Execute([]models.Tuple{{"name": "a"}, {}, {"name": "c"}})
	if err == nil {
		t.Fatal("Expected validation error")
	}
	var validationErr *commands.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}

	// Fail fast: the first tuple was persisted before the failure and is
	// not rolled back; the remaining tuples were never attempted.
	if fixture.dataset.Len() != 1 {
		t.Errorf("Dataset has %d tuples, want 1", fixture.dataset.Len())
	}
}

func TestUpdateCommandExecute(t *testing.T) {
	fixture := newCommandFixture(t, "UpdateUser", commands.VerbUpdate)
	for _, name := range []string{"a", "b", "c"} {
		fixture.dataset.Insert(models.Tuple{"name": name})
	}

	cmd, err := NewUpdateCommand(fixture.def, fixture.rel, commands.Options{}, testLogger())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	results, err := cmd.Execute(models.Tuple{"active": true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 mutated tuples, got %d", len(results))
	}
	for _, tuple := range results {
		if tuple["active"] != true {
			t.Errorf("Tuple not updated: %v", tuple)
		}
	}
	for _, tuple := range fixture.dataset.Tuples() {
		if tuple["active"] != true {
			t.Errorf("Dataset tuple not updated: %v", tuple)
		}
	}
}

func TestUpdateCommandSelection(t *testing.T) {
	fixture := newCommandFixture(t, "UpdateUser", commands.VerbUpdate)
	fixture.dataset.Insert(models.Tuple{"name": "a", "kind": "admin"})
	fixture.dataset.Insert(models.Tuple{"name": "b", "kind": "guest"})

	refined := fixture.rel.Where(models.Tuple{"kind": "admin"})
	cmd, _ := NewUpdateCommand(fixture.def, refined, commands.Options{}, testLogger())

	results, err := cmd.Execute(models.Tuple{"active": true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected only the selected tuple to mutate, got %d", len(results))
	}

	tuples := fixture.dataset.Tuples()
	if tuples[1]["active"] == true {
		t.Error("Unselected tuple was mutated")
	}
}

func TestDeleteCommandExecute(t *testing.T) {
	fixture := newCommandFixture(t, "DeleteUser", commands.VerbDelete)
	for _, name := range []string{"a", "b", "c"} {
		fixture.dataset.Insert(models.Tuple{"name": name})
	}

	cmd, err := NewDeleteCommand(fixture.def, fixture.rel, commands.Options{}, testLogger())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	results, err := cmd.Execute(nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 deleted tuples, got %d", len(results))
	}
	for i, want := range []string{"a", "b", "c"} {
		if results[i]["name"] != want {
			t.Errorf("Deleted tuple %d = %v, want %q (relation iteration order)", i, results[i], want)
		}
	}
	if fixture.dataset.Len() != 0 {
		t.Errorf("Dataset has %d tuples, want empty", fixture.dataset.Len())
	}
}

func TestGatewayExtendCommandClass(t *testing.T) {
	fixture := newCommandFixture(t, "CreateUser", commands.VerbCreate)
	fixture.dataset.Insert(models.Tuple{"name": "a"})

	if err := fixture.gateway.ExtendCommandClass(fixture.def, fixture.rel.Dataset()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if fixture.def.Meta["dataset"] != "users" {
		t.Errorf("Meta dataset = %v, want users", fixture.def.Meta["dataset"])
	}

	err := fixture.gateway.ExtendCommandClass(fixture.def, "not-a-dataset")
	if err == nil {
		t.Error("Expected error for a foreign dataset handle")
	}
}

func TestCommandRebind(t *testing.T) {
	fixture := newCommandFixture(t, "DeleteUser", commands.VerbDelete)
	fixture.dataset.Insert(models.Tuple{"name": "a", "kind": "admin"})
	fixture.dataset.Insert(models.Tuple{"name": "b", "kind": "guest"})

	cmd, _ := NewDeleteCommand(fixture.def, fixture.rel, commands.Options{}, testLogger())

	refined := fixture.rel.Where(models.Tuple{"kind": "guest"})
	rebound := cmd.Rebind(refined)

	if rebound == cmd {
		t.Fatal("Expected a new command instance")
	}
	if rebound.Definition() != cmd.Definition() {
		t.Error("Rebind must keep the definition")
	}

	results, err := rebound.Execute(nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 1 || results[0]["name"] != "b" {
		t.Errorf("Rebound command deleted %v, want only tuple b", results)
	}
	if fixture.dataset.Len() != 1 {
		t.Errorf("Dataset has %d tuples, want 1", fixture.dataset.Len())
	}
}
