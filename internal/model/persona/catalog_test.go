package persona_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wzhuang/simpatient/backend/internal/model/persona"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roles.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}
	return path
}

func TestLoadCatalogMissing(t *testing.T) {
	_, err := persona.LoadCatalog(filepath.Join(t.TempDir(), "roles.json"))
	if !errors.Is(err, persona.ErrCatalogMissing) {
		t.Fatalf("expected ErrCatalogMissing, got %v", err)
	}
}

func TestLoadCatalogMalformed(t *testing.T) {
	path := writeRoster(t, "not json at all")

	_, err := persona.LoadCatalog(path)
	var formatErr *persona.CatalogFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected CatalogFormatError, got %v", err)
	}
}

func TestLoadCatalogInvalidRecord(t *testing.T) {
	path := writeRoster(t, `[{"name":"王先生","age":-1,"gender":"male","occupation":"退休教師","description":"高血壓病史"}]`)

	_, err := persona.LoadCatalog(path)
	var formatErr *persona.CatalogFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected CatalogFormatError for negative age, got %v", err)
	}
}

func TestLoadCatalogKeepsFileOrder(t *testing.T) {
	path := writeRoster(t, `[
		{"name":"王先生","age":65,"gender":"male","occupation":"退休教師","description":"高血壓病史"},
		{"name":"林小姐","age":34,"gender":"female","occupation":"工程師","description":"偏頭痛"}
	]`)

	personas, err := persona.LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog err: %v", err)
	}
	if len(personas) != 2 {
		t.Fatalf("expected 2 personas, got %d", len(personas))
	}
	if personas[0].Name != "王先生" || personas[1].Name != "林小姐" {
		t.Fatalf("file order not preserved: %q, %q", personas[0].Name, personas[1].Name)
	}
}

func TestStoreNames(t *testing.T) {
	store := persona.NewMemoryStore([]persona.Persona{
		{Name: "王先生", Age: 65, Gender: "male", Occupation: "退休教師", Description: "高血壓病史"},
	})

	names := store.Names()
	if len(names) != 1 || names[0] != "王先生" {
		t.Fatalf("unexpected names: %v", names)
	}

	if _, ok := store.FindByID("王先生"); !ok {
		t.Fatal("expected to find 王先生 by id")
	}
}

func TestStoreNamesEmpty(t *testing.T) {
	store := persona.NewMemoryStore(nil)
	if names := store.Names(); len(names) != 0 {
		t.Fatalf("expected empty names, got %v", names)
	}
}

func TestDescribe(t *testing.T) {
	p := persona.Persona{Name: "王先生", Age: 65, Gender: "male", Occupation: "退休教師", Description: "高血壓病史"}
	got := p.Describe()
	want := "🧑‍⚕️ 王先生（65歲, male）\n職業：退休教師\n描述：高血壓病史"
	if got != want {
		t.Fatalf("unexpected card:\ngot  %q\nwant %q", got, want)
	}
}
