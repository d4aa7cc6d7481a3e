package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/korjavin/fitnourish/internal/nutrition"
)

const sampleCSV = `Food Name,Source,Calories,Protein (g),Fat (g),Carbohydrates (g)
Paneer,IFCT,265,18,20,1.2
Chicken Breast,USDA,165,31,3.6,0
Banana,USDA,89,1.1,0.3,22.8
Moong Sprouts,IFCT,,3,0.4,6
Aloo Paratha,Home,N/A,5,10,NaN
Paneer,Duplicate Row,999,99,99,99
`

func mustLoad(t *testing.T, src string) *Dataset {
	t.Helper()
	d, err := Load(strings.NewReader(src), "test.csv")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return d
}

func TestLoad(t *testing.T) {
	d := mustLoad(t, sampleCSV)

	if d.Len() != 6 {
		t.Errorf("Len() = %d; want 6", d.Len())
	}

	sprouts, ok := d.Lookup("Moong Sprouts")
	if !ok {
		t.Fatal("Moong Sprouts not found")
	}
	if sprouts.Calories != nutrition.Missing {
		t.Errorf("empty cell = %q; want %q", sprouts.Calories, nutrition.Missing)
	}

	paratha, _ := d.Lookup("Aloo Paratha")
	if paratha.Calories != nutrition.Missing || paratha.Carbs != nutrition.Missing {
		t.Errorf("NA tokens not normalised: %+v", paratha)
	}

	m := d.Manifest()
	if m.Source != "test.csv" {
		t.Errorf("Source = %q", m.Source)
	}
	if m.RecordCount != 6 || m.NameCount != 5 || m.DuplicateCount != 1 {
		t.Errorf("manifest counts = %d/%d/%d; want 6/5/1", m.RecordCount, m.NameCount, m.DuplicateCount)
	}
	if m.MissingCells != 3 {
		t.Errorf("MissingCells = %d; want 3", m.MissingCells)
	}
	if m.MissingByColumn[ColCalories] != 2 {
		t.Errorf("MissingByColumn[Calories] = %d; want 2", m.MissingByColumn[ColCalories])
	}
}

func TestLoad_ColumnOrderAndExtras(t *testing.T) {
	src := "\ufeffCarbohydrates (g),Fat (g),Notes,Protein (g),Calories,Source,Food Name\n" +
		"1.2,20,tasty,18,265,IFCT,Paneer\n"
	d := mustLoad(t, src)

	got, ok := d.Lookup("Paneer")
	if !ok {
		t.Fatal("Paneer not found")
	}
	want := nutrition.Record{Name: "Paneer", Source: "IFCT", Calories: "265", Protein: "18", Fat: "20", Carbs: "1.2"}
	if got != want {
		t.Errorf("Lookup = %+v; want %+v", got, want)
	}
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{"empty", "", ErrEmptySource},
		{"missing column", "Food Name,Source,Calories,Protein (g),Fat (g)\nX,Y,1,2,3\n", ErrMissingColumn},
		{"long row", "Food Name,Source,Calories,Protein (g),Fat (g),Carbohydrates (g)\nX,Y,1,2,3,4,5\n", ErrTooManyFields},
		{"bad quoting", "Food Name,Source,Calories,Protein (g),Fat (g),Carbohydrates (g)\n\"X,Y,1,2,3,4\n", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.src), "bad.csv")
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v; want %v", err, tc.wantErr)
			}
		})
	}
}

func TestLoad_ShortRow(t *testing.T) {
	src := "Food Name,Source,Calories,Protein (g),Fat (g),Carbohydrates (g)\n" +
		"Paneer,IFCT,265,18,20,1.2\n" +
		"Rice,IFCT,130,2.7\n"
	d := mustLoad(t, src)

	rice, ok := d.Lookup("Rice")
	if !ok {
		t.Fatal("short row was not loaded")
	}
	if rice.Protein != "2.7" || rice.Fat != nutrition.Missing || rice.Carbs != nutrition.Missing {
		t.Errorf("Rice = %+v; want Fat and Carbs %q", rice, nutrition.Missing)
	}

	m := d.Manifest()
	if m.MissingCells != 2 || m.MissingByColumn[ColFat] != 1 || m.MissingByColumn[ColCarbs] != 1 {
		t.Errorf("missing = %d %v; want 2 across Fat and Carbs", m.MissingCells, m.MissingByColumn)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foods.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if d.Manifest().Source != path {
		t.Errorf("Source = %q; want %q", d.Manifest().Source, path)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNames(t *testing.T) {
	d := mustLoad(t, sampleCSV)
	names := d.Names()

	want := []string{"Aloo Paratha", "Banana", "Chicken Breast", "Moong Sprouts", "Paneer"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v; want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q; want %q", i, names[i], want[i])
		}
	}
	if !sort.StringsAreSorted(names) {
		t.Error("names not sorted")
	}

	// callers cannot disturb the cached order
	names[0] = "zzz"
	if d.Names()[0] != "Aloo Paratha" {
		t.Error("Names() returned shared slice")
	}
}

func TestLookup(t *testing.T) {
	d := mustLoad(t, sampleCSV)

	p, ok := d.Lookup("Paneer")
	if !ok {
		t.Fatal("Paneer not found")
	}
	if p.Source != "IFCT" {
		t.Errorf("duplicate name should resolve to first row, got source %q", p.Source)
	}

	for _, name := range []string{"", "paneer", "PANEER", "Paneer ", "Nonexistent Food"} {
		if _, ok := d.Lookup(name); ok {
			t.Errorf("Lookup(%q) found a record; want not found", name)
		}
	}

	for _, name := range d.Names() {
		r, ok := d.Lookup(name)
		if !ok || r.Name != name {
			t.Errorf("Lookup(%q) = %+v, %v", name, r, ok)
		}
	}
}
