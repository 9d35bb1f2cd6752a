package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadJournalsDefaults(t *testing.T) {
	journals, err := LoadJournals("")
	if err != nil {
		t.Fatalf("LoadJournals: %v", err)
	}
	if len(journals) == 0 {
		t.Fatal("eingebaute Journal-Tabelle ist leer")
	}
	for _, j := range journals {
		if j.Name == "" || j.Field == "" {
			t.Errorf("Journal ohne Name oder Field: %+v", j)
		}
		if j.RSS == "" && !j.UseAPI {
			t.Errorf("Journal %q hat weder Feed noch API-Fallback", j.Name)
		}
	}
}

func TestLoadJournalsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journals.json")
	content := `[{"name":"Test Journal","issn":"1234-5678","field":"Economics","useAPI":true}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	journals, err := LoadJournals(path)
	if err != nil {
		t.Fatalf("LoadJournals: %v", err)
	}
	if len(journals) != 1 {
		t.Fatalf("len(journals) = %d, want 1", len(journals))
	}
	if journals[0].Name != "Test Journal" || journals[0].ISSN != "1234-5678" || !journals[0].UseAPI {
		t.Errorf("Journal falsch gelesen: %+v", journals[0])
	}
}

func TestLoadJournalsErrors(t *testing.T) {
	if _, err := LoadJournals(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("fehlende Datei sollte einen Fehler liefern")
	}

	path := filepath.Join(t.TempDir(), "journals.json")
	if err := os.WriteFile(path, []byte("{kaputt"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadJournals(path); err == nil {
		t.Error("kaputtes JSON sollte einen Fehler liefern")
	}
}
