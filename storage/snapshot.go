package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"paper-scope/models"
)

// LoadSnapshot lädt den persistierten Snapshot. Eine fehlende oder
// korrupte Datei ist kein Fehler, sondern bedeutet "keine Vordaten":
// der Lauf startet dann mit leerer Basis.
func LoadSnapshot(path string) *models.Snapshot {
	data, err := os.ReadFile(path)
	if err != nil {
		return &models.Snapshot{}
	}
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return &models.Snapshot{}
	}
	return &snap
}

// SaveSnapshot schreibt den Snapshot atomar (Temp-Datei + Rename) als
// eingerücktes JSON, damit das Artefakt diffbar bleibt. Ein Fehler hier
// ist fatal für den Lauf: ohne persistierten Snapshot war alles umsonst.
func SaveSnapshot(path string, snap *models.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".papers-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
