package anki

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// CangjieFields are the note fields the augmenter maintains: Latin codes
// per standard plus the key glyph rendering.
var CangjieFields = []string{
	"Cangjie3",
	"Cangjie5",
	"CangjieKeys",
}

// FieldData holds the rendered Cangjie values for one note.
type FieldData struct {
	CJ3  string
	CJ5  string
	Keys string
}

// AddCangjieFields appends the Cangjie fields to a model, skipping any
// that already exist.
func (p *Package) AddCangjieFields(modelID int64) error {
	model, ok := p.Models[modelID]
	if !ok {
		return fmt.Errorf("model %d not found", modelID)
	}

	existing := make(map[string]bool)
	for _, f := range model.Fields {
		existing[f.Name] = true
	}

	nextOrd := len(model.Fields)
	for _, name := range CangjieFields {
		if existing[name] {
			continue
		}
		model.Fields = append(model.Fields, Field{
			Name: name,
			Ord:  nextOrd,
			Font: "Arial",
			Size: 20,
		})
		nextOrd++
	}
	return nil
}

// SetNoteCangjie writes the Cangjie fields of a note and bumps its
// modification time. The model must already carry the fields.
func (p *Package) SetNoteCangjie(note *Note, data FieldData) error {
	model := p.GetModel(note)
	if model == nil {
		return fmt.Errorf("model not found for note %d", note.ID)
	}

	fieldIndex := make(map[string]int)
	for _, f := range model.Fields {
		fieldIndex[f.Name] = f.Ord
	}
	for len(note.Fields) < len(model.Fields) {
		note.Fields = append(note.Fields, "")
	}

	if idx, ok := fieldIndex["Cangjie3"]; ok {
		note.Fields[idx] = data.CJ3
	}
	if idx, ok := fieldIndex["Cangjie5"]; ok {
		note.Fields[idx] = data.CJ5
	}
	if idx, ok := fieldIndex["CangjieKeys"]; ok {
		note.Fields[idx] = data.Keys
	}

	note.RawFlds = strings.Join(note.Fields, "\x1f")
	note.Mod = time.Now().Unix()
	return nil
}

// SaveAs writes the package, with all field changes, to a new .apkg
// file. The collection database is closed in the process, so the
// package cannot be saved twice.
func (p *Package) SaveAs(outputPath string) error {
	if err := p.updateModels(); err != nil {
		return err
	}
	if err := p.updateNotes(); err != nil {
		return err
	}

	// Committed pages can still sit in the journal while the handle is
	// open; closing checkpoints everything into collection.anki2.
	if p.db != nil {
		if err := p.db.Close(); err != nil {
			return fmt.Errorf("closing collection: %w", err)
		}
		p.db = nil
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer outFile.Close()

	zw := zip.NewWriter(outFile)
	defer zw.Close()

	err = filepath.Walk(p.tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		relPath, err := filepath.Rel(p.tempDir, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(relPath)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		return fmt.Errorf("writing package: %w", err)
	}
	return nil
}

// updateModels writes the models JSON back to the col table. Only the
// appended Cangjie fields are new; every other key of the stored model
// objects, templates included, passes through unchanged.
func (p *Package) updateModels() error {
	modelsMap := make(map[string]interface{})
	for id, model := range p.Models {
		var obj map[string]interface{}
		if err := json.Unmarshal(model.raw, &obj); err != nil {
			return fmt.Errorf("reparsing model %d: %w", id, err)
		}
		flds, _ := obj["flds"].([]interface{})
		for _, f := range model.Fields[len(flds):] {
			flds = append(flds, map[string]interface{}{
				"name":   f.Name,
				"ord":    f.Ord,
				"sticky": f.Sticky,
				"rtl":    f.RTL,
				"font":   f.Font,
				"size":   f.Size,
				"media":  []interface{}{},
			})
		}
		obj["flds"] = flds
		modelsMap[strconv.FormatInt(id, 10)] = obj
	}
	modelsJSON, err := json.Marshal(modelsMap)
	if err != nil {
		return fmt.Errorf("marshaling models: %w", err)
	}
	if _, err := p.db.Exec("UPDATE col SET models = ?", string(modelsJSON)); err != nil {
		return fmt.Errorf("updating models: %w", err)
	}
	return nil
}

// updateNotes writes the modified field strings back. The sort field and
// its checksum never change here: only appended Cangjie fields differ.
func (p *Package) updateNotes() error {
	for _, note := range p.Notes {
		if _, err := p.db.Exec(
			"UPDATE notes SET mod = ?, flds = ? WHERE id = ?",
			note.Mod, note.RawFlds, note.ID,
		); err != nil {
			return fmt.Errorf("updating note %d: %w", note.ID, err)
		}
	}
	return nil
}
