package pleco

import (
	"database/sql"
	"fmt"
	"os"
)

// Property is one row of the dictionary property table.
type Property struct {
	ID       string
	Value    string
	IsString bool
}

// DictEntry is one headword read back from a built dictionary.
type DictEntry struct {
	UID  int64
	Word string
	Pron string
	Defn string
}

// Info summarizes a built dictionary.
type Info struct {
	Properties []Property
	EntryCount int64
	Entries    []DictEntry
}

// Inspect reads a built dictionary back: its properties, entry count and
// up to sampleLimit entries in uid order.
func Inspect(path string, sampleLimit int) (*Info, error) {
	// sql.Open would create an empty database for a missing path.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening dictionary: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary: %w", err)
	}
	defer db.Close()

	info := &Info{}

	rows, err := db.Query(
		"SELECT propid, propvalue, propisstring FROM pleco_dict_properties WHERE propset = 0 ORDER BY propid")
	if err != nil {
		return nil, fmt.Errorf("reading properties: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p Property
		var isStr int
		if err := rows.Scan(&p.ID, &p.Value, &isStr); err != nil {
			return nil, fmt.Errorf("reading properties: %w", err)
		}
		p.IsString = isStr != 0
		info.Properties = append(info.Properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading properties: %w", err)
	}

	if err := db.QueryRow("SELECT COUNT(*) FROM pleco_dict_entries").Scan(&info.EntryCount); err != nil {
		return nil, fmt.Errorf("counting entries: %w", err)
	}

	if sampleLimit > 0 {
		rows, err := db.Query(
			"SELECT uid, word, pron, defn FROM pleco_dict_entries ORDER BY uid LIMIT ?", sampleLimit)
		if err != nil {
			return nil, fmt.Errorf("reading entries: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var e DictEntry
			var pron, defn sql.NullString
			if err := rows.Scan(&e.UID, &e.Word, &pron, &defn); err != nil {
				return nil, fmt.Errorf("reading entries: %w", err)
			}
			e.Pron = pron.String
			e.Defn = defn.String
			info.Entries = append(info.Entries, e)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("reading entries: %w", err)
		}
	}
	return info, nil
}

// Lookup returns the definition stored for word, or sql.ErrNoRows wrapped
// when the dictionary has no such entry.
func Lookup(path, word string) (*DictEntry, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening dictionary: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary: %w", err)
	}
	defer db.Close()

	var e DictEntry
	var pron, defn sql.NullString
	err = db.QueryRow(
		"SELECT uid, word, pron, defn FROM pleco_dict_entries WHERE word = ? ORDER BY uid LIMIT 1", word,
	).Scan(&e.UID, &e.Word, &pron, &defn)
	if err != nil {
		return nil, fmt.Errorf("looking up %q: %w", word, err)
	}
	e.Pron = pron.String
	e.Defn = defn.String
	return &e, nil
}
