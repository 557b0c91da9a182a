package pleco

import (
	"crypto/sha256"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsangkit/cjdict/internal/pinyin"
	_ "modernc.org/sqlite"
)

// defaultCreatedAt stamps dictionaries built without an explicit creation
// time. A fixed value keeps rebuilds of unchanged inputs byte identical.
const defaultCreatedAt int64 = 1577836800 // 2020-01-01T00:00:00Z

// Metadata describes the dictionary to the Pleco app.
type Metadata struct {
	Name      string
	MenuName  string
	ShortName string
	Icon      string

	// CreatedAt is the unix timestamp stamped on entries and the import
	// record. FileID and FileCreator identify the file to Pleco's
	// registration system. Zero values are filled deterministically:
	// CreatedAt from a fixed epoch, the identifiers from a digest of the
	// content, so that rebuilding the same inputs reproduces the file.
	CreatedAt   int64
	FileID      int32
	FileCreator int32
}

// DefaultMetadata returns the stock dictionary identity.
func DefaultMetadata() Metadata {
	return Metadata{
		Name:      "Cangjie Input Dictionary 倉頡輸入字典",
		MenuName:  "Cangjie Input Dictionary",
		ShortName: "Cangjie Input Dictionary",
		Icon:      "CJ",
	}
}

// fillDefaults completes zero metadata fields. Identity fields derive
// from a content digest: FileID covers the full signed range Pleco
// accepts, FileCreator the range 1 to 50 million.
func (m *Metadata) fillDefaults(entries []Entry) {
	def := DefaultMetadata()
	if m.Name == "" {
		m.Name = def.Name
	}
	if m.MenuName == "" {
		m.MenuName = def.MenuName
	}
	if m.ShortName == "" {
		m.ShortName = def.ShortName
	}
	if m.Icon == "" {
		m.Icon = def.Icon
	}
	if m.CreatedAt == 0 {
		m.CreatedAt = defaultCreatedAt
	}
	if m.FileID != 0 && m.FileCreator != 0 {
		return
	}
	h := sha256.New()
	for _, s := range []string{m.Name, m.MenuName, m.ShortName, m.Icon} {
		io.WriteString(h, s)
		h.Write([]byte{0})
	}
	for _, e := range entries {
		io.WriteString(h, e.Word)
		io.WriteString(h, e.Defn)
		h.Write([]byte{0})
	}
	sum := h.Sum(nil)
	if m.FileID == 0 {
		v := int64(binary.BigEndian.Uint64(sum[:8])%4_000_000_001) - 2_000_000_000
		m.FileID = int32(v)
	}
	if m.FileCreator == 0 {
		m.FileCreator = int32(binary.BigEndian.Uint32(sum[8:12])%50_000_000) + 1
	}
}

type buildConfig struct {
	base string
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

// WithBase merges the entries into a copy of an existing dictionary
// instead of starting from an empty one. Entries whose word already
// exists in the base get the new definition appended after a blank line;
// everything else in the base stays untouched.
func WithBase(path string) BuildOption {
	return func(c *buildConfig) { c.base = path }
}

// Build writes the dictionary to outPath. The database is assembled in a
// temporary file in the same directory and renamed into place once
// finalized, so a failed build leaves no file at outPath and a rebuild
// never exposes a half-written dictionary.
func Build(outPath string, meta Metadata, entries []Entry, opts ...BuildOption) (err error) {
	var cfg buildConfig
	for _, o := range opts {
		o(&cfg)
	}
	meta.fillDefaults(entries)

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".pqb-*")
	if err != nil {
		return fmt.Errorf("creating temporary output: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if cfg.base != "" {
		if err = copyBase(cfg.base, tmp); err != nil {
			tmp.Close()
			return err
		}
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temporary output: %w", err)
	}

	if err = encode(tmpPath, meta, entries, cfg.base != ""); err != nil {
		return err
	}

	if err = os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("moving dictionary into place: %w", err)
	}
	return nil
}

func copyBase(basePath string, dst *os.File) error {
	src, err := os.Open(basePath)
	if err != nil {
		return fmt.Errorf("opening base dictionary: %w", err)
	}
	defer src.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copying base dictionary: %w", err)
	}
	return nil
}

// encode fills the database at path. With hasBase the schema already
// exists and entries merge into it; otherwise the schema is created
// fresh.
func encode(path string, meta Metadata, entries []Entry, hasBase bool) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	// A single connection so the page size pragma applies to the file
	// being created.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA page_size = 1024"); err != nil {
		return fmt.Errorf("setting page size: %w", err)
	}
	var mode string
	if err := db.QueryRow("PRAGMA journal_mode = DELETE").Scan(&mode); err != nil {
		return fmt.Errorf("setting journal mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = FULL"); err != nil {
		return fmt.Errorf("setting synchronous mode: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if !hasBase {
		for _, q := range schemaSQL {
			if _, err := tx.Exec(q); err != nil {
				return fmt.Errorf("creating schema: %w", err)
			}
		}
		for _, q := range indexSQL {
			if _, err := tx.Exec(q); err != nil {
				return fmt.Errorf("creating indexes: %w", err)
			}
		}
	}

	r := pinyin.NewRenderer()

	nextUID := int64(1)
	if hasBase {
		var max sql.NullInt64
		if err := tx.QueryRow("SELECT MAX(uid) FROM pleco_dict_entries").Scan(&max); err != nil {
			return fmt.Errorf("reading base entries: %w", err)
		}
		if max.Valid {
			nextUID = max.Int64 + 1
		}
	}

	for _, e := range entries {
		if hasBase {
			appended, err := appendToExisting(tx, e, meta.CreatedAt)
			if err != nil {
				return err
			}
			if appended {
				continue
			}
		}
		if err := insertEntry(tx, r, nextUID, e, meta.CreatedAt); err != nil {
			return err
		}
		nextUID++
	}

	var count int64
	if err := tx.QueryRow("SELECT COUNT(*) FROM pleco_dict_entries").Scan(&count); err != nil {
		return fmt.Errorf("counting entries: %w", err)
	}

	if err := writeProperties(tx, meta, count); err != nil {
		return err
	}
	if _, err := tx.Exec(
		"INSERT INTO pleco_dict_imports (starttime, endtime, startentry, endentry) VALUES (?, ?, 1, ?)",
		meta.CreatedAt, meta.CreatedAt, count,
	); err != nil {
		return fmt.Errorf("recording import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("finalizing dictionary: %w", err)
	}
	return nil
}

// appendToExisting looks the word up in the base dictionary and appends
// the new definition to it. It reports false when the word is not there
// and a fresh entry is needed.
func appendToExisting(tx *sql.Tx, e Entry, modified int64) (bool, error) {
	var uid int64
	var defn sql.NullString
	err := tx.QueryRow(
		"SELECT uid, defn FROM pleco_dict_entries WHERE word = ? ORDER BY uid LIMIT 1", e.Word,
	).Scan(&uid, &defn)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up %q in base: %w", e.Word, err)
	}
	merged := e.Defn
	if defn.String != "" {
		merged = defn.String + Newline + Newline + e.Defn
	}
	if _, err := tx.Exec(
		"UPDATE pleco_dict_entries SET defn = ?, modified = ? WHERE uid = ?", merged, modified, uid,
	); err != nil {
		return false, fmt.Errorf("updating %q: %w", e.Word, err)
	}
	return true, nil
}

func insertEntry(tx *sql.Tx, r *pinyin.Renderer, uid int64, e Entry, created int64) error {
	syls := r.Syllables(e.Word)
	pron := strings.Join(syls, " ")
	sortkey := r.SortKey(e.Word, syls)
	if sortkey == "" {
		sortkey = e.Word
	}
	length := utf8.RuneCountInString(e.Word)

	if _, err := tx.Exec(
		"INSERT INTO pleco_dict_entries (uid, created, modified, length, word, altword, pron, defn, sortkey) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		uid, created, created, length, e.Word, nil, pron, e.Defn, sortkey,
	); err != nil {
		return fmt.Errorf("inserting %q: %w", e.Word, err)
	}

	// Position indexes cover the first four characters and syllables.
	i := 0
	for _, ch := range e.Word {
		if i == 4 {
			break
		}
		i++
		q := fmt.Sprintf("INSERT INTO pleco_dict_posdex_hz_%d (syllable, uid, length) VALUES (?, ?, ?)", i)
		if _, err := tx.Exec(q, string(ch), uid, length); err != nil {
			return fmt.Errorf("indexing %q: %w", e.Word, err)
		}
	}
	for i, tok := range splitPron(pron) {
		if i == 4 {
			break
		}
		q := fmt.Sprintf("INSERT INTO pleco_dict_posdex_py_%d (syllable, uid, length) VALUES (?, ?, ?)", i+1)
		if _, err := tx.Exec(q, tok, uid, length); err != nil {
			return fmt.Errorf("indexing %q: %w", e.Word, err)
		}
	}
	return nil
}

// splitPron breaks a pron field into syllable tokens. Pleco separates
// syllables with spaces or "@".
func splitPron(pron string) []string {
	return strings.FieldsFunc(pron, func(r rune) bool {
		return unicode.IsSpace(r) || r == '@'
	})
}

func writeProperties(tx *sql.Tx, meta Metadata, entryCount int64) error {
	props := []struct {
		id    string
		value string
		isStr int
	}{
		{"DictIconFillColor", "39372", 0},
		{"DictIconName", meta.Icon, 1},
		{"DictIconTextColor", "16777215", 0},
		{"DictLang", "Chinese", 1},
		{"DictMenuName", meta.MenuName, 1},
		{"DictName", meta.Name, 1},
		{"DictShortName", meta.ShortName, 1},
		{"EntryCount", strconv.FormatInt(entryCount, 10), 0},
		{"FileCreated", strconv.FormatInt(meta.CreatedAt, 10), 0},
		{"FileCreator", strconv.FormatInt(int64(meta.FileCreator), 10), 0},
		{"FileGenerator", "Pleco Engine 2.0", 1},
		{"FileID", strconv.FormatInt(int64(meta.FileID), 10), 0},
		{"FilePlatform", "Android", 1},
		{"FormatString", "Pleco SQL Dictionary Database", 1},
		{"FormatVersion", "8", 0},
		{"TransLang", "English", 1},
	}
	for _, p := range props {
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO pleco_dict_properties (propset, propid, propvalue, propisstring) VALUES (0, ?, ?, ?)",
			p.id, p.value, p.isStr,
		); err != nil {
			return fmt.Errorf("writing property %s: %w", p.id, err)
		}
	}
	return nil
}
