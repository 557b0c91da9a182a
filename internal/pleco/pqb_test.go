package pleco_test

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tsangkit/cjdict/internal/pleco"
	_ "modernc.org/sqlite"
)

func testEntries() []pleco.Entry {
	return []pleco.Entry{
		{Word: "明", Defn: "Cangjie:" + nl + "日 月" + nl + "a b"},
		{Word: "好", Defn: "Cangjie:" + nl + "女 弓 木" + nl + "v n d"},
	}
}

func openDict(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func propValue(t *testing.T, db *sql.DB, id string) string {
	t.Helper()
	var v string
	err := db.QueryRow(
		"SELECT propvalue FROM pleco_dict_properties WHERE propset = 0 AND propid = ?", id).Scan(&v)
	require.NoError(t, err)
	return v
}

func TestBuild(t *testing.T) {
	t.Parallel()
	out := filepath.Join(t.TempDir(), "cangjie.pqb")
	require.NoError(t, pleco.Build(out, pleco.Metadata{}, testEntries()))

	db := openDict(t, out)

	require.Equal(t, "Cangjie Input Dictionary 倉頡輸入字典", propValue(t, db, "DictName"))
	require.Equal(t, "CJ", propValue(t, db, "DictIconName"))
	require.Equal(t, "2", propValue(t, db, "EntryCount"))
	require.Equal(t, "8", propValue(t, db, "FormatVersion"))
	require.Equal(t, "Pleco SQL Dictionary Database", propValue(t, db, "FormatString"))
	require.Equal(t, "1577836800", propValue(t, db, "FileCreated"))
	require.NotEqual(t, "0", propValue(t, db, "FileID"))
	require.NotEqual(t, "0", propValue(t, db, "FileCreator"))

	var propCount int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM pleco_dict_properties").Scan(&propCount))
	require.Equal(t, 16, propCount)

	// Entries are numbered from 1 in input order.
	var uid, created, length int64
	var word, pron, defn, sortkey string
	row := db.QueryRow("SELECT uid, created, length, word, pron, defn, sortkey FROM pleco_dict_entries WHERE word = '明'")
	require.NoError(t, row.Scan(&uid, &created, &length, &word, &pron, &defn, &sortkey))
	require.Equal(t, int64(1), uid)
	require.Equal(t, int64(1577836800), created)
	require.Equal(t, int64(1), length)
	require.Equal(t, "ming2", pron)
	require.Equal(t, "Cangjie:"+nl+"日 月"+nl+"a b", defn)
	require.Equal(t, "ｍｉｎｇ２明", sortkey)

	var hzSyl string
	require.NoError(t, db.QueryRow("SELECT syllable FROM pleco_dict_posdex_hz_1 WHERE uid = 1").Scan(&hzSyl))
	require.Equal(t, "明", hzSyl)
	var pySyl string
	require.NoError(t, db.QueryRow("SELECT syllable FROM pleco_dict_posdex_py_1 WHERE uid = 1").Scan(&pySyl))
	require.Equal(t, "ming2", pySyl)

	var start, end int64
	require.NoError(t, db.QueryRow("SELECT startentry, endentry FROM pleco_dict_imports").Scan(&start, &end))
	require.Equal(t, int64(1), start)
	require.Equal(t, int64(2), end)
}

func TestBuildDeterministic(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	first := filepath.Join(dir, "a.pqb")
	second := filepath.Join(dir, "b.pqb")

	require.NoError(t, pleco.Build(first, pleco.Metadata{}, testEntries()))
	require.NoError(t, pleco.Build(second, pleco.Metadata{}, testEntries()))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	require.Equal(t, a, b, "identical inputs must produce identical files")
}

func TestBuildIdentityChangesWithContent(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	first := filepath.Join(dir, "a.pqb")
	second := filepath.Join(dir, "b.pqb")

	require.NoError(t, pleco.Build(first, pleco.Metadata{}, testEntries()))
	require.NoError(t, pleco.Build(second, pleco.Metadata{}, testEntries()[:1]))

	dbA := openDict(t, first)
	dbB := openDict(t, second)
	require.NotEqual(t, propValue(t, dbA, "FileID"), propValue(t, dbB, "FileID"))
}

func TestBuildLeavesNothingOnFailure(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	out := filepath.Join(dir, "broken.pqb")

	// Duplicate words collide on the unique sortkey column.
	bad := []pleco.Entry{
		{Word: "明", Defn: "x"},
		{Word: "明", Defn: "y"},
	}
	require.Error(t, pleco.Build(out, pleco.Metadata{}, bad))
	require.NoFileExists(t, out)

	leftovers, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, leftovers, "temporary files must be cleaned up")
}

func TestBuildWithBase(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	base := filepath.Join(dir, "base.pqb")
	out := filepath.Join(dir, "merged.pqb")

	baseEntries := []pleco.Entry{
		{Word: "日", Defn: "base sun"},
		{Word: "明", Defn: "base bright"},
	}
	require.NoError(t, pleco.Build(base, pleco.Metadata{}, baseEntries))

	overlay := []pleco.Entry{
		{Word: "明", Defn: "Cangjie:" + nl + "日 月" + nl + "a b"},
		{Word: "月", Defn: "Cangjie:" + nl + "月" + nl + "b"},
	}
	meta := pleco.Metadata{CreatedAt: 1700000000}
	require.NoError(t, pleco.Build(out, meta, overlay, pleco.WithBase(base)))

	db := openDict(t, out)

	// Existing entry: definition appended, base text first.
	var defn string
	var modified int64
	row := db.QueryRow("SELECT defn, modified FROM pleco_dict_entries WHERE word = '明'")
	require.NoError(t, row.Scan(&defn, &modified))
	require.Equal(t, "base bright"+nl+nl+"Cangjie:"+nl+"日 月"+nl+"a b", defn)
	require.Equal(t, int64(1700000000), modified)

	// Base-only entry stays untouched.
	var created int64
	row = db.QueryRow("SELECT defn, created FROM pleco_dict_entries WHERE word = '日'")
	require.NoError(t, row.Scan(&defn, &created))
	require.Equal(t, "base sun", defn)
	require.Equal(t, int64(1577836800), created)

	// New entry continues uid numbering after the base.
	var uid int64
	require.NoError(t, db.QueryRow("SELECT uid FROM pleco_dict_entries WHERE word = '月'").Scan(&uid))
	require.Equal(t, int64(3), uid)

	require.Equal(t, "3", propValue(t, db, "EntryCount"))

	// The base file itself is not modified.
	baseDB := openDict(t, base)
	require.Equal(t, "2", propValue(t, baseDB, "EntryCount"))
	row = baseDB.QueryRow("SELECT defn FROM pleco_dict_entries WHERE word = '明'")
	require.NoError(t, row.Scan(&defn))
	require.Equal(t, "base bright", defn)
}

func TestInspect(t *testing.T) {
	t.Parallel()
	out := filepath.Join(t.TempDir(), "cangjie.pqb")
	require.NoError(t, pleco.Build(out, pleco.Metadata{}, testEntries()))

	info, err := pleco.Inspect(out, 1)
	require.NoError(t, err)
	require.Equal(t, int64(2), info.EntryCount)
	require.Len(t, info.Properties, 16)
	require.Len(t, info.Entries, 1)
	require.Equal(t, "明", info.Entries[0].Word)
	require.Equal(t, "ming2", info.Entries[0].Pron)
}

func TestInspectMissingFile(t *testing.T) {
	t.Parallel()
	_, err := pleco.Inspect(filepath.Join(t.TempDir(), "absent.pqb"), 5)
	require.Error(t, err)
}

func TestLookup(t *testing.T) {
	t.Parallel()
	out := filepath.Join(t.TempDir(), "cangjie.pqb")
	require.NoError(t, pleco.Build(out, pleco.Metadata{}, testEntries()))

	e, err := pleco.Lookup(out, "好")
	require.NoError(t, err)
	require.Equal(t, "hao3", e.Pron)

	_, err = pleco.Lookup(out, "無")
	require.True(t, errors.Is(err, sql.ErrNoRows))
}
