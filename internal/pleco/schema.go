package pleco

// Schema of a Pleco SQL dictionary database, reverse engineered from
// files the app itself produces. Table names, column names, the index set
// and the property list are load-bearing: Pleco refuses files that
// deviate.

var schemaSQL = []string{
	`CREATE TABLE 'pleco_dict_entries' (
  "uid" INTEGER PRIMARY KEY AUTOINCREMENT,
  "created" INTEGER,
  "modified" INTEGER,
  "length" INTEGER,
  "word" TEXT COLLATE NOCASE,
  "altword" TEXT COLLATE NOCASE,
  "pron" TEXT COLLATE NOCASE,
  "defn" TEXT,
  "sortkey" TEXT UNIQUE
)`,
	`CREATE TABLE 'pleco_dict_imports' (
  "id" INTEGER PRIMARY KEY AUTOINCREMENT,
  "starttime" INTEGER,
  "endtime" INTEGER,
  "startentry" INTEGER,
  "endentry" INTEGER
)`,
	`CREATE TABLE 'pleco_dict_properties' (
  "propset" INTEGER,
  "propid" TEXT,
  "propvalue" TEXT,
  "propisstring" INTEGER,
  UNIQUE ("propset","propid")
)`,
	`CREATE TABLE 'pleco_dict_posdex_hz_1' (syllable TEXT, uid INTEGER, length INTEGER)`,
	`CREATE TABLE 'pleco_dict_posdex_hz_2' (syllable TEXT, uid INTEGER, length INTEGER)`,
	`CREATE TABLE 'pleco_dict_posdex_hz_3' (syllable TEXT, uid INTEGER, length INTEGER)`,
	`CREATE TABLE 'pleco_dict_posdex_hz_4' (syllable TEXT, uid INTEGER, length INTEGER)`,
	`CREATE TABLE 'pleco_dict_posdex_py_1' (syllable TEXT, uid INTEGER, length INTEGER)`,
	`CREATE TABLE 'pleco_dict_posdex_py_2' (syllable TEXT, uid INTEGER, length INTEGER)`,
	`CREATE TABLE 'pleco_dict_posdex_py_3' (syllable TEXT, uid INTEGER, length INTEGER)`,
	`CREATE TABLE 'pleco_dict_posdex_py_4' (syllable TEXT, uid INTEGER, length INTEGER)`,
}

var indexSQL = []string{
	`CREATE INDEX idx_pleco_dict_entries_sortkey ON pleco_dict_entries (sortkey)`,
	`CREATE INDEX idx_pleco_dict_posdex_hz_1_syllable_uid_length ON pleco_dict_posdex_hz_1 (syllable, uid, length)`,
	`CREATE INDEX idx_pleco_dict_posdex_hz_1_uid ON pleco_dict_posdex_hz_1 (uid)`,
	`CREATE INDEX idx_pleco_dict_posdex_hz_2_syllable_uid ON pleco_dict_posdex_hz_2 (syllable, uid)`,
	`CREATE INDEX idx_pleco_dict_posdex_hz_2_uid ON pleco_dict_posdex_hz_2 (uid)`,
	`CREATE INDEX idx_pleco_dict_posdex_hz_3_syllable_uid ON pleco_dict_posdex_hz_3 (syllable, uid)`,
	`CREATE INDEX idx_pleco_dict_posdex_hz_3_uid ON pleco_dict_posdex_hz_3 (uid)`,
	`CREATE INDEX idx_pleco_dict_posdex_hz_4_syllable_uid ON pleco_dict_posdex_hz_4 (syllable, uid)`,
	`CREATE INDEX idx_pleco_dict_posdex_hz_4_uid ON pleco_dict_posdex_hz_4 (uid)`,
	`CREATE INDEX idx_pleco_dict_posdex_py_1_syllable_uid_length ON pleco_dict_posdex_py_1 (syllable, uid, length)`,
	`CREATE INDEX idx_pleco_dict_posdex_py_1_uid ON pleco_dict_posdex_py_1 (uid)`,
	`CREATE INDEX idx_pleco_dict_posdex_py_2_syllable_uid ON pleco_dict_posdex_py_2 (syllable, uid)`,
	`CREATE INDEX idx_pleco_dict_posdex_py_2_uid ON pleco_dict_posdex_py_2 (uid)`,
	`CREATE INDEX idx_pleco_dict_posdex_py_3_syllable_uid ON pleco_dict_posdex_py_3 (syllable, uid)`,
	`CREATE INDEX idx_pleco_dict_posdex_py_3_uid ON pleco_dict_posdex_py_3 (uid)`,
	`CREATE INDEX idx_pleco_dict_posdex_py_4_syllable_uid ON pleco_dict_posdex_py_4 (syllable, uid)`,
	`CREATE INDEX idx_pleco_dict_posdex_py_4_uid ON pleco_dict_posdex_py_4 (uid)`,
}
