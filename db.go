package mode13h

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// ConversionDB caches packed bitmaps keyed by the SHA-1 of the source
// bitmap.
type ConversionDB struct {
	db *sql.DB
}

// NewConversionDB opens or creates the SQLite database in file.
func NewConversionDB(file string) (*ConversionDB, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}

	// Batch workers share the handle, SQLite only allows one writer
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS conversion (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, width INTEGER NOT NULL, height INTEGER NOT NULL, pbm BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &ConversionDB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *ConversionDB) Close() error {
	return db.db.Close()
}

// Lookup returns the packed bitmap stored for sha, or nil if there isn't one.
func (db *ConversionDB) Lookup(sha string) ([]byte, error) {
	var b []byte
	switch err := db.db.QueryRow("SELECT pbm FROM conversion WHERE sha1 = ?", sha).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return b, nil
	default:
		return nil, err
	}
}

// Store remembers the packed bitmap b for sha.
func (db *ConversionDB) Store(sha string, width, height int, b []byte) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO conversion (sha1, width, height, pbm) VALUES (?, ?, ?, ?)", sha, width, height, b); err != nil {
		return err
	}
	return nil
}

// Length returns the number of cached conversions.
func (db *ConversionDB) Length() (int, error) {
	var n int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM conversion").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
