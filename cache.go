package sneptile

import (
	"crypto/sha1"
	"database/sql"
	"fmt"
	"io"
	"strconv"

	_ "github.com/mattn/go-sqlite3" // register sqlite3 driver
	"go.uber.org/multierr"
)

// Cache stores previously rendered output files in an SQLite database so an
// identical run does not need to be encoded again.
type Cache struct {
	db *sql.DB
}

// NewCache opens, creating if necessary, the cache database at file.
func NewCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS run (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE)"); err != nil {
		return nil, multierr.Append(err, db.Close())
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS file (run_id INTEGER NOT NULL, name TEXT NOT NULL, data BLOB NOT NULL, UNIQUE(run_id, name), FOREIGN KEY(run_id) REFERENCES run(id) ON DELETE CASCADE)"); err != nil {
		return nil, multierr.Append(err, db.Close())
	}

	return &Cache{
		db: db,
	}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// CacheKey returns the key for encoding images with o. It covers the options
// and the name and contents of every image, in order.
func CacheKey(o Options, images []*Image) string {
	h := sha1.New()
	io.WriteString(h, o.Mode.String())
	io.WriteString(h, strconv.FormatBool(o.Strict))
	h.Write(o.Palette)
	for _, m := range images {
		fmt.Fprintf(h, "\x00%s\x00", m.Name)
		h.Write(m.Sum[:])
	}
	return fmt.Sprintf("%X", h.Sum(nil))
}

// Find returns the files stored under key, or nil if there are none.
func (c *Cache) Find(key string) (map[string][]byte, error) {
	var id int64
	switch err := c.db.QueryRow("SELECT id FROM run WHERE sha1 = ?", key).Scan(&id); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
	default:
		return nil, err
	}

	rows, err := c.db.Query("SELECT name, data FROM file WHERE run_id = ?", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make(map[string][]byte)
	for rows.Next() {
		var (
			name string
			data []byte
		)
		if err := rows.Scan(&name, &data); err != nil {
			return nil, err
		}
		files[name] = data
	}

	return files, rows.Err()
}

// Store saves files under key, replacing anything already there.
func (c *Cache) Store(key string, files map[string][]byte) (err error) {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, tx.Rollback())
		}
	}()

	if _, err = tx.Exec("DELETE FROM run WHERE sha1 = ?", key); err != nil {
		return err
	}

	result, err := tx.Exec("INSERT INTO run (sha1) VALUES (?)", key)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	for name, data := range files {
		if _, err = tx.Exec("INSERT INTO file (run_id, name, data) VALUES (?, ?, ?)", id, name, data); err != nil {
			return err
		}
	}

	return tx.Commit()
}
