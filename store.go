package pixelator

import (
	"bytes"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/CBibop12/pixelator/project"
)

// Store is the sqlite-backed project library. Snapshots are kept as JSON
// blobs under a unique name, together with the SHA1 of the source image they
// were taken from.
type Store struct {
	db *sql.DB
}

func NewStore(file string) (*Store, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS project (id INTEGER PRIMARY KEY NOT NULL, name STRING NOT NULL UNIQUE, sha1 TEXT NOT NULL, snapshot BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	return &Store{
		db: db,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveProject stores the snapshot under name, replacing any previous
// snapshot with the same name.
func (s *Store) SaveProject(name, sha string, snap *project.Snapshot) error {
	b := new(bytes.Buffer)
	if err := project.Encode(b, snap); err != nil {
		return err
	}
	if _, err := s.db.Exec("INSERT OR REPLACE INTO project (name, sha1, snapshot) VALUES (?, ?, ?)", name, sha, b.Bytes()); err != nil {
		return err
	}
	return nil
}

// LoadProject returns the snapshot stored under name, or nil if there is
// none.
func (s *Store) LoadProject(name string) (*project.Snapshot, error) {
	var blob []byte
	switch err := s.db.QueryRow("SELECT snapshot FROM project WHERE name = ?", name).Scan(&blob); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return project.Decode(bytes.NewReader(blob))
	default:
		return nil, err
	}
}

// Projects lists the stored project names in alphabetical order.
func (s *Store) Projects() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM project ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DeleteProject removes the snapshot stored under name. Deleting a name
// that does not exist is not an error.
func (s *Store) DeleteProject(name string) error {
	if _, err := s.db.Exec("DELETE FROM project WHERE name = ?", name); err != nil {
		return err
	}
	return nil
}
