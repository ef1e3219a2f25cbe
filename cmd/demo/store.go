package main

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// todoItem is one stored todo row.
type todoItem struct {
	id    string
	title string
	done  bool
}

// todoStore is the sqlite-backed persistence layer for the todo demo.
type todoStore struct {
	db *sql.DB
}

// openStore opens (or creates) the database at path and applies the embedded
// migrations.
func openStore(path string) (*todoStore, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &todoStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return err
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err == migrate.ErrNoChange {
		return nil
	}
	return err
}

func (s *todoStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// List returns all items, oldest first.
func (s *todoStore) List(ctx context.Context) ([]todoItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, done FROM todos ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var items []todoItem
	for rows.Next() {
		var it todoItem
		if err := rows.Scan(&it.id, &it.title, &it.done); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *todoStore) Add(ctx context.Context, it todoItem) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO todos (id, title, done) VALUES (?, ?, ?)`,
		it.id, it.title, it.done)
	if err != nil {
		return fmt.Errorf("add todo: %w", err)
	}
	return nil
}

func (s *todoStore) SetDone(ctx context.Context, id string, done bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE todos SET done = ? WHERE id = ?`, done, id)
	if err != nil {
		return fmt.Errorf("toggle todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("toggle todo: no row with id %s", id)
	}
	return nil
}

func (s *todoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}
