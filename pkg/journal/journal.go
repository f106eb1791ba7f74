// Package journal пишет историю запусков в SQLite.
//
// Две таблицы: runs (запуск пайплайна или плана) и steps (исход каждой
// операции внутри запуска). Журнал — вспомогательный: его ошибки
// логируются, но не прерывают обработку файлов.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	mode        TEXT NOT NULL,
	input_dir   TEXT NOT NULL,
	output_dir  TEXT NOT NULL,
	started_at  TIMESTAMP NOT NULL,
	finished_at TIMESTAMP,
	ok          INTEGER
);
CREATE TABLE IF NOT EXISTS steps (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      INTEGER NOT NULL REFERENCES runs(id),
	seq         INTEGER NOT NULL,
	name        TEXT NOT NULL,
	detail      TEXT,
	success     INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_steps_run ON steps(run_id);
`

// Journal — открытый журнал запусков.
type Journal struct {
	db *sql.DB
}

// Open открывает (и при необходимости создаёт) журнал по указанному пути.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init journal schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// BeginRun регистрирует новый запуск и возвращает его id.
//
// mode: "organize" (прямой пайплайн) или "agent" (выполнение плана).
func (j *Journal) BeginRun(mode, inputDir, outputDir string) (int64, error) {
	res, err := j.db.Exec(
		`INSERT INTO runs (mode, input_dir, output_dir, started_at) VALUES (?, ?, ?, ?)`,
		mode, inputDir, outputDir, time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return res.LastInsertId()
}

// RecordStep записывает исход одной операции запуска.
func (j *Journal) RecordStep(runID int64, seq int, name, detail string, success bool, durationMs int64) error {
	_, err := j.db.Exec(
		`INSERT INTO steps (run_id, seq, name, detail, success, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, seq, name, detail, success, durationMs, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert step: %w", err)
	}
	return nil
}

// FinishRun закрывает запуск с общим итогом.
func (j *Journal) FinishRun(runID int64, ok bool) error {
	_, err := j.db.Exec(
		`UPDATE runs SET finished_at = ?, ok = ? WHERE id = ?`,
		time.Now().UTC(), ok, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// RunSummary — краткая сводка одного запуска.
type RunSummary struct {
	ID        int64
	Mode      string
	StartedAt time.Time
	OK        sql.NullBool
	Steps     int
	Failed    int
}

// RecentRuns возвращает последние limit запусков, новые первыми.
func (j *Journal) RecentRuns(limit int) ([]RunSummary, error) {
	rows, err := j.db.Query(`
		SELECT r.id, r.mode, r.started_at, r.ok,
		       COUNT(s.id), COALESCE(SUM(CASE WHEN s.success = 0 THEN 1 ELSE 0 END), 0)
		FROM runs r LEFT JOIN steps s ON s.run_id = r.id
		GROUP BY r.id ORDER BY r.id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var result []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Mode, &r.StartedAt, &r.OK, &r.Steps, &r.Failed); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// Close закрывает журнал.
func (j *Journal) Close() error {
	return j.db.Close()
}
