// Package plandb keeps a queryable plan history in SQLite. Writes go through
// a buffered channel to a single writer goroutine so planning never blocks on
// the database.
package plandb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
)

type SQLiteHistory struct {
	db *sql.DB

	ch   chan row
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

type row struct {
	RequestID  string
	Action     string
	Target     string
	Summary    string
	DurationMs int64
	Steps      int
	SubTasks   int
	Risks      int
	RecordedAt string
	PlanJSON   string

	flush chan struct{}
}

// PlanRecord is one stored plan, as returned by Recent.
type PlanRecord struct {
	RequestID  string
	Action     string
	Target     string
	Summary    string
	DurationMs int64
	Steps      int
	RecordedAt string
}

func Open(path string) (*SQLiteHistory, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteHistory{
		db: db,
		// Large enough to absorb request bursts; the JSONL log is the
		// source of truth if we ever drop.
		ch: make(chan row, 4096),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	// WAL suits an append-only history table.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS plans (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			request_id TEXT NOT NULL,
			action TEXT NOT NULL,
			target TEXT,
			summary TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			sub_tasks INTEGER NOT NULL,
			risks INTEGER NOT NULL,
			recorded_at TEXT NOT NULL,
			plan_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_plans_action ON plans(action, id);`,
		`CREATE INDEX IF NOT EXISTS idx_plans_request ON plans(request_id);`,
		`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version','1');`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteHistory) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

// RecordPlan implements the transport's Recorder. It never blocks; if the
// writer falls behind the record is dropped.
func (s *SQLiteHistory) RecordPlan(requestID string, task protocol.Task, p *plan.Plan) error {
	if s == nil || s.closed.Load() || p == nil {
		return nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	target := ""
	if task.Target != nil {
		target = task.Target.Describe()
	}
	r := row{
		RequestID:  requestID,
		Action:     p.Action,
		Target:     target,
		Summary:    p.Summary,
		DurationMs: p.EstimatedDuration,
		Steps:      len(p.Steps),
		SubTasks:   len(p.SubTasks),
		Risks:      len(p.Risks),
		RecordedAt: time.Now().UTC().Format(time.RFC3339Nano),
		PlanJSON:   string(b),
	}
	select {
	case s.ch <- r:
	default:
	}
	return nil
}

// Recent returns the newest n plans, newest first.
func (s *SQLiteHistory) Recent(n int) ([]PlanRecord, error) {
	if n <= 0 {
		n = 20
	}
	rows, err := s.db.Query(
		`SELECT request_id, action, target, summary, duration_ms, steps, recorded_at
		 FROM plans ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PlanRecord
	for rows.Next() {
		var r PlanRecord
		var target sql.NullString
		if err := rows.Scan(&r.RequestID, &r.Action, &target, &r.Summary, &r.DurationMs, &r.Steps, &r.RecordedAt); err != nil {
			return nil, err
		}
		r.Target = target.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// Flush commits buffered writes; for tests.
func (s *SQLiteHistory) Flush() {
	if s == nil || s.closed.Load() {
		return
	}
	done := make(chan struct{})
	select {
	case s.ch <- row{flush: done}:
		<-done
	default:
		close(done)
	}
}

func (s *SQLiteHistory) loop() {
	ctx := context.Background()

	insert, _ := s.db.Prepare(`INSERT INTO plans
		(request_id,action,target,summary,duration_ms,steps,sub_tasks,risks,recorded_at,plan_json)
		VALUES(?,?,?,?,?,?,?,?,?,?)`)
	defer func() {
		if insert != nil {
			_ = insert.Close()
		}
	}()

	var (
		tx            *sql.Tx
		opCount       int
		lastCommit    = time.Now()
		commitEvery   = 64
		commitMaxWait = time.Second
	)

	begin := func() {
		if tx != nil {
			return
		}
		txx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			time.Sleep(50 * time.Millisecond)
			return
		}
		tx = txx
		opCount = 0
		lastCommit = time.Now()
	}
	commit := func() {
		if tx == nil {
			return
		}
		_ = tx.Commit()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	rollback := func() {
		if tx == nil {
			return
		}
		_ = tx.Rollback()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}

	for r := range s.ch {
		if r.flush != nil {
			commit()
			close(r.flush)
			continue
		}
		begin()
		if tx == nil || insert == nil {
			continue
		}
		if _, err := tx.Stmt(insert).Exec(
			r.RequestID,
			r.Action,
			r.Target,
			r.Summary,
			r.DurationMs,
			r.Steps,
			r.SubTasks,
			r.Risks,
			r.RecordedAt,
			r.PlanJSON,
		); err != nil {
			rollback()
			continue
		}
		opCount++
		if opCount >= commitEvery || time.Since(lastCommit) >= commitMaxWait {
			commit()
		}
	}

	commit()
}
