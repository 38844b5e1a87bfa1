// Package scheduler runs periodic maintenance jobs. The only job today
// is a cron-scheduled copy of the user database file to a backup
// directory; the reference dictionary is static and never backed up.
package scheduler

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// BackupConfig controls the user-database backup job.
type BackupConfig struct {
	Enabled  bool
	Schedule string // cron format: "0 3 * * *" = daily at 03:00
	Dir      string
	Keep     int // backups to retain; 0 keeps everything
}

// BackupScheduler copies the user database on a cron schedule.
type BackupScheduler struct {
	dbPath string
	cfg    BackupConfig

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

// NewBackupScheduler creates a scheduler for the database at dbPath.
func NewBackupScheduler(dbPath string, cfg BackupConfig) *BackupScheduler {
	return &BackupScheduler{
		dbPath: dbPath,
		cfg:    cfg,
		cron: cron.New(cron.WithParser(cron.NewParser(
			cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the schedule if backups are enabled.
func (s *BackupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if !s.cfg.Enabled {
		log.Printf("Backup scheduler: disabled")
		return nil
	}
	if s.cfg.Dir == "" {
		log.Printf("Backup scheduler: backup directory not configured, skipping")
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		if err := s.RunBackup(); err != nil {
			log.Printf("Backup failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", s.cfg.Schedule, err)
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Backup scheduler started (schedule: %s, dir: %s)", s.cfg.Schedule, s.cfg.Dir)
	return nil
}

// Stop halts the schedule. Safe to call when never started.
func (s *BackupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	log.Printf("Backup scheduler stopped")
}

// RunBackup copies the user database into the backup directory under a
// timestamped name and prunes old copies past the retention count.
func (s *BackupScheduler) RunBackup() error {
	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	src, err := os.Open(s.dbPath)
	if err != nil {
		return fmt.Errorf("open user database: %w", err)
	}
	defer src.Close()

	base := filepath.Base(s.dbPath)
	name := fmt.Sprintf("%s.%s.bak", base, time.Now().Format("20060102-150405"))
	dstPath := filepath.Join(s.cfg.Dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return fmt.Errorf("copy database: %w", err)
	}

	log.Printf("User database backed up to %s", dstPath)
	return s.prune(base)
}

func (s *BackupScheduler) prune(base string) error {
	if s.cfg.Keep <= 0 {
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(s.cfg.Dir, base+".*.bak"))
	if err != nil {
		return err
	}
	if len(matches) <= s.cfg.Keep {
		return nil
	}

	// Timestamped names sort chronologically.
	sort.Strings(matches)
	for _, old := range matches[:len(matches)-s.cfg.Keep] {
		if err := os.Remove(old); err != nil {
			return fmt.Errorf("prune backup %s: %w", old, err)
		}
	}
	return nil
}
