// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package watcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gen2brain/beeep"
	"github.com/google/uuid"

	"github.com/profile-forge/internal/database"
	"github.com/profile-forge/internal/parser"
	"github.com/profile-forge/internal/processor"
)

// outputSuffix marks generated result files so the watcher never
// re-ingests its own output
const outputSuffix = ".profile.json"

// Manager watches directories for documents and writes a structured
// profile record next to each one it can parse
type Manager struct {
	watchPaths []string
	structurer *processor.Structurer
	history    *database.HistoryStore
	notify     bool
	watchers   map[string]*fsnotify.Watcher
	debouncer  *Debouncer
	mu         sync.RWMutex
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// Status represents the current watcher status
type Status struct {
	WatchingPaths []string `json:"watching_paths"`
}

// NewManager creates a new watcher manager. history may be nil and notify
// controls desktop notifications.
func NewManager(watchPaths []string, structurer *processor.Structurer, history *database.HistoryStore, notify bool) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	mgr := &Manager{
		watchPaths: watchPaths,
		structurer: structurer,
		history:    history,
		notify:     notify,
		watchers:   make(map[string]*fsnotify.Watcher),
		debouncer:  NewDebouncer(500*time.Millisecond, nil),
		ctx:        ctx,
		cancel:     cancel,
	}
	return mgr
}

// Start starts watching all configured paths
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Parses run on tracked goroutines so Stop waits for in-flight work
	// instead of letting a result file land after shutdown
	m.debouncer.Callback = func(filePath string) {
		if m.ctx.Err() != nil {
			return
		}
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			m.processFile(filePath)
		}()
	}

	for _, path := range m.watchPaths {
		if err := m.addWatchPath(path); err != nil {
			log.Printf("Start: failed to watch path %s: %v", path, err)
			continue
		}
	}

	if len(m.watchers) == 0 {
		return fmt.Errorf("no watchable paths out of %d configured", len(m.watchPaths))
	}

	for path, w := range m.watchers {
		m.wg.Add(1)
		go m.processEvents(path, w)
	}

	return nil
}

// Stop stops all watchers and waits for in-flight event loops
func (m *Manager) Stop() {
	m.cancel()
	m.debouncer.Stop()
	m.mu.Lock()
	defer m.mu.Unlock()

	for path, w := range m.watchers {
		if err := w.Close(); err != nil {
			log.Printf("Stop: error closing watcher for %s: %v", path, err)
		}
		delete(m.watchers, path)
	}

	m.wg.Wait()
}

// Status returns current status
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	paths := make([]string, 0, len(m.watchers))
	for path := range m.watchers {
		paths = append(paths, path)
	}
	return Status{WatchingPaths: paths}
}

// addWatchPath adds a directory to watch (recursively)
func (m *Manager) addWatchPath(rootPath string) error {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	if _, exists := m.watchers[absPath]; exists {
		return nil
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		if err := os.MkdirAll(absPath, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		log.Printf("addWatchPath: created watch directory: %s", absPath)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := filepath.Walk(absPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if err := w.Add(path); err != nil {
				log.Printf("addWatchPath: failed to watch %s: %v", path, err)
			}
		}
		return nil
	}); err != nil {
		w.Close()
		return fmt.Errorf("failed to walk directory: %w", err)
	}

	m.watchers[absPath] = w
	log.Printf("addWatchPath: watching directory (recursive): %s", absPath)

	go m.scanExistingFiles(absPath)

	return nil
}

// processEvents processes file system events for one root
func (m *Manager) processEvents(path string, w *fsnotify.Watcher) {
	defer m.wg.Done()

	for {
		select {
		case <-m.ctx.Done():
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create == fsnotify.Create {
				info, err := os.Stat(event.Name)
				if err == nil && info.IsDir() {
					if err := w.Add(event.Name); err != nil {
						log.Printf("processEvents: failed to watch new directory %s: %v", event.Name, err)
					} else {
						log.Printf("processEvents: added new directory to watch: %s", event.Name)
					}
					continue
				}
			}

			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if m.eligible(event.Name) {
					m.debouncer.Trigger(event.Name)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("processEvents: watcher error for %s: %v", path, err)
		}
	}
}

// scanExistingFiles queues files already present when the watch starts,
// through the debouncer so a large directory does not stampede the API
func (m *Manager) scanExistingFiles(dir string) {
	log.Printf("scanExistingFiles: scanning %s", dir)

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && m.eligible(path) {
			m.debouncer.Trigger(path)
		}
		return nil
	})
	if err != nil {
		log.Printf("scanExistingFiles: error scanning %s: %v", dir, err)
	}
}

// eligible filters out temp files, unsupported types, our own output,
// and documents whose result file is already newer than the source
func (m *Manager) eligible(filePath string) bool {
	if strings.HasSuffix(filePath, outputSuffix) {
		return false
	}
	if parser.IsTemporaryFile(filePath) {
		return false
	}
	if !parser.IsSupportedFile(filePath) {
		return false
	}

	srcInfo, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	outInfo, err := os.Stat(outputPath(filePath))
	if err == nil && outInfo.ModTime().After(srcInfo.ModTime()) {
		return false
	}
	return true
}

// processFile runs one document through the full pipeline and writes
// the structured record beside it
func (m *Manager) processFile(filePath string) {
	log.Printf("processFile: processing %s", filePath)

	text, err := parser.ExtractText(filePath)
	if err != nil {
		log.Printf("processFile: failed to extract text from %s: %v", filePath, err)
		m.recordFailure(filePath, database.StatusExtractionFailed, err)
		m.notifyUser("Parse failed", fmt.Sprintf("Could not read %s", filepath.Base(filePath)))
		return
	}

	ctx, cancel := context.WithTimeout(m.ctx, 5*time.Minute)
	defer cancel()

	record, err := m.structurer.ParseFromText(ctx, text)
	if err != nil {
		log.Printf("processFile: failed to structure %s: %v", filePath, err)
		status := database.StatusServiceError
		var insufficient *processor.InsufficientDataError
		if errors.As(err, &insufficient) {
			status = database.StatusInsufficientData
		}
		m.recordFailure(filePath, status, err)
		m.notifyUser("Parse failed", fmt.Sprintf("Could not structure %s", filepath.Base(filePath)))
		return
	}

	if err := m.writeResult(filePath, record); err != nil {
		log.Printf("processFile: failed to write result for %s: %v", filePath, err)
		return
	}

	if m.history != nil {
		if err := m.history.RecordSuccess(uuid.New().String(), filePath, record); err != nil {
			log.Printf("processFile: failed to store history: %v", err)
		}
	}

	log.Printf("processFile: wrote %s (%d entries)", outputPath(filePath), record.EntryCount())
	m.notifyUser("Profile parsed", fmt.Sprintf("%s → %s", filepath.Base(filePath), filepath.Base(outputPath(filePath))))
}

// writeResult writes the record atomically via a temp file rename so a
// half-written result never matches the output suffix check
func (m *Manager) writeResult(filePath string, record *processor.ProfileRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	outPath := outputPath(filePath)
	tempPath := outPath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	if err := os.Rename(tempPath, outPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to finalize result: %w", err)
	}
	return nil
}

func (m *Manager) recordFailure(filePath string, status database.ParseStatus, cause error) {
	if m.history == nil {
		return
	}
	if err := m.history.RecordFailure(uuid.New().String(), filePath, status, cause.Error()); err != nil {
		log.Printf("recordFailure: failed to store history: %v", err)
	}
}

// notifyUser sends a desktop notification when enabled. Failures are
// logged only, headless machines have no notification daemon.
func (m *Manager) notifyUser(title, message string) {
	if !m.notify {
		return
	}
	if err := beeep.Notify(title, message, ""); err != nil {
		log.Printf("notifyUser: notification failed: %v", err)
	}
}

func outputPath(filePath string) string {
	return filePath + outputSuffix
}
