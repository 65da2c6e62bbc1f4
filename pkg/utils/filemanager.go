// =============================================================================
// Coupon Settlement System - File Manager Utility
// =============================================================================
//
// File management for the settlement CLI:
//   - discovery of redemption spreadsheets in the input directory
//   - writing the exported settlement report
//   - archival of processed spreadsheets
//   - directory management
//
// ARCHIVAL STRATEGY:
//   Input spreadsheets are moved to the input archive after a successful
//   run; failed runs leave the file where it was.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileManager handles file operations for the settlement CLI.
type FileManager struct {
	// InputDir is the directory scanned for redemption spreadsheets.
	InputDir string

	// OutputDir is the directory the settlement report is written to.
	OutputDir string

	// InputArchiveDir is the directory for archived spreadsheets.
	InputArchiveDir string

	// ArchiveOnSuccess determines whether inputs are archived after a
	// successful run.
	ArchiveOnSuccess bool
}

// NewFileManager creates a FileManager for the given directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir string) *FileManager {
	return &FileManager{
		InputDir:         inputDir,
		OutputDir:        outputDir,
		InputArchiveDir:  inputArchiveDir,
		ArchiveOnSuccess: true,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{fm.InputDir, fm.OutputDir, fm.InputArchiveDir}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles returns the spreadsheets in the input directory,
// newest first. The pattern defaults to "*.xlsx".
func (fm *FileManager) DiscoverInputFiles(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*.xlsx"
	}

	files, err := filepath.Glob(filepath.Join(fm.InputDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	type candidate struct {
		path    string
		modTime time.Time
	}

	var candidates []candidate
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil || info.IsDir() {
			continue
		}
		candidates = append(candidates, candidate{path: file, modTime: info.ModTime()})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].modTime.After(candidates[j].modTime)
	})

	result := make([]string, len(candidates))
	for i, c := range candidates {
		result[i] = c.path
	}
	return result, nil
}

// =============================================================================
// OUTPUT WRITING
// =============================================================================

// WriteOutput writes the settlement report into the output directory. The
// name format supports the placeholders {month}, {timestamp} and {uuid}.
// Returns the path written.
func (fm *FileManager) WriteOutput(nameFormat, month, content string) (string, error) {
	name := ExpandNameFormat(nameFormat, month)
	path := filepath.Join(fm.OutputDir, name)

	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write output file: %w", err)
	}

	return path, nil
}

// ExpandNameFormat fills the file-name placeholders.
func ExpandNameFormat(format, month string) string {
	name := format
	name = strings.ReplaceAll(name, "{month}", month)
	name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))
	name = strings.ReplaceAll(name, "{uuid}", uuid.NewString())
	return name
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveInputFile moves a processed spreadsheet to the archive directory
// and returns the archived path.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if !fm.ArchiveOnSuccess {
		return filePath, nil
	}

	archivePath := filepath.Join(fm.InputArchiveDir, filepath.Base(filePath))
	if err := os.MkdirAll(fm.InputArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.Rename(filePath, archivePath); err != nil {
		// Rename can fail across devices; fall back to copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// copyFile copies src to dst, preserving contents only.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
