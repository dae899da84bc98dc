package fsutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Subfolders created under every Mom storage directory.
const (
	MomSubdir     = "mom"
	DraftsSubdir  = "drafts"
	ActionsSubdir = "actions"
)

// Tree manages the on-disk folder layout under the data root. All Mom
// artifacts live below <root>/mom/<storagePath>.
type Tree struct {
	root string
}

func NewTree(root string) *Tree {
	return &Tree{root: root}
}

// Root returns the data root directory.
func (t *Tree) Root() string {
	return t.root
}

// MomDir returns the absolute directory for a Mom's storage path.
func (t *Tree) MomDir(storagePath string) string {
	return filepath.Join(t.root, "mom", filepath.FromSlash(storagePath))
}

// EnsureMomLayout creates the Mom directory with its mom/, drafts/ and
// actions/ subfolders.
func (t *Tree) EnsureMomLayout(storagePath string) error {
	dir := t.MomDir(storagePath)
	for _, sub := range []string{MomSubdir, DraftsSubdir, ActionsSubdir} {
		if err := EnsureDirectory(filepath.Join(dir, sub)); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes data to <momDir>/<rel> and returns the absolute path.
func (t *Tree) WriteFile(storagePath, rel string, data []byte) (string, error) {
	path := filepath.Join(t.MomDir(storagePath), filepath.FromSlash(rel))
	if err := EnsureDirectory(filepath.Dir(path)); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// RemoveMomDir deletes the Mom's folder tree and then walks upward deleting
// now-empty date-bucket folders (day, month, year), stopping at the first
// non-empty ancestor. The <root>/mom directory itself is never removed.
func (t *Tree) RemoveMomDir(storagePath string) error {
	dir := t.MomDir(storagePath)
	if err := os.RemoveAll(dir); err != nil {
		return err
	}

	base := filepath.Join(t.root, "mom")
	parent := filepath.Dir(dir)
	for parent != base && strings.HasPrefix(parent, base) {
		empty, err := isEmptyDir(parent)
		if err != nil || !empty {
			return err
		}
		if err := os.Remove(parent); err != nil {
			return err
		}
		parent = filepath.Dir(parent)
	}
	return nil
}

// EnsureDirectory creates the directory and its parents if missing.
func EnsureDirectory(path string) error {
	return os.MkdirAll(path, os.ModePerm)
}

func isEmptyDir(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return len(entries) == 0, nil
}

// StoragePath derives the date-bucketed relative folder path for a Mom:
// YYYY/MM/DD/<ref>_<slug of title truncated to 50 chars>. It is computed once
// at creation; the title part is purely historical afterwards.
func StoragePath(meetingDate time.Time, ref, title string) string {
	if runes := []rune(title); len(runes) > 50 {
		title = string(runes[:50])
	}
	slug := Slug(ref) + "_" + Slug(title)
	return fmt.Sprintf("%04d/%02d/%02d/%s", meetingDate.Year(), int(meetingDate.Month()), meetingDate.Day(), slug)
}

// Slug sanitizes a string for use as a folder name: disallowed filesystem
// characters become underscores and whitespace runs collapse to a single
// underscore.
func Slug(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case strings.ContainsRune(`\/:*?"<>|`, r):
			r = '_'
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			r = '_'
		}
		if r == '_' {
			if lastUnderscore {
				continue
			}
			lastUnderscore = true
		} else {
			lastUnderscore = false
		}
		b.WriteRune(r)
	}
	return strings.Trim(b.String(), "_")
}

// Checksum returns the hex sha256 digest of the content.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
