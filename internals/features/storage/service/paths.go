package service

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

var (
	ErrInvalidPath = errors.New("invalid path")
	ErrInvalidName = errors.New("invalid file name")
)

// FilesRoot: "<slug>/files/"; TrashRoot: "<slug>/trash/".
func FilesRoot(slug string) string { return slug + "/files/" }
func TrashRoot(slug string) string { return slug + "/trash/" }

func validSegment(s string) bool {
	if s == "" || s == "." || s == ".." || len(s) > 255 {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) || r == '\\' {
			return false
		}
	}
	return true
}

// CleanFolder: "/a//b/" → "a/b", root → "". Segmen ".." ditolak (bukan di-resolve).
func CleanFolder(p string) (string, error) {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	var parts []string
	for _, seg := range strings.Split(p, "/") {
		seg = strings.TrimSpace(seg)
		if seg == "" || seg == "." {
			continue
		}
		if !validSegment(seg) {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, seg)
		}
		parts = append(parts, seg)
	}
	return strings.Join(parts, "/"), nil
}

func CleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if strings.ContainsAny(name, "/\\") || !validSegment(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return name, nil
}

// FolderPrefix: prefix objek dalam folder (selalu diakhiri "/").
func FolderPrefix(slug, folder string) string {
	if folder == "" {
		return FilesRoot(slug)
	}
	return FilesRoot(slug) + folder + "/"
}

func ObjectKey(slug, folder, name string) string { return FolderPrefix(slug, folder) + name }

// TrashKey: "<slug>/trash/YYYY/MM/DD/HHMMSS__<id>__<name>".
func TrashKey(slug string, id uuid.UUID, name string, now time.Time) string {
	return TrashRoot(slug) + path.Join(
		now.Format("2006"), now.Format("01"), now.Format("02"),
		fmt.Sprintf("%s__%s__%s", now.Format("150405"), id.String(), name),
	)
}

// FolderName: nama terakhir dari prefix folder ("a/files/x/y/" → "y").
func FolderName(prefix string) string {
	return path.Base(strings.TrimSuffix(prefix, "/"))
}

// Relative: prefix folder → path relatif terhadap FilesRoot.
func Relative(slug, prefix string) string {
	return strings.Trim(strings.TrimPrefix(prefix, FilesRoot(slug)), "/")
}

// Candidate: "a.txt", "a (1).txt", "a (2).txt", ...
func Candidate(name string, n int) string {
	if n == 0 {
		return name
	}
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s (%d)%s", base, n, ext)
}
