// Package zonedb enumerates the IANA zone names installed on the host.
//
// The standard library can load a zone by name but cannot list them, so the
// zoneinfo tree is walked directly. When no tree is installed the zip that
// ships with the Go distribution is read instead. Lookup still works
// against the embedded time/tzdata when neither can be read.
package zonedb

import (
	"archive/zip"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// ErrNoDatabase is returned when no zoneinfo source could be read.
var ErrNoDatabase = errors.New("no zoneinfo database found")

var zoneDirs = []string{
	"/usr/share/zoneinfo/",
	"/usr/share/lib/zoneinfo/",
	"/usr/lib/locale/TZ/",
	"/etc/zoneinfo/",
}

// Entries that live in a zoneinfo tree but are not zones.
var skipNames = map[string]bool{
	"localtime":  true,
	"posixrules": true,
	"Factory":    true,
}

var skipDirs = map[string]bool{
	"posix": true,
	"right": true,
}

var (
	once     sync.Once
	cached   []string
	cacheErr error
)

// Names returns every installed zone name, sorted. The result is computed
// once per process.
func Names() ([]string, error) {
	once.Do(func() {
		cached, cacheErr = load()
	})
	return cached, cacheErr
}

// Lookup returns the canonical spelling of name, matched case-insensitively.
// Without a readable zoneinfo source it falls back to loading the usual
// capitalisations of name, which still reaches an embedded time/tzdata.
func Lookup(name string) (string, bool) {
	if names, err := Names(); err == nil {
		for _, n := range names {
			if strings.EqualFold(n, name) {
				return n, true
			}
		}
	}
	return lookupByLoad(name)
}

func lookupByLoad(name string) (string, bool) {
	for _, candidate := range spellings(name) {
		if _, err := time.LoadLocation(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// spellings returns the capitalisations zone names conventionally use:
// all upper case ("EST5EDT"), and title case per word ("America/New_York")
// with the Etc zones upper-cased after the region ("Etc/GMT+12").
func spellings(name string) []string {
	upper := strings.ToUpper(name)
	title := titleWords(name)
	out := []string{upper, title}
	if region, rest, ok := strings.Cut(title, "/"); ok && region == "Etc" {
		out = append(out, region+"/"+strings.ToUpper(rest))
	}
	return out
}

func titleWords(name string) string {
	b := []byte(strings.ToLower(name))
	for i := range b {
		if i == 0 || strings.IndexByte("/_-", b[i-1]) >= 0 {
			if 'a' <= b[i] && b[i] <= 'z' {
				b[i] -= 'a' - 'A'
			}
		}
	}
	return string(b)
}

// Filter returns the names that contain substr.
func Filter(names []string, substr string) []string {
	var out []string
	for _, n := range names {
		if strings.Contains(n, substr) {
			out = append(out, n)
		}
	}
	return out
}

func load() ([]string, error) {
	var sources []string
	if env := os.Getenv("ZONEINFO"); env != "" {
		sources = append(sources, env)
	}
	sources = append(sources, zoneDirs...)
	sources = append(sources, filepath.Join(runtime.GOROOT(), "lib", "time", "zoneinfo.zip"))

	for _, src := range sources {
		info, err := os.Stat(src)
		if err != nil {
			continue
		}
		var names []string
		if info.IsDir() {
			names, err = ScanDir(src)
		} else {
			names, err = ScanZip(src)
		}
		if err != nil {
			slog.Debug("zoneinfo source unreadable", slog.String("source", src), slog.String("error", err.Error()))
			continue
		}
		if len(names) == 0 {
			continue
		}
		slog.Debug("zoneinfo source loaded", slog.String("source", src), slog.Int("zones", len(names)))
		return names, nil
	}
	return nil, ErrNoDatabase
}

// ScanDir walks a zoneinfo tree rooted at root and returns the names of the
// files that carry the TZif magic.
func ScanDir(root string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if skipDirs[rel] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		if !isZoneName(rel) {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return nil
		}
		defer f.Close()
		if hasMagic(f) {
			names = append(names, rel)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scan zoneinfo tree %s", root)
	}
	sort.Strings(names)
	return names, nil
}

// ScanZip lists the zones stored in a zoneinfo.zip archive.
func ScanZip(path string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open zoneinfo archive %s", path)
	}
	defer r.Close()

	var names []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isZoneName(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "read %s from %s", f.Name, path)
		}
		ok := hasMagic(rc)
		rc.Close()
		if ok {
			names = append(names, f.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func isZoneName(rel string) bool {
	if skipNames[rel] || strings.Contains(rel, ".") {
		return false
	}
	first, _, _ := strings.Cut(rel, "/")
	return !skipDirs[first]
}

func hasMagic(r io.Reader) bool {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return false
	}
	return string(buf[:]) == "TZif"
}
