package paths

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/autobrr/transmission-cleanup/pkg/logger"
)

type Path struct {
	Path         string
	FileName     string
	Directory    string
	IsDir        bool
	Size         int64
	ModifiedTime time.Time

	// Err is set when the entry was listed but could not be inspected.
	Err error
}

var (
	log = logger.GetLogger("paths")
)

// Entries returns the direct children of folder, sorted by path. Directories are not descended into.
// Entries which cannot be inspected are still returned, with Err set.
func Entries(folder string) ([]Path, error) {
	folder = filepath.Clean(folder)

	fi, err := os.Stat(folder)
	if err != nil {
		return nil, fmt.Errorf("stat folder: %w", err)
	} else if !fi.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", folder)
	}

	var entries []Path
	var mutex sync.Mutex

	conf := fastwalk.Config{
		Follow: false,
	}

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if path == folder {
			return err
		}

		entry := Path{
			Path:      path,
			FileName:  filepath.Base(path),
			Directory: folder,
		}

		if err != nil {
			entry.Err = err
		} else {
			entry.IsDir = d.IsDir()

			if info, err := d.Info(); err != nil {
				entry.Err = err
			} else {
				entry.Size = info.Size()
				entry.ModifiedTime = info.ModTime()
			}
		}

		mutex.Lock()
		entries = append(entries, entry)
		mutex.Unlock()

		if entry.IsDir {
			return filepath.SkipDir
		}
		return nil
	}

	if err := fastwalk.Walk(&conf, folder, walkFn); err != nil {
		return nil, fmt.Errorf("walk %s: %w", folder, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	log.Tracef("Retrieved %d entries from: %q", len(entries), folder)
	return entries, nil
}

// Size returns the size of a file, or the total size of the files below a directory.
func Size(p Path) int64 {
	if !p.IsDir {
		return p.Size
	}

	return int64(folderSize(p.Path))
}

// folderSize walks folder and sums the sizes of all files below it.
func folderSize(folder string) uint64 {
	var size atomic.Uint64

	conf := fastwalk.Config{
		Follow: false,
	}

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.WithError(err).Errorf("Error accessing path %q during walk", path)
			if os.IsPermission(err) {
				log.Warnf("Permission error on %q, continuing walk if possible...", path)
			}
			return nil
		}

		if path == folder || d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			log.WithError(err).Errorf("Failed to get file info for %s", path)
			return nil
		}

		size.Add(uint64(info.Size()))
		return nil
	}

	if err := fastwalk.Walk(&conf, folder, walkFn); err != nil {
		log.WithError(err).Errorf("Failed to walk directory %s", folder)
	}

	return size.Load()
}
