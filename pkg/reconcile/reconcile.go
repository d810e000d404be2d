package reconcile

import (
	"context"
	"io/fs"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/autobrr/transmission-cleanup/pkg/client"
	"github.com/autobrr/transmission-cleanup/pkg/config"
	"github.com/autobrr/transmission-cleanup/pkg/paths"
	"github.com/autobrr/transmission-cleanup/pkg/torrentfilemap"
)

// IncompleteDir removes the entries directly below incompleteDir which no torrent references.
// The directory is listed before the torrents are retrieved, so data of a torrent added meanwhile is kept.
func IncompleteDir(ctx context.Context, log *logrus.Entry, c client.Interface, incompleteDir string,
	opts Options) (*Summary, error) {
	entries, err := paths.Entries(incompleteDir)
	if err != nil {
		return nil, errors.Wrapf(ErrFilesystem, "list incomplete dir: %v", err)
	}
	log.Infof("Retrieved %d entries from: %q", len(entries), incompleteDir)

	torrents, err := c.GetTorrents(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "retrieve torrents")
	}
	log.Infof("Retrieved %d torrents", len(torrents))

	tfm := torrentfilemap.New(torrents, incompleteDir)
	log.Infof("Mapped torrents to %d unique incomplete paths", tfm.Length())

	return incompleteEntries(log, tfm, entries, opts), nil
}

func incompleteEntries(log *logrus.Entry, tfm *torrentfilemap.TorrentFileMap, entries []paths.Path,
	opts Options) *Summary {
	summary := new(Summary)
	for _, entry := range entries {
		if entry.Err != nil {
			log.WithError(entry.Err).Errorf("Failed inspecting entry, skipping: %q", entry.Path)
			summary.Failed++
			continue
		}

		if tfm.HasPath(entry.Path) {
			log.Tracef("Entry referenced by %s: %q", strings.Join(tfm.TorrentsForPath(entry.Path), ", "),
				entry.Path)
			summary.Skipped++
			continue
		}

		removeEntry(log, summary, entry, opts)
	}

	return summary
}

// TorrentsDir removes the .torrent files directly below torrentsDir which belong to no torrent.
func TorrentsDir(ctx context.Context, log *logrus.Entry, c client.Interface, torrentsDir string,
	opts Options) (*Summary, error) {
	entries, err := paths.Entries(torrentsDir)
	if err != nil {
		return nil, errors.Wrapf(ErrFilesystem, "list torrents dir: %v", err)
	}
	log.Infof("Retrieved %d entries from: %q", len(entries), torrentsDir)

	torrents, err := c.GetTorrents(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "retrieve torrents")
	}
	log.Infof("Retrieved %d torrents", len(torrents))

	return metadataEntries(log, torrentfilemap.New(torrents, torrentsDir), entries, opts), nil
}

func metadataEntries(log *logrus.Entry, tfm *torrentfilemap.TorrentFileMap, entries []paths.Path,
	opts Options) *Summary {
	summary := new(Summary)
	for _, entry := range entries {
		if !strings.HasSuffix(entry.FileName, config.TorrentSuffix) {
			log.Tracef("Not a metadata file, skipping: %q", entry.Path)
			summary.Skipped++
			continue
		}

		if entry.Err != nil {
			log.WithError(entry.Err).Errorf("Failed inspecting metadata file, skipping: %q", entry.Path)
			summary.Failed++
			continue
		}

		if entry.IsDir {
			log.Debugf("Directory with metadata suffix, skipping: %q", entry.Path)
			summary.Skipped++
			continue
		}

		if tfm.HasName(entry.FileName) {
			log.Tracef("Metadata file referenced: %q", entry.Path)
			summary.Skipped++
			continue
		}

		removeEntry(log, summary, entry, opts)
	}

	return summary
}

func removeEntry(log *logrus.Entry, summary *Summary, entry paths.Path, opts Options) {
	size := paths.Size(entry)

	log.Info("-----")
	if entry.IsDir {
		log.Infof("Removing orphan folder: %q - %s", entry.Path, humanize.IBytes(uint64(size)))
	} else {
		log.Infof("Removing orphan: %q - %s", entry.Path, humanize.IBytes(uint64(size)))
	}

	if opts.DryRun {
		log.Warn("Dry-run enabled, skipping remove...")
	} else {
		if _, err := os.Lstat(entry.Path); errors.Is(err, fs.ErrNotExist) {
			log.Warn("Orphan no longer exists, skipping...")
			summary.Skipped++
			return
		}

		if err := removePath(entry); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Warn("Orphan no longer exists, skipping...")
				summary.Skipped++
				return
			}

			log.WithError(err).Error("Failed removing orphan...")
			summary.Failed++
			return
		}

		log.Info("Removed")
	}

	summary.add(Item{
		Name:  entry.FileName,
		Path:  entry.Path,
		Size:  size,
		IsDir: entry.IsDir,
	}, true)
}

// replaced in tests
var removePath = func(entry paths.Path) error {
	if entry.IsDir {
		return os.RemoveAll(entry.Path)
	}
	return os.Remove(entry.Path)
}
