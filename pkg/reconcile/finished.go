package reconcile

import (
	"context"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/autobrr/transmission-cleanup/pkg/client"
	"github.com/autobrr/transmission-cleanup/pkg/config"
	"github.com/autobrr/transmission-cleanup/pkg/expression"
)

// RemoveFinished removes every finished or stopped torrent not matched by an ignore expression.
// Downloaded data is only deleted with opts.DeleteData.
func RemoveFinished(ctx context.Context, log *logrus.Entry, c client.Interface, exp *expression.Expressions,
	opts Options) (*Summary, error) {
	torrents, err := c.GetTorrents(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "retrieve torrents")
	}
	log.Infof("Retrieved %d torrents", len(torrents))

	var ignores []expression.CompiledExpression
	if exp != nil {
		ignores = exp.Ignores
	}

	summary := new(Summary)
	for _, t := range sortedTorrents(torrents) {
		if !t.IsInactive() {
			log.Tracef("Not removing %s torrent: %q", t.State, t.Name)
			summary.Skipped++
			continue
		}

		ignored, reason, err := expression.CheckTorrentSingleMatchWithReason(&t, ignores)
		if err != nil {
			log.WithError(err).Errorf("Failed checking ignore expressions for: %q", t.Name)
			summary.Failed++
			continue
		} else if ignored {
			log.Debugf("Ignoring torrent %q, matched: %s", t.Name, reason)
			summary.Skipped++
			continue
		}

		log.Info("-----")
		log.Infof("Removing: %q - %s", t.Name, humanize.IBytes(uint64(t.DownloadedBytes)))
		log.Infof("State: %s / Ratio: %.3f / Seed days: %.3f / Labels: %s", t.State, t.Ratio,
			t.SeedingDays, strings.Join(t.Labels, ", "))

		if opts.DryRun {
			log.Warn("Dry-run enabled, skipping remove...")
		} else {
			removed, err := c.RemoveTorrent(ctx, &t, opts.DeleteData)
			if err != nil {
				log.WithError(err).Errorf("Failed removing torrent: %q", t.Name)
				summary.Failed++
				continue
			} else if !removed {
				log.Error("Failed removing torrent...")
				summary.Failed++
				continue
			}

			if opts.DeleteData {
				log.Info("Removed with data")
			} else {
				log.Info("Removed (kept data on disk)")
			}
		}

		summary.add(Item{
			Name:  t.Name,
			Path:  t.Path,
			Size:  t.DownloadedBytes,
			IsDir: false,
		}, opts.DeleteData)
	}

	return summary, nil
}

func sortedTorrents(torrents map[string]config.Torrent) []config.Torrent {
	list := make([]config.Torrent, 0, len(torrents))
	for _, t := range torrents {
		list = append(list, t)
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].ID != list[j].ID {
			return list[i].ID < list[j].ID
		}
		return list[i].Hash < list[j].Hash
	})

	return list
}
