package reconcile

import "github.com/pkg/errors"

// ErrFilesystem is returned when a managed directory cannot be listed.
var ErrFilesystem = errors.New("filesystem error")

type Options struct {
	DryRun     bool
	DeleteData bool
}

// Item is a removed directory entry or torrent.
type Item struct {
	Name  string
	Path  string
	Size  int64
	IsDir bool
}

type Summary struct {
	Removed        int
	Skipped        int
	Failed         int
	ReclaimedBytes uint64

	Items []Item
}

// Empty reports whether the run neither removed nor failed on anything.
func (s *Summary) Empty() bool {
	return s.Removed == 0 && s.Failed == 0
}

func (s *Summary) add(item Item, reclaimed bool) {
	s.Removed++
	s.Items = append(s.Items, item)

	if reclaimed && item.Size > 0 {
		s.ReclaimedBytes += uint64(item.Size)
	}
}
