package torrentfilemap

import (
	"github.com/scylladb/go-set/strset"
)

type TorrentFileMap struct {
	incompleteDir string

	// incomplete path -> hashes of the torrents referencing it
	pathMap map[string]*strset.Set
	// metadata file name -> hashes of the torrents referencing it
	nameMap map[string]*strset.Set
}
