package torrentfilemap

import (
	"path/filepath"
	"sort"

	"github.com/scylladb/go-set/strset"

	"github.com/autobrr/transmission-cleanup/pkg/config"
)

func New(torrents map[string]config.Torrent, incompleteDir string) *TorrentFileMap {
	tfm := &TorrentFileMap{
		incompleteDir: filepath.Clean(incompleteDir),
		pathMap:       make(map[string]*strset.Set),
		nameMap:       make(map[string]*strset.Set),
	}

	for _, torrent := range torrents {
		tfm.Add(torrent)
	}

	return tfm
}

func (t *TorrentFileMap) Add(torrent config.Torrent) {
	for _, p := range torrent.IncompletePaths(t.incompleteDir) {
		add(t.pathMap, p, torrent.Hash)
	}

	for _, n := range torrent.MetadataNames() {
		add(t.nameMap, n, torrent.Hash)
	}
}

// HasPath reports whether an entry of the incomplete dir is referenced by any torrent (exact path).
func (t *TorrentFileMap) HasPath(path string) bool {
	_, ok := t.pathMap[filepath.Clean(path)]
	return ok
}

// HasName reports whether a metadata file name is referenced by any torrent (exact basename).
func (t *TorrentFileMap) HasName(name string) bool {
	_, ok := t.nameMap[name]
	return ok
}

// TorrentsForPath returns the hashes of the torrents referencing path.
func (t *TorrentFileMap) TorrentsForPath(path string) []string {
	hashes, ok := t.pathMap[filepath.Clean(path)]
	if !ok {
		return nil
	}

	list := hashes.List()
	sort.Strings(list)
	return list
}

// Length returns the number of unique referenced incomplete paths.
func (t *TorrentFileMap) Length() int {
	return len(t.pathMap)
}

func add(m map[string]*strset.Set, key string, hash string) {
	if set, exists := m[key]; exists {
		set.Add(hash)
		return
	}

	m[key] = strset.New(hash)
}
