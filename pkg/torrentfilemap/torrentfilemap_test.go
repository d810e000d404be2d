package torrentfilemap

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autobrr/transmission-cleanup/pkg/config"
)

func TestTorrentFileMap(t *testing.T) {
	dir := filepath.Join("/data", "incomplete")

	tfm := New(map[string]config.Torrent{
		"hash1": {ID: 1, Hash: "hash1", Name: "a.iso", Files: []string{"a.iso"}},
		"hash2": {ID: 2, Hash: "hash2", Name: "Album", Files: []string{"Album/01.flac"}},
		"hash3": {ID: 3, Hash: "hash3", Name: "Album", Files: []string{"Album/01.flac"}},
	}, dir+string(filepath.Separator))

	assert.True(t, tfm.HasPath(filepath.Join(dir, "a.iso")))
	assert.True(t, tfm.HasPath(filepath.Join(dir, "a.iso.part")))
	assert.True(t, tfm.HasPath(filepath.Join(dir, "Album")+string(filepath.Separator)))
	assert.False(t, tfm.HasPath(filepath.Join(dir, "b.iso.part")))
	assert.False(t, tfm.HasPath(filepath.Join(dir, "A.ISO")), "matching is exact")
	assert.False(t, tfm.HasPath(filepath.Join("/elsewhere", "a.iso")))

	assert.Equal(t, []string{"hash2", "hash3"}, tfm.TorrentsForPath(filepath.Join(dir, "Album")))
	assert.Nil(t, tfm.TorrentsForPath(filepath.Join(dir, "missing")))
	assert.Equal(t, 4, tfm.Length())

	assert.True(t, tfm.HasName("1.torrent"))
	assert.True(t, tfm.HasName("3.torrent"))
	assert.True(t, tfm.HasName("hash1.torrent"))
	assert.False(t, tfm.HasName("4.torrent"))
}

func TestTorrentFileMapEmpty(t *testing.T) {
	tfm := New(nil, "/data/incomplete")

	assert.Equal(t, 0, tfm.Length())
	assert.False(t, tfm.HasPath("/data/incomplete/a"))
	assert.False(t, tfm.HasName("1.torrent"))
}
