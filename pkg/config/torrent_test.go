package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTorrent_IncompletePaths(t *testing.T) {
	dir := filepath.Join("/data", "incomplete")

	tests := []struct {
		name    string
		torrent Torrent
		want    []string
	}{
		{
			name:    "single_file",
			torrent: Torrent{Name: "a.iso", Files: []string{"a.iso"}},
			want: []string{
				filepath.Join(dir, "a.iso"),
				filepath.Join(dir, "a.iso.part"),
			},
		},
		{
			name: "multi_file",
			torrent: Torrent{Name: "Album", Files: []string{
				"Album/01.flac",
				"Album/02.flac",
				"Album/cover/front.jpg",
			}},
			want: []string{
				filepath.Join(dir, "Album"),
				filepath.Join(dir, "Album.part"),
			},
		},
		{
			name:    "renamed_root",
			torrent: Torrent{Name: "Show", Files: []string{"Show.S01/e01.mkv"}},
			want: []string{
				filepath.Join(dir, "Show"),
				filepath.Join(dir, "Show.S01"),
				filepath.Join(dir, "Show.S01.part"),
				filepath.Join(dir, "Show.part"),
			},
		},
		{
			name:    "magnet_without_metadata",
			torrent: Torrent{Name: ""},
			want:    []string{},
		},
		{
			name:    "unsafe_components",
			torrent: Torrent{Name: "..", Files: []string{"/", "../x"}},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.torrent.IncompletePaths(dir))
		})
	}
}

func TestTorrent_MetadataNames(t *testing.T) {
	tor := Torrent{
		ID:          7,
		Hash:        "0123456789ABCDEF0123456789abcdef01234567",
		Name:        "ubuntu.iso",
		TorrentFile: "/var/lib/transmission/torrents/custom.torrent",
	}

	assert.Equal(t, []string{
		"0123456789abcdef0123456789abcdef01234567.torrent",
		"7.torrent",
		"custom.torrent",
		"ubuntu.iso.0123456789abcdef.torrent",
	}, tor.MetadataNames())

	windows := Torrent{TorrentFile: `C:\Users\me\AppData\Local\transmission\Torrents\x.torrent`}
	assert.Equal(t, []string{"x.torrent"}, windows.MetadataNames())

	assert.Empty(t, (&Torrent{}).MetadataNames())
}

func TestTorrent_IsInactive(t *testing.T) {
	tests := []struct {
		state string
		want  bool
	}{
		{StateFinished, true},
		{StateStopped, true},
		{StateDownloading, false},
		{StateSeeding, false},
		{StateChecking, false},
		{StateUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			tor := Torrent{State: tt.state}
			assert.Equal(t, tt.want, tor.IsInactive())
		})
	}
}

func TestTorrent_Labels(t *testing.T) {
	tor := Torrent{Labels: []string{"Movies", "keep"}}

	assert.True(t, tor.HasAnyLabel("movies"))
	assert.True(t, tor.HasAnyLabel("tv", "KEEP"))
	assert.False(t, tor.HasAnyLabel("tv"))
	assert.True(t, tor.HasAllLabels("movies", "keep"))
	assert.False(t, tor.HasAllLabels("movies", "tv"))
}

func TestTorrent_RegexMatch(t *testing.T) {
	tor := Torrent{Name: "Some.Show.S01E02.1080p"}

	assert.True(t, tor.RegexMatch(`(?i)s\d{2}e\d{2}`))
	assert.False(t, tor.RegexMatch(`2160p`))
	assert.False(t, tor.RegexMatch(`(`))
}
