package config

import (
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/scylladb/go-set/strset"

	"github.com/autobrr/transmission-cleanup/pkg/regex"
)

// torrent states
const (
	StateStopped         = "stopped"
	StateCheckPending    = "check-pending"
	StateChecking        = "checking"
	StateDownloadPending = "download-pending"
	StateDownloading     = "downloading"
	StateSeedPending     = "seed-pending"
	StateSeeding         = "seeding"
	StateFinished        = "finished"
	StateUnknown         = "unknown"
)

const (
	PartSuffix    = ".part"
	TorrentSuffix = ".torrent"

	// legacy metadata files are named <name>.<first 16 chars of hash>.torrent
	legacyHashLen = 16
)

type Torrent struct {
	// torrent
	ID              int64    `json:"ID"`
	Hash            string   `json:"Hash"`
	Name            string   `json:"Name"`
	Path            string   `json:"Path"`
	TorrentFile     string   `json:"TorrentFile"`
	State           string   `json:"State"`
	Files           []string `json:"Files"`
	Labels          []string `json:"Labels"`
	TotalBytes      int64    `json:"TotalBytes"`
	DownloadedBytes int64    `json:"DownloadedBytes"`
	Downloaded      bool     `json:"Downloaded"`
	Ratio           float32  `json:"Ratio"`
	AddedSeconds    int64    `json:"AddedSeconds"`
	AddedDays       float32  `json:"AddedDays"`
	SeedingSeconds  int64    `json:"SeedingSeconds"`
	SeedingDays     float32  `json:"SeedingDays"`
	ErrorString     string   `json:"ErrorString"`
}

// IsInactive reports whether no further transfer happens for the torrent (finished or stopped).
func (t *Torrent) IsInactive() bool {
	return t.State == StateFinished || t.State == StateStopped
}

// IncompletePaths returns the entries directly below dir that may hold this torrent's partial data:
// the torrent name and the top-level component of every file, each with and without the .part suffix.
func (t *Torrent) IncompletePaths(dir string) []string {
	names := strset.New()

	add := func(name string) {
		if name == "" || name == "." || name == ".." || name == "/" {
			return
		}
		names.Add(name, name+PartSuffix)
	}

	add(t.Name)
	for _, f := range t.Files {
		add(topLevel(f))
	}

	paths := make([]string, 0, names.Size())
	for _, name := range names.List() {
		paths = append(paths, filepath.Join(dir, name))
	}

	sort.Strings(paths)
	return paths
}

// MetadataNames returns the file names the client may use for this torrent's .torrent file.
func (t *Torrent) MetadataNames() []string {
	names := strset.New()

	if t.ID > 0 {
		names.Add(fmt.Sprintf("%d%s", t.ID, TorrentSuffix))
	}

	if t.Hash != "" {
		hash := strings.ToLower(t.Hash)
		names.Add(hash + TorrentSuffix)

		if t.Name != "" && len(hash) >= legacyHashLen {
			names.Add(t.Name + "." + hash[:legacyHashLen] + TorrentSuffix)
		}
	}

	if t.TorrentFile != "" {
		// reported by the daemon, which may use either separator
		names.Add(path.Base(strings.ReplaceAll(t.TorrentFile, `\`, "/")))
	}

	list := names.List()
	sort.Strings(list)
	return list
}

func (t *Torrent) HasAnyLabel(labels ...string) bool {
	return slices.ContainsFunc(labels, t.hasLabel)
}

func (t *Torrent) HasAllLabels(labels ...string) bool {
	for _, l := range labels {
		if !t.hasLabel(l) {
			return false
		}
	}
	return true
}

func (t *Torrent) hasLabel(label string) bool {
	return slices.ContainsFunc(t.Labels, func(s string) bool {
		return strings.EqualFold(s, label)
	})
}

// RegexMatch reports whether the torrent name matches pattern. Invalid patterns never match.
func (t *Torrent) RegexMatch(pattern string) bool {
	p, err := regex.Compile(pattern)
	if err != nil {
		return false
	}

	return p.MatchString(t.Name)
}

func topLevel(file string) string {
	file = strings.TrimLeft(strings.ReplaceAll(file, `\`, "/"), "/")
	if file == "" {
		return ""
	}

	first, _, _ := strings.Cut(path.Clean(file), "/")
	return first
}
