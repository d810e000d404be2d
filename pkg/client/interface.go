package client

import (
	"context"

	"github.com/autobrr/transmission-cleanup/pkg/config"
)

type Interface interface {
	Type() string
	Connect(ctx context.Context) error
	GetTorrents(ctx context.Context) (map[string]config.Torrent, error)
	RemoveTorrent(ctx context.Context, torrent *config.Torrent, deleteData bool) (bool, error)
}

func NewClient(cfg *config.Configuration) (Interface, error) {
	return NewTransmission(cfg)
}
