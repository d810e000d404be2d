package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/lucperkins/rek"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"

	"github.com/autobrr/transmission-cleanup/pkg/config"
	"github.com/autobrr/transmission-cleanup/pkg/httputils"
	"github.com/autobrr/transmission-cleanup/pkg/logger"
)

const (
	sessionIDHeader = "X-Transmission-Session-Id"
	rpcSuccess      = "success"
)

var torrentFields = []string{
	"id",
	"name",
	"hashString",
	"status",
	"isFinished",
	"percentDone",
	"downloadDir",
	"torrentFile",
	"files",
	"labels",
	"totalSize",
	"downloadedEver",
	"uploadRatio",
	"addedDate",
	"secondsSeeding",
	"errorString",
}

/* Struct */

type Transmission struct {
	url      string
	username string
	password string

	// internal
	log        *logrus.Entry
	http       *http.Client
	clientType string

	sessionID string
	tag       int64
}

type rpcRequest struct {
	Method    string      `json:"method"`
	Arguments interface{} `json:"arguments,omitempty"`
	Tag       int64       `json:"tag"`
}

type rpcResponse struct {
	Result    string          `json:"result"`
	Arguments json.RawMessage `json:"arguments"`
	Tag       int64           `json:"tag"`
}

type rpcSession struct {
	RPCVersion           int64  `json:"rpc-version"`
	Version              string `json:"version"`
	IncompleteDir        string `json:"incomplete-dir"`
	IncompleteDirEnabled bool   `json:"incomplete-dir-enabled"`
	ConfigDir            string `json:"config-dir"`
}

type rpcTorrent struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	HashString     string   `json:"hashString"`
	Status         int      `json:"status"`
	IsFinished     bool     `json:"isFinished"`
	PercentDone    float64  `json:"percentDone"`
	DownloadDir    string   `json:"downloadDir"`
	TorrentFile    string   `json:"torrentFile"`
	Labels         []string `json:"labels"`
	TotalSize      int64    `json:"totalSize"`
	DownloadedEver int64    `json:"downloadedEver"`
	UploadRatio    float64  `json:"uploadRatio"`
	AddedDate      int64    `json:"addedDate"`
	SecondsSeeding int64    `json:"secondsSeeding"`
	ErrorString    string   `json:"errorString"`
	Files          []struct {
		Name   string `json:"name"`
		Length int64  `json:"length"`
	} `json:"files"`
}

/* Initializer */

func NewTransmission(cfg *config.Configuration) (*Transmission, error) {
	if cfg == nil {
		return nil, errors.New("missing configuration")
	}

	return &Transmission{
		url:        cfg.RPCURL(),
		username:   cfg.Username,
		password:   cfg.Password,
		log:        logger.GetLogger("transmission"),
		http:       httputils.NewRetryableHttpClient(cfg.Timeout, 0, ratelimit.New(10, ratelimit.WithoutSlack)),
		clientType: "Transmission",
	}, nil
}

/* Interface */

func (c *Transmission) Type() string {
	return c.clientType
}

func (c *Transmission) Connect(ctx context.Context) error {
	c.log.Tracef("Connecting to %s", c.url)

	session := new(rpcSession)
	if err := c.call(ctx, "session-get", map[string]interface{}{
		"fields": []string{"rpc-version", "version", "incomplete-dir", "incomplete-dir-enabled", "config-dir"},
	}, session); err != nil {
		if errors.Is(err, ErrRPC) {
			// the daemon answered, but not with a usable session
			return errors.Wrapf(ErrConnection, "handshake: %v", err)
		}
		return errors.WithMessage(err, "handshake")
	}

	c.log.Debugf("Daemon Version: %s (rpc %d)", session.Version, session.RPCVersion)
	if session.IncompleteDirEnabled {
		c.log.Debugf("Daemon incomplete dir: %q", session.IncompleteDir)
	} else {
		c.log.Warn("Incomplete dir is disabled on the daemon, partial downloads are kept in the download dir")
	}
	c.log.Tracef("Daemon config dir: %q", session.ConfigDir)

	return nil
}

func (c *Transmission) GetTorrents(ctx context.Context) (map[string]config.Torrent, error) {
	c.log.Tracef("Retrieving torrents...")

	var res struct {
		Torrents []rpcTorrent `json:"torrents"`
	}
	if err := c.call(ctx, "torrent-get", map[string]interface{}{
		"fields": torrentFields,
	}, &res); err != nil {
		return nil, errors.WithMessage(err, "get torrents")
	}
	c.log.Tracef("Retrieved %d torrents", len(res.Torrents))

	now := time.Now().Unix()

	torrents := make(map[string]config.Torrent, len(res.Torrents))
	for _, t := range res.Torrents {
		files := make([]string, 0, len(t.Files))
		for _, f := range t.Files {
			files = append(files, f.Name)
		}

		var addedSeconds int64
		if t.AddedDate > 0 && now > t.AddedDate {
			addedSeconds = now - t.AddedDate
		}

		hash := strings.ToLower(t.HashString)
		torrents[hash] = config.Torrent{
			ID:              t.ID,
			Hash:            hash,
			Name:            t.Name,
			Path:            t.DownloadDir,
			TorrentFile:     t.TorrentFile,
			State:           torrentState(t.Status, t.IsFinished),
			Files:           files,
			Labels:          t.Labels,
			TotalBytes:      t.TotalSize,
			DownloadedBytes: t.DownloadedEver,
			Downloaded:      t.PercentDone >= 1,
			Ratio:           float32(t.UploadRatio),
			AddedSeconds:    addedSeconds,
			AddedDays:       float32(addedSeconds) / 60 / 60 / 24,
			SeedingSeconds:  t.SecondsSeeding,
			SeedingDays:     float32(t.SecondsSeeding) / 60 / 60 / 24,
			ErrorString:     t.ErrorString,
		}
	}

	return torrents, nil
}

func (c *Transmission) RemoveTorrent(ctx context.Context, torrent *config.Torrent, deleteData bool) (bool, error) {
	// the daemon accepts both numeric ids and hashes
	var id interface{} = torrent.ID
	if torrent.ID <= 0 {
		id = torrent.Hash
	}

	if err := c.call(ctx, "torrent-remove", map[string]interface{}{
		"ids":               []interface{}{id},
		"delete-local-data": deleteData,
	}, nil); err != nil {
		return false, errors.WithMessagef(err, "remove torrent: %v", torrent.Hash)
	}

	return true, nil
}

/* Internal */

func (c *Transmission) call(ctx context.Context, method string, args interface{}, out interface{}) error {
	c.tag++
	req := rpcRequest{
		Method:    method,
		Arguments: args,
		Tag:       c.tag,
	}

	// the daemon answers 409 with a session id which has to be sent back
	for attempt := 0; attempt < 2; attempt++ {
		headers := map[string]string{
			"Accept": "application/json",
		}
		if c.sessionID != "" {
			headers[sessionIDHeader] = c.sessionID
		}
		if c.username != "" || c.password != "" {
			headers["Authorization"] = httputils.BasicAuth(c.username, c.password)
		}

		resp, err := rek.Post(c.url,
			rek.Client(c.http),
			rek.Headers(headers),
			rek.Json(req),
			rek.Context(ctx),
		)
		if err != nil {
			return errors.Wrapf(ErrConnection, "%s: %v", method, err)
		}

		switch resp.StatusCode() {
		case http.StatusOK:
		case http.StatusConflict:
			c.sessionID = resp.Raw().Header.Get(sessionIDHeader)
			resp.Body().Close()
			if c.sessionID == "" {
				return errors.Wrapf(ErrConnection, "%s: conflict without session id", method)
			}
			c.log.Tracef("Received session id: %s", c.sessionID)
			continue
		case http.StatusUnauthorized, http.StatusForbidden:
			resp.Body().Close()
			return errors.Wrapf(ErrConnection, "%s: %s", method, resp.Status())
		default:
			resp.Body().Close()
			return errors.Wrapf(ErrRPC, "%s: unexpected status: %s", method, resp.Status())
		}

		res := new(rpcResponse)
		err = json.NewDecoder(resp.Body()).Decode(res)
		resp.Body().Close()
		if err != nil {
			return errors.Wrapf(ErrRPC, "%s: decode response: %v", method, err)
		}

		if res.Result != rpcSuccess {
			return errors.Wrapf(ErrRPC, "%s: %s", method, res.Result)
		}

		if out != nil {
			if len(res.Arguments) == 0 {
				return errors.Wrapf(ErrRPC, "%s: response without arguments", method)
			}
			if err := json.Unmarshal(res.Arguments, out); err != nil {
				return errors.Wrapf(ErrRPC, "%s: decode arguments: %v", method, err)
			}
		}

		return nil
	}

	return errors.Wrapf(ErrConnection, "%s: session id rejected", method)
}

func torrentState(status int, finished bool) string {
	if finished {
		return config.StateFinished
	}

	switch status {
	case 0:
		return config.StateStopped
	case 1:
		return config.StateCheckPending
	case 2:
		return config.StateChecking
	case 3:
		return config.StateDownloadPending
	case 4:
		return config.StateDownloading
	case 5:
		return config.StateSeedPending
	case 6:
		return config.StateSeeding
	}

	return config.StateUnknown
}
