package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lucperkins/rek"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"

	"github.com/autobrr/transmission-cleanup/pkg/config"
	"github.com/autobrr/transmission-cleanup/pkg/httputils"
	"github.com/autobrr/transmission-cleanup/pkg/reconcile"
)

const (
	maxEmbedsPerMessage = 10
	maxCharactersPerMsg = 6000

	// above this, only the summary embed is sent
	maxTotalFields = 250
)

type DiscordMessage struct {
	Content   interface{}    `json:"content"`
	Username  string         `json:"username,omitempty"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	Embeds    []DiscordEmbed `json:"embeds,omitempty"`
}

type DiscordEmbed struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Color       int                  `json:"color"`
	Fields      []DiscordEmbedsField `json:"fields,omitempty"`
	Footer      DiscordEmbedsFooter  `json:"footer,omitempty"`
	Timestamp   time.Time            `json:"timestamp"`
}

type DiscordEmbedsFooter struct {
	Text string `json:"text"`
}

type DiscordEmbedsField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type EmbedColors int

const (
	LIGHT_BLUE EmbedColors = 0x58b9ff
)

var discordMarkdownChars = regexp.MustCompile(`([\\*_~` + "`" + `|>])`)

func escapeDiscordMarkdown(text string) string {
	if text == "" {
		return text
	}

	return discordMarkdownChars.ReplaceAllString(text, `\$1`)
}

type discordSender struct {
	log    *logrus.Entry
	config config.NotificationsConfig
	client string

	http *http.Client
}

func NewDiscordSender(log *logrus.Entry, cfg config.NotificationsConfig, client string) Sender {
	return &discordSender{
		log:    log.WithField("sender", "discord"),
		config: cfg,
		client: client,
		http: httputils.NewRetryableHttpClient(30*time.Second, 0, ratelimit.New(1, ratelimit.WithoutSlack)),
	}
}

func (d *discordSender) CanSend() bool {
	return d.config.Service.Discord.WebhookURL != ""
}

func (d *discordSender) Send(ctx context.Context, title string, description string, runTime time.Duration,
	fields []Field, dryRun bool) error {
	if len(fields) == 0 && d.config.SkipEmptyRun {
		d.log.Debug("Nothing to report, skipping notification...")
		return nil
	}

	if dryRun {
		title += " [Dry Run]"
	}

	batches, err := d.buildBatches(title, description, runTime, fields, time.Now())
	if err != nil {
		return err
	}

	for i, batch := range batches {
		msg := DiscordMessage{
			Content:   nil,
			Username:  d.config.Service.Discord.Username,
			AvatarURL: d.config.Service.Discord.AvatarURL,
			Embeds:    batch,
		}

		if err := d.sendRequest(ctx, msg); err != nil {
			return errors.WithMessagef(err, "send message %d/%d", i+1, len(batches))
		}

		d.log.Debugf("Sent Discord message %d/%d (%d embeds)", i+1, len(batches), len(batch))
	}

	return nil
}

func (d *discordSender) buildBatches(title string, description string, runTime time.Duration, fields []Field,
	timestamp time.Time) ([][]DiscordEmbed, error) {
	var embeds []DiscordEmbed
	rt := runTime.Truncate(time.Millisecond).String()

	summary := DiscordEmbed{
		Title:       escapeDiscordMarkdown(title),
		Description: description,
		Color:       int(LIGHT_BLUE),
		Footer:      DiscordEmbedsFooter{Text: d.buildFooter(0, 0, rt)},
		Timestamp:   timestamp,
	}

	if len(fields) == 0 || len(fields) > maxTotalFields || !d.config.Detailed {
		embeds = append(embeds, summary)
	} else {
		for i, field := range fields {
			embed := DiscordEmbed{
				Color:     int(LIGHT_BLUE),
				Fields:    field.Fields,
				Footer:    DiscordEmbedsFooter{Text: d.buildFooter(i+1, len(fields), rt)},
				Timestamp: timestamp,
			}
			if field.Name != "" {
				embed.Description = fmt.Sprintf("**%s**", escapeDiscordMarkdown(field.Name))
			}
			embeds = append(embeds, embed)
		}

		if len(fields) > 1 {
			summary.Title = escapeDiscordMarkdown(title) + " - Summary"
			embeds = append(embeds, summary)
		}
	}

	var (
		batches      [][]DiscordEmbed
		currentBatch []DiscordEmbed
		currentChars int
	)

	flush := func() {
		if len(currentBatch) == 0 {
			return
		}
		batches = append(batches, currentBatch)
		currentBatch = nil
		currentChars = 0
	}

	for _, e := range embeds {
		data, err := json.Marshal(e)
		if err != nil {
			return nil, errors.Wrap(err, "calculate embed size")
		}

		if len(currentBatch) >= maxEmbedsPerMessage || currentChars+len(data) > maxCharactersPerMsg {
			flush()
		}

		currentBatch = append(currentBatch, e)
		currentChars += len(data)
	}
	flush()

	// the first embed of every message carries the title
	for i, batch := range batches {
		if batch[0].Title != "" {
			continue
		}

		batch[0].Title = escapeDiscordMarkdown(title)
		if len(batches) > 1 {
			batch[0].Title = fmt.Sprintf("%s (%d/%d)", batch[0].Title, i+1, len(batches))
		}
	}

	return batches, nil
}

func (d *discordSender) sendRequest(ctx context.Context, msg DiscordMessage) error {
	resp, err := rek.Post(d.config.Service.Discord.WebhookURL,
		rek.Client(d.http),
		rek.Json(msg),
		rek.Context(ctx),
	)
	if err != nil {
		return errors.Wrap(err, "request webhook")
	}
	defer resp.Body().Close()

	d.log.Tracef("Discord response status: %d", resp.StatusCode())

	switch resp.StatusCode() {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusTooManyRequests:
		return errors.Errorf("discord rate limit exceeded, retry after: %s",
			resp.Raw().Header.Get("Retry-After"))
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body(), 1024))
	return errors.Errorf("unexpected status: %s body: %s", resp.Status(), string(body))
}

// BuildField constructs a Field describing a removed item.
func (d *discordSender) BuildField(action Action, item reconcile.Item) Field {
	switch action {
	case ActionOrphan, ActionMetadata:
		return d.buildOrphanField(item, action == ActionMetadata)
	case ActionRemove:
		return d.buildRemoveField(item)
	}

	return Field{}
}

func (d *discordSender) buildOrphanField(item reconcile.Item, metadata bool) Field {
	kind := "File"
	switch {
	case metadata:
		kind = "Metadata"
	case item.IsDir:
		kind = "Folder"
	}

	return Field{
		// the path is shown in its own field
		Name: "",
		Fields: []DiscordEmbedsField{
			{Name: "Type", Value: kind, Inline: true},
			{Name: "Size", Value: humanize.IBytes(uint64(item.Size)), Inline: true},
			{Name: "Path", Value: escapeDiscordMarkdown(item.Path), Inline: false},
		},
	}
}

func (d *discordSender) buildRemoveField(item reconcile.Item) Field {
	fields := []DiscordEmbedsField{
		{Name: "Size", Value: humanize.IBytes(uint64(item.Size)), Inline: true},
	}

	if item.Path != "" {
		fields = append(fields, DiscordEmbedsField{
			Name:   "Location",
			Value:  escapeDiscordMarkdown(item.Path),
			Inline: false,
		})
	}

	return Field{
		Name:   item.Name,
		Fields: fields,
	}
}

func (d *discordSender) buildFooter(progress int, total int, runTime string) string {
	if total == 0 {
		return fmt.Sprintf("Client: %s | Started: %s ago", d.client, runTime)
	}

	return fmt.Sprintf("Progress: %d/%d | Client: %s | Started: %s ago", progress, total, d.client, runTime)
}
