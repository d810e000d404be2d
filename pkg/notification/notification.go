package notification

import (
	"context"
	"time"

	"github.com/autobrr/transmission-cleanup/pkg/reconcile"
)

type Action int

const (
	ActionOrphan Action = iota + 1
	ActionMetadata
	ActionRemove
)

type Sender interface {
	CanSend() bool
	Send(ctx context.Context, title string, description string, runTime time.Duration, fields []Field, dryRun bool) error
	BuildField(action Action, item reconcile.Item) Field
}

// Field describes a single removed item, rendered as one embed in detailed mode.
type Field struct {
	Name   string
	Fields []DiscordEmbedsField
}
