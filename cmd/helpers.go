package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/autobrr/transmission-cleanup/pkg/client"
	"github.com/autobrr/transmission-cleanup/pkg/config"
	"github.com/autobrr/transmission-cleanup/pkg/notification"
	"github.com/autobrr/transmission-cleanup/pkg/reconcile"
)

// connect initializes the client and performs the session handshake
func connect(ctx context.Context, log *logrus.Entry, cfg *config.Configuration) (client.Interface, error) {
	c, err := client.NewClient(cfg)
	if err != nil {
		return nil, errors.WithMessage(err, "initialize client")
	}

	log.Debugf("Initialized client, type: %s", c.Type())

	if err := c.Connect(ctx); err != nil {
		return nil, errors.WithMessage(err, "connect")
	}

	log.Debugf("Connected to client")
	return c, nil
}

func reconcileOptions(cfg *config.Configuration) reconcile.Options {
	return reconcile.Options{
		DryRun:     flagDryRun,
		DeleteData: cfg.DeleteData,
	}
}

type report struct {
	title  string
	noun   string
	action notification.Action
	start  time.Time
}

// finish logs the summary, sends the optional notification and fails when any entry could not be removed
func (r report) finish(ctx context.Context, log *logrus.Entry, cfg *config.Configuration, c client.Interface,
	summary *reconcile.Summary) error {
	reclaimed := humanize.IBytes(summary.ReclaimedBytes)

	log.Info("-----")
	log.WithField("reclaimed_space", reclaimed).
		Infof("Removed %d %s, skipped %d, failed %d", summary.Removed, r.noun, summary.Skipped, summary.Failed)

	noti := notification.NewDiscordSender(log, cfg.Notifications, c.Type())
	if !noti.CanSend() {
		log.Debug("Notifications disabled, skipping...")
	} else {
		fields := make([]notification.Field, 0, len(summary.Items))
		for _, item := range summary.Items {
			fields = append(fields, noti.BuildField(r.action, item))
		}

		err := noti.Send(ctx, r.title,
			fmt.Sprintf("Removed **%d** %s | Skipped **%d** | Failed **%d** | Total reclaimed **%s**",
				summary.Removed, r.noun, summary.Skipped, summary.Failed, reclaimed),
			time.Since(r.start),
			fields,
			flagDryRun,
		)
		if err != nil {
			log.WithError(err).Error("Failed sending notification")
		}
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d %s could not be removed", summary.Failed, r.noun)
	}

	return nil
}
