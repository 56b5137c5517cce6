// Package motion handles a single event from the motion daemon: it uploads
// the media and sends a notification, but only while the system is active.
package motion

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/barnybug/motionnotify/config"
	"github.com/barnybug/motionnotify/lib/graphite"
	"github.com/barnybug/motionnotify/notify"
	"github.com/barnybug/motionnotify/presence"
	"github.com/barnybug/motionnotify/pubsub"
	"github.com/barnybug/motionnotify/pubsub/mqtt"
	"github.com/barnybug/motionnotify/storage"
	"github.com/barnybug/motionnotify/util"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type MotionNotify struct {
	Config   *config.Config
	Detector *presence.Detector
	// Storage is nil when uploads are disabled.
	Storage storage.Uploader
	// Notifier is nil unless notifications were requested.
	Notifier notify.Notifier
	// Publisher and Graphite are optional.
	Publisher pubsub.Publisher
	Graphite  graphite.IGraphite
}

// New builds every client the configuration asks for. Notifiers are only
// created when notifications are requested on the command line.
func New(conf *config.Config, notifications bool) (*MotionNotify, error) {
	checker, err := presence.NewChecker(conf.LAN.Method, conf.LAN.Timeout.Duration)
	if err != nil {
		return nil, err
	}
	window := presence.GuardWindow{Start: conf.Zone.Guard_Start, End: conf.Zone.Guard_End}
	self := &MotionNotify{
		Config:   conf,
		Detector: presence.NewDetector(window, conf.LAN.Ip_Addresses, checker),
	}

	if self.Storage, err = storage.New(conf); err != nil {
		return nil, err
	}

	if notifications {
		ns, err := notify.New(conf)
		if err != nil {
			return nil, err
		}
		if len(ns) > 0 {
			self.Notifier = ns
		}
	}

	if conf.Mqtt.Broker != "" {
		pub, err := mqtt.NewPublisher(conf.Mqtt.Broker)
		if err != nil {
			// the bus is a nice to have, carry on without it
			log.Printf("Error connecting to mqtt: %s", err)
		} else {
			self.Publisher = pub
		}
	}
	if conf.Graphite.Host != "" {
		self.Graphite = graphite.New(conf.Graphite.Host, conf.Graphite.Prefix)
	}
	return self, nil
}

// SystemActive is true inside the guard window, or when nobody is home.
func (self *MotionNotify) SystemActive(ctx context.Context) (bool, error) {
	return self.Detector.SystemActive(ctx)
}

func (self *MotionNotify) region() string {
	return self.Config.Zone.Region
}

func (self *MotionNotify) viewAt(template string) string {
	msg := util.Format(template, self.region())
	if link := self.Config.Dropbox.Folder_Link; link != "" {
		msg = fmt.Sprintf("%s - view at %s", msg, link)
	}
	return msg
}

// pushNotice is a no-op when notifications are off.
func (self *MotionNotify) pushNotice(ctx context.Context, body, attachment string) error {
	if self.Notifier == nil {
		return nil
	}
	m := notify.Message{
		Title:      util.Format(self.Config.Pushbullet.Subject, self.region()),
		Body:       body,
		Link:       self.Config.Dropbox.Folder_Link,
		Attachment: attachment,
	}
	return self.Notifier.Notify(ctx, m)
}

// UploadMedia uploads the file and sends a notice when the system is active.
// With cleanup set the local file is removed afterwards, whether or not it
// was uploaded, but never after a failed upload.
func (self *MotionNotify) UploadMedia(ctx context.Context, mediaPath string) error {
	active, err := self.SystemActive(ctx)
	if err != nil {
		return errors.Wrap(err, "presence check")
	}
	self.stat("active", boolValue(active))

	var notifyErr error
	remote := ""
	if active {
		if remote, err = self.upload(ctx, mediaPath); err != nil {
			return err
		}
		notifyErr = self.pushNotice(ctx, self.viewAt(self.Config.Pushbullet.Message), mediaPath)
	}
	self.emit("upload", active, pubsub.Fields{"file": remote})

	if self.Config.Zone.Cleanup {
		log.Printf("Deleting: %s", mediaPath)
		if err := os.Remove(mediaPath); err != nil {
			return multierror.Append(notifyErr, errors.Wrap(err, "cleanup")).ErrorOrNil()
		}
	}
	return notifyErr
}

func (self *MotionNotify) upload(ctx context.Context, mediaPath string) (string, error) {
	if self.Storage == nil {
		return "", nil
	}
	info, err := os.Stat(mediaPath)
	if err != nil {
		return "", err
	}
	started := time.Now()
	remote, err := self.Storage.Upload(ctx, mediaPath)
	if err != nil {
		return "", errors.Wrap(err, "upload")
	}
	took := time.Since(started)
	log.Printf("Uploaded %s (%s) to %s in %s", mediaPath, util.ByteSize(info.Size()), remote, util.ShortDuration(took))
	self.stat("upload.bytes", float64(info.Size()))
	self.stat("upload.seconds", took.Seconds())
	return remote, nil
}

// SendStartEvent notifies that a motion event has begun.
func (self *MotionNotify) SendStartEvent(ctx context.Context) error {
	active, err := self.SystemActive(ctx)
	if err != nil {
		return errors.Wrap(err, "presence check")
	}
	self.stat("active", boolValue(active))
	self.emit("start", active, nil)
	if !active {
		return nil
	}
	return self.pushNotice(ctx, self.viewAt(self.Config.Pushbullet.Event_Message), "")
}

func (self *MotionNotify) emit(command string, active bool, extra pubsub.Fields) {
	self.stat("events."+command, 1)
	if self.Publisher == nil {
		return
	}
	fields := pubsub.Fields{
		"device":  "motion." + slug(self.region()),
		"command": command,
		"region":  self.region(),
		"active":  active,
		"source":  "motion-notify",
	}
	for k, v := range extra {
		fields[k] = v
	}
	ev := pubsub.NewEvent(self.Config.Mqtt.Topic, fields)
	if err := self.Publisher.Emit(ev); err != nil {
		log.Printf("Error publishing %s: %s", ev, err)
	}
}

func (self *MotionNotify) stat(path string, value float64) {
	if self.Graphite != nil {
		self.Graphite.Add(slug(self.region())+"."+path, time.Now().Unix(), value)
	}
}

// Close flushes metrics and disconnects from the bus.
func (self *MotionNotify) Close() {
	if self.Graphite != nil {
		if err := self.Graphite.Flush(); err != nil {
			log.Printf("Error sending to graphite: %s", err)
		}
	}
	if self.Publisher != nil {
		self.Publisher.Close()
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func slug(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r - 'A' + 'a'
		}
		return '_'
	}, s)
}
