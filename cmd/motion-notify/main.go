// Command motion-notify is run from motion's event hooks, eg:
//
//	on_event_start motion-notify -n
//	on_movie_end motion-notify -n -m %f
//
// Without -m it announces the start of an event; with -m it uploads the media
// file. Either way it only notifies while the system is active.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/barnybug/motionnotify/config"
	"github.com/barnybug/motionnotify/motion"
	"github.com/barnybug/motionnotify/util"
	"github.com/pkg/errors"
)

// newMotion is swapped in tests.
var newMotion = motion.New

type options struct {
	media   string
	config  string
	notify  bool
	logPath string
	verbose bool
	timeout time.Duration
}

func parseFlags(args []string) (*options, bool, error) {
	opts := &options{}
	fs := flag.NewFlagSet("motion-notify", flag.ContinueOnError)
	fs.StringVar(&opts.media, "media", "", "Media file path to upload")
	fs.StringVar(&opts.media, "m", "", "Media file path to upload (shorthand)")
	fs.StringVar(&opts.config, "config", config.DefaultPath, "Configuration file to parse")
	fs.StringVar(&opts.config, "c", config.DefaultPath, "Configuration file to parse (shorthand)")
	fs.BoolVar(&opts.notify, "notify", false, "Enable push notifications")
	fs.BoolVar(&opts.notify, "n", false, "Enable push notifications (shorthand)")
	fs.StringVar(&opts.logPath, "log", config.DefaultLogPath, "Log file")
	fs.BoolVar(&opts.verbose, "debug", false, "Also log to stdout")
	fs.DurationVar(&opts.timeout, "timeout", 5*time.Minute, "Give up after this long, including connecting to services")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: motion-notify [-c config] [-n] [-m media]")
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "A notifier for the motion daemon: uploads media and sends")
		fmt.Fprintln(fs.Output(), "push notifications when nobody is home.")
		fmt.Fprintln(fs.Output())
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}
	logSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "log" {
			logSet = true
		}
	})
	return opts, logSet, nil
}

func run(ctx context.Context, args []string) (code int) {
	opts, logSet, err := parseFlags(args)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	logs := util.SetupLogging(opts.logPath, 1, 3, opts.verbose)
	defer func() { logs.Close() }()

	// uncaught failures end up in the log rather than on motion's stderr
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC: %v\n%s", r, debug.Stack())
			code = 1
		}
	}()

	if !util.Exists(opts.config) {
		log.Printf("Config file does not exist [%s]", opts.config)
		return 1
	}
	log.Println("Loading config")
	conf, err := config.Open(opts.config)
	if err != nil {
		log.Printf("Error loading config %s: %s", opts.config, err)
		return 1
	}
	if !logSet && (conf.Log.Path != opts.logPath || conf.Log.Max_Size != 1 || conf.Log.Backups != 3) {
		logs = reopenLogs(logs, conf, opts.verbose)
	}

	if opts.media != "" && !util.Exists(opts.media) {
		log.Printf("Video file does not exist [%s]", opts.media)
		return 1
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	mn, err := connect(ctx, conf, opts.notify)
	if err != nil {
		log.Printf("Error: %s", err)
		return 1
	}
	defer mn.Close()

	if opts.media == "" {
		err = mn.SendStartEvent(ctx)
		if err == nil {
			log.Println("Start event triggered")
		}
	} else {
		err = mn.UploadMedia(ctx, opts.media)
	}
	if err != nil {
		log.Printf("Error: %s", err)
		return 1
	}
	return 0
}

// connect builds the clients under the run's deadline. Some client libraries
// take no context, so a hung handshake is abandoned rather than cancelled.
func connect(ctx context.Context, conf *config.Config, notifications bool) (*motion.MotionNotify, error) {
	type result struct {
		mn  *motion.MotionNotify
		err error
	}
	done := make(chan result, 1)
	go func() {
		mn, err := newMotion(conf, notifications)
		done <- result{mn, err}
	}()
	select {
	case r := <-done:
		return r.mn, r.err
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "connecting to services")
	}
}

func reopenLogs(previous io.Closer, conf *config.Config, verbose bool) io.Closer {
	previous.Close()
	return util.SetupLogging(conf.Log.Path, conf.Log.Max_Size, conf.Log.Backups, verbose)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
