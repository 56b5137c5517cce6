// motion-notify: alerts from the motion camera daemon
//
// Run from motion's on_event_start and on_movie_end/on_picture_save hooks, it
//
// - uploads snapshots and clips to Dropbox (or a NAS directory)
//
// - sends push notifications via Pushbullet, and optionally Telegram, Slack,
// Mastodon, Jabber or email
//
// - only while nobody is home (no phone answers a ping on the LAN) or during
// the nightly guard window
//
// - announces each event on the gohome MQTT bus and records upload stats in
// Graphite
//
// Configuration lives in /etc/motion/notify.conf, see config.ExampleINI.
package motionnotify
