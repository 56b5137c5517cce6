// Package config loads the motion-notify configuration.
//
// The canonical format is an INI file (default /etc/motion/notify.conf) with
// [zone], [pushbullet], [dropbox] and [LAN] sections. A YAML document with the
// same structure is accepted when the file name ends in .yml or .yaml.
package config

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// DefaultPath is where motion's hooks expect the configuration.
const DefaultPath = "/etc/motion/notify.conf"

// DefaultLogPath is the rotating log file.
const DefaultLogPath = "/var/tmp/motion-notify.log"

type ZoneConf struct {
	Region      string
	Cleanup     bool
	Guard_Start int
	Guard_End   int
}

type PushbulletConf struct {
	Enabled       bool
	Apikey        string
	Subject       string
	Message       string
	Event_Message string
}

type DropboxConf struct {
	Folder       string
	Folder_Link  string
	Access_Token string
}

type Duration struct {
	Duration time.Duration
}

func (self *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	self.Duration = d
	return nil
}

type LANConf struct {
	Ip_Addresses []string
	Method       string
	Timeout      Duration
}

type StorageConf struct {
	Backend string
	Path    string
}

type TelegramConf struct {
	Token   string
	Chat_Id int64
}

type SlackConf struct {
	Token   string
	Channel string
}

type MastodonConf struct {
	Server        string
	Client_Id     string
	Client_Secret string
	Access_Token  string
}

type JabberConf struct {
	Host string
	Jid  string
	Pass string
	To   string
}

type EmailConf struct {
	Server string
	From   string
	To     []string
}

type MqttConf struct {
	Broker string
	Topic  string
}

type GraphiteConf struct {
	Host   string
	Prefix string
}

type LogConf struct {
	Path     string
	Max_Size int
	Backups  int
}

// Configuration structure
type Config struct {
	Zone       ZoneConf
	Pushbullet PushbulletConf
	Dropbox    DropboxConf
	LAN        LANConf `yaml:"lan"`
	Storage    StorageConf
	Telegram   TelegramConf
	Slack      SlackConf
	Mastodon   MastodonConf
	Jabber     JabberConf
	Email      EmailConf
	Mqtt       MqttConf
	Graphite   GraphiteConf
	Log        LogConf
}

// Defaults returns a configuration with every optional value filled in.
func Defaults() *Config {
	return &Config{
		Zone: ZoneConf{
			Guard_Start: 1,
			Guard_End:   7,
		},
		Pushbullet: PushbulletConf{
			Subject:       "Motion detected - {}",
			Message:       "Motion detected in {}",
			Event_Message: "Motion event started in {}",
		},
		LAN: LANConf{
			Method:  "ping",
			Timeout: Duration{time.Second},
		},
		Storage: StorageConf{Backend: "dropbox"},
		Mqtt:    MqttConf{Topic: "motion"},
		Graphite: GraphiteConf{
			Prefix: "motion",
		},
		Log: LogConf{
			Path:     DefaultLogPath,
			Max_Size: 1,
			Backups:  3,
		},
	}
}

// Open configuration from disk. The format is chosen by file extension.
func Open(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return OpenRaw(data)
	default:
		return OpenINI(data)
	}
}

// Open YAML configuration from []byte.
func OpenRaw(data []byte) (*Config, error) {
	self := Defaults()
	if err := yaml.Unmarshal(data, self); err != nil {
		return nil, errors.Wrap(err, "parsing yaml config")
	}
	self.normalize()
	return self, self.Validate()
}

func (self *Config) normalize() {
	var addrs []string
	for _, addr := range self.LAN.Ip_Addresses {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			addrs = append(addrs, addr)
		}
	}
	self.LAN.Ip_Addresses = addrs
	self.LAN.Method = strings.ToLower(self.LAN.Method)
	self.Storage.Backend = strings.ToLower(self.Storage.Backend)
	self.Dropbox.Folder = strings.Trim(self.Dropbox.Folder, "/")
}

// Validate checks every value is present before it is used.
func (self *Config) Validate() error {
	if self.Zone.Region == "" {
		return errors.New("zone: region is required")
	}
	if err := validHour("guard_start", self.Zone.Guard_Start); err != nil {
		return err
	}
	if err := validHour("guard_end", self.Zone.Guard_End); err != nil {
		return err
	}
	if self.Pushbullet.Enabled && self.Pushbullet.Apikey == "" {
		return errors.New("pushbullet: apikey is required when enabled")
	}
	switch self.Storage.Backend {
	case "dropbox":
		if self.Dropbox.Access_Token == "" {
			return errors.New("dropbox: access_token is required")
		}
	case "dir":
		if self.Storage.Path == "" {
			return errors.New("storage: path is required for the dir backend")
		}
	case "none":
	default:
		return fmt.Errorf("storage: unknown backend %q", self.Storage.Backend)
	}
	switch self.LAN.Method {
	case "ping", "icmp":
	default:
		return fmt.Errorf("LAN: unknown method %q", self.LAN.Method)
	}
	if self.LAN.Timeout.Duration <= 0 {
		return errors.New("LAN: timeout must be positive")
	}
	return nil
}

func validHour(name string, hour int) error {
	if hour < 0 || hour > 24 {
		return fmt.Errorf("zone: %s must be an hour between 0 and 24, got %d", name, hour)
	}
	return nil
}
