package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// Open INI configuration from []byte.
func OpenINI(data []byte) (*Config, error) {
	// key names are case-insensitive, section names are not
	file, err := ini.LoadSources(ini.LoadOptions{InsensitiveKeys: true}, data)
	if err != nil {
		return nil, errors.Wrap(err, "parsing ini config")
	}

	self := Defaults()

	zone := file.Section("zone")
	self.Zone.Region = zone.Key("region").String()
	if self.Zone.Cleanup, err = optionalBool(zone, "cleanup", false); err != nil {
		return nil, err
	}
	if self.Zone.Guard_Start, err = optionalInt(zone, "guard_start", self.Zone.Guard_Start); err != nil {
		return nil, err
	}
	if self.Zone.Guard_End, err = optionalInt(zone, "guard_end", self.Zone.Guard_End); err != nil {
		return nil, err
	}

	pb := file.Section("pushbullet")
	if self.Pushbullet.Enabled, err = optionalBool(pb, "enabled", false); err != nil {
		return nil, err
	}
	self.Pushbullet.Apikey = pb.Key("apikey").String()
	self.Pushbullet.Subject = pb.Key("subject").MustString(self.Pushbullet.Subject)
	self.Pushbullet.Message = pb.Key("message").MustString(self.Pushbullet.Message)
	self.Pushbullet.Event_Message = pb.Key("event_message").MustString(self.Pushbullet.Event_Message)

	dbx := file.Section("dropbox")
	self.Dropbox.Folder = dbx.Key("folder").String()
	self.Dropbox.Folder_Link = dbx.Key("folder_link").String()
	self.Dropbox.Access_Token = dbx.Key("access_token").String()

	// the LAN section is optional
	if lan, err := file.GetSection("LAN"); err == nil {
		self.LAN.Ip_Addresses = lan.Key("ip_addresses").Strings(",")
		self.LAN.Method = lan.Key("method").MustString(self.LAN.Method)
		if self.LAN.Timeout.Duration, err = optionalDuration(lan, "timeout", self.LAN.Timeout.Duration); err != nil {
			return nil, err
		}
	}

	storage := file.Section("storage")
	self.Storage.Backend = storage.Key("backend").MustString(self.Storage.Backend)
	self.Storage.Path = storage.Key("path").String()

	telegram := file.Section("telegram")
	self.Telegram.Token = telegram.Key("token").String()
	if self.Telegram.Chat_Id, err = optionalInt64(telegram, "chat_id", 0); err != nil {
		return nil, err
	}

	slack := file.Section("slack")
	self.Slack.Token = slack.Key("token").String()
	self.Slack.Channel = slack.Key("channel").String()

	mastodon := file.Section("mastodon")
	self.Mastodon.Server = mastodon.Key("server").String()
	self.Mastodon.Client_Id = mastodon.Key("client_id").String()
	self.Mastodon.Client_Secret = mastodon.Key("client_secret").String()
	self.Mastodon.Access_Token = mastodon.Key("access_token").String()

	jabber := file.Section("jabber")
	self.Jabber.Host = jabber.Key("host").String()
	self.Jabber.Jid = jabber.Key("jid").String()
	self.Jabber.Pass = jabber.Key("pass").String()
	self.Jabber.To = jabber.Key("to").String()

	email := file.Section("email")
	self.Email.Server = email.Key("server").String()
	self.Email.From = email.Key("from").String()
	self.Email.To = email.Key("to").Strings(",")

	mqtt := file.Section("mqtt")
	self.Mqtt.Broker = mqtt.Key("broker").String()
	self.Mqtt.Topic = mqtt.Key("topic").MustString(self.Mqtt.Topic)

	graphite := file.Section("graphite")
	self.Graphite.Host = graphite.Key("host").String()
	self.Graphite.Prefix = graphite.Key("prefix").MustString(self.Graphite.Prefix)

	log := file.Section("log")
	self.Log.Path = log.Key("path").MustString(self.Log.Path)
	if self.Log.Max_Size, err = optionalInt(log, "max_size", self.Log.Max_Size); err != nil {
		return nil, err
	}
	if self.Log.Backups, err = optionalInt(log, "backups", self.Log.Backups); err != nil {
		return nil, err
	}

	self.normalize()
	return self, self.Validate()
}

func present(section *ini.Section, name string) bool {
	return section.HasKey(name) && strings.TrimSpace(section.Key(name).String()) != ""
}

func optionalBool(section *ini.Section, name string, def bool) (bool, error) {
	if !present(section, name) {
		return def, nil
	}
	b, err := section.Key(name).Bool()
	if err != nil {
		return false, errors.Wrapf(err, "%s: %s", section.Name(), name)
	}
	return b, nil
}

func optionalInt(section *ini.Section, name string, def int) (int, error) {
	if !present(section, name) {
		return def, nil
	}
	i, err := section.Key(name).Int()
	if err != nil {
		return 0, errors.Wrapf(err, "%s: %s", section.Name(), name)
	}
	return i, nil
}

func optionalInt64(section *ini.Section, name string, def int64) (int64, error) {
	if !present(section, name) {
		return def, nil
	}
	i, err := section.Key(name).Int64()
	if err != nil {
		return 0, errors.Wrapf(err, "%s: %s", section.Name(), name)
	}
	return i, nil
}

func optionalDuration(section *ini.Section, name string, def time.Duration) (time.Duration, error) {
	if !present(section, name) {
		return def, nil
	}
	d, err := section.Key(name).Duration()
	if err != nil {
		return 0, errors.Wrapf(err, "%s: %s", section.Name(), name)
	}
	return d, nil
}
