package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ExampleOpenINI() {
	config, _ := OpenINI([]byte(ExampleINI))
	fmt.Println(config.Zone.Region)
	fmt.Println(config.LAN.Ip_Addresses)
	// Output:
	// Front Door
	// [192.168.1.20 192.168.1.21]
}

func TestINIDefaults(t *testing.T) {
	assert := assert.New(t)
	c := ExampleConfig
	assert.NotNil(c)
	assert.True(c.Zone.Cleanup)
	assert.Equal(1, c.Zone.Guard_Start)
	assert.Equal(7, c.Zone.Guard_End)
	assert.True(c.Pushbullet.Enabled)
	assert.Equal("Motion - {}", c.Pushbullet.Subject)
	assert.Equal("motion/front", c.Dropbox.Folder)
	assert.Equal("dropbox", c.Storage.Backend)
	assert.Equal("ping", c.LAN.Method)
	assert.Equal(time.Second, c.LAN.Timeout.Duration)
	assert.Equal(DefaultLogPath, c.Log.Path)
	assert.Equal(3, c.Log.Backups)
}

func TestINIFalseStrings(t *testing.T) {
	ini := `
[zone]
region = Hall
cleanup = False
[pushbullet]
enabled = no
[dropbox]
access_token = x
`
	c, err := OpenINI([]byte(ini))
	assert.NoError(t, err)
	assert.False(t, c.Zone.Cleanup)
	assert.False(t, c.Pushbullet.Enabled)
	assert.Empty(t, c.LAN.Ip_Addresses)
}

func TestINIBadBool(t *testing.T) {
	ini := `
[zone]
region = Hall
cleanup = perhaps
[dropbox]
access_token = x
`
	_, err := OpenINI([]byte(ini))
	assert.Error(t, err)
}

func TestINIMissingValues(t *testing.T) {
	cases := map[string]string{
		"region": `
[dropbox]
access_token = x
`,
		"apikey": `
[zone]
region = Hall
[pushbullet]
enabled = true
[dropbox]
access_token = x
`,
		"access_token": `
[zone]
region = Hall
`,
		"method": `
[zone]
region = Hall
[dropbox]
access_token = x
[LAN]
method = carrier-pigeon
`,
		"guard": `
[zone]
region = Hall
guard_end = 25
[dropbox]
access_token = x
`,
		"guard_end": `
[zone]
region = Hall
guard_end = seven
[dropbox]
access_token = x
`,
		"timeout": `
[zone]
region = Hall
[dropbox]
access_token = x
[LAN]
timeout = soon
`,
		"chat_id": `
[zone]
region = Hall
[dropbox]
access_token = x
[telegram]
chat_id = me
`,
		"backups": `
[zone]
region = Hall
[dropbox]
access_token = x
[log]
backups = lots
`,
	}
	for name, ini := range cases {
		_, err := OpenINI([]byte(ini))
		assert.Error(t, err, name)
	}
}

func TestINIMixedCaseKeys(t *testing.T) {
	ini := `
[zone]
Region = Hall
Cleanup = True
Guard_End = 6
[dropbox]
Access_Token = x
[LAN]
IP_Addresses = 192.168.1.20
Timeout = 2s
`
	c, err := OpenINI([]byte(ini))
	assert.NoError(t, err)
	assert.Equal(t, "Hall", c.Zone.Region)
	assert.True(t, c.Zone.Cleanup)
	assert.Equal(t, 6, c.Zone.Guard_End)
	assert.Equal(t, "x", c.Dropbox.Access_Token)
	assert.Equal(t, []string{"192.168.1.20"}, c.LAN.Ip_Addresses)
	assert.Equal(t, 2*time.Second, c.LAN.Timeout.Duration)
}

func TestYaml(t *testing.T) {
	assert := assert.New(t)
	c, err := OpenRaw([]byte(ExampleYaml))
	assert.NoError(err)
	assert.Equal("Back Garden", c.Zone.Region)
	assert.Equal(22, c.Zone.Guard_Start)
	assert.Equal(6, c.Zone.Guard_End)
	assert.Equal("dir", c.Storage.Backend)
	assert.Equal("motion/back", c.Dropbox.Folder)
	assert.Equal("icmp", c.LAN.Method)
	assert.Equal(500*time.Millisecond, c.LAN.Timeout.Duration)
	assert.Equal(int64(42), c.Telegram.Chat_Id)
	assert.Equal("motion", c.Mqtt.Topic)
	// unset template keeps its default
	assert.Equal("Motion detected in {}", c.Pushbullet.Message)
}

func TestYamlBadDuration(t *testing.T) {
	yml := `
zone:
  region: x
storage:
  backend: none
lan:
  timeout: soon
`
	_, err := OpenRaw([]byte(yml))
	assert.Error(t, err)
}

func TestOpenByExtension(t *testing.T) {
	dir, err := ioutil.TempDir("", "config")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	conf := filepath.Join(dir, "notify.conf")
	assert.NoError(t, ioutil.WriteFile(conf, []byte(ExampleINI), 0644))
	c, err := Open(conf)
	assert.NoError(t, err)
	assert.Equal(t, "Front Door", c.Zone.Region)

	yml := filepath.Join(dir, "notify.yml")
	assert.NoError(t, ioutil.WriteFile(yml, []byte(ExampleYaml), 0644))
	c, err = Open(yml)
	assert.NoError(t, err)
	assert.Equal(t, "Back Garden", c.Zone.Region)

	_, err = Open(filepath.Join(dir, "missing.conf"))
	assert.Error(t, err)
}
