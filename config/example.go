package config

var ExampleINI = `
[zone]
region = Front Door
cleanup = true

[pushbullet]
enabled = true
apikey = o.abc123
subject = Motion - {}
message = Motion detected at {}
event_message = Event started at {}

[dropbox]
folder = motion/front
folder_link = https://www.dropbox.com/home/motion/front
access_token = sl.token

[LAN]
ip_addresses = 192.168.1.20, 192.168.1.21
`

var ExampleYaml = `
zone:
  region: Back Garden
  cleanup: false
  guard_start: 22
  guard_end: 6
pushbullet:
  enabled: true
  apikey: o.abc123
storage:
  backend: dir
  path: /srv/nas/motion
dropbox:
  folder: /motion/back/
  folder_link: smb://nas/motion/back
lan:
  ip_addresses: [192.168.1.20]
  method: icmp
  timeout: 500ms
telegram:
  token: "123:abc"
  chat_id: 42
mqtt:
  broker: tcp://127.0.0.1:1883
graphite:
  host: graphite.local
`

var ExampleConfig, _ = OpenINI([]byte(ExampleINI))
