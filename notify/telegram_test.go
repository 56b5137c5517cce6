package notify

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

func telegramServer(t *testing.T, methods *[]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		*methods = append(*methods, method)
		ioutil.ReadAll(r.Body)
		switch method {
		case "getMe":
			w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"motion","username":"motion_bot"}}`))
		default:
			w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`))
		}
	}))
}

func TestTelegram(t *testing.T) {
	var methods []string
	server := telegramServer(t, &methods)
	defer server.Close()

	bot, err := tgbotapi.NewBotAPIWithClient("123:abc", server.URL+"/bot%s/%s", server.Client())
	assert.NoError(t, err)
	tg := &Telegram{bot: bot, chatID: 42}
	assert.Equal(t, "telegram", tg.ID())

	err = tg.Notify(context.Background(), Message{Title: "Motion", Body: "Motion detected", Attachment: "/tmp/clip.avi"})
	assert.NoError(t, err)

	dir, err := ioutil.TempDir("", "telegram")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)
	snap := filepath.Join(dir, "snap.jpg")
	assert.NoError(t, ioutil.WriteFile(snap, []byte("\xff\xd8\xff"), 0644))
	err = tg.Notify(context.Background(), Message{Title: "Motion", Body: "Motion detected", Attachment: snap})
	assert.NoError(t, err)

	assert.Equal(t, []string{"getMe", "sendMessage", "sendPhoto"}, methods)
}
