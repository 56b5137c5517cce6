package util

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandUser(t *testing.T) {
	path := ExpandUser("~/abc")
	expected := os.ExpandEnv("$HOME/abc")
	if path != expected {
		t.Error("Expected ", expected, ", got ", path)
	}
	assert.Equal(t, os.Getenv("HOME"), ExpandUser("~"))
	assert.Equal(t, "/etc/motion", ExpandUser("/etc/motion"))
	assert.Equal(t, "~user/x", ExpandUser("~user/x"))
}

func TestExists(t *testing.T) {
	dir, err := ioutil.TempDir("", "util")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "clip.mp4")
	assert.False(t, Exists(file))
	assert.NoError(t, ioutil.WriteFile(file, []byte("x"), 0644))
	assert.True(t, Exists(file))
	assert.False(t, Exists(dir))
}
