package term

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifierWritesPrefixedLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	notifier := NewNotifier(&buf)

	notifier.Success("Course created")
	notifier.Error("The server is busy, please try again later")
	notifier.Warning("Your request is still being processed")
	notifier.Info("Connected")

	out := buf.String()
	assert.Contains(t, out, "Course created")
	assert.Contains(t, out, "The server is busy, please try again later")
	assert.Contains(t, out, "Your request is still being processed")
	assert.Contains(t, out, "Connected")
	assert.Equal(t, 4, bytes.Count(buf.Bytes(), []byte("\n")))
}
