package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripRemovesMarkup(t *testing.T) {
	assert.Equal(t, "Intro to Go", Strip("<p>Intro to <b>Go</b></p>"))
}

func TestStripDecodesEntities(t *testing.T) {
	assert.Equal(t, "Q&A session", Strip("Q&amp;A session"))
}

func TestStripPlainTextPassesThrough(t *testing.T) {
	assert.Equal(t, "no markup here", Strip("no markup here"))
}

func TestStripEmpty(t *testing.T) {
	assert.Equal(t, "", Strip(""))
}
