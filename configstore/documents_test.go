package configstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageCatalog_Text(t *testing.T) {
	catalog := NewMessageCatalog(map[string]map[string]string{
		SectionMessages: {"start": "Begin", "blank": ""},
	})

	assert.Equal(t, "Begin", catalog.Text(SectionMessages, "start", "fallback"))
	assert.Equal(t, "fallback", catalog.Text(SectionMessages, "blank", "fallback"))
	assert.Equal(t, "fallback", catalog.Text(SectionMessages, "absent", "fallback"))
	assert.Equal(t, "fallback", catalog.Text(SectionErrors, "start", "fallback"))

	var nilCatalog *MessageCatalog
	assert.Equal(t, "fallback", nilCatalog.Text(SectionMessages, "start", "fallback"))
	assert.Equal(t, DefaultSeparatorLength, nilCatalog.SeparatorLength())
}

func TestMessageCatalog_SeparatorLength(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{raw: "80", want: 80},
		{raw: "0", want: DefaultSeparatorLength},
		{raw: "-3", want: DefaultSeparatorLength},
		{raw: "wide", want: DefaultSeparatorLength},
	}

	for _, tt := range tests {
		catalog := NewMessageCatalog(map[string]map[string]string{
			SectionHeaders: {"separator_length": tt.raw},
		})
		assert.Equal(t, tt.want, catalog.SeparatorLength(), tt.raw)
	}
}

func TestBrowserSettings_Defaults(t *testing.T) {
	var nilSettings *BrowserSettings
	assert.True(t, nilSettings.Headless())
	assert.Equal(t, DefaultTaskTemplate, nilSettings.TemplateName())

	settings := &BrowserSettings{}
	assert.True(t, settings.Headless())
	assert.Equal(t, DefaultTaskTemplate, settings.TemplateName())
}
