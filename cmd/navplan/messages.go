package main

import (
	"os"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Message IDs for user-facing CLI output.
const (
	msgNoActions       = "NoActions"
	msgRunSummary      = "RunSummary"
	msgRecordedSession = "RecordedSession"
	msgRecordedSteps   = "RecordedSteps"
	msgStuckWarning    = "StuckWarning"
)

var englishMessages = []*i18n.Message{
	{ID: msgNoActions, Other: "no routing actions"},
	{ID: msgRunSummary, Other: "completed {{.Completed}} actions, {{.Stuck}} stuck"},
	{ID: msgRecordedSession, Other: "recorded session {{.Session}}"},
	{ID: msgRecordedSteps, One: "recorded {{.Count}} step as session {{.Session}}", Other: "recorded {{.Count}} steps as session {{.Session}}"},
	{ID: msgStuckWarning, Other: "warning: a routing action did not complete within {{.Timeout}}"},
}

var (
	localizerOnce sync.Once
	localizer     *i18n.Localizer
)

func getLocalizer() *i18n.Localizer {
	localizerOnce.Do(func() {
		bundle := i18n.NewBundle(language.English)
		if err := bundle.AddMessages(language.English, englishMessages...); err != nil {
			panic(err)
		}
		localizer = i18n.NewLocalizer(bundle, userLanguage(), language.English.String())
	})
	return localizer
}

// userLanguage turns LANG (e.g. de_DE.UTF-8) into a BCP 47 tag.
func userLanguage() string {
	lang := os.Getenv("LANG")
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	return strings.ReplaceAll(lang, "_", "-")
}

// localize renders a message, falling back to its ID if it cannot be found.
func localize(id string, data map[string]any) string {
	cfg := &i18n.LocalizeConfig{MessageID: id, TemplateData: data}
	if count, ok := data["Count"]; ok {
		cfg.PluralCount = count
	}
	msg, err := getLocalizer().Localize(cfg)
	if err != nil {
		return id
	}
	return msg
}
