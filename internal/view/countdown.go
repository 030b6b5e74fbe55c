package view

import (
	"strings"
	"time"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys double as the English format strings.
const (
	msgStarted         = "started"
	msgStarts          = "starts"
	msgStartsInDays    = "starts in %d days"
	msgStartsInHours   = "starts in %d hours"
	msgStartsInMinutes = "starts in %d minutes"
	msgStartsInSeconds = "starts in %d seconds"
	msgHoursPart       = "%dh"
	msgMinutesPart     = "%dm"
	msgSecondsPart     = "%ds"
)

// detailedThreshold is the distance below which the countdown switches to the
// hours/minutes/seconds breakdown.
const detailedThreshold = 4 * time.Hour

var (
	countdownCatalog   = buildCatalog()
	supportedLanguages = []language.Tag{language.English, language.German}
	languageMatcher    = language.NewMatcher(supportedLanguages)
)

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	set := func(tag language.Tag, key string, msg catalog.Message) {
		if err := b.Set(tag, key, msg); err != nil {
			panic("countdown catalog: " + err.Error())
		}
	}
	unit := func(one, other string) catalog.Message {
		return plural.Selectf(1, "%d", plural.One, one, plural.Other, other)
	}

	set(language.English, msgStarted, catalog.String("started"))
	set(language.English, msgStarts, catalog.String("starts"))
	set(language.English, msgStartsInDays, unit("starts in %d day", "starts in %d days"))
	set(language.English, msgStartsInHours, unit("starts in %d hour", "starts in %d hours"))
	set(language.English, msgStartsInMinutes, unit("starts in %d minute", "starts in %d minutes"))
	set(language.English, msgStartsInSeconds, unit("starts in %d second", "starts in %d seconds"))
	set(language.English, msgHoursPart, catalog.String("%dh"))
	set(language.English, msgMinutesPart, catalog.String("%dm"))
	set(language.English, msgSecondsPart, catalog.String("%ds"))

	set(language.German, msgStarted, catalog.String("gestartet"))
	set(language.German, msgStarts, catalog.String("beginnt in"))
	set(language.German, msgStartsInDays, unit("beginnt in %d Tag", "beginnt in %d Tagen"))
	set(language.German, msgStartsInHours, unit("beginnt in %d Stunde", "beginnt in %d Stunden"))
	set(language.German, msgStartsInMinutes, unit("beginnt in %d Minute", "beginnt in %d Minuten"))
	set(language.German, msgStartsInSeconds, unit("beginnt in %d Sekunde", "beginnt in %d Sekunden"))
	set(language.German, msgHoursPart, catalog.String("%d Std."))
	set(language.German, msgMinutesPart, catalog.String("%d Min."))
	set(language.German, msgSecondsPart, catalog.String("%d Sek."))
	return b
}

// NewPrinter returns a printer for the given BCP 47 language, falling back to
// English for unknown or unsupported tags.
func NewPrinter(lang string) *message.Printer {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		tag = language.English
	}
	_, idx, confidence := languageMatcher.Match(tag)
	if confidence == language.No {
		idx = 0
	}
	return message.NewPrinter(supportedLanguages[idx], message.Catalog(countdownCatalog))
}

// Countdown renders the time remaining until startMillis. Past or current
// starts read "started". Beyond four hours only the largest non-zero unit is
// shown; otherwise the text is a breakdown with the hours part omitted when
// zero.
func Countdown(startMillis, nowMillis int64, p *message.Printer) string {
	if p == nil {
		p = NewPrinter("en")
	}
	delta := startMillis - nowMillis
	if delta <= 0 {
		return p.Sprintf(msgStarted)
	}

	totalSeconds := delta / 1000
	days := int(totalSeconds / (24 * 60 * 60))
	hours := int((totalSeconds % (24 * 60 * 60)) / (60 * 60))
	minutes := int((totalSeconds % (60 * 60)) / 60)
	seconds := int(totalSeconds % 60)

	if delta > detailedThreshold.Milliseconds() {
		switch {
		case days > 0:
			return p.Sprintf(msgStartsInDays, days)
		case hours > 0:
			return p.Sprintf(msgStartsInHours, hours)
		case minutes > 0:
			return p.Sprintf(msgStartsInMinutes, minutes)
		default:
			return p.Sprintf(msgStartsInSeconds, seconds)
		}
	}

	parts := []string{p.Sprintf(msgStarts)}
	if hours > 0 {
		parts = append(parts, p.Sprintf(msgHoursPart, hours))
	}
	parts = append(parts,
		p.Sprintf(msgMinutesPart, minutes),
		p.Sprintf(msgSecondsPart, seconds),
	)
	return strings.TrimSpace(strings.Join(parts, " "))
}
