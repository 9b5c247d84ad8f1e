package runlog

import (
	"time"

	"golang.org/x/text/language"
)

// layouts maps supported locales to a Go time layout rendering
// day, full month name, year and hour:minute with an am/pm marker.
var layouts = []struct {
	tag    language.Tag
	layout string
}{
	{language.MustParse("en-IN"), "2 January 2006 at 3:04 pm"},
	{language.BritishEnglish, "2 January 2006 at 3:04 pm"},
	{language.AmericanEnglish, "January 2, 2006 at 3:04 PM"},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(layouts))
	for i, l := range layouts {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// Formatter renders entry timestamps for one locale and time zone.
type Formatter struct {
	layout string
	loc    *time.Location
}

// NewFormatter picks the closest supported layout for locale (en-IN when
// nothing matches) and renders times in tz.
func NewFormatter(locale string, tz *time.Location) Formatter {
	if tz == nil {
		tz = time.Local
	}
	_, idx, _ := matcher.Match(language.Make(locale))
	return Formatter{layout: layouts[idx].layout, loc: tz}
}

func (f Formatter) Format(t time.Time) string {
	return t.In(f.loc).Format(f.layout)
}
