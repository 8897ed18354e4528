package messagevalue

import (
	"strings"
	"time"

	"github.com/dromara/carbon/v2"

	"github.com/mf2compile/messageformat/pkg/bidi"
)

// DateTimeValue is the MessageValue for :datetime/:date/:time results.
// Rendering goes through carbon, which supplies locale tables and the
// calendar arithmetic behind the style formats. Datetimes do not select.
type DateTimeValue struct {
	value   time.Time
	locale  string
	dir     bidi.Direction
	source  string
	options map[string]any
}

func NewDateTimeValue(value time.Time, locale, source string, options map[string]any) *DateTimeValue {
	return NewDateTimeValueWithDir(value, locale, source, bidi.DirAuto, options)
}

func NewDateTimeValueWithDir(value time.Time, locale, source string, dir bidi.Direction, options map[string]any) *DateTimeValue {
	if options == nil {
		options = make(map[string]any)
	}
	return &DateTimeValue{value: value, locale: locale, dir: dir, source: source, options: options}
}

func (dv *DateTimeValue) Type() string            { return "datetime" }
func (dv *DateTimeValue) Source() string          { return dv.source }
func (dv *DateTimeValue) Dir() bidi.Direction     { return dv.dir }
func (dv *DateTimeValue) Locale() string          { return dv.locale }
func (dv *DateTimeValue) Options() map[string]any { return dv.options }

func (dv *DateTimeValue) ToString() (string, error) { return dv.render(), nil }
func (dv *DateTimeValue) ValueOf() (any, error)     { return dv.value, nil }

func (dv *DateTimeValue) ToParts() ([]MessagePart, error) {
	return []MessagePart{&DateTimePart{
		partMeta: partMeta{source: dv.source, locale: dv.locale, dir: dv.dir},
		value:    dv.render(),
	}}, nil
}

func (dv *DateTimeValue) SelectKeys([]string) ([]string, error) {
	return []string{}, nil
}

// render formats through carbon. The field-based options (dateFields,
// timePrecision) take precedence; the classic dateStyle/timeStyle pair is
// the fallback surface.
func (dv *DateTimeValue) render() string {
	c := carbon.CreateFromStdTime(dv.value)
	if lang := carbonLocale(dv.locale); lang != "" {
		c = c.SetLocale(lang)
	}

	_, byFields := dv.options["dateFields"]
	_, byPrecision := dv.options["timePrecision"]
	if byFields || byPrecision {
		return c.Format(fieldFormat(dv.options))
	}

	dateStyle, hasDate := dv.options["dateStyle"].(string)
	timeStyle, hasTime := dv.options["timeStyle"].(string)
	switch {
	case hasDate && hasTime:
		return c.Format(dateLayout(dateStyle) + " " + timeLayout(timeStyle))
	case hasDate:
		return c.Format(dateLayout(dateStyle))
	case hasTime:
		return c.Format(timeLayout(timeStyle))
	}
	return c.ToDateTimeString()
}

// fieldFormat assembles a carbon layout from the field-based options.
func fieldFormat(options map[string]any) string {
	var parts []string

	if fields, ok := options["dateFields"].(string); ok {
		length, _ := options["dateLength"].(string)
		if date := dateFieldLayout(fields, length); date != "" {
			parts = append(parts, date)
		}
	}

	if precision, ok := options["timePrecision"].(string); ok {
		parts = append(parts, precisionLayout(precision))
	}

	if zone, ok := options["timeZoneStyle"].(string); ok && (zone == "long" || zone == "short") {
		parts = append(parts, "T")
	}

	if len(parts) == 0 {
		return "Y-m-d H:i:s"
	}
	return strings.Join(parts, " ")
}

func dateFieldLayout(fields, length string) string {
	want := make(map[string]bool)
	for _, f := range strings.Split(fields, "-") {
		want[f] = true
	}

	var parts []string
	if want["weekday"] {
		if length == "long" {
			parts = append(parts, "l")
		} else {
			parts = append(parts, "D")
		}
		parts = append(parts, ",")
	}
	if want["year"] {
		parts = append(parts, "Y")
	}
	if want["month"] {
		switch length {
		case "long":
			parts = append(parts, "F")
		case "short":
			parts = append(parts, "n")
		default:
			parts = append(parts, "M")
		}
	}
	if want["day"] {
		parts = append(parts, "j")
	}
	return strings.Join(parts, " ")
}

func precisionLayout(precision string) string {
	switch precision {
	case "hour":
		return "g A"
	case "second":
		return "g:i:s A"
	}
	return "g:i A"
}

// DateTimePart is the single part a DateTimeValue contributes.
type DateTimePart struct {
	partMeta
	value string
}

func (p *DateTimePart) Type() string { return "datetime" }
func (p *DateTimePart) Value() any   { return p.value }

// Style layouts shared with pkg/functions' datetime handlers.

func FormatDateTimeWithStyle(c carbon.Carbon, dateStyle, timeStyle string) string {
	return c.Format(dateLayout(dateStyle) + " " + timeLayout(timeStyle))
}

func FormatDateWithStyle(c carbon.Carbon, style string) string {
	return c.Format(dateLayout(style))
}

func FormatTimeWithStyle(c carbon.Carbon, style string) string {
	return c.Format(timeLayout(style))
}

// GetDateFormat exposes the carbon layout for a dateStyle.
func GetDateFormat(style string) string { return dateLayout(style) }

// GetTimeFormat exposes the carbon layout for a timeStyle.
func GetTimeFormat(style string) string { return timeLayout(style) }

func dateLayout(style string) string {
	switch style {
	case "full":
		return "l, F j, Y"
	case "long":
		return "F j, Y"
	case "short":
		return "n/j/y"
	}
	return "M j, Y" // medium
}

func timeLayout(style string) string {
	switch style {
	case "full", "long":
		return "g:i:s A T"
	case "medium":
		return "g:i:s A"
	}
	return "g:i A" // short
}

// carbonLocale maps a BCP 47 tag onto the bare language subtag carbon's
// locale files are keyed by.
func carbonLocale(locale string) string {
	if locale == "" {
		return ""
	}
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		return locale[:i]
	}
	return locale
}
