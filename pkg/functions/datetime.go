package functions

import (
	"strconv"
	"time"

	"github.com/dromara/carbon/v2"

	"github.com/mf2compile/messageformat/pkg/errors"
	"github.com/mf2compile/messageformat/pkg/messagevalue"
)

// DatetimeFunction implements :datetime. Style options (dateStyle,
// timeStyle) and field options (year, month, hour, ...) are mutually
// exclusive; with neither, the medium date / short time pair applies.
func DatetimeFunction(
	ctx MessageFunctionContext,
	options map[string]interface{},
	operand interface{},
) messagevalue.MessageValue {
	source := ctx.Source()
	locale := GetFirstLocale(ctx.Locales())

	when, err := parseDateTime(operand)
	if err != nil {
		ctx.OnError(errors.NewBadOperandError("Input is not a date", source))
		return messagevalue.NewFallbackValue(source, locale)
	}

	var dateStyle, timeStyle string
	hasStyle, hasFields := false, false

	for name, value := range options {
		if value == nil || name == "locale" {
			continue
		}
		switch name {
		case "dateStyle":
			if s, ok := datetimeStringOption(ctx, name, value); ok {
				dateStyle, hasStyle = s, true
			}
		case "timeStyle":
			if s, ok := datetimeStringOption(ctx, name, value); ok {
				timeStyle, hasStyle = s, true
			}
		case "fractionalSecondDigits":
			if _, err := asPositiveInteger(value); err != nil {
				datetimeBadOption(ctx, name, value)
			}
			hasFields = true
		case "weekday", "era", "year", "month", "day", "hour", "minute", "second", "timeZoneName":
			hasFields = true
		case "hour12":
			if _, err := asBoolean(value); err != nil {
				datetimeBadOption(ctx, name, value)
			}
		default:
			if _, err := asString(value); err != nil {
				datetimeBadOption(ctx, name, value)
			}
		}
	}

	switch {
	case hasStyle && hasFields:
		ctx.OnError(errors.NewBadOptionError("Style and field options cannot be both set for :datetime", source))
		return messagevalue.NewFallbackValue(source, locale)
	case !hasStyle && !hasFields:
		dateStyle, timeStyle = "medium", "short"
	}

	dtOptions := make(map[string]interface{})
	if dateStyle != "" {
		dtOptions["dateStyle"] = dateStyle
	}
	if timeStyle != "" {
		dtOptions["timeStyle"] = timeStyle
	}
	for _, name := range []string{"hour12", "calendar", "timeZone", "fractionalSecondDigits"} {
		if value, ok := options[name]; ok {
			dtOptions[name] = value
		}
	}

	return messagevalue.NewDateTimeValue(when, locale, source, dtOptions)
}

// DateFunction implements :date: the date portion only, under a single
// style option (default medium).
func DateFunction(
	ctx MessageFunctionContext,
	options map[string]interface{},
	operand interface{},
) messagevalue.MessageValue {
	return styledCalendarValue(ctx, options, operand, "date", "medium", messagevalue.FormatDateWithStyle)
}

// TimeFunction implements :time: the time portion only, under a single
// style option (default short).
func TimeFunction(
	ctx MessageFunctionContext,
	options map[string]interface{},
	operand interface{},
) messagevalue.MessageValue {
	return styledCalendarValue(ctx, options, operand, "time", "short", messagevalue.FormatTimeWithStyle)
}

// styledCalendarValue is the shared :date/:time body: parse the operand,
// read the style option, format through carbon.
func styledCalendarValue(
	ctx MessageFunctionContext,
	options map[string]interface{},
	operand interface{},
	fnName, defaultStyle string,
	format func(carbon.Carbon, string) string,
) messagevalue.MessageValue {
	source := ctx.Source()
	locale := GetFirstLocale(ctx.Locales())

	when, err := parseDateTime(operand)
	if err != nil {
		ctx.OnError(errors.NewBadOperandError("Input is not a date", source))
		return messagevalue.NewFallbackValue(source, locale)
	}

	style := defaultStyle
	for name, value := range options {
		if value == nil {
			continue
		}
		switch name {
		case "style":
			if s, err := asString(value); err == nil {
				style = s
			} else {
				ctx.OnError(errors.NewBadOptionError("Value is not valid for :"+fnName+" style option", source))
			}
		case "hour12", "calendar", "timeZone":
			// accepted but not yet interpreted
		default:
			ctx.OnError(errors.NewBadOptionError("Option "+name+" is not valid for :"+fnName, source))
		}
	}

	c := carbon.CreateFromStdTime(when)
	if locale != "" {
		c = c.SetLocale(locale)
	}
	return messagevalue.NewStringValue(format(*c, style), locale, source)
}

func datetimeStringOption(ctx MessageFunctionContext, name string, value interface{}) (string, bool) {
	s, err := asString(value)
	if err != nil {
		datetimeBadOption(ctx, name, value)
		return "", false
	}
	return s, true
}

func datetimeBadOption(ctx MessageFunctionContext, name string, _ interface{}) {
	ctx.OnError(errors.NewBadOptionError("Value is not valid for :datetime "+name+" option", ctx.Source()))
}

// dateTimeLayouts are the string forms a date operand may arrive in,
// tried in order.
var dateTimeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05.000000",
	"2006-01-02T15:04:05.000000Z",
	"2006-01-02T15:04:05.000000000",
	"2006-01-02T15:04:05Z",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.000",
}

// parseDateTime accepts a date operand in any supported form: time.Time,
// epoch seconds, an ISO-ish string, or a MessageValue unwrapped to one of
// those.
func parseDateTime(input interface{}) (time.Time, error) {
	if mv, ok := input.(messagevalue.MessageValue); ok {
		if val, err := mv.ValueOf(); err == nil {
			return parseDateTime(val)
		}
		if s, err := mv.ToString(); err == nil {
			return parseDateTime(s)
		}
	}

	switch v := input.(type) {
	case time.Time:
		return v, nil
	case int:
		return time.Unix(int64(v), 0), nil
	case int64:
		return time.Unix(v, 0), nil
	case float64:
		return time.Unix(int64(v), 0), nil
	case string:
		for _, layout := range dateTimeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		if epoch, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Unix(epoch, 0), nil
		}
		return time.Time{}, errors.NewBadOperandError("Cannot parse date string: "+v, "")
	}
	return time.Time{}, errors.NewBadOperandError("Invalid date input type", "")
}
