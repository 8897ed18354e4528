package messagevalue

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/mf2compile/messageformat/pkg/bidi"
)

// ErrNumberNotSelectable is returned by SelectKeys on a number value whose
// select capability was disabled (e.g. a non-literal select option).
var ErrNumberNotSelectable = errors.New("number value does not support selection")

// NumberValue is the MessageValue produced by :number, :integer and the
// numeric draft functions. Formatting routes through golang.org/x/text for
// locale-aware grouping and through go-money for currency amounts;
// selection implements exact-match-then-plural-category ranking.
type NumberValue struct {
	value     interface{}
	locale    string
	dir       bidi.Direction
	source    string
	options   map[string]interface{}
	canSelect bool
}

// NewNumberValue wraps a numeric operand for formatting and selection.
func NewNumberValue(value interface{}, locale, source string, options map[string]interface{}) *NumberValue {
	return NewNumberValueWithSelection(value, locale, source, bidi.DirAuto, options, true)
}

// NewNumberValueWithSelection additionally pins the direction and whether
// the value may drive a .match (a selector built from a non-literal select
// option must not).
func NewNumberValueWithSelection(value interface{}, locale, source string, dir bidi.Direction, options map[string]interface{}, canSelect bool) *NumberValue {
	if options == nil {
		options = make(map[string]interface{})
	}
	return &NumberValue{
		value:     value,
		locale:    locale,
		dir:       dir,
		source:    source,
		options:   options,
		canSelect: canSelect,
	}
}

func (nv *NumberValue) Type() string                    { return "number" }
func (nv *NumberValue) Source() string                  { return nv.source }
func (nv *NumberValue) Dir() bidi.Direction             { return nv.dir }
func (nv *NumberValue) Locale() string                  { return nv.locale }
func (nv *NumberValue) Options() map[string]interface{} { return nv.options }

func (nv *NumberValue) ValueOf() (interface{}, error) { return nv.value, nil }

func (nv *NumberValue) ToString() (string, error) {
	return nv.render()
}

// numberLayout is the per-call view of the option map: everything render
// needs, read once instead of re-probing the map at each step.
type numberLayout struct {
	style       string // "decimal", "currency", "percent", "unit"
	minFraction int
	maxFraction int // -1: pick a default for the style
	grouping    bool
	signDisplay string
}

func (nv *NumberValue) layout() numberLayout {
	l := numberLayout{style: "decimal", maxFraction: -1, grouping: true}

	if s, ok := nv.options["style"].(string); ok {
		l.style = s
	}
	if n, ok := nv.options["minimumFractionDigits"].(int); ok {
		l.minFraction = n
	}
	if n, ok := nv.options["maximumFractionDigits"].(int); ok {
		l.maxFraction = n
	}
	switch g := nv.options["useGrouping"].(type) {
	case string:
		l.grouping = g != "never" && g != "false"
	case bool:
		l.grouping = g
	}
	if s, ok := nv.options["signDisplay"].(string); ok {
		l.signDisplay = s
	}
	return l
}

func (nv *NumberValue) render() (string, error) {
	num, ok := toFloat(nv.value)
	if !ok {
		return fmt.Sprintf("%v", nv.value), nil
	}

	tag, err := language.Parse(nv.locale)
	if err != nil {
		tag = language.English
	}

	l := nv.layout()
	switch l.style {
	case "currency":
		return nv.renderCurrency(num, l)
	case "percent":
		return nv.renderPercent(num, l), nil
	case "unit":
		return nv.renderUnit(num, l), nil
	}

	// Plain decimal. maxFraction defaults to the operand's own shape:
	// integers print bare, floats get up to three places.
	if l.maxFraction < 0 {
		switch {
		case l.minFraction > 0:
			l.maxFraction = l.minFraction
		case num == float64(int64(num)):
			l.maxFraction = 0
		default:
			l.maxFraction = 3
		}
	}
	if l.maxFraction < l.minFraction {
		l.maxFraction = l.minFraction
	}

	var out string
	if l.grouping {
		var b strings.Builder
		p := message.NewPrinter(tag)
		if _, err := p.Fprintf(&b, "%v", number.Decimal(num)); err != nil {
			return strconv.FormatFloat(num, 'f', l.maxFraction, 64), err
		}
		out = b.String()
	} else {
		out = strconv.FormatFloat(num, 'f', l.maxFraction, 64)
	}

	if l.minFraction > 0 || l.maxFraction >= 0 {
		out = clampFraction(out, l.minFraction, l.maxFraction)
	}
	return applySign(out, num, l.signDisplay), nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// renderCurrency delegates the amount/minor-unit handling to go-money and
// then reshapes the result per currencyDisplay and currencySign.
func (nv *NumberValue) renderCurrency(num float64, l numberLayout) (string, error) {
	code, ok := nv.options["currency"].(string)
	if !ok {
		return fmt.Sprintf("%v", num), nil
	}

	amount := money.NewFromFloat(num, strings.ToUpper(code))
	if amount == nil {
		return fmt.Sprintf("%v %s", num, code), nil
	}

	accounting := nv.options["currencySign"] == "accounting"
	display, _ := nv.options["currencyDisplay"].(string)

	wrap := func(s string) string { return s }
	base := amount
	if accounting && amount.IsNegative() {
		base = amount.Absolute()
		wrap = func(s string) string { return "(" + s + ")" }
	}

	switch display {
	case "code":
		s := base.Currency().Code + " " + base.Display()
		return wrap(swapSymbolForCode(s, base.Currency())), nil
	case "name":
		bare := strings.TrimSpace(strings.Replace(base.Display(), base.Currency().Grapheme, "", 1))
		return wrap(bare + " " + currencyNoun(base.Currency().Code)), nil
	default: // "symbol", "narrowSymbol"
		return wrap(base.Display()), nil
	}
}

func swapSymbolForCode(s string, c *money.Currency) string {
	if c.Grapheme != "" && strings.Contains(s, c.Grapheme) {
		return strings.Replace(s, c.Grapheme, c.Code, 1)
	}
	return s
}

// currencyNouns covers the currencies the conformance corpus exercises;
// anything else falls back to its ISO code.
var currencyNouns = map[string]string{
	"USD": "US dollars", "EUR": "euros", "GBP": "British pounds",
	"JPY": "Japanese yen", "CNY": "Chinese yuan", "CAD": "Canadian dollars",
	"AUD": "Australian dollars", "CHF": "Swiss francs", "SEK": "Swedish kronor",
	"NOK": "Norwegian kroner", "DKK": "Danish kroner", "PLN": "Polish zloty",
	"CZK": "Czech koruna", "HUF": "Hungarian forint", "RUB": "Russian rubles",
	"INR": "Indian rupees", "KRW": "South Korean won", "SGD": "Singapore dollars",
	"HKD": "Hong Kong dollars", "NZD": "New Zealand dollars", "MXN": "Mexican pesos",
	"BRL": "Brazilian reais", "ZAR": "South African rand", "TRY": "Turkish lira",
	"ILS": "Israeli shekels", "THB": "Thai baht", "MYR": "Malaysian ringgit",
	"PHP": "Philippine pesos", "IDR": "Indonesian rupiah", "VND": "Vietnamese dong",
}

func currencyNoun(code string) string {
	if name, ok := currencyNouns[code]; ok {
		return name
	}
	return code
}

func (nv *NumberValue) renderPercent(num float64, l numberLayout) string {
	pct := num * 100
	if l.maxFraction < 0 {
		if pct == float64(int64(pct)) {
			l.maxFraction = 0
		} else {
			l.maxFraction = 1
		}
	}
	out := strconv.FormatFloat(pct, 'f', l.maxFraction, 64)
	out = clampFraction(out, l.minFraction, l.maxFraction)
	return applySign(out, pct, l.signDisplay) + "%"
}

func (nv *NumberValue) renderUnit(num float64, l numberLayout) string {
	unit, ok := nv.options["unit"].(string)
	if !ok {
		return fmt.Sprintf("%v", num)
	}
	if l.maxFraction < 0 {
		l.maxFraction = 2
	}
	out := strconv.FormatFloat(num, 'f', l.maxFraction, 64)
	out = clampFraction(out, l.minFraction, l.maxFraction)
	out = applySign(out, num, l.signDisplay)

	display, _ := nv.options["unitDisplay"].(string)
	return out + " " + unitLabel(unit, display)
}

var unitShort = map[string]string{
	"meter": "m", "kilometer": "km", "gram": "g", "kilogram": "kg",
	"second": "s", "minute": "min", "hour": "h",
}

var unitLong = map[string]string{
	"meter": "meters", "kilometer": "kilometers", "gram": "grams",
	"kilogram": "kilograms", "second": "seconds", "minute": "minutes",
	"hour": "hours",
}

func unitLabel(unit, display string) string {
	table := unitShort // "short", "narrow", and unset all use the symbol form
	if display == "long" {
		table = unitLong
	}
	if label, ok := table[unit]; ok {
		return label
	}
	return unit
}

// clampFraction pads or truncates the fraction digits of an already
// formatted number. The rightmost '.' or ',' followed by one, two, or four+
// digits is the decimal mark; a separator with exactly three trailing
// digits is grouping, not a decimal.
func clampFraction(s string, minFraction, maxFraction int) string {
	mark := -1
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != '.' && s[i] != ',' {
			continue
		}
		tail := s[i+1:]
		if tail == "" || !digitsOnly(tail) {
			continue
		}
		if strings.ContainsAny(tail, ".,") {
			continue
		}
		if len(tail) == 3 {
			continue
		}
		mark = i
		break
	}

	if mark < 0 {
		if minFraction > 0 {
			return s + "." + strings.Repeat("0", minFraction)
		}
		return s
	}

	got := len(s) - mark - 1
	switch {
	case got < minFraction:
		return s + strings.Repeat("0", minFraction-got)
	case maxFraction >= 0 && got > maxFraction:
		return s[:mark+1+maxFraction]
	}
	return s
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// applySign adjusts the leading sign per the signDisplay option. "auto"
// (and unset) keeps whatever the formatter produced.
func applySign(s string, num float64, signDisplay string) string {
	signed := strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-")
	switch signDisplay {
	case "always":
		if num > 0 && !signed {
			return "+" + s
		}
	case "exceptZero":
		if num == 0 {
			if signed {
				return s[1:]
			}
			return s
		}
		if num > 0 && !signed {
			return "+" + s
		}
	case "negative":
		if num == 0 && strings.HasPrefix(s, "-") {
			return s[1:]
		}
	case "never":
		if signed {
			return s[1:]
		}
	}
	return s
}

// ToParts renders the number and decomposes the result into one NumberPart
// wrapping typed sub-parts (sign, integer, decimal, fraction, plus the
// style's affix: currency symbol, percent sign, or unit label).
func (nv *NumberValue) ToParts() ([]MessagePart, error) {
	formatted, err := nv.render()
	if err != nil {
		return nil, err
	}

	var subs []MessagePart
	switch nv.layout().style {
	case "currency":
		subs = nv.currencySubParts(formatted)
	case "percent":
		subs = nv.percentSubParts(formatted)
	case "unit":
		subs = nv.unitSubParts(formatted)
	default:
		subs = nv.numericSubParts(formatted)
	}

	return []MessagePart{&NumberPart{
		value:  formatted,
		source: nv.source,
		locale: nv.locale,
		dir:    nv.dir,
		parts:  subs,
	}}, nil
}

func (nv *NumberValue) subPart(kind string, value interface{}) MessagePart {
	return &NumberSubPart{
		kind:   kind,
		value:  value,
		source: nv.source,
		locale: nv.locale,
		dir:    nv.dir,
	}
}

func (nv *NumberValue) currencySubParts(formatted string) []MessagePart {
	code := "USD"
	if c, ok := nv.options["currency"].(string); ok {
		code = c
	}
	symbol := code
	if c := money.GetCurrency(strings.ToUpper(code)); c != nil {
		symbol = c.Grapheme
	}

	var subs []MessagePart
	rest := formatted

	accountingNegative := strings.HasPrefix(rest, "(") && strings.HasSuffix(rest, ")")
	if accountingNegative {
		rest = rest[1 : len(rest)-1]
		subs = append(subs, nv.subPart("literal", "("))
	}

	at := strings.Index(rest, symbol)
	if at < 0 {
		for _, common := range []string{"$", "€", "£", "¥", "₹"} {
			if i := strings.Index(rest, common); i >= 0 {
				at, symbol = i, common
				break
			}
		}
	}

	switch {
	case at == 0:
		subs = append(subs, nv.subPart("currency", symbol))
		subs = append(subs, nv.numericSubParts(rest[len(symbol):])...)
	case at > 0:
		subs = append(subs, nv.numericSubParts(rest[:at])...)
		subs = append(subs, nv.subPart("currency", symbol))
	default:
		subs = append(subs, nv.numericSubParts(rest)...)
	}

	if accountingNegative {
		subs = append(subs, nv.subPart("literal", ")"))
	}
	return subs
}

func (nv *NumberValue) percentSubParts(formatted string) []MessagePart {
	numeric, hadPercent := strings.CutSuffix(formatted, "%")
	subs := nv.numericSubParts(numeric)
	if hadPercent {
		subs = append(subs, nv.subPart("percentSign", "%"))
	}
	return subs
}

func (nv *NumberValue) unitSubParts(formatted string) []MessagePart {
	sp := strings.LastIndex(formatted, " ")
	if sp < 0 {
		return nv.numericSubParts(formatted)
	}
	subs := nv.numericSubParts(formatted[:sp])
	subs = append(subs, nv.subPart("literal", " "))
	subs = append(subs, nv.subPart("unit", formatted[sp+1:]))
	return subs
}

// numericSubParts splits a bare formatted number into sign, integer,
// decimal mark, and fraction sub-parts. The integer run keeps its grouping
// separators as printed.
func (nv *NumberValue) numericSubParts(numeric string) []MessagePart {
	var subs []MessagePart

	rest := numeric
	if strings.HasPrefix(rest, "+") {
		subs = append(subs, nv.subPart("plusSign", "+"))
		rest = rest[1:]
	} else if strings.HasPrefix(rest, "-") {
		subs = append(subs, nv.subPart("minusSign", "-"))
		rest = rest[1:]
	}

	mark := decimalMarkIndex(rest)
	if mark < 0 {
		return append(subs, nv.subPart("integer", rest))
	}

	if rest[:mark] != "" {
		subs = append(subs, nv.subPart("integer", rest[:mark]))
	}
	subs = append(subs, nv.subPart("decimal", rest[mark:mark+1]))
	if frac := rest[mark+1:]; frac != "" {
		subs = append(subs, nv.subPart("fraction", frac))
	}
	return subs
}

// decimalMarkIndex finds the decimal separator in a formatted number, or
// -1. The rightmost '.' or ',' with one to three trailing digits and no
// separator after it qualifies.
func decimalMarkIndex(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != '.' && s[i] != ',' {
			continue
		}
		tail := s[i+1:]
		if tail == "" || len(tail) > 3 || !digitsOnly(tail) {
			continue
		}
		return i
	}
	return -1
}

// SelectKeys ranks the candidate keys for this number: an exact `=N` key
// first, then an exact digit-string key, then the plural category —
// unless select=exact suppressed category matching entirely. The category
// comes from pluralCategory's English rules whatever the value's locale;
// locale-specific plural rules are not applied.
func (nv *NumberValue) SelectKeys(keys []string) ([]string, error) {
	if !nv.canSelect {
		return nil, ErrNumberNotSelectable
	}

	num, ok := toFloat(nv.value)
	if !ok {
		return []string{}, nil
	}
	// Percent-styled values select on their scaled form: 0.85 matches 85.
	if nv.options["style"] == "percent" {
		num *= 100
	}

	for _, key := range keys {
		if !strings.HasPrefix(key, "=") {
			continue
		}
		if want, err := strconv.ParseFloat(key[1:], 64); err == nil && want == num {
			return []string{key}, nil
		}
	}

	digits := selectionDigits(num)
	for _, key := range keys {
		if key == digits {
			return []string{key}, nil
		}
	}

	if nv.options["select"] == "exact" {
		return []string{}, nil
	}

	category := pluralCategory(num, nv.options)
	for _, key := range keys {
		if key == category {
			return []string{key}, nil
		}
	}
	return []string{}, nil
}

func selectionDigits(num float64) string {
	if num == float64(int64(num)) {
		return strconv.FormatInt(int64(num), 10)
	}
	return strconv.FormatFloat(num, 'g', -1, 64)
}

// pluralCategory applies English plural rules: simplified cardinal
// (one/other), and the full ordinal table (1st/2nd/3rd/nth with the 11-13
// exception).
func pluralCategory(num float64, options map[string]interface{}) string {
	if options["select"] != "ordinal" {
		if num == 1 {
			return "one"
		}
		return "other"
	}

	switch int(num) % 100 {
	case 11, 12, 13:
		return "other"
	}
	switch int(num) % 10 {
	case 1:
		return "one"
	case 2:
		return "two"
	case 3:
		return "few"
	}
	return "other"
}

// NumberSubPart is one typed span inside a formatted number (sign, integer
// run, decimal mark, fraction, currency symbol, percent sign, unit label).
type NumberSubPart struct {
	kind   string
	value  interface{}
	source string
	locale string
	dir    bidi.Direction
}

func (p *NumberSubPart) Type() string        { return p.kind }
func (p *NumberSubPart) Value() interface{}  { return p.value }
func (p *NumberSubPart) Source() string      { return p.source }
func (p *NumberSubPart) Locale() string      { return p.locale }
func (p *NumberSubPart) Dir() bidi.Direction { return p.dir }

// NumberPart is the single part a NumberValue contributes to FormatToParts
// output; Parts exposes its typed sub-spans.
type NumberPart struct {
	value  interface{}
	source string
	locale string
	dir    bidi.Direction
	parts  []MessagePart
}

func (p *NumberPart) Type() string         { return "number" }
func (p *NumberPart) Value() interface{}   { return p.value }
func (p *NumberPart) Source() string       { return p.source }
func (p *NumberPart) Locale() string       { return p.locale }
func (p *NumberPart) Dir() bidi.Direction  { return p.dir }
func (p *NumberPart) Parts() []MessagePart { return p.parts }
