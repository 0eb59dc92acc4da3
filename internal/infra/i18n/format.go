package i18n

import (
	"fmt"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatting locales follow the original dashboard conventions: Hindi
// numbers use Indian digit grouping, German uses German punctuation.
var printerTags = map[string]language.Tag{
	"en": language.AmericanEnglish,
	"hi": language.MustParse("en-IN"),
	"de": language.German,
}

var currencyUnits = map[string]currency.Unit{
	"en": currency.USD,
	"hi": currency.INR,
	"de": currency.EUR,
}

func printer(locale string) *message.Printer {
	tag, ok := printerTags[locale]
	if !ok {
		tag = printerTags[DefaultLocale]
	}
	return message.NewPrinter(tag)
}

func FormatNumber(locale string, value float64) string {
	return printer(locale).Sprint(number.Decimal(value))
}

func FormatMoney(locale string, amount float64) string {
	unit, ok := currencyUnits[locale]
	if !ok {
		unit = currencyUnits[DefaultLocale]
	}
	return printer(locale).Sprint(currency.Symbol(unit.Amount(amount)))
}

var hindiMonths = [...]string{
	"जनवरी", "फ़रवरी", "मार्च", "अप्रैल", "मई", "जून",
	"जुलाई", "अगस्त", "सितंबर", "अक्टूबर", "नवंबर", "दिसंबर",
}

var germanMonths = [...]string{
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

// FormatDate renders a long date in the locale's convention: "March 1,
// 2026", "1. März 2026", "1 मार्च 2026". Years must not pick up digit
// grouping, so dates go through fmt rather than the locale printer.
func FormatDate(locale string, t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	switch locale {
	case "de":
		return fmt.Sprintf("%d. %s %d", t.Day(), germanMonths[t.Month()-1], t.Year())
	case "hi":
		return fmt.Sprintf("%d %s %d", t.Day(), hindiMonths[t.Month()-1], t.Year())
	default:
		return fmt.Sprintf("%s %d, %d", t.Month().String(), t.Day(), t.Year())
	}
}
