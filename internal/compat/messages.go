package compat

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys double as the English format strings.
const (
	msgSocketMismatch  = "processor does not fit the motherboard (%s ≠ %s)"
	msgPowerBudget     = "power supply is too weak (need %sW, have %sW)"
	msgClearance       = "graphics card may not fit in the enclosure"
	msgClearanceLength = "graphics card is %smm long, enclosure fits %smm"
	msgFormFactor      = "%s motherboard does not fit a %s enclosure"
)

var russian = map[string]string{
	msgSocketMismatch:  "Процессор не подходит к материнской плате (%s ≠ %s)",
	msgPowerBudget:     "Блок питания слишком слабый (нужно %sW, есть %sW)",
	msgClearance:       "Видеокарта может не поместиться в корпус",
	msgClearanceLength: "Видеокарта длиной %sмм, корпус вмещает %sмм",
	msgFormFactor:      "Материнская плата %s не помещается в корпус %s",
}

func init() {
	for key, msg := range russian {
		if err := message.SetString(language.Russian, key, msg); err != nil {
			panic(err)
		}
	}
}

// ParseLanguage maps a language code to a supported message language.
// Unknown or empty codes fall back to English.
func ParseLanguage(code string) language.Tag {
	tag, err := language.Parse(code)
	if err != nil {
		return language.English
	}
	if base, _ := tag.Base(); base.String() == "ru" {
		return language.Russian
	}
	return language.English
}
