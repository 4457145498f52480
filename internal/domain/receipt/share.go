package receipt

import (
	"net/url"
	"strings"
)

// Links are the prefilled messaging deep links for a receipt.
type Links struct {
	WhatsApp string `json:"whatsapp,omitempty"`
	SMS      string `json:"sms,omitempty"`
}

// ShareLinks builds WhatsApp and SMS links addressed to phone with text as the
// message body. Both links are empty when phone holds no digits.
func ShareLinks(text, phone string) Links {
	digits := DigitsOnly(phone)
	if digits == "" {
		return Links{}
	}

	body := escape(text)
	return Links{
		WhatsApp: "https://wa.me/" + digits + "?text=" + body,
		SMS:      "sms:" + digits + "?body=" + body,
	}
}

// DigitsOnly strips everything but ASCII digits from phone.
func DigitsOnly(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escape percent-encodes s, spaces included, so messaging apps keep the
// line breaks and spacing intact.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
