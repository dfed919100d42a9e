// SPDX-License-Identifier: GPL-3.0-only

// Package whatsapp builds wa.me deep links that open a chat with a client
// pre-filled with a dunning message.
package whatsapp

import (
	"bizdesk-server/commons"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

const BaseURL = "https://wa.me/"

// messageTemplate is the canned payment request sent to clients, in the
// business's locale.
const messageTemplate = "Halo kak %s, pembayaran maintenance web %s senilai %s. Mohon diselesaikan. Pembayaran bisa lewat e-wallet atau rekening. Terima kasih."

// callingCode resolves the country calling code for the configured region
// (WA_REGION, default "ID" -> "62"). Resolved once; the region is fixed
// for the process lifetime.
var callingCode = sync.OnceValue(func() string {
	region := commons.GetEnv("WA_REGION", "ID")
	code := phonenumbers.GetCountryCodeForRegion(strings.ToUpper(region))
	if code == 0 {
		commons.Logger.Warnf("Unknown WA_REGION %q, falling back to ID", region)
		code = phonenumbers.GetCountryCodeForRegion("ID")
	}
	return strconv.Itoa(code)
})

// NormalizePhone canonicalizes a WhatsApp number into international form
// without the leading '+'. Local trunk-prefixed numbers ("08…") and bare
// mobile numbers ("8…", 10-13 digits) get the region's calling code;
// anything else passes through unchanged. The function is idempotent.
func NormalizePhone(raw string) string {
	num := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, raw)
	num = strings.TrimPrefix(num, "+")

	switch {
	case strings.HasPrefix(num, "0"):
		num = callingCode() + num[1:]
	case strings.HasPrefix(num, "8") && len(num) >= 10 && len(num) <= 13 && digitsOnly(num):
		num = callingCode() + num
	}
	return num
}

// ValidNumber reports whether a normalized number is usable as a wa.me
// path segment: digits only, at least 10 of them.
func ValidNumber(num string) bool {
	return len(num) >= 10 && digitsOnly(num)
}

// Message returns the pre-filled payment request text for a client and
// project.
func Message(clientName, projectName string, amount float64) string {
	return fmt.Sprintf(messageTemplate, clientName, projectName, commons.FormatRupiah(amount))
}

// BuildLink returns a wa.me deep link with the pre-filled payment request,
// or "" when the phone number does not normalize into a valid shape. The
// caller falls back to a plain-text notification in that case.
func BuildLink(phone, clientName, projectName string, amount float64) string {
	num := NormalizePhone(phone)
	if !ValidNumber(num) {
		return ""
	}
	return BaseURL + num + "?text=" + url.QueryEscape(Message(clientName, projectName, amount))
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
