// Package classify assigns free-text support queries to one of the office
// product categories the helpdesk handles. Scoring is keyword-based: product
// name tokens weigh more than associated terms, and ties resolve to the
// lowest product code so verdicts are deterministic.
package classify

import (
	"strings"
	"unicode"
)

// Products is the catalog of supported categories. A product's code is its
// index in this list; reordering it changes every stored product_code.
var Products = []string{
	"Printer", "Scanner", "Laptop", "Monitor", "Keyboard",
	"Mouse", "Projector", "Fax machine", "Calculator", "Shredder",
	"Photocopier", "Whiteboard", "Paper shredder", "Desk lamp",
	"External hard drive", "Conference phone", "Label maker",
	"Document camera", "Wireless presenter", "USB hub",
}

// terms associates each product with lower-weight vocabulary commonly used
// when reporting problems with it.
var terms = map[string][]string{
	"Printer":             {"print", "printing", "prints", "ink", "toner", "cartridge", "jam", "paper"},
	"Scanner":             {"scan", "scans", "scanning", "scanned", "ocr", "feeder"},
	"Laptop":              {"notebook", "battery", "charger", "boot", "keyboard", "trackpad", "wifi"},
	"Monitor":             {"display", "screen", "hdmi", "flicker", "resolution", "pixels"},
	"Keyboard":            {"key", "keys", "typing", "keycap", "spacebar"},
	"Mouse":               {"cursor", "click", "clicking", "scroll", "pointer", "wheel"},
	"Projector":           {"projection", "lens", "bulb", "lumens", "slides", "ceiling"},
	"Fax machine":         {"fax", "faxes", "faxing", "transmission"},
	"Calculator":          {"calc", "arithmetic", "digits", "solar"},
	"Shredder":            {"shred", "shreds", "shredding", "blades"},
	"Photocopier":         {"copy", "copies", "copier", "copying", "duplex", "collate"},
	"Whiteboard":          {"marker", "markers", "erase", "eraser", "board"},
	"Paper shredder":      {"shred", "shredding", "crosscut"},
	"Desk lamp":           {"lamp", "light", "bulb", "dimmer"},
	"External hard drive": {"drive", "disk", "storage", "backup", "terabyte"},
	"Conference phone":    {"phone", "call", "calls", "speaker", "dial", "audio"},
	"Label maker":         {"label", "labels", "tape"},
	"Document camera":     {"camera", "overhead", "focus"},
	"Wireless presenter":  {"presenter", "clicker", "remote", "laser"},
	"USB hub":             {"usb", "hub", "port", "ports", "dongle"},
}

const (
	nameTokenWeight = 2
	termWeight      = 1
)

type candidate struct {
	code   int
	weight int
}

// Classifier maps query text to a product verdict.
type Classifier struct {
	index map[string][]candidate
}

// New builds a classifier over the product catalog.
func New() *Classifier {
	index := make(map[string][]candidate)
	for code, name := range Products {
		for _, tok := range tokenize(name) {
			index[tok] = append(index[tok], candidate{code: code, weight: nameTokenWeight})
		}
		for _, tok := range terms[name] {
			index[tok] = append(index[tok], candidate{code: code, weight: termWeight})
		}
	}
	return &Classifier{index: index}
}

// Classify returns the product code and name for a query. Queries with no
// recognizable vocabulary fall back to the first catalog entry, matching the
// always-answers contract of the upstream model.
func (c *Classifier) Classify(query string) (int, string) {
	scores := make(map[int]int)
	for _, tok := range tokenize(query) {
		for _, cand := range c.index[tok] {
			scores[cand.code] += cand.weight
		}
	}

	best := 0
	bestScore := 0
	for code := range Products {
		if score := scores[code]; score > bestScore {
			best = code
			bestScore = score
		}
	}

	return best, Products[best]
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
