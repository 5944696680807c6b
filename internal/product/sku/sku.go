// Package sku builds readable product codes such as "ELEC-MONI-001" from a
// product name, brand and category.
package sku

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	maxKeywords    = 2
	keywordLength  = 4
	sequenceDigits = 3
	maxSuffix      = 99
)

var stopWords = map[string]bool{
	"de": true, "del": true, "la": true, "el": true, "para": true, "con": true,
	"sin": true, "por": true, "en": true, "y": true, "o": true,
}

var priorityWords = []string{"monitor", "teclado", "mouse", "papel", "cable", "usb", "hdmi", "led", "lcd"}

var relevantWords = []string{
	// electronics
	"monitor", "teclado", "keyboard", "mouse", "raton", "cable", "usb", "hdmi", "led", "lcd", "oled", "wifi", "bluetooth",
	// office
	"papel", "paper", "lapiz", "pencil", "boligrafo", "pen", "carpeta", "folder", "archivo", "file", "grapadora", "stapler",
	// specs
	"24", "27", "32", "43", "55", "pulgadas", "inches", "gb", "tb", "mb", "kg", "cm", "mm", "metros", "meter",
	// colors
	"negro", "black", "blanco", "white", "azul", "blue", "rojo", "red", "verde", "green", "gris", "gray",
	// brands
	"samsung", "hp", "dell", "logitech", "canon", "epson", "microsoft", "apple", "sony", "lg",
	// materials
	"plastico", "plastic", "metal", "vidrio", "glass", "madera", "wood", "cuero", "leather",
	// types
	"inalambrico", "wireless", "mecanico", "mechanical", "optico", "optical", "laser", "inkjet", "ergonomico",
}

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)
	spaces   = regexp.MustCompile(`\s+`)
	digits   = regexp.MustCompile(`\d+`)
)

// Normalize lowercases s, strips accents and turns anything that is not a
// letter or digit into a single space.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		out = strings.ToLower(s)
	}
	out = nonAlnum.ReplaceAllString(out, " ")
	return strings.TrimSpace(spaces.ReplaceAllString(out, " "))
}

// Keywords picks at most two upper-case keywords for a product. The first
// word of the category always comes first, then priority words, the brand,
// dictionary words, a number and finally any significant word of the name.
func Keywords(name, brand, category string) []string {
	nameWords := strings.Fields(Normalize(name))
	categoryWords := strings.Fields(Normalize(category))
	var keywords []string

	overlaps := func(word string) bool {
		for _, k := range keywords {
			kl := strings.ToLower(k)
			if strings.Contains(kl, prefix(word, 3)) || strings.Contains(word, prefix(kl, 3)) {
				return true
			}
		}
		return false
	}

	if len(categoryWords) > 0 {
		keywords = append(keywords, upper(categoryWords[0]))
	}

	for _, word := range nameWords {
		if len(keywords) >= maxKeywords {
			break
		}
		if matchesAny(word, priorityWords) && !overlaps(word) {
			keywords = append(keywords, upper(word))
		}
	}

	if b := Normalize(brand); b != "" && len(keywords) < maxKeywords {
		kw := upper(b)
		if !overlaps(strings.ToLower(kw)) {
			keywords = append(keywords, kw)
		}
	}

	for _, word := range nameWords {
		if len(keywords) >= maxKeywords {
			break
		}
		if len(word) >= 3 && !stopWords[word] && matchesAny(word, relevantWords) && !overlaps(word) {
			keywords = append(keywords, upper(word))
		}
	}

	if len(keywords) < maxKeywords {
		for _, word := range nameWords {
			n := digits.FindString(word)
			if v, err := strconv.Atoi(n); err != nil || v <= 0 {
				continue
			}
			if !containsAny(keywords, n) {
				if len(n) < 2 {
					n = "0" + n
				}
				keywords = append(keywords, n)
				break
			}
		}
	}

	if len(keywords) < maxKeywords {
		var significant []string
		for _, word := range nameWords {
			if len(word) >= 3 && !stopWords[word] && !containsAny(lowerAll(keywords), prefix(word, 3)) {
				significant = append(significant, word)
			}
		}
		for _, word := range significant {
			if len(keywords) >= maxKeywords {
				break
			}
			keywords = append(keywords, upper(word))
		}
	}

	if len(keywords) == 0 {
		all := append(categoryWords, nameWords...)
		for i := 0; i < len(all) && i < maxKeywords; i++ {
			keywords = append(keywords, strings.ToUpper(prefix(all[i], 3)))
		}
	}
	if len(keywords) == 0 {
		keywords = append(keywords, "PROD")
	}
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

// KeywordHash identifies a keyword combination in the sequence table.
func KeywordHash(keywords string) string {
	sum := md5.Sum([]byte(strings.ToLower(keywords)))
	return hex.EncodeToString(sum[:])[:8]
}

// SequenceStore hands out the next sequence number for a keyword hash.
type SequenceStore interface {
	NextSequence(ctx context.Context, hash, keywords string) (int, error)
}

// Generator combines keywords with a per-combination sequence.
type Generator struct {
	store SequenceStore
	now   func() time.Time
}

func NewGenerator(store SequenceStore) *Generator {
	return &Generator{store: store, now: time.Now}
}

// Generate returns a code like "ELEC-MONI-001". When the sequence cannot be
// obtained it falls back to "PROD-" and six digits of the current time.
func (g *Generator) Generate(ctx context.Context, name, brand, category string) string {
	keywords := strings.Join(Keywords(name, brand, category), "-")
	seq, err := g.store.NextSequence(ctx, KeywordHash(keywords), keywords)
	if err != nil {
		return fmt.Sprintf("PROD-%s", g.stamp(6))
	}
	return fmt.Sprintf("%s-%0*d", keywords, sequenceDigits, seq)
}

// EnsureUnique appends "-01", "-02", ... to base until taken reports false.
func (g *Generator) EnsureUnique(ctx context.Context, base string, taken func(ctx context.Context, sku string) (bool, error)) (string, error) {
	candidate := base
	for i := 1; i <= maxSuffix+1; i++ {
		used, err := taken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !used {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%02d", base, i)
	}
	return fmt.Sprintf("%s-%s", base, g.stamp(4)), nil
}

// stamp is the last n digits of the current unix time in milliseconds.
func (g *Generator) stamp(n int) string {
	ms := strconv.FormatInt(g.now().UnixMilli(), 10)
	return ms[len(ms)-n:]
}

func matchesAny(word string, list []string) bool {
	for _, w := range list {
		if strings.Contains(word, w) || strings.Contains(w, word) {
			return true
		}
	}
	return false
}

func containsAny(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func lowerAll(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = strings.ToLower(s)
	}
	return out
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func upper(word string) string {
	return strings.ToUpper(prefix(word, keywordLength))
}
