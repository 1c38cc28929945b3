// Package pane opens two editions of the same sutta side by side and keeps
// their cursor lines aligned.
package pane

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Edition is one textual variant of a document, recognised by the suffix
// of its file name.
type Edition struct {
	Code   string // short code used on the command line, e.g. "p1"
	Suffix string // file name suffix before the extension, e.g. "_sc_pali"
	Label  string
}

// Editions is the set of known editions, kept sorted by code.
type Editions []Edition

// DefaultEditions returns the two Pali source editions and the two English
// translations shipped with the corpus.
func DefaultEditions() Editions {
	return Editions{
		{Code: "e1", Suffix: "_sc_engl", Label: "English (SuttaCentral, Sujato)"},
		{Code: "e2", Suffix: "_bb_engl", Label: "English (Bhikkhu Bodhi)"},
		{Code: "p1", Suffix: "_sc_pali", Label: "Pali (SuttaCentral, Mahāsaṅgīti)"},
		{Code: "p2", Suffix: "_cst_pali", Label: "Pali (Chaṭṭha Saṅgāyana)"},
	}
}

// NewEditions builds an edition set from a code -> suffix map. Editions
// using a default suffix keep its label.
func NewEditions(suffixes map[string]string) (Editions, error) {
	labels := make(map[string]string)
	for _, ed := range DefaultEditions() {
		labels[ed.Suffix] = ed.Label
	}
	out := make(Editions, 0, len(suffixes))
	seen := make(map[string]string, len(suffixes))
	for code, suffix := range suffixes {
		code = strings.TrimSpace(code)
		if code == "" || suffix == "" {
			return nil, fmt.Errorf("edition %q: code and suffix are required", code)
		}
		if other, dup := seen[suffix]; dup {
			return nil, fmt.Errorf("editions %q and %q share suffix %q", other, code, suffix)
		}
		seen[suffix] = code
		label, ok := labels[suffix]
		if !ok {
			label = code
		}
		out = append(out, Edition{Code: code, Suffix: suffix, Label: label})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// Lookup finds an edition by code.
func (e Editions) Lookup(code string) (Edition, bool) {
	for _, ed := range e {
		if ed.Code == code {
			return ed, true
		}
	}
	return Edition{}, false
}

// Codes lists the edition codes in order.
func (e Editions) Codes() []string {
	out := make([]string, len(e))
	for i, ed := range e {
		out[i] = ed.Code
	}
	return out
}

// Identity is a document path split into its base and edition.
type Identity struct {
	Base    string
	Ext     string
	Edition Edition

	editions Editions
}

// Resolve matches path against the known suffixes, longest first. The
// suffix may sit at the end of the path or just before its extension.
func (e Editions) Resolve(path string) (Identity, error) {
	byLength := append(Editions(nil), e...)
	sort.SliceStable(byLength, func(i, j int) bool {
		return len(byLength[i].Suffix) > len(byLength[j].Suffix)
	})

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for _, ed := range byLength {
		if strings.HasSuffix(path, ed.Suffix) {
			return Identity{Base: strings.TrimSuffix(path, ed.Suffix), Edition: ed, editions: e}, nil
		}
		if ext != "" && strings.HasSuffix(stem, ed.Suffix) {
			return Identity{Base: strings.TrimSuffix(stem, ed.Suffix), Ext: ext, Edition: ed, editions: e}, nil
		}
	}
	return Identity{}, fmt.Errorf("%w: %s", ErrUnrecognizedEdition, filepath.Base(path))
}

// Sibling returns the path of the given edition of the same document.
func (id Identity) Sibling(code string) (string, error) {
	ed, ok := id.editions.Lookup(code)
	if !ok {
		return "", fmt.Errorf("unknown edition %q (known: %s)", code, strings.Join(id.editions.Codes(), ", "))
	}
	return id.Base + ed.Suffix + id.Ext, nil
}

// ParsePair splits "e1,p1" into its left and right codes.
func ParsePair(s string) (string, string, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return "", "", errors.New("edition pair must look like left,right (e.g. e1,p1)")
	}
	left, right := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if left == "" || right == "" {
		return "", "", errors.New("edition pair must name two editions")
	}
	return left, right, nil
}
