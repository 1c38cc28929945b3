package metadata

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type rawDocument struct {
	Number       flexString `json:"number" yaml:"number"`
	EnglishTitle flexString `json:"english_title" yaml:"english_title"`
	PaliTitle    flexString `json:"pali_title" yaml:"pali_title"`
	Path         flexString `json:"path" yaml:"path"`
}

type rawSubdivision struct {
	EnglishName flexString    `json:"english_name" yaml:"english_name"`
	PaliName    flexString    `json:"pali_name" yaml:"pali_name"`
	Documents   []rawDocument `json:"documents" yaml:"documents"`
}

type rawDivision struct {
	EnglishName  flexString       `json:"english_name" yaml:"english_name"`
	PaliName     flexString       `json:"pali_name" yaml:"pali_name"`
	Subdivisions []rawSubdivision `json:"subdivisions" yaml:"subdivisions"`
	Documents    []rawDocument    `json:"documents" yaml:"documents"`
}

type rawCollection struct {
	Collection string        `json:"collection" yaml:"collection"`
	Divisions  []rawDivision `json:"divisions" yaml:"divisions"`
	Documents  []rawDocument `json:"documents" yaml:"documents"`
}

// flexString accepts strings, numbers and null. Sutta numbers are stored
// as bare integers in some index generators.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = flexString(n.String())
	return nil
}

func (f *flexString) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected scalar", node.Line)
	}
	if node.Tag == "!!null" {
		*f = ""
		return nil
	}
	*f = flexString(node.Value)
	return nil
}

// decode parses raw index bytes. The format is chosen by file extension;
// anything that is not YAML is treated as JSON.
func decode(path string, data []byte) ([]rawCollection, error) {
	var raw []rawCollection
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

// build converts raw records into the tree, stamping every child with its
// owner so that back-navigation never has to search for a parent.
func build(raw []rawCollection, root string) ([]*Collection, error) {
	forest := make([]*Collection, 0, len(raw))
	seen := make(map[CollectionID]bool, len(raw))
	for i, rc := range raw {
		id := CollectionID(strings.ToUpper(strings.TrimSpace(rc.Collection)))
		if id == "" {
			return nil, fmt.Errorf("collection %d: missing code", i)
		}
		if !id.IsKnown() {
			return nil, fmt.Errorf("collection %d: unknown code %q", i, rc.Collection)
		}
		if seen[id] {
			return nil, fmt.Errorf("collection %d: duplicate code %q", i, id)
		}
		seen[id] = true

		c := &Collection{ID: id}
		c.Documents = buildDocuments(rc.Documents, c, c, root)
		for _, rd := range rc.Divisions {
			d := &Division{
				EnglishName: string(rd.EnglishName),
				PaliName:    string(rd.PaliName),
				Collection:  c,
			}
			d.Documents = buildDocuments(rd.Documents, c, d, root)
			for _, rs := range rd.Subdivisions {
				s := &Subdivision{
					EnglishName: string(rs.EnglishName),
					PaliName:    string(rs.PaliName),
					Division:    d,
				}
				s.Documents = buildDocuments(rs.Documents, c, s, root)
				d.Subdivisions = append(d.Subdivisions, s)
			}
			c.Divisions = append(c.Divisions, d)
		}
		forest = append(forest, c)
	}
	return forest, nil
}

func buildDocuments(raw []rawDocument, c *Collection, parent Node, root string) []*Document {
	if len(raw) == 0 {
		return nil
	}
	docs := make([]*Document, 0, len(raw))
	for _, rd := range raw {
		docs = append(docs, &Document{
			Number:       strings.TrimSpace(string(rd.Number)),
			EnglishTitle: string(rd.EnglishTitle),
			PaliTitle:    string(rd.PaliTitle),
			Path:         resolvePath(string(rd.Path), root),
			Collection:   c,
			Parent:       parent,
		})
	}
	return docs
}

func resolvePath(p, root string) string {
	p = strings.TrimSpace(p)
	if p == "" || root == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
