package internal

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// KeywordsField is the one reserved field name inside a topic entry. Its
// value holds match triggers instead of answer content.
const KeywordsField = "keywords"

// FieldValue is the content of a single topic field: either a scalar string
// or a list of strings. Lists render joined with newlines.
type FieldValue struct {
	scalar string
	list   []string
	isList bool
}

func ScalarValue(s string) FieldValue {
	return FieldValue{scalar: s}
}

func ListValue(items []string) FieldValue {
	return FieldValue{list: items, isList: true}
}

func (v FieldValue) Render() string {
	if v.isList {
		return strings.Join(v.list, "\n")
	}
	return v.scalar
}

// Field is a named piece of answer content attached to a topic.
type Field struct {
	Name  string
	Value FieldValue
}

// KeywordGroup is one named category of keywords. The category name is
// documentation for the editor; it never participates in matching.
type KeywordGroup struct {
	Name  string
	Words []string
}

// KeywordSpec is the keywords value of a topic: a flat list, or an ordered
// set of categories each holding a list.
type KeywordSpec struct {
	flat    []string
	groups  []KeywordGroup
	grouped bool
}

func FlatKeywords(words []string) KeywordSpec {
	return KeywordSpec{flat: words}
}

func GroupedKeywords(groups []KeywordGroup) KeywordSpec {
	return KeywordSpec{groups: groups, grouped: true}
}

// Flatten returns every keyword in document order. Grouped specs
// concatenate their category lists in mapping order.
func (k KeywordSpec) Flatten() []string {
	if !k.grouped {
		return k.flat
	}
	var out []string
	for _, g := range k.groups {
		out = append(out, g.Words...)
	}
	return out
}

// TopicEntry holds the keywords and content fields of one topic. Fields
// keep document order; that order is the tie-break during matching.
type TopicEntry struct {
	Keywords KeywordSpec
	Fields   []Field
}

// Topic pairs a name with its entry.
type Topic struct {
	Name  string
	Entry TopicEntry
}

// Document is one parsed knowledge file: an ordered list of topics.
type Document struct {
	Topics []Topic
}

// KnowledgeBase is the merge of all loaded documents. Iteration order is
// the insertion order of the merge; a replaced topic keeps its original
// position, matching mapping-update semantics.
type KnowledgeBase struct {
	topics []Topic
	index  map[string]int
}

func NewKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{index: make(map[string]int)}
}

// Put inserts or replaces a topic. Replacement swaps the whole entry, no
// deep merge.
func (kb *KnowledgeBase) Put(name string, entry TopicEntry) {
	if i, ok := kb.index[name]; ok {
		kb.topics[i].Entry = entry
		return
	}
	kb.index[name] = len(kb.topics)
	kb.topics = append(kb.topics, Topic{Name: name, Entry: entry})
}

// Merge folds a document into the base, later documents winning per topic.
func (kb *KnowledgeBase) Merge(doc *Document) {
	for _, t := range doc.Topics {
		kb.Put(t.Name, t.Entry)
	}
}

func (kb *KnowledgeBase) Get(name string) (TopicEntry, bool) {
	i, ok := kb.index[name]
	if !ok {
		return TopicEntry{}, false
	}
	return kb.topics[i].Entry, true
}

func (kb *KnowledgeBase) Topics() []Topic {
	return kb.topics
}

func (kb *KnowledgeBase) Len() int {
	return len(kb.topics)
}

// ParseDocument decodes one YAML knowledge file. The root must be a mapping
// of topic name to entry. Decoding goes through yaml.Node rather than a Go
// map so that topic, field and category order survive.
func ParseDocument(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	doc := &Document{}
	if root.Kind == 0 || len(root.Content) == 0 {
		return doc, nil
	}

	mapping := root.Content[0]
	if mapping.Kind == yaml.ScalarNode && mapping.Tag == "!!null" {
		return doc, nil
	}
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("document root must be a mapping of topics, got %s", kindName(mapping.Kind))
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		nameNode, entryNode := mapping.Content[i], mapping.Content[i+1]
		entry, err := decodeTopicEntry(entryNode)
		if err != nil {
			return nil, fmt.Errorf("topic %q: %w", nameNode.Value, err)
		}
		doc.Topics = append(doc.Topics, Topic{Name: nameNode.Value, Entry: entry})
	}

	return doc, nil
}

func decodeTopicEntry(n *yaml.Node) (TopicEntry, error) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return TopicEntry{}, nil
	}
	if n.Kind != yaml.MappingNode {
		return TopicEntry{}, fmt.Errorf("entry must be a mapping of fields, got %s", kindName(n.Kind))
	}

	var entry TopicEntry
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]

		if keyNode.Value == KeywordsField {
			spec, err := decodeKeywords(valNode)
			if err != nil {
				return TopicEntry{}, fmt.Errorf("field %q: %w", keyNode.Value, err)
			}
			entry.Keywords = spec
			continue
		}

		value, err := decodeFieldValue(valNode)
		if err != nil {
			return TopicEntry{}, fmt.Errorf("field %q: %w", keyNode.Value, err)
		}
		entry.Fields = append(entry.Fields, Field{Name: keyNode.Value, Value: value})
	}

	return entry, nil
}

func decodeFieldValue(n *yaml.Node) (FieldValue, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return ScalarValue(""), nil
		}
		return ScalarValue(n.Value), nil
	case yaml.SequenceNode:
		items, err := decodeStringSequence(n)
		if err != nil {
			return FieldValue{}, err
		}
		return ListValue(items), nil
	default:
		return FieldValue{}, fmt.Errorf("value must be a string or a list of strings, got %s", kindName(n.Kind))
	}
}

func decodeKeywords(n *yaml.Node) (KeywordSpec, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return KeywordSpec{}, nil
		}
		// a lone scalar is tolerated as a one-keyword list
		return FlatKeywords([]string{n.Value}), nil
	case yaml.SequenceNode:
		words, err := decodeStringSequence(n)
		if err != nil {
			return KeywordSpec{}, err
		}
		return FlatKeywords(words), nil
	case yaml.MappingNode:
		var groups []KeywordGroup
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			if valNode.Kind == yaml.ScalarNode && valNode.Tag == "!!null" {
				groups = append(groups, KeywordGroup{Name: keyNode.Value})
				continue
			}
			if valNode.Kind != yaml.SequenceNode {
				return KeywordSpec{}, fmt.Errorf("category %q must hold a list of keywords, got %s", keyNode.Value, kindName(valNode.Kind))
			}
			words, err := decodeStringSequence(valNode)
			if err != nil {
				return KeywordSpec{}, fmt.Errorf("category %q: %w", keyNode.Value, err)
			}
			groups = append(groups, KeywordGroup{Name: keyNode.Value, Words: words})
		}
		return GroupedKeywords(groups), nil
	default:
		return KeywordSpec{}, fmt.Errorf("keywords must be a list or a mapping of categories, got %s", kindName(n.Kind))
	}
}

func decodeStringSequence(n *yaml.Node) ([]string, error) {
	items := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("list items must be strings, got %s", kindName(item.Kind))
		}
		items = append(items, item.Value)
	}
	return items, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
