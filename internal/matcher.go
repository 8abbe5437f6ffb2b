package internal

import (
	"fmt"
	"strings"
)

// Lookup scans the knowledge base for a deterministic local answer to the
// user text. Topics are visited in base order and the first topic that both
// matches and has a field named in the query wins; there is no scoring.
//
// A topic matches when any flattened keyword, or failing that the topic
// name itself, is a normalized substring of the normalized text. A matched
// topic only answers through a field whose name also appears in the text.
// A topic that matches but names no field is passed over and the scan
// continues with later topics; it does not fall back to its first field.
func Lookup(userText string, kb *KnowledgeBase) (string, bool) {
	if kb == nil {
		return "", false
	}
	norm := Normalize(userText)

	for _, topic := range kb.Topics() {
		matched := false
		for _, kw := range topic.Entry.Keywords.Flatten() {
			if strings.Contains(norm, Normalize(kw)) {
				matched = true
				break
			}
		}
		if !matched && strings.Contains(norm, Normalize(topic.Name)) {
			matched = true
		}
		if !matched {
			continue
		}

		for _, field := range topic.Entry.Fields {
			if strings.Contains(norm, Normalize(field.Name)) {
				return renderAnswer(topic.Name, field), true
			}
		}
	}

	return "", false
}

func renderAnswer(topic string, field Field) string {
	return fmt.Sprintf("【%s】%s：\n%s", topic, field.Name, field.Value.Render())
}
