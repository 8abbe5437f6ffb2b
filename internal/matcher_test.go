package internal

import (
	"strings"
	"testing"
)

func buildKB(t *testing.T, yamlDoc string) *KnowledgeBase {
	t.Helper()
	doc, err := ParseDocument([]byte(yamlDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	kb := NewKnowledgeBase()
	kb.Merge(doc)
	return kb
}

func TestLookupKeywordWithFieldName(t *testing.T) {
	kb := buildKB(t, `
營業時間:
  keywords: [幾點, 營業]
  平日: 09:00-18:00
  地址: 台北市信義區
`)

	answer, ok := Lookup("請問營業時間的地址在哪", kb)
	if !ok {
		t.Fatal("expected a local hit")
	}
	if !strings.Contains(answer, "營業時間") || !strings.Contains(answer, "地址") || !strings.Contains(answer, "台北市信義區") {
		t.Errorf("answer = %q", answer)
	}
}

// A topic hit by keyword yields no answer unless the query also names one
// of its fields; the scan moves on instead of falling back to the first
// field.
func TestLookupFieldNameGate(t *testing.T) {
	kb := buildKB(t, `
營業時間:
  keywords: [幾點, 營業]
  地址: 台北市信義區
`)

	answer, ok := Lookup("請問營業時間到幾點", kb)
	if ok {
		t.Errorf("expected a miss, got %q", answer)
	}
}

func TestLookupGateFallsThroughToLaterTopic(t *testing.T) {
	kb := buildKB(t, `
first:
  keywords: [shared]
  unrelated: nothing here matches
second:
  keywords: [shared]
  info: the later topic answers
`)

	answer, ok := Lookup("tell me shared info please", kb)
	if !ok {
		t.Fatal("expected the later topic to answer")
	}
	if !strings.Contains(answer, "second") || !strings.Contains(answer, "the later topic answers") {
		t.Errorf("answer = %q", answer)
	}
}

func TestLookupTopicNameFallback(t *testing.T) {
	kb := buildKB(t, `
退換貨:
  流程: 請攜帶發票至門市辦理
`)

	answer, ok := Lookup("退換貨的流程是什麼", kb)
	if !ok {
		t.Fatal("expected a hit via topic name")
	}
	if !strings.Contains(answer, "請攜帶發票至門市辦理") {
		t.Errorf("answer = %q", answer)
	}
}

func TestLookupNormalizesBothSides(t *testing.T) {
	kb := buildKB(t, `
WiFi:
  keywords: ["WIFI 密碼"]
  密碼: guest1234
`)

	answer, ok := Lookup("請問 wifi密碼 是多少", kb)
	if !ok {
		t.Fatal("expected a hit despite spacing and case differences")
	}
	if !strings.Contains(answer, "guest1234") {
		t.Errorf("answer = %q", answer)
	}
}

func TestLookupFirstTopicWins(t *testing.T) {
	kb := buildKB(t, `
alpha:
  keywords: [ping]
  info: from alpha
beta:
  keywords: [ping]
  info: from beta
`)

	answer, ok := Lookup("ping info", kb)
	if !ok {
		t.Fatal("expected a hit")
	}
	if !strings.Contains(answer, "from alpha") {
		t.Errorf("expected the first topic to win, got %q", answer)
	}
}

func TestLookupFirstFieldWins(t *testing.T) {
	kb := buildKB(t, `
topic:
  keywords: [hit]
  one: first field
  two: second field
`)

	answer, ok := Lookup("hit one two", kb)
	if !ok {
		t.Fatal("expected a hit")
	}
	if !strings.Contains(answer, "first field") || strings.Contains(answer, "second field") {
		t.Errorf("expected the first qualifying field, got %q", answer)
	}
}

func TestLookupGroupedKeywords(t *testing.T) {
	kb := buildKB(t, `
門市資訊:
  keywords:
    位置: [在哪, 怎麼走]
    聯絡: [電話]
  地址: 台北市
`)

	// keyword from the second category, category name itself never matches
	answer, ok := Lookup("電話跟地址給我", kb)
	if !ok {
		t.Fatal("expected a hit via grouped keyword")
	}
	if !strings.Contains(answer, "台北市") {
		t.Errorf("answer = %q", answer)
	}

	if _, ok := Lookup("聯絡地址", kb); ok {
		t.Error("category name must not act as a keyword")
	}
}

func TestLookupMiss(t *testing.T) {
	kb := buildKB(t, `
營業時間:
  keywords: [幾點]
  平日: 09:00-18:00
`)

	if answer, ok := Lookup("完全無關的問題", kb); ok {
		t.Errorf("expected a miss, got %q", answer)
	}
	if _, ok := Lookup("anything", nil); ok {
		t.Error("nil base must miss")
	}
	if _, ok := Lookup("幾點", NewKnowledgeBase()); ok {
		t.Error("empty base must miss")
	}
}
