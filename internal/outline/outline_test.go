package outline

import (
	"reflect"
	"testing"
)

func TestParseAttachesEntriesToNearestCategory(t *testing.T) {
	text := "- Cat1\n  - [A](i)(d)\n- Cat2\n  - [B](i)(d)"

	res := Parse(text, 2)

	if len(res.Entries) != 2 {
		t.Fatalf("Parse() returned %v entries, want 2", len(res.Entries))
	}
	if res.Entries[0].Category != "Cat1" {
		t.Errorf("entry A category = %q, want Cat1", res.Entries[0].Category)
	}
	if res.Entries[1].Category != "Cat2" {
		t.Errorf("entry B category = %q, want Cat2", res.Entries[1].Category)
	}
}

func TestParseSiblingCategoryClosesPrevious(t *testing.T) {
	text := "- Cat1\n- Cat2\n  - [A](i)(d)"

	res := Parse(text, 2)

	if len(res.Entries) != 1 {
		t.Fatalf("Parse() returned %v entries, want 1", len(res.Entries))
	}
	if res.Entries[0].Category != "Cat2" {
		t.Errorf("entry category = %q, want Cat2 (Cat1 must be popped)", res.Entries[0].Category)
	}
}

func TestParseEntryBeforeAnyCategory(t *testing.T) {
	res := Parse("- [Lone](i)(d)", 2)

	if len(res.Entries) != 1 {
		t.Fatalf("Parse() returned %v entries, want 1", len(res.Entries))
	}
	if res.Entries[0].Category != Uncategorized {
		t.Errorf("category = %q, want %q", res.Entries[0].Category, Uncategorized)
	}
}

func TestParseNestedCategoryAttributionOnly(t *testing.T) {
	// Sub is a depth-1 category: entries under it attach to "Sub", but
	// only Top survives the depth-0 projection.
	text := "- Top\n  - Sub\n    - [A](i)(d)"

	res := Parse(text, 2)

	if len(res.Entries) != 1 || res.Entries[0].Category != "Sub" {
		t.Fatalf("entry should attach to Sub, got %+v", res.Entries)
	}
	if len(res.Categories) != 1 || res.Categories[0].Name != "Top" {
		t.Errorf("Categories = %+v, want only Top", res.Categories)
	}
}

func TestParseDuplicateTopLevelFirstWins(t *testing.T) {
	text := "- Games | first desc\n  - [A](i)(d)\n- Games | second desc\n  - [B](i)(d)"

	res := Parse(text, 2)

	if len(res.Categories) != 1 {
		t.Fatalf("Categories = %v, want 1", len(res.Categories))
	}
	if res.Categories[0].Desc != "first desc" {
		t.Errorf("Desc = %q, want first occurrence to win", res.Categories[0].Desc)
	}
	// The duplicate still reopens the stack for its children.
	if res.Entries[1].Category != "Games" {
		t.Errorf("entry B category = %q, want Games", res.Entries[1].Category)
	}
}

func TestParseEndToEnd(t *testing.T) {
	text := "- 游戏 | 玩过的游戏\n  - [塞尔达](🎮)(神作)\n- 番剧\n  - [进击的巨人](📺)(名作)"

	res := Parse(text, 2)

	wantCats := map[string]string{"游戏": "玩过的游戏", "番剧": ""}
	if len(res.Categories) != len(wantCats) {
		t.Fatalf("Categories = %v, want %v", len(res.Categories), len(wantCats))
	}
	for _, c := range res.Categories {
		desc, ok := wantCats[c.Name]
		if !ok {
			t.Errorf("unexpected category %q", c.Name)
			continue
		}
		if c.Desc != desc {
			t.Errorf("category %q desc = %q, want %q", c.Name, c.Desc, desc)
		}
	}

	if len(res.Entries) != 2 {
		t.Fatalf("Entries = %v, want 2", len(res.Entries))
	}
	if res.Entries[0].Name != "塞尔达" || res.Entries[0].Category != "游戏" {
		t.Errorf("entry 0 = %+v", res.Entries[0])
	}
	if res.Entries[1].Name != "进击的巨人" || res.Entries[1].Category != "番剧" {
		t.Errorf("entry 1 = %+v", res.Entries[1])
	}
	if res.Entries[0].Fields[0] != "🎮" || res.Entries[0].Fields[1] != "神作" {
		t.Errorf("entry 0 fields = %v", res.Entries[0].Fields)
	}
}

func TestParseIdempotent(t *testing.T) {
	text := "- Games | played\n  - [Zelda](🎮)(great)\n- Anime\n  - [AoT](📺)(classic)"

	first := Parse(text, 2)
	second := Parse(text, 2)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Parse is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestParseIsTotalOverGarbage(t *testing.T) {
	// Malformed input never fails, it degrades into categories.
	text := "- [broken](only one\n- | no name\n  - ??? )(\n\t\t-   \n]][[(("

	res := Parse(text, 2)

	if len(res.Entries) != 0 {
		t.Errorf("garbage produced %v entries, want 0", len(res.Entries))
	}
	// Every non-blank line became a category node somewhere; the parse
	// completed without any error path existing at all.
	if len(res.Diagnostics) == 0 {
		t.Error("garbage input should surface diagnostics")
	}
}

func TestParseDiagnostics(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantDiags int
	}{
		{
			name:      "malformed entry reported",
			text:      "- Games\n  - [Zelda](🎮)",
			wantDiags: 1,
		},
		{
			name:      "empty category name reported",
			text:      "- | description only",
			wantDiags: 1,
		},
		{
			name:      "clean input has no diagnostics",
			text:      "- Games\n  - [Zelda](🎮)(great)",
			wantDiags: 0,
		},
		{
			name:      "blank lines are skipped silently",
			text:      "- Games\n\n\n  - [Zelda](🎮)(great)\n",
			wantDiags: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.text, 2)
			if len(res.Diagnostics) != tt.wantDiags {
				t.Errorf("Diagnostics = %v, want %v (%+v)",
					len(res.Diagnostics), tt.wantDiags, res.Diagnostics)
			}
		})
	}
}

func TestParseDiagnosticLineNumbers(t *testing.T) {
	res := Parse("- Games\n  - [Zelda](🎮)", 2)
	if len(res.Diagnostics) != 1 {
		t.Fatalf("Diagnostics = %v, want 1", len(res.Diagnostics))
	}
	if res.Diagnostics[0].Line != 2 {
		t.Errorf("diagnostic line = %v, want 2", res.Diagnostics[0].Line)
	}
}

func TestTopLevelProjection(t *testing.T) {
	nodes := []CategoryNode{
		{Depth: 0, Name: "A", Desc: "first"},
		{Depth: 1, Name: "nested", Desc: ""},
		{Depth: 0, Name: "B", Desc: ""},
		{Depth: 0, Name: "A", Desc: "duplicate"},
	}

	cats := TopLevel(nodes)

	if len(cats) != 2 {
		t.Fatalf("TopLevel() = %v categories, want 2", len(cats))
	}
	if cats[0].Name != "A" || cats[0].Desc != "first" {
		t.Errorf("cats[0] = %+v", cats[0])
	}
	if cats[1].Name != "B" {
		t.Errorf("cats[1] = %+v", cats[1])
	}
	if cats[0].Style != 0 || cats[1].Style != 1 {
		t.Errorf("styles = %v, %v, want 0, 1", cats[0].Style, cats[1].Style)
	}
}
