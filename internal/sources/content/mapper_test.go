package content

import (
	"testing"

	"github.com/hollowdust/pavilion/internal/domain"
	"github.com/hollowdust/pavilion/internal/outline"
)

func TestEntryArity(t *testing.T) {
	tests := []struct {
		kind domain.Kind
		want int
	}{
		{domain.KindTrophies, 2},
		{domain.KindACG, 2},
		{domain.KindFriends, 1},
		{domain.KindArticles, 3},
	}

	for _, tt := range tests {
		if got := EntryArity(tt.kind); got != tt.want {
			t.Errorf("EntryArity(%v) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestMapperMapOutlineTrophies(t *testing.T) {
	res := outline.Parse("- Games | played\n  - [Zelda](🎮)(great)\n  - [Hollow Knight](🗡️)(hard)", 2)

	mapper := NewMapper()
	out, err := mapper.MapOutline(domain.KindTrophies, res)
	if err != nil {
		t.Fatalf("MapOutline() error = %v", err)
	}

	if len(out.Entries) != 2 {
		t.Fatalf("MapOutline() returned %v entries, want 2", len(out.Entries))
	}

	e := out.Entries[0]
	if e.Name != "Zelda" || e.Icon != "🎮" || e.Desc != "great" || e.Category != "Games" {
		t.Errorf("entry = %+v", e)
	}
	if e.ID == "" {
		t.Error("entry ID must be set")
	}

	if len(out.Categories) != 1 || out.Categories[0].Name != "Games" {
		t.Errorf("categories = %+v", out.Categories)
	}
	if out.Categories[0].Icon == "" {
		t.Error("category icon must be assigned")
	}
}

func TestMapperMapOutlineFriends(t *testing.T) {
	tests := []struct {
		name    string
		rawURL  string
		wantURL string
	}{
		{name: "scheme kept", rawURL: "https://blog.example.com", wantURL: "https://blog.example.com"},
		{name: "scheme added", rawURL: "blog.example.com", wantURL: "https://blog.example.com"},
		{name: "http kept", rawURL: "http://old.example.com", wantURL: "http://old.example.com"},
	}

	mapper := NewMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := outline.Parse("- Links\n  - [Friend]("+tt.rawURL+")", 1)
			out, err := mapper.MapOutline(domain.KindFriends, res)
			if err != nil {
				t.Fatalf("MapOutline() error = %v", err)
			}
			if out.Entries[0].URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", out.Entries[0].URL, tt.wantURL)
			}
		})
	}
}

func TestMapperMapOutlineEmpty(t *testing.T) {
	res := outline.Parse("- Only categories here", 2)

	mapper := NewMapper()
	if _, err := mapper.MapOutline(domain.KindTrophies, res); err == nil {
		t.Error("MapOutline() with no entries should return error")
	}
}
