package main

import (
	"strings"
	"testing"
)

func TestGeneratedDocsCoverCatalogs(t *testing.T) {
	checks := []struct {
		doc  docFile
		want []string
	}{
		{generateItemsDoc(), []string{"| wood |", "| toy |"}},
		{generateRecipesDoc(), []string{"wood-to-toy", "crystal-toy", "Default recipe: `wood-to-toy`"}},
		{generateStructuresDoc(), []string{"| assembler |", "| player |", "not placeable"}},
		{generateCommandsDoc(), []string{"| craft |", "| insert |", "entity [item] [amount]"}},
	}
	for _, c := range checks {
		for _, want := range c.want {
			if !strings.Contains(c.doc.Content, want) {
				t.Fatalf("expected %s to contain %q, got:\n%s", c.doc.Name, want, c.doc.Content)
			}
		}
	}
}

func TestConfigDocEmbedsDefaults(t *testing.T) {
	doc, err := generateConfigDoc()
	if err != nil {
		t.Fatalf("config doc: %v", err)
	}
	if !strings.Contains(doc.Content, "tick_rate:") || !strings.HasSuffix(doc.Content, "```\n") {
		t.Fatalf("unexpected config doc:\n%s", doc.Content)
	}
}

func TestCatalogIndexLinksFiles(t *testing.T) {
	index := generateCatalogIndex([]docFile{{Name: "items.md", Title: "Items"}})
	if !strings.Contains(index, "- [Items](./items.md)") {
		t.Fatalf("unexpected index:\n%s", index)
	}
}
