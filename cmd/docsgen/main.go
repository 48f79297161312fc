package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/appengine-ltd/fae-factory/internal/config"
	"github.com/appengine-ltd/fae-factory/internal/items"
	"github.com/appengine-ltd/fae-factory/internal/parser"
	"github.com/appengine-ltd/fae-factory/internal/recipes"
	"github.com/appengine-ltd/fae-factory/internal/world"
)

type docFile struct {
	Name    string
	Title   string
	Content string
}

func main() {
	root := filepath.Join("docs", "reference", "catalogs")
	if err := os.MkdirAll(root, 0o755); err != nil {
		fatal(err)
	}

	cfgDoc, err := generateConfigDoc()
	if err != nil {
		fatal(err)
	}
	files := []docFile{
		generateItemsDoc(),
		generateRecipesDoc(),
		generateStructuresDoc(),
		generateCommandsDoc(),
		cfgDoc,
	}
	for _, f := range files {
		path := filepath.Join(root, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", path)
	}

	index := generateCatalogIndex(files)
	indexPath := filepath.Join(root, "README.md")
	if err := os.WriteFile(indexPath, []byte(index), 0o644); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %s\n", indexPath)
}

func generateCatalogIndex(files []docFile) string {
	var b strings.Builder
	b.WriteString("# Data Catalogs\n\n")
	b.WriteString("Generated from the current Go source using `go run ./cmd/docsgen`.\n\n")
	for _, f := range files {
		b.WriteString(fmt.Sprintf("- [%s](./%s)\n", f.Title, f.Name))
	}
	return b.String()
}

func generateItemsDoc() docFile {
	defs := items.Definitions()

	var b strings.Builder
	b.WriteString("# Items\n\n")
	b.WriteString("Source: `internal/items/catalog.go` (`Definitions`).\n\n")
	b.WriteString(fmt.Sprintf("Total items: **%d**.\n\n", len(defs)))
	b.WriteString("| ID | Name | Category | Description |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, d := range defs {
		b.WriteString("| ")
		b.WriteString(escape(string(d.ID)))
		b.WriteString(" | ")
		b.WriteString(escape(d.Name))
		b.WriteString(" | ")
		b.WriteString(escape(string(d.Category)))
		b.WriteString(" | ")
		b.WriteString(escape(d.Description))
		b.WriteString(" |\n")
	}
	return docFile{Name: "items.md", Title: "Items", Content: b.String()}
}

func generateRecipesDoc() docFile {
	all := recipes.All()

	var b strings.Builder
	b.WriteString("# Recipes\n\n")
	b.WriteString("Source: `internal/recipes/catalog.go` (`All`). Assemblers cycle through unlocked recipes in this order.\n\n")
	b.WriteString(fmt.Sprintf("Default recipe: `%s`.\n\n", recipes.DefaultRecipe))
	b.WriteString("| Type | Name | Input | Output | Time |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, r := range all {
		b.WriteString("| ")
		b.WriteString(escape(string(r.Type)))
		b.WriteString(" | ")
		b.WriteString(escape(r.Name))
		b.WriteString(" | ")
		b.WriteString(escape(items.FormatStacks(r.Input)))
		b.WriteString(" | ")
		b.WriteString(escape(items.FormatStacks(r.Output)))
		b.WriteString(" | ")
		b.WriteString(r.Cost.String())
		b.WriteString(" |\n")
	}
	return docFile{Name: "recipes.md", Title: "Recipes", Content: b.String()}
}

func generateStructuresDoc() docFile {
	var b strings.Builder
	b.WriteString("# Structures\n\n")
	b.WriteString("Source: `internal/world/kinds.go` (`SpecFor`).\n\n")
	b.WriteString("| Kind | Name | Cost | Slots | Filters | Crafts | Gathers | Description |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, k := range world.Kinds() {
		spec, ok := world.SpecFor(k)
		if !ok {
			continue
		}
		cost := "not placeable"
		if spec.Placeable() {
			cost = items.FormatStacks(spec.Cost)
		}
		gathers := "no"
		if len(spec.SpawnOutput) > 0 {
			gathers = fmt.Sprintf("%s every %s", items.FormatStacks(spec.SpawnOutput), spec.SpawnInterval)
		}
		b.WriteString("| ")
		b.WriteString(escape(string(spec.Kind)))
		b.WriteString(" | ")
		b.WriteString(escape(spec.Name))
		b.WriteString(" | ")
		b.WriteString(escape(cost))
		b.WriteString(" | ")
		b.WriteString(fmt.Sprintf("%d", spec.Slots))
		b.WriteString(" | ")
		b.WriteString(filterName(spec.Filters))
		b.WriteString(" | ")
		b.WriteString(yesNo(spec.Crafter))
		b.WriteString(" | ")
		b.WriteString(escape(gathers))
		b.WriteString(" | ")
		b.WriteString(escape(spec.Description))
		b.WriteString(" |\n")
	}
	return docFile{Name: "structures.md", Title: "Structures", Content: b.String()}
}

func generateCommandsDoc() docFile {
	var b strings.Builder
	b.WriteString("# Commands\n\n")
	b.WriteString("Source: `internal/parser/registry.go` (`DefaultRegistry`). Typos within a small edit distance still match.\n\n")
	b.WriteString("| Command | Aliases | Arguments |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, c := range parser.New().Commands() {
		b.WriteString("| ")
		b.WriteString(escape(c.Canonical))
		b.WriteString(" | ")
		b.WriteString(escape(strings.Join(c.Aliases, ", ")))
		b.WriteString(" | ")
		b.WriteString(escape(argSummary(c)))
		b.WriteString(" |\n")
	}
	return docFile{Name: "commands.md", Title: "Commands", Content: b.String()}
}

func generateConfigDoc() (docFile, error) {
	out, err := config.Default().Marshal()
	if err != nil {
		return docFile{}, err
	}
	var b strings.Builder
	b.WriteString("# Configuration\n\n")
	b.WriteString("Source: `internal/config/config.go` (`Default`). Pass a file with `-config`; omitted keys keep these values.\n\n")
	b.WriteString("```yaml\n")
	b.Write(out)
	b.WriteString("```\n")
	return docFile{Name: "config.md", Title: "Configuration", Content: b.String()}, nil
}

func argSummary(c parser.CommandDef) string {
	if len(c.Args) == 0 {
		if c.Quantity {
			return "[duration or count]"
		}
		return "-"
	}
	parts := make([]string, 0, len(c.Args)+1)
	for i, a := range c.Args {
		name := argName(a)
		if i >= c.MinArgs {
			name = "[" + name + "]"
		}
		parts = append(parts, name)
	}
	if c.Quantity {
		parts = append(parts, "[amount]")
	}
	return strings.Join(parts, " ")
}

func argName(a parser.ArgKind) string {
	switch a {
	case parser.ArgEntity:
		return "entity"
	case parser.ArgItem:
		return "item"
	case parser.ArgRecipe:
		return "recipe"
	case parser.ArgStructure:
		return "structure"
	case parser.ArgModifier:
		return "modifier"
	default:
		return "text"
	}
}

func filterName(f world.FilterPreset) string {
	switch f {
	case world.FilterRecipe:
		return "recipe inputs in, outputs out"
	case world.FilterOutputOnly:
		return "output only"
	default:
		return "open"
	}
}

func escape(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "|", "\\|")
	v = strings.ReplaceAll(v, "\n", "<br>")
	return v
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
