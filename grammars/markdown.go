package grammars

import markdown "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown"

func markdownGrammar() Grammar {
	return Grammar{
		Name:       "markdown",
		Extensions: []string{".md", ".markdown"},
		Language:   markdown.GetLanguage,
		Rules: Rules{
			Containers: []ContainerRule{
				// Grammars that group content under section nodes give the
				// whole section as the container range; flat grammars fall
				// back to the heading lines themselves.
				{NodeType: "section", Kind: KindHeading, NameTypes: []string{"inline", "paragraph", "heading_content"}},
				{NodeType: "atx_heading", Kind: KindHeading, NameTypes: []string{"inline", "heading_content"}},
				{NodeType: "setext_heading", Kind: KindHeading, NameTypes: []string{"inline", "paragraph", "heading_content"}},
			},
		},
	}
}
