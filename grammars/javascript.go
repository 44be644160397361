package grammars

import "github.com/smacker/go-tree-sitter/javascript"

func javascriptGrammar() Grammar {
	return Grammar{
		Name:       "javascript",
		Extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
		Shebangs:   []string{"#!/usr/bin/env node"},
		Language:   javascript.GetLanguage,
		Rules:      javascriptRules(),
	}
}

// javascriptRules is shared with the TypeScript grammar, which extends it.
func javascriptRules() Rules {
	return Rules{
		Trivia: []string{"comment"},
		Containers: []ContainerRule{
			{
				NodeType:  "function_declaration",
				Kind:      KindFunction,
				NameField: "name",
			},
			{
				NodeType:  "generator_function_declaration",
				Kind:      KindFunction,
				NameField: "name",
			},
			{
				NodeType:  "class_declaration",
				Kind:      KindClass,
				NameField: "name",
				BodyField: "body",
				Members: []MemberRule{
					{NodeType: "method_definition", Kind: KindMethod, NameField: "name"},
					{NodeType: "field_definition", Kind: KindField, NameField: "property"},
					{NodeType: "public_field_definition", Kind: KindField, NameField: "name"},
				},
			},
		},
	}
}
