package grammars

import "github.com/smacker/go-tree-sitter/java"

func javaGrammar() Grammar {
	return Grammar{
		Name:       "java",
		Extensions: []string{".java"},
		Language:   java.GetLanguage,
		Rules: Rules{
			Trivia: []string{"comment", "line_comment", "block_comment"},
			Containers: []ContainerRule{
				{
					NodeType:  "class_declaration",
					Kind:      KindClass,
					NameField: "name",
					BodyField: "body",
					Members: []MemberRule{
						{NodeType: "method_declaration", Kind: KindMethod, NameField: "name"},
						{NodeType: "constructor_declaration", Kind: KindMethod, NameField: "name"},
						{NodeType: "field_declaration", Kind: KindField, ViaChild: "variable_declarator", NameField: "name"},
					},
				},
				{
					NodeType:  "interface_declaration",
					Kind:      KindInterface,
					NameField: "name",
					BodyField: "body",
					Members: []MemberRule{
						{NodeType: "method_declaration", Kind: KindMethod, NameField: "name"},
					},
				},
				{
					NodeType:  "enum_declaration",
					Kind:      KindEnum,
					NameField: "name",
					BodyField: "body",
					Members: []MemberRule{
						{NodeType: "method_declaration", Kind: KindMethod, NameField: "name"},
						{NodeType: "field_declaration", Kind: KindField, ViaChild: "variable_declarator", NameField: "name"},
					},
				},
			},
		},
	}
}
