package grammars

import "github.com/smacker/go-tree-sitter/typescript/typescript"

func typescriptGrammar() Grammar {
	rules := javascriptRules()
	rules.Containers = append(rules.Containers,
		ContainerRule{
			NodeType:  "interface_declaration",
			Kind:      KindInterface,
			NameField: "name",
			BodyField: "body",
			Members: []MemberRule{
				{NodeType: "property_signature", Kind: KindField, NameField: "name"},
				{NodeType: "method_signature", Kind: KindMethod, NameField: "name"},
			},
		},
		ContainerRule{
			NodeType:  "type_alias_declaration",
			Kind:      KindType,
			NameField: "name",
		},
		ContainerRule{
			NodeType:  "enum_declaration",
			Kind:      KindEnum,
			NameField: "name",
		},
	)
	return Grammar{
		Name:       "typescript",
		Extensions: []string{".ts", ".tsx"},
		Language:   typescript.GetLanguage,
		Rules:      rules,
	}
}
