package grammars

import "github.com/smacker/go-tree-sitter/golang"

func golangGrammar() Grammar {
	return Grammar{
		Name:       "go",
		Extensions: []string{".go"},
		Language:   golang.GetLanguage,
		Rules: Rules{
			Trivia: []string{"comment"},
			Containers: []ContainerRule{
				{
					NodeType:  "function_declaration",
					Kind:      KindFunction,
					NameField: "name",
				},
				{
					// Methods are top-level in Go; the receiver type keeps
					// same-named methods on different types apart.
					NodeType:       "method_declaration",
					Kind:           KindMethod,
					NameField:      "name",
					QualifierField: "receiver",
					QualifierTypes: []string{"type_identifier"},
				},
				{
					NodeType:  "type_declaration",
					SpecType:  "type_spec",
					Kind:      KindType,
					KindField: "type",
					KindByType: map[string]NodeKind{
						"struct_type":    KindStruct,
						"interface_type": KindInterface,
					},
					NameField: "name",
					BodyTypes: []string{"field_declaration_list", "interface_type"},
					Members: []MemberRule{
						{NodeType: "field_declaration", Kind: KindField, NameField: "name"},
						{NodeType: "method_spec", Kind: KindMethod, NameField: "name"},
					},
				},
			},
		},
	}
}
