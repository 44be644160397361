package grammars

import "github.com/smacker/go-tree-sitter/rust"

func rustGrammar() Grammar {
	return Grammar{
		Name:       "rust",
		Extensions: []string{".rs"},
		Language:   rust.GetLanguage,
		Rules: Rules{
			Trivia: []string{"line_comment", "block_comment", "attribute_item"},
			Containers: []ContainerRule{
				{
					NodeType:  "function_item",
					Kind:      KindFunction,
					NameField: "name",
				},
				{
					NodeType:  "struct_item",
					Kind:      KindStruct,
					NameField: "name",
					BodyField: "body",
					Members: []MemberRule{
						{NodeType: "field_declaration", Kind: KindField, NameField: "name"},
					},
				},
				{
					NodeType:  "enum_item",
					Kind:      KindEnum,
					NameField: "name",
				},
				{
					NodeType:  "trait_item",
					Kind:      KindInterface,
					NameField: "name",
					BodyField: "body",
					Members: []MemberRule{
						{NodeType: "function_item", Kind: KindMethod, NameField: "name"},
						{NodeType: "function_signature_item", Kind: KindMethod, NameField: "name"},
					},
				},
				{
					// `impl Point` and `impl Display for Point` are distinct
					// identities; the trait is the qualifier.
					NodeType:       "impl_item",
					Kind:           KindImpl,
					NameField:      "type",
					QualifierField: "trait",
					BodyField:      "body",
					Members: []MemberRule{
						{NodeType: "function_item", Kind: KindMethod, NameField: "name"},
					},
				},
				{
					// Functions inside an inline module stay individually
					// selectable, which matters for test modules.
					NodeType:      "mod_item",
					Kind:          KindModule,
					NameField:     "name",
					BodyField:     "body",
					LiftFunctions: true,
				},
			},
		},
	}
}
