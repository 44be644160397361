package grammars

import "github.com/smacker/go-tree-sitter/kotlin"

func kotlinGrammar() Grammar {
	return Grammar{
		Name:       "kotlin",
		Extensions: []string{".kt", ".kts"},
		Language:   kotlin.GetLanguage,
		Rules: Rules{
			Trivia: []string{"comment", "line_comment", "multiline_comment"},
			Containers: []ContainerRule{
				{
					NodeType:    "class_declaration",
					Kind:        KindClass,
					KindByChild: map[string]NodeKind{"interface": KindInterface},
					NameTypes:   []string{"type_identifier"},
					BodyTypes:   []string{"class_body"},
					Members: []MemberRule{
						{NodeType: "function_declaration", Kind: KindMethod, NameTypes: []string{"simple_identifier"}},
						{NodeType: "property_declaration", Kind: KindProperty, ViaChild: "variable_declaration", NameTypes: []string{"simple_identifier", "identifier"}},
					},
				},
				{
					NodeType:  "object_declaration",
					Kind:      KindObject,
					NameTypes: []string{"type_identifier"},
					BodyTypes: []string{"class_body"},
					Members: []MemberRule{
						{NodeType: "function_declaration", Kind: KindMethod, NameTypes: []string{"simple_identifier"}},
					},
				},
				{
					NodeType:  "function_declaration",
					Kind:      KindFunction,
					NameTypes: []string{"simple_identifier"},
				},
			},
		},
	}
}
