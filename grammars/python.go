package grammars

import "github.com/smacker/go-tree-sitter/python"

func pythonGrammar() Grammar {
	return Grammar{
		Name:       "python",
		Extensions: []string{".py", ".pyw"},
		Shebangs:   []string{"#!/usr/bin/env python", "#!/usr/bin/python"},
		Language:   python.GetLanguage,
		Rules: Rules{
			Wrappers: map[string]string{"decorated_definition": "definition"},
			Trivia:   []string{"comment"},
			Containers: []ContainerRule{
				{
					NodeType:  "function_definition",
					Kind:      KindFunction,
					NameField: "name",
				},
				{
					NodeType:  "class_definition",
					Kind:      KindClass,
					NameField: "name",
					BodyField: "body",
					Members: []MemberRule{
						{NodeType: "function_definition", Kind: KindMethod, NameField: "name"},
					},
				},
			},
		},
	}
}
