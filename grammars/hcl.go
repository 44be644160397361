package grammars

import "github.com/smacker/go-tree-sitter/hcl"

func hclGrammar() Grammar {
	return Grammar{
		Name:       "hcl",
		Extensions: []string{".hcl", ".tf", ".tfvars"},
		Language:   hcl.GetLanguage,
		Rules: Rules{
			Descend: []string{"body"},
			Trivia:  []string{"comment"},
			Containers: []ContainerRule{
				{
					NodeType: "block",
					Kind:     KindBlock,
					LabelKinds: map[string]NodeKind{
						"resource":  KindBlock,
						"data":      KindBlock,
						"variable":  KindBlock,
						"output":    KindBlock,
						"provider":  KindBlock,
						"module":    KindModule,
						"locals":    KindBlock,
						"terraform": KindBlock,
					},
				},
			},
		},
	}
}
