package grammars

import "github.com/smacker/go-tree-sitter/yaml"

func yamlGrammar() Grammar {
	return Grammar{
		Name:       "yaml",
		Extensions: []string{".yaml", ".yml"},
		Language:   yaml.GetLanguage,
		Rules: Rules{
			// Top-level mapping keys are the containers; nested mappings
			// stay inside their key's range.
			Descend: []string{"stream", "document", "block_node", "block_mapping"},
			Trivia:  []string{"comment"},
			Containers: []ContainerRule{
				{
					NodeType:  "block_mapping_pair",
					Kind:      KindBlock,
					NameField: "key",
				},
			},
		},
	}
}
