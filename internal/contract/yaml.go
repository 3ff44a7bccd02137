package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// yamlToJSON converts a YAML document to JSON while preserving mapping key
// order. Decoding through map[string]any would scramble the paths object
// and with it the generated case ids, so the node tree is walked directly.
func yamlToJSON(content []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(content, &node); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := encodeNode(&buf, &node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeNode(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return encodeNode(buf, n.Content[0])

	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := encodeNode(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeNode(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.ScalarNode:
		return encodeScalar(buf, n)

	case yaml.AliasNode:
		return encodeNode(buf, n.Alias)

	default:
		return fmt.Errorf("unsupported YAML node kind %d", n.Kind)
	}
}

func encodeScalar(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Tag {
	case "!!null":
		buf.WriteString("null")
		return nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return fmt.Errorf("invalid YAML bool %q: %w", n.Value, err)
		}
		buf.WriteString(strconv.FormatBool(b))
		return nil
	case "!!int":
		v, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return fmt.Errorf("invalid YAML int %q: %w", n.Value, err)
		}
		buf.WriteString(strconv.FormatInt(v, 10))
		return nil
	case "!!float":
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return fmt.Errorf("invalid YAML float %q: %w", n.Value, err)
		}
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		return nil
	default:
		encoded, err := json.Marshal(n.Value)
		if err != nil {
			return err
		}
		buf.Write(encoded)
		return nil
	}
}
