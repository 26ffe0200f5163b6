package schema

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/solatis/querybuilder/internal/types"
)

// TypeForFile infers the schema type from a file extension.
// .xsd and .xml are XML schemas, .json is a JSON schema.
func TypeForFile(fileName string) (types.SchemaType, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xsd", ".xml":
		return types.SchemaTypeXML, nil
	case ".json":
		return types.SchemaTypeJSON, nil
	default:
		return "", fmt.Errorf("unsupported schema file extension: %q", filepath.Ext(fileName))
	}
}

// NameForFile is the file name without its extension.
func NameForFile(fileName string) string {
	base := filepath.Base(fileName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// describe reads the namespace metadata carried by a schema document.
// For XML that is the root element's targetNamespace and xmlns declarations;
// for JSON schema the $id is used as target namespace.
func describe(t types.SchemaType, content string) (targetNamespace string, namespaces map[string]string, err error) {
	namespaces = map[string]string{}

	switch t {
	case types.SchemaTypeXML:
		dec := xml.NewDecoder(strings.NewReader(content))
		for {
			tok, err := dec.Token()
			if errors.Is(err, io.EOF) {
				return "", nil, fmt.Errorf("xml schema has no root element")
			}
			if err != nil {
				return "", nil, fmt.Errorf("invalid xml schema: %w", err)
			}
			start, ok := tok.(xml.StartElement)
			if !ok {
				continue
			}
			for _, attr := range start.Attr {
				switch {
				case attr.Name.Space == "xmlns":
					namespaces[attr.Name.Local] = attr.Value
				case attr.Name.Space == "" && attr.Name.Local == "xmlns":
					namespaces[""] = attr.Value
				case attr.Name.Space == "" && attr.Name.Local == "targetNamespace":
					targetNamespace = attr.Value
				}
			}
			return targetNamespace, namespaces, nil
		}

	case types.SchemaTypeJSON:
		var doc struct {
			ID string `json:"$id"`
		}
		if err := json.Unmarshal([]byte(content), &doc); err != nil {
			return "", nil, fmt.Errorf("invalid json schema: %w", err)
		}
		return doc.ID, namespaces, nil

	default:
		return "", nil, fmt.Errorf("unknown schema type: %q", t)
	}
}
